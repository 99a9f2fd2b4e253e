package mongostore

import (
	"testing"

	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignWithPrivateEd25519(t *testing.T) {
	key, err := jwk.Generate(jwk.KtyOKP, jwk.CrvEd25519, "EdDSA")
	require.NoError(t, err)

	sig, err := signWithPrivate(key, []byte("payload"))
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestSignWithPrivateRejectsUnsupportedKty(t *testing.T) {
	key, err := jwk.Generate(jwk.KtyEC, jwk.CrvP256, "ES256")
	require.NoError(t, err)

	_, err = signWithPrivate(key, []byte("payload"))
	require.Error(t, err)
}

func TestKeyIDUnique(t *testing.T) {
	a := keyID()
	b := keyID()
	assert.NotEqual(t, a, b)
}
