package jwk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     Jwk
		wantErr bool
	}{
		{name: "valid EC", key: Jwk{Kty: KtyEC, Crv: CrvP256, X: "x", Y: "y"}},
		{name: "EC missing y", key: Jwk{Kty: KtyEC, Crv: CrvP256, X: "x"}, wantErr: true},
		{name: "valid OKP", key: Jwk{Kty: KtyOKP, Crv: CrvEd25519, X: "x"}},
		{name: "OKP missing x", key: Jwk{Kty: KtyOKP, Crv: CrvEd25519}, wantErr: true},
		{name: "valid RSA", key: Jwk{Kty: KtyRSA, N: "n", E: "e"}},
		{name: "valid oct", key: Jwk{Kty: KtyOct, K: "k"}},
		{name: "unsupported kty", key: Jwk{Kty: "weird"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIsPublicAndToPublic(t *testing.T) {
	priv := Jwk{Kty: KtyOKP, Crv: CrvEd25519, X: "x", D: "d"}
	assert.False(t, priv.IsPublic())

	pub := priv.ToPublic()
	assert.True(t, pub.IsPublic())
	assert.Equal(t, "", pub.D)
	assert.Equal(t, "x", pub.X)
}

func TestThumbprintRFC7638Vector(t *testing.T) {
	// RSA key from RFC 7638 Appendix A.
	key := Jwk{
		Kty: KtyRSA,
		N:   "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
		E:   "AQAB",
	}

	thumb, err := Thumbprint(key)
	require.NoError(t, err)
	assert.Equal(t, "NzbLsXh8uDCcd-6MNwXF4W_7noWXFZAfHkxZsRGC9Xs", thumb)
}

func TestGenerateEC(t *testing.T) {
	key, err := Generate(KtyEC, CrvP256, "ES256")
	require.NoError(t, err)

	assert.NoError(t, key.Validate())
	assert.False(t, key.IsPublic())
	assert.NotEmpty(t, key.X)
	assert.NotEmpty(t, key.Y)
	assert.NotEmpty(t, key.D)
}

func TestGenerateOKP(t *testing.T) {
	key, err := Generate(KtyOKP, CrvEd25519, "EdDSA")
	require.NoError(t, err)

	assert.NoError(t, key.Validate())
	assert.False(t, key.IsPublic())

	pub := key.ToPublic()
	assert.True(t, pub.IsPublic())
}

func TestMethodDigestStable(t *testing.T) {
	key, err := Generate(KtyOKP, CrvEd25519, "EdDSA")
	require.NoError(t, err)
	pub := key.ToPublic()

	d1, err := MethodDigest(pub)
	require.NoError(t, err)
	d2, err := MethodDigest(pub)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}
