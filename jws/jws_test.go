package jws

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/jwk"
)

func decodeTestEd25519Private(priv jwk.Jwk) (ed25519.PrivateKey, error) {
	seed, err := b64decode(priv.D)
	if err != nil {
		return nil, err
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

func TestEncodeVerifyRoundTrip(t *testing.T) {
	priv, err := jwk.Generate(jwk.KtyOKP, jwk.CrvEd25519, AlgEdDSA)
	require.NoError(t, err)
	pub := priv.ToPublic()
	ed25519Priv, err := decodeTestEd25519Private(priv)
	require.NoError(t, err)

	header := Header{Alg: AlgEdDSA, Kid: "did:example:abc#key-1"}
	payload := []byte(`{"hello":"world"}`)

	signer := func(_ context.Context, signingInput []byte) ([]byte, error) {
		return ed25519.Sign(ed25519Priv, signingInput), nil
	}

	compact, err := Encode(context.Background(), header, payload, signer)
	require.NoError(t, err)

	gotHeader, gotPayload, err := Verify(compact, nil, pub, nil)
	require.NoError(t, err)
	assert.Equal(t, AlgEdDSA, gotHeader.Alg)
	assert.Equal(t, payload, gotPayload)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	priv, err := jwk.Generate(jwk.KtyOKP, jwk.CrvEd25519, AlgEdDSA)
	require.NoError(t, err)
	pub := priv.ToPublic()
	ed25519Priv, err := decodeTestEd25519Private(priv)
	require.NoError(t, err)

	header := Header{Alg: AlgEdDSA}
	signer := func(_ context.Context, signingInput []byte) ([]byte, error) {
		return ed25519.Sign(ed25519Priv, signingInput), nil
	}
	compact, err := Encode(context.Background(), header, []byte("payload"), signer)
	require.NoError(t, err)

	tampered := compact[:len(compact)-2] + "AA"
	_, _, err = Verify(tampered, nil, pub, nil)
	require.Error(t, err)
}

func TestDetachedPayload(t *testing.T) {
	priv, err := jwk.Generate(jwk.KtyOKP, jwk.CrvEd25519, AlgEdDSA)
	require.NoError(t, err)
	pub := priv.ToPublic()
	ed25519Priv, err := decodeTestEd25519Private(priv)
	require.NoError(t, err)

	b64False := false
	header := Header{Alg: AlgEdDSA, B64: &b64False, Crit: []string{"b64"}}
	payload := []byte("detached-content")
	signer := func(_ context.Context, signingInput []byte) ([]byte, error) {
		return ed25519.Sign(ed25519Priv, signingInput), nil
	}

	compact, err := Encode(context.Background(), header, payload, signer)
	require.NoError(t, err)

	_, gotPayload, err := Verify(compact, payload, pub, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, gotPayload)

	_, _, err = Verify(compact, nil, pub, nil)
	require.Error(t, err)
}

func TestUnsupportedAlgRequiresVerifier(t *testing.T) {
	compact := "eyJhbGciOiJFUzI1NiJ9.cGF5bG9hZA.c2ln"
	_, _, err := Verify(compact, nil, jwk.Jwk{}, nil)
	require.Error(t, err)
}

func TestRegisteredAlgSignatureVerifierRejectsUnknownAlg(t *testing.T) {
	v := RegisteredAlgSignatureVerifier{}
	err := v.Verify("bogus", []byte("x"), []byte("y"), jwk.Jwk{})
	require.Error(t, err)
}
