package bbscrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	pair, err := GenerateKeyPair()
	require.NoError(t, err)

	messages := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	header := []byte("header")

	sig, err := Sign(pair.Secret, messages, header)
	require.NoError(t, err)

	ok, err := Verify(pair.Public, sig, messages, header)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	pair, err := GenerateKeyPair()
	require.NoError(t, err)

	messages := [][]byte{[]byte("a"), []byte("b")}
	header := []byte("header")

	sig, err := Sign(pair.Secret, messages, header)
	require.NoError(t, err)

	tampered := [][]byte{[]byte("a"), []byte("tampered")}
	ok, err := Verify(pair.Public, sig, tampered, header)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPublicKeyRoundtrip(t *testing.T) {
	pair, err := GenerateKeyPair()
	require.NoError(t, err)

	encoded := EncodePublicKey(pair.Public)
	decoded, err := DecodePublicKey(encoded)
	require.NoError(t, err)

	messages := [][]byte{[]byte("x")}
	sig, err := Sign(pair.Secret, messages, nil)
	require.NoError(t, err)

	ok, err := Verify(decoded, sig, messages, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateValidityTimeframe(t *testing.T) {
	pair, err := GenerateKeyPair()
	require.NoError(t, err)

	messages := [][]byte{[]byte("claim:name=alice"), []byte("timeframe:2024")}
	sig, err := Sign(pair.Secret, messages, nil)
	require.NoError(t, err)

	updated, err := UpdateValidityTimeframe(pair.Secret, sig, 1, []byte("timeframe:2024"), []byte("timeframe:2025"))
	require.NoError(t, err)

	newMessages := [][]byte{[]byte("claim:name=alice"), []byte("timeframe:2025")}
	ok, err := Verify(pair.Public, updated, newMessages, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(pair.Public, updated, messages, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
