package mongostore

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage"
)

func keyID() string {
	return uuid.NewString()
}

// signWithPrivate signs data with key's own private components, the way
// MemStorage.Sign does for the in-process backend. Only Ed25519 is
// currently wired; extending to EC/RSA requires threading key.Alg
// through to a matching crypto/ecdsa or crypto/rsa signer.
func signWithPrivate(key jwk.Jwk, data []byte) ([]byte, error) {
	if key.Kty != jwk.KtyOKP || key.Crv != jwk.CrvEd25519 {
		return nil, storage.ErrUnsupportedKeyType("mongostore only signs with Ed25519 keys; got " + string(key.Kty))
	}
	seed, err := base64.RawURLEncoding.DecodeString(key.D)
	if err != nil {
		return nil, storage.ErrStorageBackend("failed to decode ed25519 private key", err)
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(seed), data), nil
}
