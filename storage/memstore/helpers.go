package memstore

import (
	"encoding/base64"

	"github.com/iotaledger/iota-identity-go/jwk"
)

func encodeBase64URL(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// decodeEd25519Seed decodes the base64url "d" member of an Ed25519 JWK
// (RFC 8037 §2) back into the 32-byte seed crypto/ed25519 expects.
func decodeEd25519Seed(key jwk.Jwk) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(key.D)
}
