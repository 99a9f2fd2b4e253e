package verification

import "github.com/mr-tron/base58"

// base58Decode wraps mr-tron/base58's Bitcoin-alphabet decoder, the
// publicKeyBase58 encoding did-core's appendix carries forward from
// earlier key-material conventions.
func base58Decode(encoded string) ([]byte, error) {
	return base58.Decode(encoded)
}
