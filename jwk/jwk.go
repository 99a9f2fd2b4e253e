// Package jwk implements the JSON Web Key model: the four key types RFC
// 7517/7518/8037 define (EC, OKP, RSA, oct), public/private projection,
// and thumbprint-based key ids. Grounded on the JWK shape and
// lestrrat-go/jwx wiring of dc4eu-vc/pkg/jose/jwk.go, generalized from its
// single EC-only struct to the full parameter set.
package jwk

import (
	"encoding/json"
)

// Kty is the "kty" (key type) member of a JWK.
type Kty string

const (
	KtyEC  Kty = "EC"
	KtyOKP Kty = "OKP"
	KtyRSA Kty = "RSA"
	KtyOct Kty = "oct"
)

// Crv is the "crv" (curve) member carried by EC and OKP keys.
type Crv string

const (
	CrvP256   Crv = "P-256"
	CrvP384   Crv = "P-384"
	CrvP521   Crv = "P-521"
	CrvEd25519 Crv = "Ed25519"
	CrvX25519  Crv = "X25519"

	// CrvBLS12381G2 marks an OKP-shaped Jwk whose "x" member carries a
	// BLS12-381 G2 public key, as produced by storage.JwkStorage.GenerateBBS.
	CrvBLS12381G2 Crv = "BLS12381G2"
)

// Use is the "use" member: "sig" or "enc".
type Use string

const (
	UseSignature  Use = "sig"
	UseEncryption Use = "enc"
)

// Jwk is a JSON Web Key as defined by RFC 7517, restricted to the
// parameter sets above recognize. Only the fields relevant to a
// key's declared Kty are populated; the rest are left zero.
type Jwk struct {
	Kty Kty    `json:"kty"`
	Use Use    `json:"use,omitempty"`
	Kid string `json:"kid,omitempty"`
	Alg string `json:"alg,omitempty"`

	KeyOps []string `json:"key_ops,omitempty"`

	// EC and OKP
	Crv Crv    `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"` // EC only

	// RSA
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`

	// Private-key components. Never populated on a Jwk returned from
	// ToPublic.
	D  string `json:"d,omitempty"`  // EC, OKP, RSA
	P  string `json:"p,omitempty"`  // RSA
	Q  string `json:"q,omitempty"`  // RSA
	Dp string `json:"dp,omitempty"` // RSA
	Dq string `json:"dq,omitempty"` // RSA
	Qi string `json:"qi,omitempty"` // RSA

	// oct
	K string `json:"k,omitempty"`
}

// IsPublic reports whether the key carries no private-key material.
func (k Jwk) IsPublic() bool {
	switch k.Kty {
	case KtyEC, KtyOKP, KtyRSA:
		return k.D == ""
	case KtyOct:
		return false
	default:
		return true
	}
}

// ToPublic returns a copy of k with all private-key components cleared.
// Calling ToPublic on an oct key - which has no public projection - is a
// programmer error and returns the zero Jwk.
func (k Jwk) ToPublic() Jwk {
	if k.Kty == KtyOct {
		return Jwk{}
	}
	pub := k
	pub.D, pub.P, pub.Q, pub.Dp, pub.Dq, pub.Qi = "", "", "", "", "", ""
	return pub
}

// Validate checks that k carries the parameters its Kty requires.
func (k Jwk) Validate() error {
	switch k.Kty {
	case KtyEC:
		if k.Crv == "" || k.X == "" || k.Y == "" {
			return ErrInvalidJwk("EC key requires crv, x, and y", nil)
		}
	case KtyOKP:
		if k.Crv == "" || k.X == "" {
			return ErrInvalidJwk("OKP key requires crv and x", nil)
		}
	case KtyRSA:
		if k.N == "" || k.E == "" {
			return ErrInvalidJwk("RSA key requires n and e", nil)
		}
	case KtyOct:
		if k.K == "" {
			return ErrInvalidJwk("oct key requires k", nil)
		}
	default:
		return ErrUnsupportedKty(string(k.Kty))
	}
	return nil
}

// MarshalJSON round-trips through an alias type to avoid infinite
// recursion while still validating before serialization happens.
func (k Jwk) MarshalJSON() ([]byte, error) {
	type alias Jwk
	return json.Marshal(alias(k))
}
