package jws

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/iotaledger/iota-identity-go/jwk"
)

// RegisteredAlgSignatureVerifier is a SignatureVerifier covering every
// ECDSA/RSA/RSA-PSS algorithm golang-jwt/jwt/v5 registers, so that
// CoreDocument.VerifyJws can be handed a capability covering more than
// the package's built-in EdDSA path without the jws package itself
// reaching for ECDSA/RSA primitives by hand. Grounded on
// dc4eu-vc/pkg/jose/jwt.go's use of the same library for its signing
// path, mirrored here on the verification side.
type RegisteredAlgSignatureVerifier struct{}

// Verify implements SignatureVerifier by looking up alg in golang-jwt's
// method registry and delegating to its Verify, after reconstructing
// publicJwk's standard-library key type.
func (RegisteredAlgSignatureVerifier) Verify(alg string, signingInput, signature []byte, publicJwk jwk.Jwk) error {
	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return ErrUnsupportedAlg(alg)
	}

	key, err := publicKeyFor(publicJwk)
	if err != nil {
		return ErrSignatureVerification(err.Error())
	}

	if err := method.Verify(string(signingInput), signature, key); err != nil {
		return ErrSignatureVerification("signature verification failed: " + err.Error())
	}
	return nil
}

func publicKeyFor(k jwk.Jwk) (interface{}, error) {
	switch k.Kty {
	case jwk.KtyEC:
		return jwk.ToECDSAPublicKey(k)
	case jwk.KtyRSA:
		return jwk.ToRSAPublicKey(k)
	case jwk.KtyOct:
		return decodeOctKey(k)
	default:
		return nil, ErrUnsupportedAlg(string(k.Kty))
	}
}

func decodeOctKey(k jwk.Jwk) ([]byte, error) {
	return b64decode(k.K)
}
