package jwk

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the jwk package.
const (
	CodeInvalidJwk     = "InvalidJwk"
	CodeUnsupportedKty = "UnsupportedKty"
	CodeKeyGeneration  = "KeyGeneration"
)

// ErrInvalidJwk reports a JWK that is malformed or missing a required
// type-specific parameter.
func ErrInvalidJwk(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidJwk, message, cause)
}

// ErrUnsupportedKty reports a "kty" value outside {EC, OKP, RSA, oct}.
func ErrUnsupportedKty(message string) error {
	return ierr.New(ierr.KindSemantic, CodeUnsupportedKty, message)
}

// ErrKeyGeneration reports a failure while generating fresh key material.
func ErrKeyGeneration(message string, cause error) error {
	return ierr.Wrap(ierr.KindCryptographic, CodeKeyGeneration, message, cause)
}
