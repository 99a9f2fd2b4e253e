package jws

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the jws package.
const (
	CodeInvalidJws            = "InvalidJws"
	CodeSignatureVerification = "SignatureVerification"
	CodeUnsupportedAlg        = "UnsupportedAlg"
	CodeMethodNotFound        = "MethodNotFound"
	CodeMethodScopeMismatch   = "MethodScopeMismatch"
	CodeMissingKid            = "MissingKid"
)

// ErrInvalidJws reports a malformed compact JWS: wrong segment count, a
// non-JSON header, or an undecodable base64url segment.
func ErrInvalidJws(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidJws, message, cause)
}

// ErrSignatureVerification reports that a signature failed to verify
// against the resolved method's public key.
func ErrSignatureVerification(message string) error {
	return ierr.New(ierr.KindCryptographic, CodeSignatureVerification, message)
}

// ErrUnsupportedAlg reports an "alg" header naming a scheme with no
// built-in verifier and no SignatureVerifier supplied to handle it.
func ErrUnsupportedAlg(alg string) error {
	return ierr.New(ierr.KindCryptographic, CodeUnsupportedAlg, "unsupported alg: "+alg)
}

// ErrMethodNotFound reports that no verification method could be
// resolved for the JWS under the active selection rules.
func ErrMethodNotFound(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMethodNotFound, message)
}

// ErrMethodScopeMismatch reports that the resolved method exists but does
// not belong to the requested verification relationship.
func ErrMethodScopeMismatch(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMethodScopeMismatch, message)
}

// ErrMissingKid reports that a JWS carries no "kid", no method-id
// override, and no usable nonce to select a verification method with.
func ErrMissingKid(message string) error {
	return ierr.New(ierr.KindSyntax, CodeMissingKid, message)
}
