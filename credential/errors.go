package credential

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the credential package.
const (
	CodeMalformedCredential   = "MalformedCredential"
	CodeMalformedPresentation = "MalformedPresentation"
	CodeMissingIssuanceDate   = "MissingIssuanceDate"
	CodeInvalidClaims         = "InvalidClaims"
)

// ErrMalformedCredential reports a Credential failing §3's structural
// invariants or JSON decoding.
func ErrMalformedCredential(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeMalformedCredential, message, cause)
}

// ErrMalformedPresentation reports a Presentation failing its structural
// invariants or JSON decoding.
func ErrMalformedPresentation(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeMalformedPresentation, message, cause)
}

// ErrMissingIssuanceDate reports a Credential with a zero issuanceDate.
func ErrMissingIssuanceDate(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMissingIssuanceDate, message)
}

// ErrInvalidClaims reports a JWT claims set that cannot be projected
// to/from a Credential or Presentation: a missing registered claim, a
// malformed "vc"/"vp" member, or a type mismatch.
func ErrInvalidClaims(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidClaims, message, cause)
}
