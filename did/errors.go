package did

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the did package.
const (
	CodeInvalidDID     = "InvalidDID"
	CodeInvalidDIDUrl  = "InvalidDIDUrl"
	CodeInvalidMethod  = "InvalidMethod"
	CodeInvalidNetwork = "InvalidNetwork"
	CodeInvalidTag     = "InvalidTag"
)

// ErrInvalidDID reports a DID that failed to parse as a syntactically valid
// did: URI.
func ErrInvalidDID(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidDID, message, cause)
}

// ErrInvalidDIDUrl reports a DID URL whose path/query/fragment failed to
// parse.
func ErrInvalidDIDUrl(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidDIDUrl, message, cause)
}

// ErrInvalidMethod reports a method-name segment outside [a-z0-9]+.
func ErrInvalidMethod(message string) error {
	return ierr.New(ierr.KindSyntax, CodeInvalidMethod, message)
}

// ErrInvalidNetwork reports an IotaDID network segment outside 1-6 ASCII
// characters.
func ErrInvalidNetwork(message string) error {
	return ierr.New(ierr.KindSyntax, CodeInvalidNetwork, message)
}

// ErrInvalidTag reports an IotaDID alias-id segment that isn't 64 hex
// characters.
func ErrInvalidTag(message string) error {
	return ierr.New(ierr.KindSyntax, CodeInvalidTag, message)
}
