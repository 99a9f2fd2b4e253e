package verification

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the verification package.
const (
	CodeMethodNotFound      = "MethodNotFound"
	CodeMethodAlreadyExists = "MethodAlreadyExists"
	CodeInvalidMethodData   = "InvalidMethodData"
	CodeInvalidService      = "InvalidService"
)

// ErrMethodNotFound reports a verification method id with no matching
// entry in a document's method pool.
func ErrMethodNotFound(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMethodNotFound, message)
}

// ErrMethodAlreadyExists reports an insertMethod call whose id collides
// with an existing method.
func ErrMethodAlreadyExists(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMethodAlreadyExists, message)
}

// ErrInvalidMethodData reports key material that failed validation when a
// verification method was constructed.
func ErrInvalidMethodData(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidMethodData, message, cause)
}

// ErrInvalidService reports a Service whose id or endpoint failed
// validation.
func ErrInvalidService(message string) error {
	return ierr.New(ierr.KindSyntax, CodeInvalidService, message)
}
