package document

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the document package.
const (
	CodeMethodAlreadyExists    = "MethodAlreadyExists"
	CodeMethodNotFound         = "MethodNotFound"
	CodeServiceAlreadyExists   = "ServiceAlreadyExists"
	CodeServiceNotFound        = "ServiceNotFound"
	CodeInvalidStateMetadata   = "InvalidStateMetadata"
	CodeConcurrentlyModified   = "ConcurrentlyModified"
	CodeRevocationServiceNotFound = "RevocationServiceNotFound"
	CodeInvalidServiceEndpoint    = "InvalidServiceEndpoint"
)

// ErrMethodAlreadyExists reports an insertMethod call colliding with an
// existing method or service id.
func ErrMethodAlreadyExists(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMethodAlreadyExists, message)
}

// ErrMethodNotFound reports a resolveMethod/removeMethod/relationship call
// with no matching entry.
func ErrMethodNotFound(message string) error {
	return ierr.New(ierr.KindSemantic, CodeMethodNotFound, message)
}

// ErrServiceAlreadyExists reports an insertService call colliding with an
// existing method or service id.
func ErrServiceAlreadyExists(message string) error {
	return ierr.New(ierr.KindSemantic, CodeServiceAlreadyExists, message)
}

// ErrServiceNotFound reports a resolveService/removeService call with no
// matching entry.
func ErrServiceNotFound(message string) error {
	return ierr.New(ierr.KindSemantic, CodeServiceNotFound, message)
}

// ErrInvalidStateMetadata reports a pack/unpack mismatch: bad magic,
// unsupported version, truncated length, or malformed payload.
func ErrInvalidStateMetadata(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidStateMetadata, message, cause)
}

// ErrConcurrentlyModified reports a read observed mid-write. Callers
// should retry; it is not a data-loss signal.
func ErrConcurrentlyModified(message string) error {
	return ierr.New(ierr.KindSemantic, CodeConcurrentlyModified, message)
}

// ErrRevocationServiceNotFound reports that revokeCredentials/
// unrevokeCredentials could not locate a RevocationBitmap2022 service
// matching the given query.
func ErrRevocationServiceNotFound(message string) error {
	return ierr.New(ierr.KindSemantic, CodeRevocationServiceNotFound, message)
}

// ErrInvalidServiceEndpoint reports a service whose endpoint shape does
// not match what the caller needed (e.g. a RevocationBitmap2022 service
// whose endpoint is a set/map instead of a single data URL).
func ErrInvalidServiceEndpoint(message string) error {
	return ierr.New(ierr.KindSemantic, CodeInvalidServiceEndpoint, message)
}
