package storage

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the storage package.
const (
	CodeKeyNotFound        = "KeyNotFound"
	CodeKeyIdAlreadyExists = "KeyIdAlreadyExists"
	CodeUnsupportedKeyType = "Unsupported"
	CodeStorageBackend     = "Backend"
)

// ErrKeyNotFound reports that a keyId has no matching entry in a
// JwkStorage -- sign/delete/exists against an unknown key.
func ErrKeyNotFound(message string) error {
	return ierr.New(ierr.KindStorage, CodeKeyNotFound, message)
}

// ErrKeyIdAlreadyExists reports a KeyIdStorage.InsertKeyId call for a
// methodDigest that already has a mapping.
func ErrKeyIdAlreadyExists(message string) error {
	return ierr.New(ierr.KindStorage, CodeKeyIdAlreadyExists, message)
}

// ErrUnsupportedKeyType reports a generate/insert call naming a key type
// or algorithm the backend does not implement.
func ErrUnsupportedKeyType(message string) error {
	return ierr.New(ierr.KindStorage, CodeUnsupportedKeyType, message)
}

// ErrStorageBackend wraps a transport/driver-level failure (a dropped
// mongo connection, a timed-out write) behind the core/external boundary.
// Callers may treat it as retryable.
func ErrStorageBackend(message string, cause error) error {
	return ierr.Wrap(ierr.KindStorage, CodeStorageBackend, message, cause)
}
