// Package ierr defines the error-kind taxonomy shared by every package in
// this module, grounded on dc4eu-vc's pkg/model/errors.go and
// pkg/helpers/error.go sentinel-error style.
package ierr

import "fmt"

// Kind classifies an error into one of six domains: syntax, semantic,
// cryptographic, status, storage, or resolution failures.
type Kind string

const (
	KindSyntax         Kind = "SYNTAX"
	KindSemantic       Kind = "SEMANTIC"
	KindCryptographic  Kind = "CRYPTOGRAPHIC"
	KindStatus         Kind = "STATUS"
	KindStorage        Kind = "STORAGE"
	KindResolution     Kind = "RESOLUTION"
)

// Error is the common error shape: a stable Code (e.g. "InvalidDID"), a Kind
// bucket, a human-readable Message, and an optional wrapped Cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause chain to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New builds a bare Error with no cause.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap builds an Error that carries an underlying cause.
func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// Is allows errors.Is(err, ierr.New(...)) to match on Code alone, since two
// independently constructed Errors for the same failure never share a
// pointer.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
