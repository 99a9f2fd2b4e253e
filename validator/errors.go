package validator

import (
	"strings"

	"github.com/iotaledger/iota-identity-go/internal/ierr"
)

// Error codes for the validator package.
const (
	CodeStructuralMismatch    = "StructuralMismatch"
	CodeExpired               = "Expired"
	CodeNotYetValid           = "NotYetValid"
	CodeIssuerNotDID          = "IssuerNotDID"
	CodeHolderNotDID          = "HolderNotDID"
	CodeSubjectHolderMismatch = "SubjectHolderRelationshipMismatch"
	CodeUnsupportedStatusType = "UnsupportedStatusType"
	CodeStatusRevoked         = "StatusRevoked"
	CodeNoLinkedDID           = "NoLinkedDID"
	CodeMultipleLinkedDIDs    = "MultipleLinkedDIDs"
	CodeOriginMismatch        = "OriginMismatch"
)

func errStructuralMismatch(message string) error {
	return ierr.New(ierr.KindSemantic, CodeStructuralMismatch, message)
}

func errExpired(message string) error {
	return ierr.New(ierr.KindStatus, CodeExpired, message)
}

func errNotYetValid(message string) error {
	return ierr.New(ierr.KindStatus, CodeNotYetValid, message)
}

func errIssuerNotDID(issuer string) error {
	return ierr.New(ierr.KindSemantic, CodeIssuerNotDID, "issuer is not a valid DID: "+issuer)
}

func errHolderNotDID(holder string) error {
	return ierr.New(ierr.KindSemantic, CodeHolderNotDID, "holder is not a valid DID: "+holder)
}

func errSubjectHolderMismatch(message string) error {
	return ierr.New(ierr.KindSemantic, CodeSubjectHolderMismatch, message)
}

func errUnsupportedStatusType(statusType string) error {
	return ierr.New(ierr.KindStatus, CodeUnsupportedStatusType, "unsupported credentialStatus.type: "+statusType)
}

func errStatusRevoked(message string) error {
	return ierr.New(ierr.KindStatus, CodeStatusRevoked, message)
}

func errNoLinkedDID(domain string) error {
	return ierr.New(ierr.KindSemantic, CodeNoLinkedDID, "no linked_dids entry matched issuer for domain "+domain)
}

func errMultipleLinkedDIDs(domain string) error {
	return ierr.New(ierr.KindSemantic, CodeMultipleLinkedDIDs, "more than one linked_dids entry matched issuer for domain "+domain)
}

func errOriginMismatch(message string) error {
	return ierr.New(ierr.KindSemantic, CodeOriginMismatch, message)
}

// ValidationError accumulates every failure observed during an
// AllErrors validation pass; FailFast validation never builds one of
// these, returning the first error directly instead. Grounded on
// dc4eu-vc/pkg/helpers.Error's accumulation of
// validator.ValidationErrors into one reported shape.
type ValidationError struct {
	Errors []error
}

func (v *ValidationError) Error() string {
	parts := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) add(err error) {
	if err != nil {
		v.Errors = append(v.Errors, err)
	}
}

func (v *ValidationError) asError() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v
}
