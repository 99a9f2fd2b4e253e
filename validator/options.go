package validator

import "time"

// FailureMode selects how a validator accumulates failures: FailFast
// returns the first error immediately, AllErrors collects every
// applicable check's failure into a *ValidationError.
type FailureMode int

const (
	FailFast FailureMode = iota
	AllErrors
)

// SubjectHolderRelationship is the policy checkSubjectHolderRelationship
// enforces between a credential's subjects and the presenting holder.
type SubjectHolderRelationship int

const (
	// AlwaysSubject requires every subject carrying an "id" to equal the
	// holder; subjects without an id fail the check outright.
	AlwaysSubject SubjectHolderRelationship = iota
	// SubjectOnNonTransferable applies the AlwaysSubject rule only when
	// the credential's nonTransferable flag is set.
	SubjectOnNonTransferable
	// AnyHolder accepts any holder.
	AnyHolder
)

// StatusCheck selects how checkStatus treats a credentialStatus.type it
// does not recognize.
type StatusCheck int

const (
	// StatusCheckStrict rejects unknown credentialStatus types.
	StatusCheckStrict StatusCheck = iota
	// StatusCheckSkipUnsupported silently accepts unknown
	// credentialStatus types but still enforces recognized ones.
	StatusCheckSkipUnsupported
	// StatusCheckSkipAll skips status checking entirely.
	StatusCheckSkipAll
)

// CredentialValidationOptions configures
// JwtCredentialValidator.Validate's structural and time-window checks.
type CredentialValidationOptions struct {
	// EarliestExpiryDate: the credential must not have expired before
	// this instant. Zero means "now" at call time.
	EarliestExpiryDate time.Time
	// LatestIssuanceDate: the credential's issuanceDate must not be
	// later than this instant. Zero means "now" at call time.
	LatestIssuanceDate time.Time
	FailureMode        FailureMode
}

func (o CredentialValidationOptions) earliestExpiry() time.Time {
	if o.EarliestExpiryDate.IsZero() {
		return time.Now().UTC()
	}
	return o.EarliestExpiryDate
}

func (o CredentialValidationOptions) latestIssuance() time.Time {
	if o.LatestIssuanceDate.IsZero() {
		return time.Now().UTC()
	}
	return o.LatestIssuanceDate
}

// PresentationValidationOptions configures
// JwtPresentationValidator.Validate.
type PresentationValidationOptions struct {
	FailureMode FailureMode
}
