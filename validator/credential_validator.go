// Package validator implements the §4.6 credential/presentation/
// domain-linkage validation pipeline on top of document.CoreDocument's
// JWS engine, credential's data model, and revocation's status
// mechanisms.
package validator

import (
	"encoding/json"
	"time"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/jws"
)

// DecodedJwtCredential is the result of a successful
// JwtCredentialValidator.Validate call.
type DecodedJwtCredential struct {
	Credential      *credential.Credential
	ProtectedHeader jws.Header
	CustomClaims    map[string]json.RawMessage
}

// JwtCredentialValidator implements §4.6's JwtCredentialValidator.
// Verifier is handed through to CoreDocument.VerifyJws for algorithms
// beyond the built-in EdDSA path; nil restricts validation to EdDSA-signed
// credentials.
type JwtCredentialValidator struct {
	Verifier jws.SignatureVerifier
}

// Validate runs §4.6's JwtCredentialValidator.validate steps 1-6: decode
// and verify compact against issuerDoc, project its claims into a
// Credential, enforce structural and time-window rules, and return the
// decoded result. It does not check status or subject-holder
// relationship; call CheckStatus/CheckSubjectHolderRelationship
// separately as needed.
func (v JwtCredentialValidator) Validate(compact string, issuerDoc *document.CoreDocument, opts CredentialValidationOptions) (*DecodedJwtCredential, error) {
	decoded, err := issuerDoc.VerifyJws(compact, nil, document.JwsVerificationOptions{}, v.Verifier)
	if err != nil {
		return nil, err
	}

	c, custom, err := credential.FromJwtClaims(decoded.Claims)
	if err != nil {
		return nil, err
	}

	if err := ValidateCredentialSemantics(c, opts); err != nil {
		return nil, err
	}

	return &DecodedJwtCredential{
		Credential:      c,
		ProtectedHeader: decoded.ProtectedHeader,
		CustomClaims:    custom,
	}, nil
}

// ValidateCredentialSemantics applies §4.6's structural and time-window
// checks independent of any particular envelope, so non-JWS envelopes
// (the jwp package's Jpt validator) can enforce the same rules
// JwtCredentialValidator.Validate does after their own proof
// verification step.
func ValidateCredentialSemantics(c *credential.Credential, opts CredentialValidationOptions) error {
	var verr ValidationError
	fail := func(err error) error {
		if opts.FailureMode == FailFast {
			return err
		}
		verr.add(err)
		return nil
	}

	if structErr := c.Validate(); structErr != nil {
		if err := fail(errStructuralMismatch(structErr.Error())); err != nil {
			return err
		}
	}
	if _, parseErr := did.Parse(c.Issuer); parseErr != nil {
		if err := fail(errIssuerNotDID(c.Issuer)); err != nil {
			return err
		}
	}
	if c.ExpirationDate != nil && c.ExpirationDate.Before(opts.earliestExpiry()) {
		if err := fail(errExpired("credential expired before earliestExpiryDate")); err != nil {
			return err
		}
	}
	if c.IssuanceDate.After(opts.latestIssuance()) {
		if err := fail(errNotYetValid("credential issuanceDate is after latestIssuanceDate")); err != nil {
			return err
		}
	}

	return verr.asError()
}

// CheckSubjectHolderRelationship implements §4.6's
// checkSubjectHolderRelationship(credential, holderUrl, policy).
func CheckSubjectHolderRelationship(c *credential.Credential, holderURL string, policy SubjectHolderRelationship) error {
	switch policy {
	case AnyHolder:
		return nil
	case SubjectOnNonTransferable:
		if !c.IsNonTransferable() {
			return nil
		}
		fallthrough
	case AlwaysSubject:
		for _, subject := range c.CredentialSubject {
			if subject.ID == "" {
				return errSubjectHolderMismatch("credentialSubject has no id, cannot match holder")
			}
			if subject.ID != holderURL {
				return errSubjectHolderMismatch("credentialSubject.id does not match holder")
			}
		}
		return nil
	default:
		return errSubjectHolderMismatch("unknown subject-holder relationship policy")
	}
}

// now is a package-level indirection so tests could substitute it if a
// future status backend needs clock control; currently a thin wrapper
// around time.Now.
func now() time.Time { return time.Now().UTC() }
