package validator

import (
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/document"
)

// domainLinkageContext is the mandatory @context of a well-known DID
// configuration resource.
const domainLinkageContext = "https://identity.foundation/.well-known/resources/did-configuration/v1"

// DomainLinkageConfiguration is the well-known/did-configuration.json
// resource a domain publishes to assert it is linked to one or more
// DIDs: a set of compact JWTs, each a credential whose issuer is the
// asserted DID and whose single subject carries an "origin" matching
// the domain.
type DomainLinkageConfiguration struct {
	Context    string   `json:"@context"`
	LinkedDIDs []string `json:"linked_dids"`
}

// NewDomainLinkageConfiguration builds a DomainLinkageConfiguration
// wrapping the given compact linked-DID JWTs.
func NewDomainLinkageConfiguration(linkedDIDs []string) *DomainLinkageConfiguration {
	return &DomainLinkageConfiguration{Context: domainLinkageContext, LinkedDIDs: linkedDIDs}
}

// JwtDomainLinkageValidator implements §4.6's JwtDomainLinkageValidator:
// it locates the one linked_dids entry issued by the asserted DID,
// validates it as a credential, and checks its subject's origin against
// domain.
type JwtDomainLinkageValidator struct {
	CredentialValidator JwtCredentialValidator
}

// ValidateLinkage finds the exactly-one entry in config.LinkedDIDs whose
// issuer equals issuerDID, validates it against issuerDoc, and asserts
// its single subject's "origin" property equals domain.
func (v JwtDomainLinkageValidator) ValidateLinkage(config *DomainLinkageConfiguration, issuerDoc *document.CoreDocument, issuerDID string, domain string, opts CredentialValidationOptions) (*DecodedJwtCredential, error) {
	var matched *DecodedJwtCredential
	matchCount := 0

	for _, compact := range config.LinkedDIDs {
		decoded, err := v.CredentialValidator.Validate(compact, issuerDoc, opts)
		if err != nil {
			continue
		}
		if decoded.Credential.Issuer != issuerDID {
			continue
		}
		matchCount++
		matched = decoded
	}

	if matchCount == 0 {
		return nil, errNoLinkedDID(domain)
	}
	if matchCount > 1 {
		return nil, errMultipleLinkedDIDs(domain)
	}

	if err := checkOrigin(matched.Credential, domain); err != nil {
		return nil, err
	}
	return matched, nil
}

func checkOrigin(c *credential.Credential, domain string) error {
	if len(c.CredentialSubject) != 1 {
		return errOriginMismatch("domain linkage credential must carry exactly one subject")
	}
	raw, ok := c.CredentialSubject[0].Properties["origin"]
	if !ok {
		return errOriginMismatch("domain linkage credential subject is missing origin")
	}
	var origin string
	if err := json.Unmarshal(raw, &origin); err != nil {
		return errOriginMismatch("domain linkage credential subject origin must be a string")
	}
	if origin != domain {
		return errOriginMismatch("domain linkage credential subject origin does not match domain " + domain)
	}
	return nil
}
