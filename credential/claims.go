package credential

import (
	"encoding/json"
	"time"
)

// registeredClaimNames are the top-level JWT claims §4.6 step 3 maps
// onto Credential fields; everything else found alongside "vc" in a
// claims set is returned to the caller as custom claims.
var registeredClaimNames = map[string]bool{
	"iss": true, "sub": true, "jti": true, "nbf": true, "exp": true, "vc": true,
}

// vcClaimFields are the Credential fields carried under the "vc" claim
// once issuer/id/issuanceDate/expirationDate have moved to the
// registered iss/jti/nbf/exp claims.
type vcClaimFields struct {
	Context           []string         `json:"@context"`
	Type              []string         `json:"type"`
	CredentialSubject json.RawMessage  `json:"credentialSubject,omitempty"`
	CredentialStatus  []Status         `json:"credentialStatus,omitempty"`
	CredentialSchema  []Schema         `json:"credentialSchema,omitempty"`
	RefreshService    []RefreshService `json:"refreshService,omitempty"`
	TermsOfUse        []TermsOfUse     `json:"termsOfUse,omitempty"`
	Evidence          []Evidence       `json:"evidence,omitempty"`
	NonTransferable   *bool            `json:"nonTransferable,omitempty"`
	Proof             *Proof           `json:"proof,omitempty"`
}

// ToJwtClaims projects c onto the JWT claims set §4.6 step 3 describes:
// iss/sub/jti/nbf/exp carry the issuer, first subject id, credential id,
// and issuanceDate/expirationDate (as Unix seconds), while every
// remaining credential field is nested under "vc". Custom top-level
// claims set on c travel alongside, not inside "vc".
func (c *Credential) ToJwtClaims() (json.RawMessage, error) {
	subjectJSON, err := marshalSubjects(c.CredentialSubject)
	if err != nil {
		return nil, err
	}

	vc := vcClaimFields{
		Context:           c.Context,
		Type:              c.Type,
		CredentialSubject: subjectJSON,
		CredentialStatus:  c.CredentialStatus,
		CredentialSchema:  c.CredentialSchema,
		RefreshService:    c.RefreshService,
		TermsOfUse:        c.TermsOfUse,
		Evidence:          c.Evidence,
		NonTransferable:   c.NonTransferable,
		Proof:             c.Proof,
	}
	vcJSON, err := json.Marshal(vc)
	if err != nil {
		return nil, ErrInvalidClaims("failed to marshal vc claim", err)
	}

	claims := map[string]json.RawMessage{}
	if c.Issuer != "" {
		claims["iss"] = mustJSON(c.Issuer)
	}
	if sub := c.FirstSubjectID(); sub != "" {
		claims["sub"] = mustJSON(sub)
	}
	if c.ID != "" {
		claims["jti"] = mustJSON(c.ID)
	}
	if !c.IssuanceDate.IsZero() {
		claims["nbf"] = mustJSON(c.IssuanceDate.Unix())
	}
	if c.ExpirationDate != nil {
		claims["exp"] = mustJSON(c.ExpirationDate.Unix())
	}
	claims["vc"] = vcJSON
	for k, v := range c.Custom {
		claims[k] = v
	}
	return json.Marshal(claims)
}

// FromJwtClaims reverses ToJwtClaims: it reconstructs a Credential from
// a decoded JWT claims set, returning any top-level claims outside the
// registered set as custom claims (§4.6 step 3's "vc" is unpacked back
// into the credential and is not itself a custom claim).
func FromJwtClaims(raw json.RawMessage) (*Credential, map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil, ErrInvalidClaims("claims set must be a JSON object", err)
	}

	vcRaw, ok := top["vc"]
	if !ok {
		return nil, nil, ErrInvalidClaims(`claims set is missing the "vc" claim`, nil)
	}
	var vc vcClaimFields
	if err := json.Unmarshal(vcRaw, &vc); err != nil {
		return nil, nil, ErrInvalidClaims(`failed to decode the "vc" claim`, err)
	}

	c := &Credential{
		Context:          vc.Context,
		Type:             vc.Type,
		CredentialStatus: vc.CredentialStatus,
		CredentialSchema: vc.CredentialSchema,
		RefreshService:   vc.RefreshService,
		TermsOfUse:       vc.TermsOfUse,
		Evidence:         vc.Evidence,
		NonTransferable:  vc.NonTransferable,
		Proof:            vc.Proof,
	}

	if subjects, err := unmarshalSubjects(vc.CredentialSubject); err == nil {
		c.CredentialSubject = subjects
	} else if len(vc.CredentialSubject) > 0 {
		return nil, nil, err
	}

	if issRaw, ok := top["iss"]; ok {
		if err := json.Unmarshal(issRaw, &c.Issuer); err != nil {
			return nil, nil, ErrInvalidClaims(`"iss" must be a string`, err)
		}
	}
	if jtiRaw, ok := top["jti"]; ok {
		if err := json.Unmarshal(jtiRaw, &c.ID); err != nil {
			return nil, nil, ErrInvalidClaims(`"jti" must be a string`, err)
		}
	}
	if nbfRaw, ok := top["nbf"]; ok {
		var nbf int64
		if err := json.Unmarshal(nbfRaw, &nbf); err != nil {
			return nil, nil, ErrInvalidClaims(`"nbf" must be a number`, err)
		}
		c.IssuanceDate = time.Unix(nbf, 0).UTC()
	}
	if expRaw, ok := top["exp"]; ok {
		var exp int64
		if err := json.Unmarshal(expRaw, &exp); err != nil {
			return nil, nil, ErrInvalidClaims(`"exp" must be a number`, err)
		}
		t := time.Unix(exp, 0).UTC()
		c.ExpirationDate = &t
	}
	if subRaw, ok := top["sub"]; ok {
		var sub string
		if err := json.Unmarshal(subRaw, &sub); err != nil {
			return nil, nil, ErrInvalidClaims(`"sub" must be a string`, err)
		}
		if len(c.CredentialSubject) == 0 {
			c.CredentialSubject = []Subject{{ID: sub}}
		} else if c.CredentialSubject[0].ID == "" {
			c.CredentialSubject[0].ID = sub
		}
	}

	custom := map[string]json.RawMessage{}
	for k, v := range top {
		if !registeredClaimNames[k] {
			custom[k] = v
		}
	}
	if len(custom) == 0 {
		custom = nil
	}
	return c, custom, nil
}

func mustJSON(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
