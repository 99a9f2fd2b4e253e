// Package credential implements the W3C Verifiable Credential and
// Verifiable Presentation data models (§3, §4.6) and their projection
// into/out of JWT claims. Grounded on the VerifiableCredential/
// VerifiablePresentation field layout of
// _salvage/vc20_credential/credential.go, adapted from VC Data Model 2.0
// (validFrom/validUntil, single @context) back to the 1.1 shape §3's
// table specifies (issuanceDate/expirationDate, fixed first @context/
// type), and struct-tag validated the way dc4eu-vc validates its own
// request bodies (_salvage/helpers/validate.go).
package credential

import (
	"encoding/json"
	"time"
)

const (
	// ContextV1 is the mandatory first @context entry.
	ContextV1 = "https://www.w3.org/2018/credentials/v1"

	// TypeVerifiableCredential is the mandatory first type entry of a
	// Credential.
	TypeVerifiableCredential = "VerifiableCredential"

	// TypeVerifiablePresentation is the mandatory first type entry of a
	// Presentation.
	TypeVerifiablePresentation = "VerifiablePresentation"
)

// Subject is one entry of credentialSubject: an optional subject id plus
// arbitrary claims about it.
type Subject struct {
	ID         string
	Properties map[string]json.RawMessage
}

// MarshalJSON flattens ID alongside Properties.
func (s Subject) MarshalJSON() ([]byte, error) {
	m := map[string]json.RawMessage{}
	for k, v := range s.Properties {
		m[k] = v
	}
	if s.ID != "" {
		idJSON, err := json.Marshal(s.ID)
		if err != nil {
			return nil, err
		}
		m["id"] = idJSON
	}
	return json.Marshal(m)
}

// UnmarshalJSON captures "id" separately and everything else as
// Properties.
func (s *Subject) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ErrMalformedCredential("credentialSubject entry must be a JSON object", err)
	}
	if idRaw, ok := m["id"]; ok {
		var id string
		if err := json.Unmarshal(idRaw, &id); err != nil {
			return ErrMalformedCredential("credentialSubject.id must be a string", err)
		}
		s.ID = id
		delete(m, "id")
	}
	s.Properties = m
	return nil
}

// Status is a credentialStatus entry: a reference to a revocation
// mechanism plus whatever type-specific properties it carries
// (revocationBitmapIndex, statusListIndex, statusListCredential, ...).
type Status struct {
	ID         string
	Type       string
	Properties map[string]json.RawMessage
}

func (s Status) MarshalJSON() ([]byte, error) {
	m := map[string]json.RawMessage{}
	for k, v := range s.Properties {
		m[k] = v
	}
	idJSON, err := json.Marshal(s.ID)
	if err != nil {
		return nil, err
	}
	typeJSON, err := json.Marshal(s.Type)
	if err != nil {
		return nil, err
	}
	m["id"] = idJSON
	m["type"] = typeJSON
	return json.Marshal(m)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ErrMalformedCredential("credentialStatus entry must be a JSON object", err)
	}
	if idRaw, ok := m["id"]; ok {
		json.Unmarshal(idRaw, &s.ID)
		delete(m, "id")
	}
	if typeRaw, ok := m["type"]; ok {
		json.Unmarshal(typeRaw, &s.Type)
		delete(m, "type")
	}
	s.Properties = m
	return nil
}

// Schema is a credentialSchema entry.
type Schema struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// RefreshService is a refreshService entry.
type RefreshService struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// TermsOfUse is a termsOfUse entry.
type TermsOfUse struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type"`
	Properties map[string]json.RawMessage `json:"-"`
}

// Evidence is an evidence entry.
type Evidence struct {
	ID         string   `json:"id,omitempty"`
	Type       []string `json:"type"`
	Properties map[string]json.RawMessage `json:"-"`
}

// Proof is a Data Integrity proof, as distinct from the JWS envelope a
// Credential may be signed into (§9 design notes: "Proof vs. JWS").
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created,omitempty"`
	VerificationMethod string `json:"verificationMethod,omitempty"`
	ProofPurpose       string `json:"proofPurpose,omitempty"`
	ProofValue         string `json:"proofValue,omitempty"`
}

// Credential is the W3C Verifiable Credential data model (§3). Struct
// tags are consulted by go-playground/validator/v10 (see validate.go),
// not by encoding/json -- the wire shape is governed entirely by
// MarshalJSON/UnmarshalJSON below.
type Credential struct {
	Context           []string   `json:"@context" validate:"required,min=1"`
	ID                string     `json:"id"`
	Type              []string   `json:"type" validate:"required,min=1"`
	Issuer            string     `json:"issuer" validate:"required"`
	IssuanceDate      time.Time  `json:"issuanceDate" validate:"required"`
	ExpirationDate    *time.Time `json:"expirationDate"`
	CredentialSubject []Subject  `json:"credentialSubject" validate:"required,min=1"`
	CredentialStatus  []Status   `json:"credentialStatus"`
	CredentialSchema  []Schema   `json:"credentialSchema"`
	RefreshService    []RefreshService `json:"refreshService"`
	TermsOfUse        []TermsOfUse     `json:"termsOfUse"`
	Evidence          []Evidence       `json:"evidence"`
	NonTransferable   *bool            `json:"nonTransferable"`
	Proof             *Proof           `json:"proof"`
	Custom            map[string]json.RawMessage `json:"-"`
}

// New builds a Credential satisfying §3's first-context/first-type
// invariants, issued by issuer to subjects at issuanceDate.
func New(issuer string, subjects []Subject, issuanceDate time.Time) (*Credential, error) {
	if issuer == "" {
		return nil, ErrMalformedCredential("issuer must not be empty", nil)
	}
	if len(subjects) == 0 {
		return nil, ErrMalformedCredential("credential must have at least one credentialSubject", nil)
	}
	return &Credential{
		Context:           []string{ContextV1},
		Type:              []string{TypeVerifiableCredential},
		Issuer:            issuer,
		IssuanceDate:      issuanceDate,
		CredentialSubject: subjects,
	}, nil
}

// Validate checks the §3 structural invariants: non-empty context/type
// with the mandated first entries, an issuer, and at least one subject.
func (c *Credential) Validate() error {
	if len(c.Context) == 0 || c.Context[0] != ContextV1 {
		return ErrMalformedCredential("first @context must be "+ContextV1, nil)
	}
	if len(c.Type) == 0 || c.Type[0] != TypeVerifiableCredential {
		return ErrMalformedCredential("first type must be "+TypeVerifiableCredential, nil)
	}
	if c.Issuer == "" {
		return ErrMalformedCredential("issuer must not be empty", nil)
	}
	if len(c.CredentialSubject) == 0 {
		return ErrMalformedCredential("credential must have at least one credentialSubject", nil)
	}
	if c.IssuanceDate.IsZero() {
		return ErrMissingIssuanceDate("issuanceDate must be set")
	}
	return nil
}

// IsNonTransferable reports the nonTransferable flag, defaulting to
// false when unset.
func (c *Credential) IsNonTransferable() bool {
	return c.NonTransferable != nil && *c.NonTransferable
}

type credentialWire struct {
	Context           []string                   `json:"@context"`
	ID                string                     `json:"id,omitempty"`
	Type              []string                   `json:"type"`
	Issuer            string                     `json:"issuer"`
	IssuanceDate      time.Time                  `json:"issuanceDate"`
	ExpirationDate    *time.Time                 `json:"expirationDate,omitempty"`
	CredentialSubject json.RawMessage            `json:"credentialSubject"`
	CredentialStatus  []Status                   `json:"credentialStatus,omitempty"`
	CredentialSchema  []Schema                   `json:"credentialSchema,omitempty"`
	RefreshService     []RefreshService          `json:"refreshService,omitempty"`
	TermsOfUse        []TermsOfUse               `json:"termsOfUse,omitempty"`
	Evidence          []Evidence                 `json:"evidence,omitempty"`
	NonTransferable   *bool                      `json:"nonTransferable,omitempty"`
	Proof             *Proof                     `json:"proof,omitempty"`
}

// MarshalJSON renders credentialSubject as a bare object when there is
// exactly one subject, or as an array otherwise, matching did-core's
// single-or-many convention; Custom properties are merged in alongside
// the named fields.
func (c Credential) MarshalJSON() ([]byte, error) {
	subjectJSON, err := marshalSubjects(c.CredentialSubject)
	if err != nil {
		return nil, err
	}

	w := credentialWire{
		Context:           c.Context,
		ID:                c.ID,
		Type:              c.Type,
		Issuer:            c.Issuer,
		IssuanceDate:      c.IssuanceDate,
		ExpirationDate:    c.ExpirationDate,
		CredentialSubject: subjectJSON,
		CredentialStatus:  c.CredentialStatus,
		CredentialSchema:  c.CredentialSchema,
		RefreshService:    c.RefreshService,
		TermsOfUse:        c.TermsOfUse,
		Evidence:          c.Evidence,
		NonTransferable:   c.NonTransferable,
		Proof:             c.Proof,
	}
	base, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	if len(c.Custom) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Custom {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func marshalSubjects(subjects []Subject) (json.RawMessage, error) {
	if len(subjects) == 1 {
		return json.Marshal(subjects[0])
	}
	return json.Marshal(subjects)
}

// UnmarshalJSON accepts credentialSubject as either a bare object or an
// array, and captures every member outside the named fields as Custom.
func (c *Credential) UnmarshalJSON(data []byte) error {
	var w credentialWire
	if err := json.Unmarshal(data, &w); err != nil {
		return ErrMalformedCredential("failed to decode credential", err)
	}

	subjects, err := unmarshalSubjects(w.CredentialSubject)
	if err != nil {
		return err
	}

	*c = Credential{
		Context:           w.Context,
		ID:                w.ID,
		Type:              w.Type,
		Issuer:            w.Issuer,
		IssuanceDate:      w.IssuanceDate,
		ExpirationDate:    w.ExpirationDate,
		CredentialSubject: subjects,
		CredentialStatus:  w.CredentialStatus,
		CredentialSchema:  w.CredentialSchema,
		RefreshService:    w.RefreshService,
		TermsOfUse:        w.TermsOfUse,
		Evidence:          w.Evidence,
		NonTransferable:   w.NonTransferable,
		Proof:             w.Proof,
	}

	known := map[string]bool{
		"@context": true, "id": true, "type": true, "issuer": true,
		"issuanceDate": true, "expirationDate": true, "credentialSubject": true,
		"credentialStatus": true, "credentialSchema": true, "refreshService": true,
		"termsOfUse": true, "evidence": true, "nonTransferable": true, "proof": true,
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return ErrMalformedCredential("failed to decode credential", err)
	}
	custom := map[string]json.RawMessage{}
	for k, v := range all {
		if !known[k] {
			custom[k] = v
		}
	}
	if len(custom) > 0 {
		c.Custom = custom
	}
	return nil
}

func unmarshalSubjects(raw json.RawMessage) ([]Subject, error) {
	if len(raw) == 0 {
		return nil, ErrMalformedCredential("credentialSubject is required", nil)
	}
	var arr []Subject
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}
	var single Subject
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, ErrMalformedCredential("credentialSubject must be an object or array of objects", err)
	}
	return []Subject{single}, nil
}

// FirstSubjectID returns the id of the first credentialSubject entry, or
// "" if absent.
func (c *Credential) FirstSubjectID() string {
	if len(c.CredentialSubject) == 0 {
		return ""
	}
	return c.CredentialSubject[0].ID
}
