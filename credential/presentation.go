package credential

import "encoding/json"

// Presentation is the W3C Verifiable Presentation data model (§3): a
// holder-assembled bundle of one or more credentials, optionally
// selectively disclosed by the sdjwt/jwp packages before being wrapped
// here.
type Presentation struct {
	Context              []string          `json:"@context" validate:"required,min=1"`
	ID                   string            `json:"id"`
	Type                 []string          `json:"type" validate:"required,min=1"`
	VerifiableCredential []json.RawMessage `json:"verifiableCredential"`
	Holder               string            `json:"holder" validate:"required"`
	RefreshService       []RefreshService  `json:"refreshService"`
	TermsOfUse           []TermsOfUse      `json:"termsOfUse"`
	Proof                *Proof            `json:"proof"`
	Custom               map[string]json.RawMessage `json:"-"`
}

// NewPresentation builds a Presentation satisfying the first-context/
// first-type invariants, held by holder and wrapping credentials. Each
// credential is carried as its already-serialized form (a compact JWS,
// SD-JWT, or JPT string, or a raw embedded VC JSON object) since a
// presentation need not re-encode credentials it is merely relaying.
func NewPresentation(holder string, credentials []json.RawMessage) (*Presentation, error) {
	if holder == "" {
		return nil, ErrMalformedPresentation("holder must not be empty", nil)
	}
	return &Presentation{
		Context:              []string{ContextV1},
		Type:                 []string{TypeVerifiablePresentation},
		VerifiableCredential: credentials,
		Holder:               holder,
	}, nil
}

// Validate checks the §3 structural invariants for a Presentation.
func (p *Presentation) Validate() error {
	if len(p.Context) == 0 || p.Context[0] != ContextV1 {
		return ErrMalformedPresentation("first @context must be "+ContextV1, nil)
	}
	if len(p.Type) == 0 || p.Type[0] != TypeVerifiablePresentation {
		return ErrMalformedPresentation("first type must be "+TypeVerifiablePresentation, nil)
	}
	if p.Holder == "" {
		return ErrMalformedPresentation("holder must not be empty", nil)
	}
	return nil
}

type presentationWire struct {
	Context              []string          `json:"@context"`
	ID                   string            `json:"id,omitempty"`
	Type                 []string          `json:"type"`
	VerifiableCredential []json.RawMessage `json:"verifiableCredential,omitempty"`
	Holder               string            `json:"holder,omitempty"`
	RefreshService       []RefreshService  `json:"refreshService,omitempty"`
	TermsOfUse           []TermsOfUse      `json:"termsOfUse,omitempty"`
	Proof                *Proof            `json:"proof,omitempty"`
}

// MarshalJSON merges Custom properties alongside the named fields.
func (p Presentation) MarshalJSON() ([]byte, error) {
	w := presentationWire{
		Context:              p.Context,
		ID:                   p.ID,
		Type:                 p.Type,
		VerifiableCredential: p.VerifiableCredential,
		Holder:               p.Holder,
		RefreshService:       p.RefreshService,
		TermsOfUse:           p.TermsOfUse,
		Proof:                p.Proof,
	}
	base, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	if len(p.Custom) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Custom {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON captures every member outside the named fields as
// Custom.
func (p *Presentation) UnmarshalJSON(data []byte) error {
	var w presentationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return ErrMalformedPresentation("failed to decode presentation", err)
	}
	*p = Presentation{
		Context:              w.Context,
		ID:                   w.ID,
		Type:                 w.Type,
		VerifiableCredential: w.VerifiableCredential,
		Holder:               w.Holder,
		RefreshService:       w.RefreshService,
		TermsOfUse:           w.TermsOfUse,
		Proof:                w.Proof,
	}

	known := map[string]bool{
		"@context": true, "id": true, "type": true, "verifiableCredential": true,
		"holder": true, "refreshService": true, "termsOfUse": true, "proof": true,
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return ErrMalformedPresentation("failed to decode presentation", err)
	}
	custom := map[string]json.RawMessage{}
	for k, v := range all {
		if !known[k] {
			custom[k] = v
		}
	}
	if len(custom) > 0 {
		p.Custom = custom
	}
	return nil
}
