package credential

import "encoding/json"

// presentationRegisteredClaimNames mirrors registeredClaimNames for
// Presentation's JWT projection: "iss" carries the holder, "vp" carries
// everything else, following the same iss/vc split credential.go's
// claims.go uses.
var presentationRegisteredClaimNames = map[string]bool{
	"iss": true, "jti": true, "vp": true,
}

type vpClaimFields struct {
	Context              []string          `json:"@context"`
	Type                 []string          `json:"type"`
	VerifiableCredential []json.RawMessage `json:"verifiableCredential,omitempty"`
	RefreshService       []RefreshService  `json:"refreshService,omitempty"`
	TermsOfUse           []TermsOfUse      `json:"termsOfUse,omitempty"`
	Proof                *Proof            `json:"proof,omitempty"`
}

// ToJwtClaims projects p onto a JWT claims set the same way
// Credential.ToJwtClaims does: "iss" carries the holder, "jti" carries
// the presentation id, and "vp" nests everything else.
func (p *Presentation) ToJwtClaims() (json.RawMessage, error) {
	vp := vpClaimFields{
		Context:              p.Context,
		Type:                 p.Type,
		VerifiableCredential: p.VerifiableCredential,
		RefreshService:       p.RefreshService,
		TermsOfUse:           p.TermsOfUse,
		Proof:                p.Proof,
	}
	vpJSON, err := json.Marshal(vp)
	if err != nil {
		return nil, ErrInvalidClaims("failed to marshal vp claim", err)
	}

	claims := map[string]json.RawMessage{}
	if p.Holder != "" {
		claims["iss"] = mustJSON(p.Holder)
	}
	if p.ID != "" {
		claims["jti"] = mustJSON(p.ID)
	}
	claims["vp"] = vpJSON
	for k, v := range p.Custom {
		claims[k] = v
	}
	return json.Marshal(claims)
}

// FromJwtPresentationClaims reverses ToJwtClaims.
func FromJwtPresentationClaims(raw json.RawMessage) (*Presentation, map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil, ErrInvalidClaims("claims set must be a JSON object", err)
	}

	vpRaw, ok := top["vp"]
	if !ok {
		return nil, nil, ErrInvalidClaims(`claims set is missing the "vp" claim`, nil)
	}
	var vp vpClaimFields
	if err := json.Unmarshal(vpRaw, &vp); err != nil {
		return nil, nil, ErrInvalidClaims(`failed to decode the "vp" claim`, err)
	}

	p := &Presentation{
		Context:              vp.Context,
		Type:                 vp.Type,
		VerifiableCredential: vp.VerifiableCredential,
		RefreshService:       vp.RefreshService,
		TermsOfUse:           vp.TermsOfUse,
		Proof:                vp.Proof,
	}

	if issRaw, ok := top["iss"]; ok {
		if err := json.Unmarshal(issRaw, &p.Holder); err != nil {
			return nil, nil, ErrInvalidClaims(`"iss" must be a string`, err)
		}
	}
	if jtiRaw, ok := top["jti"]; ok {
		if err := json.Unmarshal(jtiRaw, &p.ID); err != nil {
			return nil, nil, ErrInvalidClaims(`"jti" must be a string`, err)
		}
	}

	custom := map[string]json.RawMessage{}
	for k, v := range top {
		if !presentationRegisteredClaimNames[k] {
			custom[k] = v
		}
	}
	if len(custom) == 0 {
		custom = nil
	}
	return p, custom, nil
}
