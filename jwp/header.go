package jwp

import "github.com/iotaledger/iota-identity-go/storage"

// IssuerProtectedHeader is the JWP issued-form protected header (§4.8):
// the proof algorithm, the signing method, and the ordered claim paths
// payloads[i] corresponds to.
type IssuerProtectedHeader struct {
	Typ    string                 `json:"typ,omitempty"`
	Alg    storage.ProofAlgorithm `json:"alg"`
	Kid    string                 `json:"kid,omitempty"`
	Cid    string                 `json:"cid,omitempty"`
	Claims []string               `json:"claims"`
}

// PresentationProtectedHeader is the header a holder derives when
// producing a JwpPresented from a JwpIssued: it binds the presentation to
// a verifier-supplied nonce and audience, preventing replay across
// verifiers.
type PresentationProtectedHeader struct {
	Typ   string                 `json:"typ,omitempty"`
	Alg   storage.ProofAlgorithm `json:"alg"`
	Kid   string                 `json:"kid,omitempty"`
	Nonce string                 `json:"nonce,omitempty"`
	Aud   string                 `json:"aud,omitempty"`
}
