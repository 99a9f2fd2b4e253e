package jwp

import "encoding/json"

// PayloadKind tags how a JwpIssued/JwpPresented payload participates in
// a presentation.
type PayloadKind string

const (
	// Disclosed payloads travel in the clear.
	Disclosed PayloadKind = "Disclosed"
	// Undisclosed payloads are concealed: a presentation replaces their
	// value with an opaque commitment (see bbscrypto.MessageTerm).
	Undisclosed PayloadKind = "Undisclosed"
	// ProofMethods payloads carry proof-algorithm metadata (e.g.
	// multi-message proof auxiliary data) rather than a credential
	// claim; they are always disclosed and never subject to
	// concealInSubject/concealInEvidence.
	ProofMethods PayloadKind = "ProofMethods"
)

// Payload is one issued message: its concrete claim value and the
// stable index it occupies in the signed message vector.
type Payload struct {
	Kind  PayloadKind     `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// PresentedPayload is one payload as it travels in a JwpPresented:
// Disclosed/ProofMethods payloads carry Value, Undisclosed payloads
// carry Commitment instead (base64url-encoded bbscrypto.EncodeG1Point
// output).
type PresentedPayload struct {
	Kind       PayloadKind     `json:"kind"`
	Value      json.RawMessage `json:"value,omitempty"`
	Commitment string          `json:"commitment,omitempty"`
}
