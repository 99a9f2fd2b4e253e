// Package jws implements the compact JWS engine: building and verifying
// `BASE64URL(header).BASE64URL(payload).BASE64URL(signature)` envelopes
// against a pluggable SignatureVerifier selected by the protected
// header's "alg". Grounded on the header/claims shape of
// dc4eu-vc/pkg/jose/jwt.go, generalized from that package's
// sign-with-a-concrete-key flow to the storage.JwkStorage-indirected
// signing §4.5 of the specification requires, and on
// dc4eu-vc/pkg/tokenstatuslist/jwt.go's header-plus-claims split.
package jws

import "encoding/json"

// Header is the compact JWS protected header, per RFC 7515 §4.1.
type Header struct {
	Alg string `json:"alg"`
	Kid string `json:"kid,omitempty"`
	Typ string `json:"typ,omitempty"`
	Cty string `json:"cty,omitempty"`

	// B64 selects RFC 7797 unencoded-payload mode when false: the
	// signing input's payload segment is the raw payload bytes rather
	// than their base64url encoding. Absent (nil) behaves as true.
	B64 *bool `json:"b64,omitempty"`

	Crit  []string        `json:"crit,omitempty"`
	URL   string          `json:"url,omitempty"`
	Nonce string          `json:"nonce,omitempty"`
	Jwk   json.RawMessage `json:"jwk,omitempty"`

	// Custom carries any additional header parameters a caller supplied
	// via Options.CustomHeaderParameters, merged alongside the named
	// fields above on marshal.
	Custom map[string]json.RawMessage `json:"-"`
}

// b64OrDefault reports the effective "b64" value: true unless explicitly
// set to false.
func (h Header) b64OrDefault() bool {
	return h.B64 == nil || *h.B64
}

// MarshalJSON flattens Custom alongside the named fields.
func (h Header) MarshalJSON() ([]byte, error) {
	type alias Header
	base, err := json.Marshal(alias(h))
	if err != nil {
		return nil, err
	}
	if len(h.Custom) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range h.Custom {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON captures every member beyond the named fields into
// Custom.
func (h *Header) UnmarshalJSON(data []byte) error {
	type alias Header
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*h = Header(a)

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	known := map[string]bool{
		"alg": true, "kid": true, "typ": true, "cty": true, "b64": true,
		"crit": true, "url": true, "nonce": true, "jwk": true,
	}
	custom := map[string]json.RawMessage{}
	for k, v := range all {
		if !known[k] {
			custom[k] = v
		}
	}
	if len(custom) > 0 {
		h.Custom = custom
	}
	return nil
}
