package sdjwt

import "strings"

// SdJwt is a parsed compact SD-JWT: the signed JWT, the disclosures
// presented alongside it, and an optional key-binding JWT. Grounded on
// dc4eu-vc/pkg/sdjwt's PresentationFlat/splitSDJWT "~"-joined shape.
type SdJwt struct {
	Jwt           string
	Disclosures   []string
	KeyBindingJwt string
}

// Compact serializes as "<JWT>~<Disclosure>~...~<Disclosure>~<KB-JWT?>".
// A trailing "~" is mandatory when no KB-JWT is present.
func (s SdJwt) Compact() string {
	var b strings.Builder
	b.WriteString(s.Jwt)
	b.WriteByte('~')
	for _, d := range s.Disclosures {
		b.WriteString(d)
		b.WriteByte('~')
	}
	if s.KeyBindingJwt != "" {
		b.WriteString(s.KeyBindingJwt)
	}
	return b.String()
}

// ParseSdJwt splits a compact SD-JWT into its JWT, disclosures, and
// optional key-binding JWT. Grounded on dc4eu-vc/pkg/sdjwt's
// splitSDJWT.
func ParseSdJwt(compact string) (*SdJwt, error) {
	parts := strings.Split(compact, "~")
	if len(parts) < 2 {
		return nil, ErrInvalidCompact("compact SD-JWT must contain at least one '~' separator")
	}

	s := &SdJwt{Jwt: parts[0]}
	if len(parts) > 2 {
		s.Disclosures = parts[1 : len(parts)-1]
	}
	if last := parts[len(parts)-1]; last != "" {
		s.KeyBindingJwt = last
	}
	return s, nil
}
