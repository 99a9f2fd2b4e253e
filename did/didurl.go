package did

import (
	"fmt"
	"regexp"
	"strings"
)

// pathSegmentRE is deliberately permissive: the DID path grammar per
// did-core is "*( \"/\" segment )" with segment = pchar, which in practice
// allows most printable characters once percent-escaped. We only reject
// whitespace, which can never be part of a valid percent-encoded path.
var pathSegmentRE = regexp.MustCompile(`^[^\s]*$`)

// DIDUrl is a CoreDID plus the optional path, query, and fragment
// components.
type DIDUrl struct {
	did      CoreDID
	path     string
	query    string
	fragment string
}

// FromDID wraps a bare CoreDID as a DIDUrl with no path/query/fragment.
func FromDID(d CoreDID) DIDUrl {
	return DIDUrl{did: d}
}

// Parse accepts "did:<method>:<method-specific-id>[/path][?query][#fragment]".
func ParseDIDUrl(input string) (DIDUrl, error) {
	fragment := ""
	rest := input
	if i := strings.Index(rest, "#"); i >= 0 {
		fragment = rest[i+1:]
		rest = rest[:i]
	}

	query := ""
	if i := strings.Index(rest, "?"); i >= 0 {
		query = rest[i+1:]
		rest = rest[:i]
	}

	path := ""
	// The path begins at the first '/' that occurs after the
	// "did:<method>:" prefix, i.e. after the second ':' in the
	// did-scheme-specific part.
	if i := didBodyEnd(rest); i >= 0 {
		path = rest[i:]
		rest = rest[:i]
	}

	coreDID, err := Parse(rest)
	if err != nil {
		return DIDUrl{}, err
	}
	if path != "" && !pathSegmentRE.MatchString(path) {
		return DIDUrl{}, ErrInvalidDIDUrl(fmt.Sprintf("path %q contains whitespace", path), nil)
	}

	return DIDUrl{did: coreDID, path: path, query: query, fragment: fragment}, nil
}

// didBodyEnd finds the index of the first '/' that begins a DID URL path,
// i.e. the first '/' after "did:<method>:". Returns -1 if there is none.
func didBodyEnd(s string) int {
	if !strings.HasPrefix(s, scheme+":") {
		return -1
	}
	rest := s[len(scheme)+1:]
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return -1
	}
	bodyStart := len(scheme) + 1 + colon + 1
	if slash := strings.Index(s[bodyStart:], "/"); slash >= 0 {
		return bodyStart + slash
	}
	return -1
}

// DID returns the identifier portion, stripped of path/query/fragment.
func (u DIDUrl) DID() CoreDID { return u.did }

// Path returns the path component, without its leading '/'.
func (u DIDUrl) Path() string { return u.path }

// Query returns the query component, without its leading '?'.
func (u DIDUrl) Query() string { return u.query }

// Fragment returns the fragment component, without its leading '#'.
func (u DIDUrl) Fragment() string { return u.fragment }

// WithFragment returns a copy of u with only its fragment replaced.
func (u DIDUrl) WithFragment(fragment string) DIDUrl {
	u.fragment = fragment
	return u
}

// Join interprets the leading character of segment: a leading '/'
// overwrites the path and clears query+fragment; a leading
// '?' overwrites the query and clears the fragment; a leading '#' overwrites
// only the fragment. Any other leading character is treated as an implicit
// '/'.
func (u DIDUrl) Join(segment string) (DIDUrl, error) {
	if segment == "" {
		return u, nil
	}

	switch segment[0] {
	case '/':
		joined := u.path + segment
		next, err := ParseDIDUrl(u.did.String() + joined)
		if err != nil {
			return DIDUrl{}, err
		}
		return DIDUrl{did: u.did, path: next.path}, nil
	case '?':
		return DIDUrl{did: u.did, path: u.path, query: segment[1:]}, nil
	case '#':
		return DIDUrl{did: u.did, path: u.path, query: u.query, fragment: segment[1:]}, nil
	default:
		return u.Join("/" + segment)
	}
}

// String renders the canonical DID URL form.
func (u DIDUrl) String() string {
	var b strings.Builder
	b.WriteString(u.did.String())
	if u.path != "" {
		if !strings.HasPrefix(u.path, "/") {
			b.WriteByte('/')
		}
		b.WriteString(u.path)
	}
	if u.query != "" {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// Equal compares two DIDUrls by value.
func (u DIDUrl) Equal(other DIDUrl) bool {
	return u.did.Equal(other.did) && u.path == other.path && u.query == other.query && u.fragment == other.fragment
}

// MarshalText implements encoding.TextMarshaler.
func (u DIDUrl) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *DIDUrl) UnmarshalText(text []byte) error {
	parsed, err := ParseDIDUrl(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
