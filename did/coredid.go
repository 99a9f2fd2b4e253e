// Package did implements the method-agnostic CoreDID/DIDUrl identifiers,
// plus the IOTA method-specific IotaDID. Grounded on the parsing and
// immutable-value-object style of bryk-io-pkg/did/identifier.go, adapted
// to a narrower did:<method>:<method-specific-id> grammar.
package did

import (
	"fmt"
	"regexp"
	"strings"
)

const scheme = "did"

// methodNameRE matches the method-name segment: [a-z0-9]+.
var methodNameRE = regexp.MustCompile(`^[a-z0-9]+$`)

// methodIDSegmentRE matches one ':'-separated segment of the
// method-specific-id: ([a-zA-Z0-9._-]|%[0-9a-fA-F]{2})+.
var methodIDSegmentRE = regexp.MustCompile(`^([a-zA-Z0-9._-]|%[0-9a-fA-F]{2})+$`)

// CoreDID is an immutable, parsed did:<method>:<method-specific-id>
// identifier. Construct with Parse or New; there is no exported mutator.
type CoreDID struct {
	method   string
	methodID string
}

// New builds a CoreDID from its components, validating both against the
// did: grammar.
func New(method, methodID string) (CoreDID, error) {
	if !methodNameRE.MatchString(method) {
		return CoreDID{}, ErrInvalidMethod(fmt.Sprintf("method name %q must match [a-z0-9]+", method))
	}
	if err := validateMethodID(methodID); err != nil {
		return CoreDID{}, err
	}
	return CoreDID{method: method, methodID: methodID}, nil
}

func validateMethodID(methodID string) error {
	if methodID == "" {
		return ErrInvalidDID("method-specific-id must not be empty", nil)
	}
	for _, segment := range strings.Split(methodID, ":") {
		if !methodIDSegmentRE.MatchString(segment) {
			return ErrInvalidDID(fmt.Sprintf("method-specific-id segment %q is not a valid idstring", segment), nil)
		}
	}
	return nil
}

// Parse accepts "did:<method>:<method-specific-id>" with no path, query, or
// fragment (use DIDUrl.Parse for those). Parse rejects anything else with
// InvalidDID.
func Parse(input string) (CoreDID, error) {
	if !strings.HasPrefix(input, scheme+":") {
		return CoreDID{}, ErrInvalidDID(fmt.Sprintf("missing %q prefix", scheme+":"), nil)
	}
	rest := input[len(scheme)+1:]

	idx := strings.Index(rest, ":")
	if idx < 0 {
		return CoreDID{}, ErrInvalidDID("missing method-specific-id", nil)
	}
	method := rest[:idx]
	methodID := rest[idx+1:]

	return New(method, methodID)
}

// Method returns the method-name segment (lower-case, per grammar).
func (d CoreDID) Method() string { return d.method }

// MethodID returns the method-specific-id segment, unparsed.
func (d CoreDID) MethodID() string { return d.methodID }

// String renders the canonical did:<method>:<method-specific-id> form.
func (d CoreDID) String() string {
	if d.method == "" && d.methodID == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s:%s", scheme, d.method, d.methodID)
}

// IsZero reports whether d was never successfully constructed.
func (d CoreDID) IsZero() bool {
	return d.method == "" && d.methodID == ""
}

// Equal compares two CoreDIDs by value.
func (d CoreDID) Equal(other CoreDID) bool {
	return d.method == other.method && d.methodID == other.methodID
}

// MarshalText implements encoding.TextMarshaler so a CoreDID serializes as
// its canonical string inside JSON documents.
func (d CoreDID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CoreDID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
