package sdjwt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// Disclosure is a single concealed claim: an object-property tuple
// [salt, name, value] or an array-element tuple [salt, value], grounded
// on dc4eu-vc/pkg/sdjwt's Disclosure (salt/name/value/disclosureHash
// fields), generalized here to hold the JSON Pointer of the concealed
// location rather than a fixed Instruction tree position.
type Disclosure struct {
	Salt string
	// Name is nil for array-element disclosures.
	Name  *string
	Value interface{}

	encoded string
}

// newSalt generates a 128-bit random salt per §4.7, base64url encoded.
func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", ErrInvalidDisclosure("failed to generate salt", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewObjectDisclosure builds a Disclosure for a named object property.
// salt is generated when empty.
func NewObjectDisclosure(name string, value interface{}, salt string) (*Disclosure, error) {
	if salt == "" {
		s, err := newSalt()
		if err != nil {
			return nil, err
		}
		salt = s
	}
	d := &Disclosure{Salt: salt, Name: &name, Value: value}
	if err := d.encode(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewArrayDisclosure builds a Disclosure for an array element.
func NewArrayDisclosure(value interface{}, salt string) (*Disclosure, error) {
	if salt == "" {
		s, err := newSalt()
		if err != nil {
			return nil, err
		}
		salt = s
	}
	d := &Disclosure{Salt: salt, Value: value}
	if err := d.encode(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Disclosure) encode() error {
	var tuple []interface{}
	if d.Name != nil {
		tuple = []interface{}{d.Salt, *d.Name, d.Value}
	} else {
		tuple = []interface{}{d.Salt, d.Value}
	}
	raw, err := json.Marshal(tuple)
	if err != nil {
		return ErrInvalidDisclosure("failed to encode disclosure tuple", err)
	}
	d.encoded = base64.RawURLEncoding.EncodeToString(raw)
	return nil
}

// Encoded returns the disclosure's base64url(JSON-tuple) form, the
// string that appears between "~" separators in a compact SD-JWT.
func (d *Disclosure) Encoded() string {
	return d.encoded
}

// Digest returns base64url(SHA-256(Encoded())), the value that
// replaces this disclosure in the signed payload's "_sd" array or
// "{"...": digest}" array element.
func (d *Disclosure) Digest() string {
	sum := sha256.Sum256([]byte(d.encoded))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// ParseDisclosure decodes a compact disclosure string back into a
// Disclosure, grounded on dc4eu-vc/pkg/sdjwt's Disclosure.parse.
func ParseDisclosure(encoded string) (*Disclosure, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidDisclosure("failed to base64url-decode disclosure", err)
	}
	var tuple []interface{}
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return nil, ErrInvalidDisclosure("disclosure is not a JSON array", err)
	}

	d := &Disclosure{encoded: encoded}
	switch len(tuple) {
	case 2:
		salt, ok := tuple[0].(string)
		if !ok {
			return nil, ErrInvalidDisclosure("disclosure salt must be a string", nil)
		}
		d.Salt = salt
		d.Value = tuple[1]
	case 3:
		salt, ok := tuple[0].(string)
		if !ok {
			return nil, ErrInvalidDisclosure("disclosure salt must be a string", nil)
		}
		name, ok := tuple[1].(string)
		if !ok {
			return nil, ErrInvalidDisclosure("disclosure name must be a string", nil)
		}
		d.Salt = salt
		d.Name = &name
		d.Value = tuple[2]
	default:
		return nil, ErrInvalidDisclosure("disclosure tuple must have 2 or 3 elements", nil)
	}
	return d, nil
}
