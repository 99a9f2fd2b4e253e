package sdjwt

import (
	"crypto/rand"
	"encoding/base64"
)

// SdAlg is the digest algorithm this package always uses, recorded in
// the signed payload's "_sd_alg" claim.
const SdAlg = "sha-256"

const decoyPrefix = "..."

// SdObjectEncoder conceals properties of a JSON object behind digests
// per §4.7: concealed object properties collapse into a sibling "_sd"
// array, concealed array elements become {"...": digest} in place, and
// every digest's backing Disclosure is collected for compact
// serialization. Grounded on dc4eu-vc/pkg/sdjwt's makeSD/addToArray
// mechanics, generalized from its Instruction tree to JSON Pointer
// paths against an arbitrary decoded object.
type SdObjectEncoder struct {
	doc         map[string]interface{}
	disclosures []*Disclosure
}

// NewSdObjectEncoder wraps obj for selective-disclosure editing. obj is
// mutated in place as Conceal/AddDecoys are called.
func NewSdObjectEncoder(obj map[string]interface{}) *SdObjectEncoder {
	return &SdObjectEncoder{doc: obj}
}

// Conceal replaces the value at pointer with a digest, recording the
// Disclosure needed to reveal it again. pointer must name an object
// property or array element, not the document root.
func (e *SdObjectEncoder) Conceal(pointer string) error {
	parent, token, err := resolveParent(e.doc, pointer)
	if err != nil {
		return err
	}

	switch container := parent.(type) {
	case map[string]interface{}:
		value, ok := container[token]
		if !ok {
			return ErrInvalidPointer(pointer)
		}
		d, err := NewObjectDisclosure(token, value, "")
		if err != nil {
			return err
		}
		delete(container, token)
		appendSD(container, d.Digest())
		e.disclosures = append(e.disclosures, d)
		return nil

	case []interface{}:
		idx, err := arrayIndex(container, token, pointer)
		if err != nil {
			return err
		}
		d, err := NewArrayDisclosure(container[idx], "")
		if err != nil {
			return err
		}
		container[idx] = map[string]interface{}{decoyPrefix: d.Digest()}
		e.disclosures = append(e.disclosures, d)
		return nil

	default:
		return ErrInvalidPointer(pointer)
	}
}

// AddDecoys injects n digests with no backing disclosure into the
// container at pointer: for an object, n extra entries in its "_sd"
// array; for an array, n extra {"...": digest} elements. pointer == ""
// targets the document root. Decoys obscure how many of the
// container's real entries are concealed.
func (e *SdObjectEncoder) AddDecoys(pointer string, n int) error {
	var target interface{} = e.doc
	if pointer != "" {
		v, err := getAtPointer(e.doc, pointer)
		if err != nil {
			return err
		}
		target = v
	}

	switch container := target.(type) {
	case map[string]interface{}:
		for i := 0; i < n; i++ {
			digest, err := decoyDigest()
			if err != nil {
				return err
			}
			appendSD(container, digest)
		}
		return nil

	case []interface{}:
		for i := 0; i < n; i++ {
			digest, err := decoyDigest()
			if err != nil {
				return err
			}
			container = append(container, map[string]interface{}{decoyPrefix: digest})
		}
		if pointer == "" {
			return ErrInvalidPointer(pointer)
		}
		return setAtPointer(e.doc, pointer, container)

	default:
		return ErrInvalidPointer(pointer)
	}
}

// Encode finalizes the object, stamping "_sd_alg" at the top level, and
// returns the mutated document alongside every Disclosure collected by
// Conceal, in the order they were concealed.
func (e *SdObjectEncoder) Encode() (map[string]interface{}, []*Disclosure, error) {
	e.doc["_sd_alg"] = SdAlg
	return e.doc, e.disclosures, nil
}

func appendSD(container map[string]interface{}, digest string) {
	existing, _ := container["_sd"].([]interface{})
	container["_sd"] = append(existing, digest)
}

func decoyDigest() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", ErrInvalidDisclosure("failed to generate decoy digest", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func arrayIndex(container []interface{}, token string, pointer string) (int, error) {
	idx, err := parseIndex(token)
	if err != nil || idx < 0 || idx >= len(container) {
		return 0, ErrInvalidPointer(pointer)
	}
	return idx, nil
}
