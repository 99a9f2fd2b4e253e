package sdjwt

import (
	"strconv"
	"strings"
)

// pointerTokens splits a RFC 6901 JSON Pointer into unescaped tokens,
// grounded on dc4eu-vc/pkg/vc20/crypto/ecdsa-sd/selection.go's
// ApplyJSONPointer token handling ("~1" -> "/", "~0" -> "~").
func pointerTokens(pointer string) ([]string, error) {
	if pointer == "" || pointer == "/" {
		return nil, ErrInvalidPointer(pointer)
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, ErrInvalidPointer(pointer)
	}
	raw := strings.Split(pointer[1:], "/")
	tokens := make([]string, len(raw))
	for i, t := range raw {
		t = strings.ReplaceAll(t, "~1", "/")
		t = strings.ReplaceAll(t, "~0", "~")
		tokens[i] = t
	}
	return tokens, nil
}

// resolveParent walks doc to the container holding the pointer's final
// token, returning that container, the final token, and whether the
// container is a slice (in which case the final token is the element
// index as a string).
func resolveParent(doc interface{}, pointer string) (interface{}, string, error) {
	tokens, err := pointerTokens(pointer)
	if err != nil {
		return nil, "", err
	}

	current := doc
	for _, token := range tokens[:len(tokens)-1] {
		switch v := current.(type) {
		case map[string]interface{}:
			next, ok := v[token]
			if !ok {
				return nil, "", ErrInvalidPointer(pointer)
			}
			current = next
		case []interface{}:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, "", ErrInvalidPointer(pointer)
			}
			current = v[idx]
		default:
			return nil, "", ErrInvalidPointer(pointer)
		}
	}
	return current, tokens[len(tokens)-1], nil
}

// parseIndex parses a JSON Pointer array-index token.
func parseIndex(token string) (int, error) {
	return strconv.Atoi(token)
}

// setAtPointer replaces the value a pointer resolves to.
func setAtPointer(doc interface{}, pointer string, value interface{}) error {
	parent, token, err := resolveParent(doc, pointer)
	if err != nil {
		return err
	}
	switch v := parent.(type) {
	case map[string]interface{}:
		v[token] = value
		return nil
	case []interface{}:
		idx, err := parseIndex(token)
		if err != nil || idx < 0 || idx >= len(v) {
			return ErrInvalidPointer(pointer)
		}
		v[idx] = value
		return nil
	default:
		return ErrInvalidPointer(pointer)
	}
}

// getAtPointer returns the value a pointer resolves to.
func getAtPointer(doc interface{}, pointer string) (interface{}, error) {
	parent, token, err := resolveParent(doc, pointer)
	if err != nil {
		return nil, err
	}
	switch v := parent.(type) {
	case map[string]interface{}:
		val, ok := v[token]
		if !ok {
			return nil, ErrInvalidPointer(pointer)
		}
		return val, nil
	case []interface{}:
		idx, err := strconv.Atoi(token)
		if err != nil || idx < 0 || idx >= len(v) {
			return nil, ErrInvalidPointer(pointer)
		}
		return v[idx], nil
	default:
		return nil, ErrInvalidPointer(pointer)
	}
}
