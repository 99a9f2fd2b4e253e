package jwk

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Thumbprint computes the RFC 7638 JWK thumbprint: the base64url-encoded
// SHA-256 digest of the canonical JSON object built from exactly the
// "required members" for k's key type, ordered lexicographically.
func Thumbprint(k Jwk) (string, error) {
	var members map[string]string

	switch k.Kty {
	case KtyEC:
		members = map[string]string{"crv": string(k.Crv), "kty": string(k.Kty), "x": k.X, "y": k.Y}
	case KtyOKP:
		members = map[string]string{"crv": string(k.Crv), "kty": string(k.Kty), "x": k.X}
	case KtyRSA:
		members = map[string]string{"e": k.E, "kty": string(k.Kty), "n": k.N}
	case KtyOct:
		members = map[string]string{"k": k.K, "kty": string(k.Kty)}
	default:
		return "", ErrUnsupportedKty(string(k.Kty))
	}

	canonical, err := canonicalJSON(members)
	if err != nil {
		return "", ErrInvalidJwk("failed to canonicalize thumbprint input", err)
	}

	sum := sha256.Sum256(canonical)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

// canonicalJSON renders members as a JSON object with keys in
// lexicographic order and no insignificant whitespace, per RFC 7638 §3.
func canonicalJSON(members map[string]string) ([]byte, error) {
	keys := sortedKeys(members)

	buf := []byte{'{'}
	for i, key := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(members[key])
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyJSON...)
		buf = append(buf, ':')
		buf = append(buf, valJSON...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion sort is plenty for the at-most-4-key maps thumbprints use.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// KeyIDFromThumbprint sets k.Kid to the RFC 7638 thumbprint of k, the
// convention storage.KeyIdStorage relies on to map a verification method's
// method-digest to stored key material.
func KeyIDFromThumbprint(k Jwk) (Jwk, error) {
	thumb, err := Thumbprint(k)
	if err != nil {
		return Jwk{}, err
	}
	k.Kid = thumb
	return k, nil
}

// methodDigest derives the digest CoreDocument uses as a storage alias key
// for a verification method: SHA-256 over the method's
// canonical JWK thumbprint, rendered as hex for use as a map/collection
// key where base64url's '/' and '_' characters are inconvenient.
func methodDigest(k Jwk) (string, error) {
	thumb, err := Thumbprint(k)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(thumb))), nil
}

// MethodDigest exports methodDigest for use by the verification package.
func MethodDigest(k Jwk) (string, error) { return methodDigest(k) }
