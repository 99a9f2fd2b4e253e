package sdjwt

// SdObjectDecoder reverses SdObjectEncoder: given the signed payload and
// the disclosures presented alongside it, it restores concealed
// properties and elements, dropping any digest with no matching
// disclosure. Grounded on dc4eu-vc/pkg/sdjwt's run/addClaims/
// removeSDClaims recursive-restore approach.
type SdObjectDecoder struct{}

// NewSdObjectDecoder returns a decoder. It carries no state; a decoder
// value only exists so Decode reads like its Encoder counterpart.
func NewSdObjectDecoder() *SdObjectDecoder { return &SdObjectDecoder{} }

// Decode restores every claim disclosures can satisfy in obj, returning
// a new map. obj is not mutated.
func (SdObjectDecoder) Decode(obj map[string]interface{}, disclosures []string) (map[string]interface{}, error) {
	digestToDisclosure := map[string]*Disclosure{}
	for _, encoded := range disclosures {
		d, err := ParseDisclosure(encoded)
		if err != nil {
			return nil, err
		}
		digestToDisclosure[d.Digest()] = d
	}

	restored, err := restoreValue(obj, digestToDisclosure)
	if err != nil {
		return nil, err
	}
	m, ok := restored.(map[string]interface{})
	if !ok {
		return nil, ErrInvalidDisclosure("decoded document is not a JSON object", nil)
	}
	return m, nil
}

func restoreValue(value interface{}, byDigest map[string]*Disclosure) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		return restoreObject(v, byDigest)
	case []interface{}:
		return restoreArray(v, byDigest)
	default:
		return value, nil
	}
}

func restoreObject(obj map[string]interface{}, byDigest map[string]*Disclosure) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for k, v := range obj {
		if k == "_sd" || k == "_sd_alg" {
			continue
		}
		restored, err := restoreValue(v, byDigest)
		if err != nil {
			return nil, err
		}
		out[k] = restored
	}

	sdEntries, _ := obj["_sd"].([]interface{})
	for _, entry := range sdEntries {
		digest, ok := entry.(string)
		if !ok {
			continue
		}
		d, ok := byDigest[digest]
		if !ok {
			continue
		}
		if d.Name == nil {
			return nil, ErrInvalidDisclosure("object-property disclosure is missing a name", nil)
		}
		if _, exists := out[*d.Name]; exists {
			return nil, ErrDuplicateClaim(*d.Name)
		}
		restoredValue, err := restoreValue(d.Value, byDigest)
		if err != nil {
			return nil, err
		}
		out[*d.Name] = restoredValue
	}

	return out, nil
}

func restoreArray(arr []interface{}, byDigest map[string]*Disclosure) ([]interface{}, error) {
	out := make([]interface{}, 0, len(arr))
	for _, elem := range arr {
		obj, ok := elem.(map[string]interface{})
		if !ok || len(obj) != 1 {
			restored, err := restoreValue(elem, byDigest)
			if err != nil {
				return nil, err
			}
			out = append(out, restored)
			continue
		}
		digest, ok := obj[decoyPrefix].(string)
		if !ok {
			restored, err := restoreValue(elem, byDigest)
			if err != nil {
				return nil, err
			}
			out = append(out, restored)
			continue
		}
		d, ok := byDigest[digest]
		if !ok {
			// Unknown digest: drop the element, shifting indices.
			continue
		}
		restoredValue, err := restoreValue(d.Value, byDigest)
		if err != nil {
			return nil, err
		}
		out = append(out, restoredValue)
	}
	return out, nil
}
