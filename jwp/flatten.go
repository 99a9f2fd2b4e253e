package jwp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// flattenClaims walks an arbitrary JSON value (object, array, or leaf)
// and returns every leaf's dot/bracket path alongside its raw value, in
// a stable (object keys sorted lexicographically, arrays in index
// order) order. Objects contribute "<prefix>.<key>" children, arrays
// contribute "<prefix>[<index>]" children; concealInSubject/
// concealInEvidence address into this same path space, e.g.
// "credentialSubject.degree.name" or "credentialSubject.mainCourses[1]".
func flattenClaims(prefix string, raw json.RawMessage) ([]string, []json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) == 0 {
		return nil, nil, nil
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, errInvalidPath(prefix, err)
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var paths []string
		var values []json.RawMessage
		for _, k := range keys {
			childPrefix := k
			if prefix != "" {
				childPrefix = prefix + "." + k
			}
			childPaths, childValues, err := flattenClaims(childPrefix, obj[k])
			if err != nil {
				return nil, nil, err
			}
			paths = append(paths, childPaths...)
			values = append(values, childValues...)
		}
		return paths, values, nil

	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, nil, errInvalidPath(prefix, err)
		}
		var paths []string
		var values []json.RawMessage
		for i, v := range arr {
			childPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			childPaths, childValues, err := flattenClaims(childPrefix, v)
			if err != nil {
				return nil, nil, err
			}
			paths = append(paths, childPaths...)
			values = append(values, childValues...)
		}
		return paths, values, nil

	default:
		return []string{prefix}, []json.RawMessage{raw}, nil
	}
}

type pathToken struct {
	key     string
	isIndex bool
	index   int
}

// parsePathTokens splits a concealInSubject/concealInEvidence-style
// dot-and-bracket path into its component tokens, e.g.
// "mainCourses[1]" -> [{key:"mainCourses"},{isIndex:true,index:1}].
func parsePathTokens(path string) ([]pathToken, error) {
	var tokens []pathToken
	i := 0
	for i < len(path) {
		start := i
		for i < len(path) && path[i] != '.' && path[i] != '[' {
			i++
		}
		if i > start {
			tokens = append(tokens, pathToken{key: path[start:i]})
		}
		for i < len(path) && path[i] == '[' {
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated [ in path %q", path)
			}
			idxStr := path[i+1 : i+end]
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, fmt.Errorf("invalid array index %q in path %q", idxStr, path)
			}
			tokens = append(tokens, pathToken{isIndex: true, index: idx})
			i += end + 1
		}
		if i < len(path) && path[i] == '.' {
			i++
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	return tokens, nil
}

// unflattenClaims is flattenClaims's inverse: given a (possibly partial,
// for a presentation that concealed some leaves) set of paths and
// values, it rebuilds the nested JSON document they describe.
func unflattenClaims(paths []string, values []json.RawMessage) (json.RawMessage, error) {
	var root interface{} = map[string]interface{}{}
	for i, path := range paths {
		var val interface{}
		if err := json.Unmarshal(values[i], &val); err != nil {
			return nil, errInvalidPath(path, err)
		}
		if path == "" {
			root = val
			continue
		}
		tokens, err := parsePathTokens(path)
		if err != nil {
			return nil, errInvalidPath(path, err)
		}
		updated, err := assignPath(root, tokens, val)
		if err != nil {
			return nil, errInvalidPath(path, err)
		}
		root = updated
	}
	return json.Marshal(root)
}

func assignPath(current interface{}, tokens []pathToken, value interface{}) (interface{}, error) {
	if len(tokens) == 0 {
		return value, nil
	}
	tok := tokens[0]
	rest := tokens[1:]

	if tok.isIndex {
		arr, _ := current.([]interface{})
		for len(arr) <= tok.index {
			arr = append(arr, nil)
		}
		child, err := assignPath(arr[tok.index], rest, value)
		if err != nil {
			return nil, err
		}
		arr[tok.index] = child
		return arr, nil
	}

	obj, ok := current.(map[string]interface{})
	if !ok {
		obj = map[string]interface{}{}
	}
	child, err := assignPath(obj[tok.key], rest, value)
	if err != nil {
		return nil, err
	}
	obj[tok.key] = child
	return obj, nil
}
