package jwp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	doc := []byte(`{"issuer":"did:iota:abc","credentialSubject":{"degree":{"name":"BSc"},"mainCourses":["Biology","Chemistry"]}}`)

	paths, values, err := flattenClaims("", doc)
	require.NoError(t, err)
	require.Contains(t, paths, "issuer")
	require.Contains(t, paths, "credentialSubject.degree.name")
	require.Contains(t, paths, "credentialSubject.mainCourses[0]")
	require.Contains(t, paths, "credentialSubject.mainCourses[1]")

	rebuilt, err := unflattenClaims(paths, values)
	require.NoError(t, err)

	var want, got map[string]interface{}
	require.NoError(t, json.Unmarshal(doc, &want))
	require.NoError(t, json.Unmarshal(rebuilt, &got))
	require.Equal(t, want, got)
}

func TestFlattenIsDeterministic(t *testing.T) {
	doc := []byte(`{"b":1,"a":2,"c":{"z":1,"y":2}}`)
	paths1, _, err := flattenClaims("", doc)
	require.NoError(t, err)
	paths2, _, err := flattenClaims("", doc)
	require.NoError(t, err)
	require.Equal(t, paths1, paths2)
	require.Equal(t, []string{"a", "b", "c.y", "c.z"}, paths1)
}

func TestUnflattenPartialSubsetOmitsConcealedLeaves(t *testing.T) {
	paths := []string{"issuer", "credentialSubject.mainCourses[1]"}
	values := []json.RawMessage{[]byte(`"did:iota:abc"`), []byte(`"Chemistry"`)}

	rebuilt, err := unflattenClaims(paths, values)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rebuilt, &got))
	require.Equal(t, "did:iota:abc", got["issuer"])
	subject := got["credentialSubject"].(map[string]interface{})
	courses := subject["mainCourses"].([]interface{})
	require.Len(t, courses, 2)
	require.Nil(t, courses[0])
	require.Equal(t, "Chemistry", courses[1])
}

func TestParsePathTokensRejectsUnterminatedBracket(t *testing.T) {
	_, err := parsePathTokens("mainCourses[1")
	require.Error(t, err)
}
