package did

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDIDUrl(t *testing.T) {
	u, err := ParseDIDUrl("did:iota:abcd/path/to/thing?foo=bar#frag")
	require.NoError(t, err)

	assert.Equal(t, "did:iota:abcd", u.DID().String())
	assert.Equal(t, "/path/to/thing", u.Path())
	assert.Equal(t, "foo=bar", u.Query())
	assert.Equal(t, "frag", u.Fragment())
	assert.Equal(t, "did:iota:abcd/path/to/thing?foo=bar#frag", u.String())
}

func TestParseDIDUrlFragmentOnly(t *testing.T) {
	u, err := ParseDIDUrl("did:iota:abcd#key-1")
	require.NoError(t, err)

	assert.Equal(t, "", u.Path())
	assert.Equal(t, "", u.Query())
	assert.Equal(t, "key-1", u.Fragment())
}

func TestDIDUrlJoinFragmentOverwritesOnly(t *testing.T) {
	base, err := ParseDIDUrl("did:iota:abcd/p?q=1#f1")
	require.NoError(t, err)

	joined, err := base.Join("#f2")
	require.NoError(t, err)

	assert.Equal(t, "/p", joined.Path())
	assert.Equal(t, "q=1", joined.Query())
	assert.Equal(t, "f2", joined.Fragment())
}

func TestDIDUrlJoinQueryClearsFragment(t *testing.T) {
	base, err := ParseDIDUrl("did:iota:abcd/p?q=1#f1")
	require.NoError(t, err)

	joined, err := base.Join("?q=2")
	require.NoError(t, err)

	assert.Equal(t, "/p", joined.Path())
	assert.Equal(t, "q=2", joined.Query())
	assert.Equal(t, "", joined.Fragment())
}

func TestDIDUrlJoinPathClearsQueryAndFragment(t *testing.T) {
	base, err := ParseDIDUrl("did:iota:abcd/p?q=1#f1")
	require.NoError(t, err)

	joined, err := base.Join("/other")
	require.NoError(t, err)

	assert.Equal(t, "/p/other", joined.Path())
	assert.Equal(t, "", joined.Query())
	assert.Equal(t, "", joined.Fragment())
}

func TestDIDUrlWithFragment(t *testing.T) {
	base := FromDID(mustParse(t, "did:iota:abcd"))
	withFrag := base.WithFragment("key-1")

	assert.Equal(t, "did:iota:abcd#key-1", withFrag.String())
}

func mustParse(t *testing.T, s string) CoreDID {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}
