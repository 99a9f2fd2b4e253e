package did

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/internal/config"
)

func TestParseIotaDIDNetworkOmitted(t *testing.T) {
	tag := strings.Repeat("ab", 32)
	d, err := ParseIotaDID("did:iota:"+tag, "iota")
	require.NoError(t, err)

	assert.Equal(t, "iota", d.Network())
	assert.Equal(t, "0x"+tag, d.ToAliasID())
}

func TestParseIotaDIDNetworkExplicit(t *testing.T) {
	tag := strings.Repeat("cd", 32)
	d, err := ParseIotaDID("did:iota:smr:"+tag, "iota")
	require.NoError(t, err)

	assert.Equal(t, "smr", d.Network())
	assert.Equal(t, "did:iota:smr:"+tag, d.String())
	assert.Equal(t, "did:iota:smr:"+tag, d.StringWithDefaultNetwork("iota"))
}

func TestParseIotaDIDRejectsBadTag(t *testing.T) {
	_, err := ParseIotaDID("did:iota:not-hex", "iota")
	require.Error(t, err)
}

func TestParseIotaDIDRejectsWrongMethod(t *testing.T) {
	tag := strings.Repeat("ab", 32)
	_, err := ParseIotaDID("did:key:"+tag, "iota")
	require.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	d, err := Placeholder("iota")
	require.NoError(t, err)

	assert.True(t, d.IsPlaceholder())
	assert.Equal(t, "0x"+strings.Repeat("00", 32), d.ToAliasID())
}

func TestStringWithDefaultNetworkOmitsDefault(t *testing.T) {
	tag := strings.Repeat("11", 32)
	d, err := NewIotaDID("iota", [32]byte{})
	require.NoError(t, err)
	_ = tag

	assert.Equal(t, "did:iota:"+strings.Repeat("00", 32), d.StringWithDefaultNetwork("iota"))
}

func TestPlaceholderFromConfigUsesDefaultNetwork(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	d, err := PlaceholderFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultNetwork, d.Network())
	assert.True(t, d.IsPlaceholder())
}

func TestParseIotaDIDFromConfigFallsBackToConfiguredNetwork(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	tag := strings.Repeat("ab", 32)
	d, err := ParseIotaDIDFromConfig("did:iota:"+tag, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultNetwork, d.Network())
}
