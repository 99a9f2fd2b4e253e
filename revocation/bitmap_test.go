package revocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/internal/config"
)

func TestBitmapRevokeUnrevoke(t *testing.T) {
	b := NewBitmap(DefaultBitmapCapacity)
	assert.False(t, b.IsRevoked(5))
	b.Revoke(5)
	assert.True(t, b.IsRevoked(5))
	b.Unrevoke(5)
	assert.False(t, b.IsRevoked(5))
}

func TestBitmapGrowsForLargeIndex(t *testing.T) {
	b := NewBitmap(8)
	b.Revoke(1000)
	assert.True(t, b.IsRevoked(1000))
	assert.False(t, b.IsRevoked(999))
}

func TestBitmapDataURLRoundTrip(t *testing.T) {
	b := NewBitmap(DefaultBitmapCapacity)
	b.Revoke(3)
	b.Revoke(42)

	dataURL, err := b.EncodeDataURL()
	require.NoError(t, err)
	assert.Contains(t, dataURL, bitmapDataURLPrefix)

	got, err := DecodeBitmapDataURL(dataURL)
	require.NoError(t, err)
	assert.True(t, got.IsRevoked(3))
	assert.True(t, got.IsRevoked(42))
	assert.False(t, got.IsRevoked(4))
}

func TestDecodeBitmapDataURLRejectsBadPrefix(t *testing.T) {
	_, err := DecodeBitmapDataURL("data:text/plain,hello")
	require.Error(t, err)
}

func TestNewBitmapFromConfigUsesConfiguredCapacity(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.RevocationBitmapDefaultCapacity = 24

	b := NewBitmapFromConfig(cfg)
	assert.Len(t, b.bits, 3)
}
