// Package revocation implements the §4.6/§6 status mechanisms
// CoreDocument's revocation-backed services and
// validator.JwtCredentialValidator.checkStatus consume:
// RevocationBitmap2022 (a compact per-document bitset published as a
// service endpoint data URL) and StatusList2021Credential (a
// credential-wrapped bitstring, for higher-volume deployments). It does
// not import document: CoreDocument.RevokeCredentials/
// UnrevokeCredentials call into this package, not the other way
// around, keeping the dependency direction one-way.
package revocation

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"io"
	"strings"

	"github.com/iotaledger/iota-identity-go/internal/config"
)

// DefaultBitmapCapacity is the number of distinct indices a freshly
// created Bitmap is pre-sized for before it needs to grow, absent an
// internal/config.Config (see NewBitmapFromConfig).
const DefaultBitmapCapacity = 128

// bitmapDataURLPrefix is the §6 wire format:
// "data:application/octet-stream;base64,<base64(zlib(bitset))>".
const bitmapDataURLPrefix = "data:application/octet-stream;base64,"

// Bitmap is a growable bitset, one bit per revocation index, encoded on
// the ledger as a zlib-compressed byte string.
type Bitmap struct {
	bits []byte
}

// NewBitmap builds an empty Bitmap pre-sized for capacity indices
// (rounded up to a whole byte).
func NewBitmap(capacity int) *Bitmap {
	if capacity <= 0 {
		capacity = DefaultBitmapCapacity
	}
	return &Bitmap{bits: make([]byte, (capacity+7)/8)}
}

// NewBitmapFromConfig builds an empty Bitmap pre-sized for
// cfg.RevocationBitmapDefaultCapacity indices.
func NewBitmapFromConfig(cfg *config.Config) *Bitmap {
	return NewBitmap(cfg.RevocationBitmapDefaultCapacity)
}

// IsRevoked reports whether index is set. An index beyond the current
// backing size is, by construction, not revoked.
func (b *Bitmap) IsRevoked(index uint32) bool {
	byteIdx := index / 8
	if int(byteIdx) >= len(b.bits) {
		return false
	}
	return b.bits[byteIdx]&(1<<(index%8)) != 0
}

// Revoke sets index, growing the backing bytes if needed.
func (b *Bitmap) Revoke(index uint32) {
	b.ensure(index)
	b.bits[index/8] |= 1 << (index % 8)
}

// Unrevoke clears index. Clearing an index beyond the current backing
// size is a no-op, since it already reads as unrevoked.
func (b *Bitmap) Unrevoke(index uint32) {
	byteIdx := index / 8
	if int(byteIdx) >= len(b.bits) {
		return
	}
	b.bits[byteIdx] &^= 1 << (index % 8)
}

func (b *Bitmap) ensure(index uint32) {
	needed := int(index/8) + 1
	if needed <= len(b.bits) {
		return
	}
	grown := make([]byte, needed)
	copy(grown, b.bits)
	b.bits = grown
}

// EncodeDataURL renders b as the §6 service endpoint data URL.
func (b *Bitmap) EncodeDataURL() (string, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(b.bits); err != nil {
		return "", ErrInvalidBitmap("failed to compress bitmap", err)
	}
	if err := w.Close(); err != nil {
		return "", ErrInvalidBitmap("failed to finalize bitmap compression", err)
	}
	return bitmapDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBitmapDataURL parses a "data:application/octet-stream;base64,…"
// endpoint back into a Bitmap.
func DecodeBitmapDataURL(dataURL string) (*Bitmap, error) {
	rest, ok := strings.CutPrefix(dataURL, bitmapDataURLPrefix)
	if !ok {
		return nil, ErrInvalidBitmap("endpoint is not a recognized RevocationBitmap2022 data URL", nil)
	}
	compressed, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, ErrInvalidBitmap("failed to base64-decode bitmap", err)
	}
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, ErrInvalidBitmap("failed to open zlib stream", err)
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrInvalidBitmap("failed to decompress bitmap", err)
	}
	return &Bitmap{bits: raw}, nil
}
