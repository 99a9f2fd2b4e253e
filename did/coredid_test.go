package did

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid simple", input: "did:iota:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"},
		{name: "valid with network", input: "did:iota:main:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"},
		{name: "missing scheme", input: "iota:main:abcd", wantErr: true},
		{name: "missing method id", input: "did:iota", wantErr: true},
		{name: "empty method id segment", input: "did:iota:main::abcd", wantErr: true},
		{name: "uppercase method", input: "did:IOTA:main:abcd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestCoreDIDEqual(t *testing.T) {
	a, err := Parse("did:iota:abcd")
	require.NoError(t, err)
	b, err := Parse("did:iota:abcd")
	require.NoError(t, err)
	c, err := Parse("did:iota:zzzz")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestCoreDIDTextRoundtrip(t *testing.T) {
	var d CoreDID
	err := d.UnmarshalText([]byte("did:iota:main:abcd"))
	require.NoError(t, err)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "did:iota:main:abcd", string(text))
}

func TestCoreDIDIsZero(t *testing.T) {
	var d CoreDID
	assert.True(t, d.IsZero())

	d, err := Parse("did:iota:abcd")
	require.NoError(t, err)
	assert.False(t, d.IsZero())
}
