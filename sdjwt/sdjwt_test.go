package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactRoundTripWithoutKeyBinding(t *testing.T) {
	s := SdJwt{Jwt: "header.payload.sig", Disclosures: []string{"d1", "d2"}}
	compact := s.Compact()
	require.Equal(t, "header.payload.sig~d1~d2~", compact)

	parsed, err := ParseSdJwt(compact)
	require.NoError(t, err)
	require.Equal(t, s.Jwt, parsed.Jwt)
	require.Equal(t, s.Disclosures, parsed.Disclosures)
	require.Empty(t, parsed.KeyBindingJwt)
}

func TestCompactRoundTripWithKeyBinding(t *testing.T) {
	s := SdJwt{Jwt: "header.payload.sig", Disclosures: []string{"d1"}, KeyBindingJwt: "kb.header.sig"}
	compact := s.Compact()

	parsed, err := ParseSdJwt(compact)
	require.NoError(t, err)
	require.Equal(t, s.KeyBindingJwt, parsed.KeyBindingJwt)
	require.Equal(t, []string{"d1"}, parsed.Disclosures)
}

func TestParseSdJwtNoDisclosures(t *testing.T) {
	parsed, err := ParseSdJwt("header.payload.sig~")
	require.NoError(t, err)
	require.Empty(t, parsed.Disclosures)
	require.Empty(t, parsed.KeyBindingJwt)
}

func TestParseSdJwtRejectsMissingSeparator(t *testing.T) {
	_, err := ParseSdJwt("header.payload.sig")
	require.Error(t, err)
}
