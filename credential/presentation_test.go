package credential

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPresentationSatisfiesInvariants(t *testing.T) {
	vc := json.RawMessage(`"eyJhbGciOiJFZERTQSJ9.payload.sig"`)
	p, err := NewPresentation("did:iota:holder", []json.RawMessage{vc})
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Equal(t, ContextV1, p.Context[0])
	assert.Equal(t, TypeVerifiablePresentation, p.Type[0])
}

func TestPresentationMarshalRoundTrip(t *testing.T) {
	vc := json.RawMessage(`"compact-jws-string"`)
	p, err := NewPresentation("did:iota:holder", []json.RawMessage{vc})
	require.NoError(t, err)
	p.Custom = map[string]json.RawMessage{"nonce": json.RawMessage(`"n-0S6_WzA2Mj"`)}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Presentation
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p.Holder, got.Holder)
	require.Len(t, got.VerifiableCredential, 1)
	require.NotNil(t, got.Custom)
	assert.JSONEq(t, `"n-0S6_WzA2Mj"`, string(got.Custom["nonce"]))
}

func TestPresentationValidateRejectsMissingHolder(t *testing.T) {
	_, err := NewPresentation("", nil)
	require.Error(t, err)
}
