package validator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/revocation"
	"github.com/iotaledger/iota-identity-go/verification"
)

func newRevocationDoc(t *testing.T) *document.CoreDocument {
	t.Helper()
	docDID, err := did.Parse("did:iota:issuer")
	require.NoError(t, err)
	doc := document.New(docDID)

	bitmap := revocation.NewBitmap(revocation.DefaultBitmapCapacity)
	bitmap.Revoke(5)
	dataURL, err := bitmap.EncodeDataURL()
	require.NoError(t, err)

	svcID, err := did.ParseDIDUrl(docDID.String() + "#revocation")
	require.NoError(t, err)
	svc, err := verification.NewService(svcID, []string{"RevocationBitmap2022"}, verification.NewURIEndpoint(dataURL))
	require.NoError(t, err)
	require.NoError(t, doc.InsertService(svc))

	return doc
}

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestCheckStatusRevocationBitmapRejectsRevoked(t *testing.T) {
	doc := newRevocationDoc(t)
	c := &credential.Credential{
		CredentialStatus: []credential.Status{{
			ID:   "did:iota:issuer#revocation",
			Type: StatusTypeRevocationBitmap2022,
			Properties: map[string]json.RawMessage{
				"revocationBitmapIndex": rawJSON(t, "5"),
			},
		}},
	}
	err := CheckStatus(c, doc, nil, StatusCheckStrict)
	require.Error(t, err)
}

func TestCheckStatusRevocationBitmapAcceptsUnset(t *testing.T) {
	doc := newRevocationDoc(t)
	c := &credential.Credential{
		CredentialStatus: []credential.Status{{
			ID:   "did:iota:issuer#revocation",
			Type: StatusTypeRevocationBitmap2022,
			Properties: map[string]json.RawMessage{
				"revocationBitmapIndex": rawJSON(t, "6"),
			},
		}},
	}
	require.NoError(t, CheckStatus(c, doc, nil, StatusCheckStrict))
}

func TestCheckStatusUnsupportedTypeStrictFails(t *testing.T) {
	c := &credential.Credential{
		CredentialStatus: []credential.Status{{Type: "SomeUnknownType"}},
	}
	require.Error(t, CheckStatus(c, nil, nil, StatusCheckStrict))
	require.NoError(t, CheckStatus(c, nil, nil, StatusCheckSkipUnsupported))
}

func TestCheckStatusSkipAllSkipsEverything(t *testing.T) {
	c := &credential.Credential{
		CredentialStatus: []credential.Status{{Type: StatusTypeRevocationBitmap2022, ID: "nowhere"}},
	}
	require.NoError(t, CheckStatus(c, nil, nil, StatusCheckSkipAll))
}

func TestCheckStatusStatusList2021(t *testing.T) {
	list, err := revocation.NewStatusList2021Credential("did:iota:issuer", "did:iota:issuer#list", revocation.StatusPurposeRevocation, revocation.DefaultStatusListBits)
	require.NoError(t, err)

	decodedList, _, err := revocation.DecodeStatusList2021Credential(list)
	require.NoError(t, err)
	require.NoError(t, decodedList.Set(9, true))
	encoded, err := decodedList.EncodedList()
	require.NoError(t, err)

	list.CredentialSubject[0].Properties["encodedList"] = rawJSON(t, encoded)

	c := &credential.Credential{
		CredentialStatus: []credential.Status{{
			Type: StatusTypeStatusList2021Entry,
			Properties: map[string]json.RawMessage{
				"statusListIndex": rawJSON(t, "9"),
			},
		}},
	}
	err = CheckStatus(c, nil, list, StatusCheckStrict)
	require.Error(t, err)
}

func TestCheckRevocationTimeframe(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	c := &credential.Credential{
		CredentialStatus: []credential.Status{{
			Type: StatusTypeRevocationTimeframe2024,
			Properties: map[string]json.RawMessage{
				"startValidityTimeframe": rawJSON(t, start.Format(time.RFC3339)),
				"endValidityTimeframe":   rawJSON(t, end.Format(time.RFC3339)),
			},
		}},
	}
	require.NoError(t, CheckStatus(c, nil, nil, StatusCheckStrict))
}
