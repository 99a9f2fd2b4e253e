package sdjwt

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/storage/memstore"
	"github.com/iotaledger/iota-identity-go/verification"
)

func newKBHolderDoc(t *testing.T) (*document.CoreDocument, *storage.Storage) {
	t.Helper()
	ctx := context.Background()
	docDID, err := did.Parse("did:iota:holder")
	require.NoError(t, err)
	doc := document.New(docDID)
	st := memstore.NewStorage()

	_, err = doc.GenerateMethod(ctx, st, "auth-1", storage.KeyTypeEd25519, "EdDSA", verification.ScopeAuthentication)
	require.NoError(t, err)
	return doc, st
}

func signKBJwt(t *testing.T, doc *document.CoreDocument, st *storage.Storage, claims KeyBindingJwtClaims) string {
	t.Helper()
	ctx := context.Background()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	compact, err := doc.CreateJws(ctx, st, "auth-1", payload, document.JwsSignatureOptions{Typ: KeyBindingJwtTyp})
	require.NoError(t, err)
	return compact
}

func TestValidateKeyBindingJwtAccepts(t *testing.T) {
	doc, st := newKBHolderDoc(t)

	s := SdJwt{Jwt: "header.payload.sig", Disclosures: []string{"d1", "d2"}}
	presented := SdJwt{Jwt: s.Jwt, Disclosures: s.Disclosures}.Compact()
	claims := KeyBindingJwtClaims{
		Nonce:  "abc",
		Aud:    "https://verifier.example",
		Iat:    time.Now().UTC().Unix(),
		SdHash: sdHash(presented),
	}
	s.KeyBindingJwt = signKBJwt(t, doc, st, claims)

	decoded, err := SdJwtCredentialValidator{}.ValidateKeyBindingJwt(&s, doc, KeyBindingValidationOptions{
		ExpectedNonce: "abc",
		ExpectedAud:   "https://verifier.example",
	})
	require.NoError(t, err)
	require.Equal(t, "abc", decoded.Nonce)
}

func TestValidateKeyBindingJwtRejectsWrongSdHash(t *testing.T) {
	doc, st := newKBHolderDoc(t)

	s := SdJwt{Jwt: "header.payload.sig", Disclosures: []string{"d1"}}
	claims := KeyBindingJwtClaims{SdHash: "wrong-hash", Iat: time.Now().UTC().Unix()}
	s.KeyBindingJwt = signKBJwt(t, doc, st, claims)

	_, err := SdJwtCredentialValidator{}.ValidateKeyBindingJwt(&s, doc, KeyBindingValidationOptions{})
	require.Error(t, err)
}

func TestValidateKeyBindingJwtRejectsNonceMismatch(t *testing.T) {
	doc, st := newKBHolderDoc(t)

	s := SdJwt{Jwt: "header.payload.sig", Disclosures: nil}
	presented := SdJwt{Jwt: s.Jwt}.Compact()
	claims := KeyBindingJwtClaims{Nonce: "actual", SdHash: sdHash(presented), Iat: time.Now().UTC().Unix()}
	s.KeyBindingJwt = signKBJwt(t, doc, st, claims)

	_, err := SdJwtCredentialValidator{}.ValidateKeyBindingJwt(&s, doc, KeyBindingValidationOptions{ExpectedNonce: "expected"})
	require.Error(t, err)
}

func TestValidateKeyBindingJwtRequiresPresentKBJwt(t *testing.T) {
	doc, _ := newKBHolderDoc(t)
	s := SdJwt{Jwt: "header.payload.sig"}
	_, err := SdJwtCredentialValidator{}.ValidateKeyBindingJwt(&s, doc, KeyBindingValidationOptions{})
	require.Error(t, err)
}
