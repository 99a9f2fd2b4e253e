package validator

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/document"
)

func TestValidateLinkageAcceptsSingleMatch(t *testing.T) {
	doc, st, issuer := newSigningDoc(t)
	ctx := context.Background()

	c, err := credential.New(issuer, []credential.Subject{{
		ID: "",
		Properties: map[string]json.RawMessage{
			"origin": mustRaw(t, "https://example.com"),
		},
	}}, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	claims, err := c.ToJwtClaims()
	require.NoError(t, err)
	compact, err := doc.CreateJws(ctx, st, "sign-1", claims, document.JwsSignatureOptions{})
	require.NoError(t, err)

	config := NewDomainLinkageConfiguration([]string{compact})

	v := JwtDomainLinkageValidator{CredentialValidator: JwtCredentialValidator{}}
	decoded, err := v.ValidateLinkage(config, doc, issuer, "https://example.com", CredentialValidationOptions{})
	require.NoError(t, err)
	require.Equal(t, issuer, decoded.Credential.Issuer)
}

func TestValidateLinkageRejectsOriginMismatch(t *testing.T) {
	doc, st, issuer := newSigningDoc(t)
	ctx := context.Background()

	c, err := credential.New(issuer, []credential.Subject{{
		Properties: map[string]json.RawMessage{
			"origin": mustRaw(t, "https://example.com"),
		},
	}}, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	claims, err := c.ToJwtClaims()
	require.NoError(t, err)
	compact, err := doc.CreateJws(ctx, st, "sign-1", claims, document.JwsSignatureOptions{})
	require.NoError(t, err)

	config := NewDomainLinkageConfiguration([]string{compact})

	v := JwtDomainLinkageValidator{CredentialValidator: JwtCredentialValidator{}}
	_, err = v.ValidateLinkage(config, doc, issuer, "https://other.example", CredentialValidationOptions{})
	require.Error(t, err)
}

func TestValidateLinkageRejectsNoMatch(t *testing.T) {
	doc, _, issuer := newSigningDoc(t)

	config := NewDomainLinkageConfiguration(nil)
	v := JwtDomainLinkageValidator{CredentialValidator: JwtCredentialValidator{}}
	_, err := v.ValidateLinkage(config, doc, issuer, "https://example.com", CredentialValidationOptions{})
	require.Error(t, err)
}

func mustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
