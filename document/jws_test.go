package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/internal/config"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/storage/memstore"
	"github.com/iotaledger/iota-identity-go/verification"
)

func TestGenerateMethodCreateJwsVerifyJws(t *testing.T) {
	ctx := context.Background()
	docDID, err := did.Parse("did:iota:abcd")
	require.NoError(t, err)
	doc := New(docDID)
	st := memstore.NewStorage()

	method, err := doc.GenerateMethod(ctx, st, "sign-1", storage.KeyTypeEd25519, "EdDSA", verification.ScopeAssertionMethod)
	require.NoError(t, err)

	payload := []byte(`{"hello":"world"}`)
	compact, err := doc.CreateJws(ctx, st, "sign-1", payload, JwsSignatureOptions{})
	require.NoError(t, err)

	decoded, err := doc.VerifyJws(compact, nil, JwsVerificationOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.Claims)
	assert.Equal(t, method.ID.String(), decoded.ProtectedHeader.Kid)
}

func TestVerifyJwsRejectsWrongScope(t *testing.T) {
	ctx := context.Background()
	docDID, err := did.Parse("did:iota:abcd")
	require.NoError(t, err)
	doc := New(docDID)
	st := memstore.NewStorage()

	_, err = doc.GenerateMethod(ctx, st, "key-1", storage.KeyTypeEd25519, "EdDSA", verification.ScopeKeyAgreement)
	require.NoError(t, err)

	compact, err := doc.CreateJws(ctx, st, "key-1", []byte("payload"), JwsSignatureOptions{})
	require.NoError(t, err)

	_, err = doc.VerifyJws(compact, nil, JwsVerificationOptions{}, nil)
	require.Error(t, err)
}

func TestPurgeMethodDeletesKey(t *testing.T) {
	ctx := context.Background()
	docDID, err := did.Parse("did:iota:abcd")
	require.NoError(t, err)
	doc := New(docDID)
	st := memstore.NewStorage()

	method, err := doc.GenerateMethod(ctx, st, "sign-1", storage.KeyTypeEd25519, "EdDSA", verification.ScopeAssertionMethod)
	require.NoError(t, err)

	require.NoError(t, doc.PurgeMethod(ctx, st, method.ID))

	_, err = doc.ResolveMethod("sign-1", "")
	require.Error(t, err)

	_, err = doc.CreateJws(ctx, st, "sign-1", []byte("x"), JwsSignatureOptions{})
	require.Error(t, err)
}

func TestCreateJwsFallsBackToConfigDefaultAlg(t *testing.T) {
	ctx := context.Background()
	docDID, err := did.Parse("did:iota:abcd")
	require.NoError(t, err)
	doc := New(docDID)
	st := memstore.NewStorage()

	// alg "" mirrors a method whose publicKeyJwk carries no explicit alg.
	_, err = doc.GenerateMethod(ctx, st, "sign-1", storage.KeyTypeEd25519, "", verification.ScopeAssertionMethod)
	require.NoError(t, err)

	cfg, err := config.Default()
	require.NoError(t, err)

	compact, err := doc.CreateJws(ctx, st, "sign-1", []byte("payload"), JwsSignatureOptions{Config: cfg})
	require.NoError(t, err)

	decoded, err := doc.VerifyJws(compact, nil, JwsVerificationOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultJWSAlgorithm, decoded.ProtectedHeader.Alg)
}
