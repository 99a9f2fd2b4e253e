package jwp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/storage/memstore"
	"github.com/iotaledger/iota-identity-go/validator"
	"github.com/iotaledger/iota-identity-go/verification"
)

func newBBSIssuerDoc(t *testing.T) (*document.CoreDocument, *storage.Storage, string) {
	t.Helper()
	ctx := context.Background()
	docDID, err := did.Parse("did:iota:issuer")
	require.NoError(t, err)
	doc := document.New(docDID)
	st := memstore.NewStorage()

	_, err = doc.GenerateBBSMethod(ctx, st, "bbs-1", storage.ProofAlgorithmBLS12381SHA256, verification.ScopeAssertionMethod)
	require.NoError(t, err)

	return doc, st, docDID.String()
}

func newDegreeCredential(t *testing.T, issuer, subject string) *credential.Credential {
	t.Helper()
	degreeJSON, err := json.Marshal(map[string]interface{}{"name": "BSc", "type": "BachelorDegree"})
	require.NoError(t, err)
	coursesJSON, err := json.Marshal([]string{"Biology", "Chemistry"})
	require.NoError(t, err)

	c, err := credential.New(issuer, []credential.Subject{{
		ID: subject,
		Properties: map[string]json.RawMessage{
			"degree":       degreeJSON,
			"mainCourses":  coursesJSON,
		},
	}}, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	return c
}

func issueJwp(t *testing.T, doc *document.CoreDocument, st *storage.Storage, c *credential.Credential) *JwpIssued {
	t.Helper()
	ctx := context.Background()

	method, err := doc.ResolveMethod("bbs-1", verification.ScopeAssertionMethod)
	require.NoError(t, err)
	pub, ok := method.Data.PublicKeyJwk()
	require.True(t, ok)

	digest, err := method.MethodDigest()
	require.NoError(t, err)
	keyId, err := st.GetKeyId(ctx, digest)
	require.NoError(t, err)

	issued, err := NewJwpIssuedFromCredential(c, storage.ProofAlgorithmBLS12381SHA256, method.ID.String())
	require.NoError(t, err)
	require.NoError(t, issued.Sign(ctx, st, keyId, pub))
	return issued
}

func TestJwpIssuedSignVerifyRoundTrip(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	method, err := doc.ResolveMethod("bbs-1", verification.ScopeAssertionMethod)
	require.NoError(t, err)
	pub, _ := method.Data.PublicKeyJwk()

	ok, err := issued.Verify(pub)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestJwpIssuedCompactRoundTrip(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	compact, err := issued.Compact()
	require.NoError(t, err)

	parsed, err := ParseJwpIssued(compact)
	require.NoError(t, err)
	require.Equal(t, issued.ProtectedHeader.Claims, parsed.ProtectedHeader.Claims)
	require.Equal(t, issued.Signature, parsed.Signature)
}

func TestJptCredentialValidatorValidateAccepts(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	compact, err := issued.Compact()
	require.NoError(t, err)

	decoded, err := JptCredentialValidator{}.Validate(compact, doc, validator.CredentialValidationOptions{})
	require.NoError(t, err)
	require.Equal(t, issuer, decoded.Credential.Issuer)
}

func TestSelectiveDisclosurePresentationConcealsSubjectPath(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	builder := NewSelectiveDisclosurePresentation(issued)
	require.NoError(t, builder.ConcealInSubject("mainCourses[1]"))

	presented, err := builder.Build("nonce-1", "https://verifier.example", "")
	require.NoError(t, err)

	_, err = presented.ClaimValue("credentialSubject.mainCourses[1]")
	require.Error(t, err)

	val, err := presented.ClaimValue("credentialSubject.mainCourses[0]")
	require.NoError(t, err)
	require.Equal(t, `"Biology"`, string(val))

	method, err := doc.ResolveMethod("bbs-1", verification.ScopeAssertionMethod)
	require.NoError(t, err)
	pub, _ := method.Data.PublicKeyJwk()

	ok, err := presented.Verify(pub)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestJptPresentationValidatorValidateAccepts(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	builder := NewSelectiveDisclosurePresentation(issued)
	require.NoError(t, builder.ConcealInSubject("mainCourses[1]"))
	presented, err := builder.Build("nonce-1", "https://verifier.example", "")
	require.NoError(t, err)

	compact, err := presented.Compact()
	require.NoError(t, err)

	decoded, err := JptPresentationValidator{}.Validate(compact, doc, JptPresentationValidationOptions{
		ExpectedNonce: "nonce-1",
		ExpectedAud:   "https://verifier.example",
	})
	require.NoError(t, err)
	require.Equal(t, issuer, decoded.Credential.Issuer)
}

func TestJptPresentationValidatorRejectsNonceMismatch(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	builder := NewSelectiveDisclosurePresentation(issued)
	presented, err := builder.Build("nonce-1", "https://verifier.example", "")
	require.NoError(t, err)
	compact, err := presented.Compact()
	require.NoError(t, err)

	_, err = JptPresentationValidator{}.Validate(compact, doc, JptPresentationValidationOptions{ExpectedNonce: "other"})
	require.Error(t, err)
}

func TestJwpPresentedTamperedUndisclosedCommitmentFailsVerify(t *testing.T) {
	doc, st, issuer := newBBSIssuerDoc(t)
	c := newDegreeCredential(t, issuer, "did:iota:subject")
	issued := issueJwp(t, doc, st, c)

	builder := NewSelectiveDisclosurePresentation(issued)
	require.NoError(t, builder.ConcealInSubject("mainCourses[1]"))
	presented, err := builder.Build("nonce-1", "https://verifier.example", "")
	require.NoError(t, err)

	for i := range presented.Payloads {
		if presented.Payloads[i].Kind == Undisclosed {
			presented.Payloads[i].Commitment = presented.Payloads[i].Commitment[:len(presented.Payloads[i].Commitment)-2] + "AA"
		}
	}

	method, err := doc.ResolveMethod("bbs-1", verification.ScopeAssertionMethod)
	require.NoError(t, err)
	pub, _ := method.Data.PublicKeyJwk()

	ok, err := presented.Verify(pub)
	if err == nil {
		require.False(t, ok)
	}
}
