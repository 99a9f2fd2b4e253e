package jwp

import "strings"

// defaultConcealedPaths is §4.8's default conceal set for a fresh
// SelectiveDisclosurePresentation. The spec names both JWT-claim-style
// path names ("jti", "nbf") and VC-field-style names ("issuanceDate",
// "expirationDate", "termsOfUse") together; since
// NewJwpIssuedFromCredential flattens the credential's own JSON shape
// rather than a JWT-claims projection, only the VC-field-style names
// ever match a real claim path here -- "jti"/"nbf" are carried for
// completeness but never match and are silently skipped, exactly like
// any other default path absent from a given credential.
//
// issuanceDate is deliberately left out: unlike expirationDate/
// termsOfUse it is a required Credential field (credential.Validate
// rejects a zero issuanceDate), so silently concealing it by default
// would make every default-built presentation fail the structural
// check ValidateCredentialSemantics runs after disclosure. A caller
// that wants it hidden can still call Conceal("issuanceDate")
// explicitly.
var defaultConcealedPaths = []string{"jti", "nbf", "expirationDate", "termsOfUse"}

// SelectiveDisclosurePresentation builds a JwpPresented from a JwpIssued
// by marking claim paths Undisclosed, via dot/bracket addressing into
// credentialSubject and evidence.
type SelectiveDisclosurePresentation struct {
	issued    *JwpIssued
	concealed map[string]bool
}

// NewSelectiveDisclosurePresentation seeds the builder from issued, with
// every default-concealed path present in issued's claim vector marked
// Undisclosed.
func NewSelectiveDisclosurePresentation(issued *JwpIssued) *SelectiveDisclosurePresentation {
	claimSet := map[string]bool{}
	for _, c := range issued.ProtectedHeader.Claims {
		claimSet[c] = true
	}
	concealed := map[string]bool{}
	for _, p := range defaultConcealedPaths {
		if claimSet[p] {
			concealed[p] = true
		}
	}
	return &SelectiveDisclosurePresentation{issued: issued, concealed: concealed}
}

// ConcealInSubject marks the claim at "credentialSubject.<path>"
// Undisclosed, e.g. ConcealInSubject("degree.name") or
// ConcealInSubject("mainCourses[1]").
func (b *SelectiveDisclosurePresentation) ConcealInSubject(path string) error {
	return b.conceal(joinPath("credentialSubject", path))
}

// ConcealInEvidence marks the claim at "evidence.<path>" Undisclosed.
func (b *SelectiveDisclosurePresentation) ConcealInEvidence(path string) error {
	return b.conceal(joinPath("evidence", path))
}

// Conceal marks an arbitrary claim path Undisclosed directly, for
// concealment outside credentialSubject/evidence.
func (b *SelectiveDisclosurePresentation) Conceal(path string) error {
	return b.conceal(path)
}

func (b *SelectiveDisclosurePresentation) conceal(path string) error {
	for _, c := range b.issued.ProtectedHeader.Claims {
		if c == path {
			b.concealed[path] = true
			return nil
		}
	}
	return errUnknownClaim(path)
}

func joinPath(prefix, suffix string) string {
	if strings.HasPrefix(suffix, "[") {
		return prefix + suffix
	}
	return prefix + "." + suffix
}

// Build produces the JwpPresented, binding nonce/aud/presentationKid
// into its presentation-protected header.
func (b *SelectiveDisclosurePresentation) Build(nonce, aud, presentationKid string) (*JwpPresented, error) {
	return b.issued.Present(b.concealed, nonce, aud, presentationKid)
}
