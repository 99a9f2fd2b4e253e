package jwp

import (
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/validator"
	"github.com/iotaledger/iota-identity-go/verification"
)

// DecodedJpt is the result of a successful JptCredentialValidator.Validate
// call.
type DecodedJpt struct {
	Credential      *credential.Credential
	ProtectedHeader IssuerProtectedHeader
}

// JptCredentialValidator implements §4.8's JptCredentialValidator: it
// reconstructs the signing input from an (unpresented) JwpIssued's
// payloads, verifies the issuer's BBS+ proof, then applies the same
// structural/time-window rules §4.6's JwtCredentialValidator does. Like
// its JWT counterpart it does not check status or subject-holder
// relationship; call validator.CheckStatus/
// validator.CheckSubjectHolderRelationship separately.
type JptCredentialValidator struct{}

// Validate verifies compact (an issued-form JWP, see JwpIssued.Compact)
// against the BBS+ method issuerDoc resolves by its protected header's
// kid.
func (v JptCredentialValidator) Validate(compact string, issuerDoc *document.CoreDocument, opts validator.CredentialValidationOptions) (*DecodedJpt, error) {
	issued, err := ParseJwpIssued(compact)
	if err != nil {
		return nil, err
	}

	pub, err := resolveBBSPublicKey(issuerDoc, issued.ProtectedHeader.Kid)
	if err != nil {
		return nil, err
	}

	ok, err := issued.Verify(pub)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidProof("BBS+ signature verification failed")
	}

	c, err := reconstructCredential(issued.ProtectedHeader.Claims, payloadValues(issued.Payloads))
	if err != nil {
		return nil, err
	}

	if err := validator.ValidateCredentialSemantics(c, opts); err != nil {
		return nil, err
	}

	return &DecodedJpt{Credential: c, ProtectedHeader: issued.ProtectedHeader}, nil
}

// DecodedJptPresentation is the result of a successful
// JptPresentationValidator.Validate call.
type DecodedJptPresentation struct {
	Credential                  *credential.Credential
	IssuerProtectedHeader       IssuerProtectedHeader
	PresentationProtectedHeader PresentationProtectedHeader
}

// JptPresentationValidationOptions configures
// JptPresentationValidator.Validate. ExpectedNonce/ExpectedAud, when
// non-empty, bind validation to a specific verifier challenge, the
// JPT-presented analog of KeyBindingValidationOptions.
type JptPresentationValidationOptions struct {
	validator.CredentialValidationOptions
	ExpectedNonce string
	ExpectedAud   string
}

// JptPresentationValidator implements §4.8's JptPresentationValidator:
// beyond JptCredentialValidator's checks, it verifies the selective-
// disclosure proof against the presentation-protected header (nonce/aud)
// and reconstructs the credential from only the disclosed subset of
// claims.
type JptPresentationValidator struct{}

// Validate verifies compact (a presented-form JWP, see
// JwpPresented.Compact).
func (v JptPresentationValidator) Validate(compact string, issuerDoc *document.CoreDocument, opts JptPresentationValidationOptions) (*DecodedJptPresentation, error) {
	presented, err := ParseJwpPresented(compact)
	if err != nil {
		return nil, err
	}

	pub, err := resolveBBSPublicKey(issuerDoc, presented.IssuerProtectedHeader.Kid)
	if err != nil {
		return nil, err
	}

	ok, err := presented.Verify(pub)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidProof("BBS+ presentation proof verification failed")
	}

	if opts.ExpectedNonce != "" && presented.PresentationProtectedHeader.Nonce != opts.ExpectedNonce {
		return nil, errInvalidProof("presentation nonce does not match the expected challenge")
	}
	if opts.ExpectedAud != "" && presented.PresentationProtectedHeader.Aud != opts.ExpectedAud {
		return nil, errInvalidProof("presentation aud does not match the expected verifier")
	}

	paths, values := presented.disclosedClaims()
	c, err := reconstructCredential(paths, values)
	if err != nil {
		return nil, err
	}

	if err := validator.ValidateCredentialSemantics(c, opts.CredentialValidationOptions); err != nil {
		return nil, err
	}

	return &DecodedJptPresentation{
		Credential:                  c,
		IssuerProtectedHeader:       presented.IssuerProtectedHeader,
		PresentationProtectedHeader: presented.PresentationProtectedHeader,
	}, nil
}

// resolveBBSPublicKey resolves kid in issuerDoc's assertionMethod scope
// and returns its public Jwk, the BBS+ equivalent of how VerifyJws
// resolves the signing method for an ordinary JWS.
func resolveBBSPublicKey(issuerDoc *document.CoreDocument, kid string) (jwk.Jwk, error) {
	method, err := issuerDoc.ResolveMethod(kid, verification.ScopeAssertionMethod)
	if err != nil {
		return jwk.Jwk{}, err
	}
	pub, ok := method.Data.PublicKeyJwk()
	if !ok {
		return jwk.Jwk{}, errMissingKey("method " + method.ID.String() + " does not carry a BBS+ publicKeyJwk")
	}
	return pub, nil
}

func reconstructCredential(paths []string, values []json.RawMessage) (*credential.Credential, error) {
	raw, err := unflattenClaims(paths, values)
	if err != nil {
		return nil, err
	}
	var c credential.Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func payloadValues(payloads []Payload) []json.RawMessage {
	out := make([]json.RawMessage, len(payloads))
	for i, p := range payloads {
		out[i] = p.Value
	}
	return out
}
