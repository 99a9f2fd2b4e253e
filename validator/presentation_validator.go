package validator

import (
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/jws"
	"github.com/iotaledger/iota-identity-go/verification"
)

// DecodedJwtPresentation is the result of a successful
// JwtPresentationValidator.Validate call.
type DecodedJwtPresentation struct {
	Presentation    *credential.Presentation
	ProtectedHeader jws.Header
	CustomClaims    map[string]json.RawMessage
}

// JwtPresentationValidator implements §4.6's JwtPresentationValidator. It
// verifies the holder's JWS and decodes claims into a Presentation; it
// does not validate any embedded credential, leaving that to a separate
// JwtCredentialValidator.Validate call per embedded JWT.
type JwtPresentationValidator struct {
	Verifier jws.SignatureVerifier
}

// Validate runs the holder-JWS verification and structural checks
// JwtPresentationValidator.validate performs: the JWS must verify
// against holderDoc under the Authentication relationship, the
// projected Presentation's first type must be VerifiablePresentation,
// and its holder must resolve as a DID.
func (v JwtPresentationValidator) Validate(compact string, holderDoc *document.CoreDocument, opts PresentationValidationOptions) (*DecodedJwtPresentation, error) {
	decoded, err := holderDoc.VerifyJws(compact, nil, document.JwsVerificationOptions{
		MethodScope: verification.ScopeAuthentication,
	}, v.Verifier)
	if err != nil {
		return nil, err
	}

	p, custom, err := credential.FromJwtPresentationClaims(decoded.Claims)
	if err != nil {
		return nil, err
	}

	var verr ValidationError
	fail := func(err error) error {
		if opts.FailureMode == FailFast {
			return err
		}
		verr.add(err)
		return nil
	}

	if structErr := p.Validate(); structErr != nil {
		if err := fail(errStructuralMismatch(structErr.Error())); err != nil {
			return nil, err
		}
	}
	if len(p.Type) == 0 || p.Type[0] != credential.TypeVerifiablePresentation {
		if err := fail(errStructuralMismatch("first type must be VerifiablePresentation")); err != nil {
			return nil, err
		}
	}
	if _, parseErr := did.Parse(p.Holder); parseErr != nil {
		if err := fail(errHolderNotDID(p.Holder)); err != nil {
			return nil, err
		}
	}

	if combined := verr.asError(); combined != nil {
		return nil, combined
	}

	return &DecodedJwtPresentation{
		Presentation:    p,
		ProtectedHeader: decoded.ProtectedHeader,
		CustomClaims:    custom,
	}, nil
}
