package jwp

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	bls "github.com/kilic/bls12-381"

	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage/bbscrypto"
)

// JwpPresented is a holder-derived presentation of a JwpIssued (§4.8):
// each originally-issued payload is either still Disclosed/ProofMethods
// (its Value travels unchanged) or has become Undisclosed, in which case
// its Value is replaced by Commitment -- the base64url encoding of
// bbscrypto.MessageTerm(i, value), the per-message elliptic-curve
// contribution that lets a verifier fold the hidden message back into
// the signature check without ever learning its plaintext.
//
// Proof forwards the issuer's original BBS+ signature unchanged. This is
// the package's one deliberate departure from a true JWP/BBS+
// presentation, which re-randomizes the signature and accompanies it
// with a zero-knowledge proof of knowledge; storage/bbscrypto documents
// the same simplification at the primitive level, and this package
// inherits it rather than inventing a randomization layer the rest of
// the module's cryptography does not otherwise need.
type JwpPresented struct {
	IssuerProtectedHeader        IssuerProtectedHeader
	PresentationProtectedHeader  PresentationProtectedHeader
	Payloads                     []PresentedPayload
	Proof                        []byte
}

// Present builds a JwpPresented from j, concealing every claim path in
// undisclosed and binding nonce/aud into the presentation header.
func (j *JwpIssued) Present(undisclosed map[string]bool, nonce, aud, presentationKid string) (*JwpPresented, error) {
	presented := make([]PresentedPayload, len(j.Payloads))
	for i, payload := range j.Payloads {
		path := j.ProtectedHeader.Claims[i]
		if payload.Kind != ProofMethods && undisclosed[path] {
			term := bbscrypto.MessageTerm(i, payload.Value)
			presented[i] = PresentedPayload{
				Kind:       Undisclosed,
				Commitment: base64.RawURLEncoding.EncodeToString(bbscrypto.EncodeG1Point(term)),
			}
			continue
		}
		presented[i] = PresentedPayload{Kind: payload.Kind, Value: payload.Value}
	}

	proof := make([]byte, len(j.Signature))
	copy(proof, j.Signature)

	return &JwpPresented{
		IssuerProtectedHeader: j.ProtectedHeader,
		PresentationProtectedHeader: PresentationProtectedHeader{
			Typ:   "JPT-Presented",
			Alg:   j.ProtectedHeader.Alg,
			Kid:   presentationKid,
			Nonce: nonce,
			Aud:   aud,
		},
		Payloads: presented,
		Proof:    proof,
	}, nil
}

// ClaimValue returns the disclosed value at path, or
// ErrMissingCommitment if that claim was concealed in this presentation.
func (p *JwpPresented) ClaimValue(path string) (json.RawMessage, error) {
	for i, claim := range p.IssuerProtectedHeader.Claims {
		if claim != path {
			continue
		}
		if p.Payloads[i].Kind == Undisclosed {
			return nil, errMissingCommitment(path)
		}
		return p.Payloads[i].Value, nil
	}
	return nil, errUnknownClaim(path)
}

// disclosedClaims returns the subset of p's claim paths/values that
// remain disclosed, for reconstructing a credential JSON document (see
// validator.go).
func (p *JwpPresented) disclosedClaims() ([]string, []json.RawMessage) {
	var paths []string
	var values []json.RawMessage
	for i, claim := range p.IssuerProtectedHeader.Claims {
		if p.Payloads[i].Kind == Undisclosed {
			continue
		}
		paths = append(paths, claim)
		values = append(values, p.Payloads[i].Value)
	}
	return paths, values
}

func (p *JwpPresented) termsAndDisclosed() (map[int][]byte, map[int]*bls.PointG1, error) {
	disclosed := map[int][]byte{}
	terms := map[int]*bls.PointG1{}
	for i, payload := range p.Payloads {
		if payload.Kind == Undisclosed {
			if payload.Commitment == "" {
				return nil, nil, errMissingCommitment(p.IssuerProtectedHeader.Claims[i])
			}
			raw, err := base64.RawURLEncoding.DecodeString(payload.Commitment)
			if err != nil {
				return nil, nil, errInvalidProof("malformed commitment encoding: " + err.Error())
			}
			point, err := bbscrypto.DecodeG1Point(raw)
			if err != nil {
				return nil, nil, errInvalidProof("malformed commitment point: " + err.Error())
			}
			terms[i] = point
			continue
		}
		disclosed[i] = []byte(payload.Value)
	}
	return disclosed, terms, nil
}

// Verify checks p's proof against the issuer's public key: every
// disclosed payload's actual message and every undisclosed payload's
// commitment term are folded back into the signed commitment, and the
// issuer's original pairing equation must still hold.
func (p *JwpPresented) Verify(pub jwk.Jwk) (bool, error) {
	pubPoint, err := decodeBBSPublicKey(pub)
	if err != nil {
		return false, err
	}
	disclosed, terms, err := p.termsAndDisclosed()
	if err != nil {
		return false, err
	}
	headerJSON, err := json.Marshal(p.IssuerProtectedHeader)
	if err != nil {
		return false, err
	}
	return bbscrypto.VerifyWithTerms(pubPoint, p.Proof, headerJSON, len(p.Payloads), disclosed, terms)
}

type presentedWireHeader struct {
	Issuer       IssuerProtectedHeader       `json:"issuer"`
	Presentation PresentationProtectedHeader `json:"presentation"`
}

// Compact serializes p as
// "<base64url(issuer+presentation headers)>.<base64url(payloads)>.<base64url(proof)>".
func (p *JwpPresented) Compact() (string, error) {
	headerJSON, err := json.Marshal(presentedWireHeader{Issuer: p.IssuerProtectedHeader, Presentation: p.PresentationProtectedHeader})
	if err != nil {
		return "", err
	}
	payloadsJSON, err := json.Marshal(p.Payloads)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		base64.RawURLEncoding.EncodeToString(headerJSON),
		base64.RawURLEncoding.EncodeToString(payloadsJSON),
		base64.RawURLEncoding.EncodeToString(p.Proof),
	}, "."), nil
}

// ParseJwpPresented reverses Compact.
func ParseJwpPresented(compact string) (*JwpPresented, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return nil, errMalformedCompact("presented JWP must have exactly 3 dot-separated segments")
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errMalformedCompact("invalid header encoding")
	}
	var wire presentedWireHeader
	if err := json.Unmarshal(headerJSON, &wire); err != nil {
		return nil, errMalformedCompact("invalid header JSON")
	}

	payloadsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errMalformedCompact("invalid payloads encoding")
	}
	var payloads []PresentedPayload
	if err := json.Unmarshal(payloadsJSON, &payloads); err != nil {
		return nil, errMalformedCompact("invalid payloads JSON")
	}

	proof, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, errMalformedCompact("invalid proof encoding")
	}

	if len(wire.Issuer.Claims) != len(payloads) {
		return nil, errClaimCountMismatch("header carries a different claim count than payloads")
	}

	return &JwpPresented{
		IssuerProtectedHeader:       wire.Issuer,
		PresentationProtectedHeader: wire.Presentation,
		Payloads:                    payloads,
		Proof:                       proof,
	}, nil
}
