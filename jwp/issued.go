package jwp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/storage/bbscrypto"
)

// JwpIssued is an issuer-produced JWP (§4.8): an ordered, stably-indexed
// message vector (ProtectedHeader.Claims[i] <-> Payloads[i]) plus a
// BBS+-style signature over it.
type JwpIssued struct {
	ProtectedHeader IssuerProtectedHeader
	Payloads        []Payload
	Signature       []byte
}

// NewJwpIssuedFromCredential flattens c into the ordered dot/bracket
// claim-path vector a JwpIssued signs over (see flattenClaims). Every
// payload starts Disclosed; concealment happens later, at presentation
// time, via SelectiveDisclosurePresentation.
func NewJwpIssuedFromCredential(c *credential.Credential, alg storage.ProofAlgorithm, kid string) (*JwpIssued, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	paths, values, err := flattenClaims("", raw)
	if err != nil {
		return nil, err
	}
	payloads := make([]Payload, len(values))
	for i, v := range values {
		payloads[i] = Payload{Kind: Disclosed, Value: v}
	}
	return &JwpIssued{
		ProtectedHeader: IssuerProtectedHeader{
			Typ:    "JPT",
			Alg:    alg,
			Kid:    kid,
			Claims: paths,
		},
		Payloads: payloads,
	}, nil
}

// messages returns the ordered byte vector bbscrypto signs/verifies.
func (j *JwpIssued) messages() [][]byte {
	out := make([][]byte, len(j.Payloads))
	for i, p := range j.Payloads {
		out[i] = []byte(p.Value)
	}
	return out
}

func (j *JwpIssued) headerBytes() ([]byte, error) {
	return json.Marshal(j.ProtectedHeader)
}

// Sign computes the BBS+ signature over j's message vector via st,
// binding the protected header in as the unordered header argument.
func (j *JwpIssued) Sign(ctx context.Context, st *storage.Storage, keyId string, publicJwk jwk.Jwk) error {
	header, err := j.headerBytes()
	if err != nil {
		return err
	}
	sig, err := st.SignBBS(ctx, keyId, j.messages(), publicJwk, header)
	if err != nil {
		return err
	}
	j.Signature = sig
	return nil
}

// Verify checks j's signature against pub with every payload disclosed.
// Used to validate a freshly-issued JwpIssued before any concealment has
// happened.
func (j *JwpIssued) Verify(pub jwk.Jwk) (bool, error) {
	pubPoint, err := decodeBBSPublicKey(pub)
	if err != nil {
		return false, err
	}
	header, err := j.headerBytes()
	if err != nil {
		return false, err
	}
	return bbscrypto.Verify(pubPoint, j.Signature, j.messages(), header)
}

// ClaimValue returns the disclosed value at the given flattened claim
// path, or ErrUnknownClaim if no payload carries that path.
func (j *JwpIssued) ClaimValue(path string) (json.RawMessage, error) {
	for i, claim := range j.ProtectedHeader.Claims {
		if claim == path {
			return j.Payloads[i].Value, nil
		}
	}
	return nil, errUnknownClaim(path)
}

// Compact serializes j as
// "<base64url(header)>.<base64url(payloads)>.<base64url(signature)>",
// the JPT-issued-form analog of document/jws.go's JWS compact
// serialization generalized from one payload to an ordered vector.
func (j *JwpIssued) Compact() (string, error) {
	headerJSON, err := j.headerBytes()
	if err != nil {
		return "", err
	}
	payloadsJSON, err := json.Marshal(j.Payloads)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		base64.RawURLEncoding.EncodeToString(headerJSON),
		base64.RawURLEncoding.EncodeToString(payloadsJSON),
		base64.RawURLEncoding.EncodeToString(j.Signature),
	}, "."), nil
}

// ParseJwpIssued reverses Compact.
func ParseJwpIssued(compact string) (*JwpIssued, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return nil, errMalformedCompact("issued JWP must have exactly 3 dot-separated segments")
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errMalformedCompact("invalid protected header encoding")
	}
	var header IssuerProtectedHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, errMalformedCompact("invalid protected header JSON")
	}

	payloadsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errMalformedCompact("invalid payloads encoding")
	}
	var payloads []Payload
	if err := json.Unmarshal(payloadsJSON, &payloads); err != nil {
		return nil, errMalformedCompact("invalid payloads JSON")
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, errMalformedCompact("invalid signature encoding")
	}

	if len(header.Claims) != len(payloads) {
		return nil, errClaimCountMismatch("header carries a different claim count than payloads")
	}

	return &JwpIssued{ProtectedHeader: header, Payloads: payloads, Signature: sig}, nil
}
