package sdjwt

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/jws"
)

// KeyBindingJwtTyp is the mandatory "typ" header value of a key-binding
// JWT.
const KeyBindingJwtTyp = "kb+jwt"

// KeyBindingJwtClaims is the payload of a key-binding JWT: the
// verifier's nonce and audience, the holder's issuance time, and a
// digest binding the KB-JWT to the exact presentation it accompanies.
type KeyBindingJwtClaims struct {
	Nonce  string `json:"nonce"`
	Aud    string `json:"aud"`
	Iat    int64  `json:"iat"`
	SdHash string `json:"sd_hash"`
}

// KeyBindingValidationOptions configures
// SdJwtCredentialValidator.ValidateKeyBindingJwt. Empty
// ExpectedNonce/ExpectedAud skip that check.
type KeyBindingValidationOptions struct {
	ExpectedNonce string
	ExpectedAud   string
	// EarliestIat/LatestIat bound the KB-JWT's "iat"; zero values
	// disable the respective bound.
	EarliestIat time.Time
	LatestIat   time.Time
}

// SdJwtCredentialValidator verifies the key-binding JWT a holder
// attaches to a presented SD-JWT.
type SdJwtCredentialValidator struct {
	Verifier jws.SignatureVerifier
}

// ValidateKeyBindingJwt verifies sdJwt.KeyBindingJwt against holderDoc,
// enforces typ == "kb+jwt", and checks that its sd_hash matches the
// digest of the JWT and disclosures presented alongside it (everything
// in the compact serialization before the key-binding JWT itself).
func (v SdJwtCredentialValidator) ValidateKeyBindingJwt(sdJwt *SdJwt, holderDoc *document.CoreDocument, opts KeyBindingValidationOptions) (*KeyBindingJwtClaims, error) {
	if sdJwt.KeyBindingJwt == "" {
		return nil, ErrInvalidKeyBinding("sd-jwt carries no key-binding jwt", nil)
	}

	decoded, err := holderDoc.VerifyJws(sdJwt.KeyBindingJwt, nil, document.JwsVerificationOptions{}, v.Verifier)
	if err != nil {
		return nil, err
	}
	if decoded.ProtectedHeader.Typ != KeyBindingJwtTyp {
		return nil, ErrKeyBindingTyp(decoded.ProtectedHeader.Typ)
	}

	var claims KeyBindingJwtClaims
	if err := json.Unmarshal(decoded.Claims, &claims); err != nil {
		return nil, ErrInvalidKeyBinding("failed to decode key-binding jwt claims", err)
	}

	presented := SdJwt{Jwt: sdJwt.Jwt, Disclosures: sdJwt.Disclosures}.Compact()
	wantHash := sdHash(presented)
	if claims.SdHash != wantHash {
		return nil, ErrKeyBindingSdHash("sd_hash does not match the presented jwt and disclosures")
	}

	if opts.ExpectedNonce != "" && claims.Nonce != opts.ExpectedNonce {
		return nil, ErrKeyBindingClaim("nonce does not match expected value")
	}
	if opts.ExpectedAud != "" && claims.Aud != opts.ExpectedAud {
		return nil, ErrKeyBindingClaim("aud does not match expected value")
	}
	iat := time.Unix(claims.Iat, 0).UTC()
	if !opts.EarliestIat.IsZero() && iat.Before(opts.EarliestIat) {
		return nil, ErrKeyBindingClaim("iat is before the earliest allowed time")
	}
	if !opts.LatestIat.IsZero() && iat.After(opts.LatestIat) {
		return nil, ErrKeyBindingClaim("iat is after the latest allowed time")
	}

	return &claims, nil
}

func sdHash(presented string) string {
	sum := sha256.Sum256([]byte(presented))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
