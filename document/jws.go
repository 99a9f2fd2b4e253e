package document

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/internal/config"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/jws"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/verification"
)

// defaultVerifyScopes is the set §4.5 step 3 names for a general-purpose
// verify call: "default: AssertionMethod ∪ Authentication".
var defaultVerifyScopes = []verification.MethodScope{
	verification.ScopeAssertionMethod,
	verification.ScopeAuthentication,
}

// JwsSignatureOptions configures CreateJws, mirroring the protected
// header members §4.5 step 3 lists.
type JwsSignatureOptions struct {
	// Kid overrides the protected header's "kid", which otherwise
	// defaults to the resolved method's full id.
	Kid string
	// AttachJwk embeds the method's public Jwk under the header's "jwk"
	// member.
	AttachJwk bool
	Typ       string
	Cty       string
	// B64 selects RFC 7797 detached/unencoded-payload mode when set to
	// false.
	B64    *bool
	Crit   []string
	URL    string
	Nonce  string
	Custom map[string]json.RawMessage
	// Scope restricts which relationship list the signing method is
	// resolved from; empty searches every signing-capable scope.
	Scope verification.MethodScope
	// Config supplies DefaultJWSAlgorithm as the protected header's "alg"
	// when the signing method's publicKeyJwk carries no explicit "alg".
	// Nil leaves an empty alg carried through as-is.
	Config *config.Config
}

// JwsVerificationOptions configures VerifyJws, mirroring §4.5 step 2-3's
// method-selection and scope-check rules.
type JwsVerificationOptions struct {
	// MethodId overrides method selection; when nil the protected
	// header's "kid" is used.
	MethodId *did.DIDUrl
	// MethodScope constrains the resolved method to a single
	// relationship; empty defaults to AssertionMethod ∪ Authentication.
	MethodScope verification.MethodScope
}

// DecodedJws is the result of a successful VerifyJws call: the verified
// protected header and the (decoded, if b64) claims bytes.
type DecodedJws struct {
	ProtectedHeader jws.Header
	Claims          []byte
}

// CreateJws signs payload under the method named by fragment, producing
// a compact JWS per §4.5. The method must carry publicKeyJwk data and
// have a key-id mapping in st.
func (d *CoreDocument) CreateJws(ctx context.Context, st *storage.Storage, fragment string, payload []byte, opts JwsSignatureOptions) (string, error) {
	method, err := d.ResolveMethod(fragment, opts.Scope)
	if err != nil {
		return "", err
	}

	publicJwk, ok := method.Data.PublicKeyJwk()
	if !ok {
		return "", jws.ErrMethodNotFound(fmt.Sprintf("method %s does not carry publicKeyJwk data", method.ID))
	}

	digest, err := method.MethodDigest()
	if err != nil {
		return "", err
	}
	keyId, err := st.GetKeyId(ctx, digest)
	if err != nil {
		return "", err
	}

	alg := publicJwk.Alg
	if alg == "" && opts.Config != nil {
		alg = opts.Config.DefaultJWSAlgorithm
	}

	header := jws.Header{
		Alg:    alg,
		Kid:    method.ID.String(),
		Typ:    opts.Typ,
		Cty:    opts.Cty,
		B64:    opts.B64,
		Crit:   opts.Crit,
		URL:    opts.URL,
		Nonce:  opts.Nonce,
		Custom: opts.Custom,
	}
	if opts.Kid != "" {
		header.Kid = opts.Kid
	}
	if opts.AttachJwk {
		raw, err := json.Marshal(publicJwk)
		if err != nil {
			return "", err
		}
		header.Jwk = raw
	}

	signer := func(ctx context.Context, signingInput []byte) ([]byte, error) {
		return st.Sign(ctx, keyId, signingInput, publicJwk)
	}

	return jws.Encode(ctx, header, payload, signer)
}

// VerifyJws verifies compact against the method it selects (§4.5 step
// 2-4), returning the decoded header and claims. detachedPayload must be
// supplied when compact was produced with B64=false.
func (d *CoreDocument) VerifyJws(compact string, detachedPayload []byte, opts JwsVerificationOptions, verifier jws.SignatureVerifier) (*DecodedJws, error) {
	header, _, _, err := jws.Decode(compact, detachedPayload)
	if err != nil {
		return nil, err
	}

	var query string
	switch {
	case opts.MethodId != nil:
		query = opts.MethodId.String()
	case header.Kid != "":
		query = header.Kid
	default:
		return nil, jws.ErrMissingKid("JWS carries no kid and no methodId override was supplied")
	}

	method, err := d.ResolveMethod(query, "")
	if err != nil {
		return nil, err
	}

	scopes := defaultVerifyScopes
	if opts.MethodScope != "" {
		scopes = []verification.MethodScope{opts.MethodScope}
	}
	if !d.methodInAnyScope(method.ID, scopes) {
		return nil, jws.ErrMethodScopeMismatch(fmt.Sprintf("method %s is not authorized for the requested verification relationship", method.ID))
	}

	publicJwk, ok := method.Data.PublicKeyJwk()
	if !ok {
		return nil, jws.ErrMethodNotFound(fmt.Sprintf("method %s does not carry publicKeyJwk data", method.ID))
	}

	gotHeader, payload, err := jws.Verify(compact, detachedPayload, publicJwk, verifier)
	if err != nil {
		return nil, err
	}
	return &DecodedJws{ProtectedHeader: gotHeader, Claims: payload}, nil
}

// methodInAnyScope reports whether id is embedded in or referenced from
// any of scopes (ScopeVerificationMethod checks the general pool
// directly).
func (d *CoreDocument) methodInAnyScope(id did.DIDUrl, scopes []verification.MethodScope) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, scope := range scopes {
		if scope == verification.ScopeVerificationMethod || scope == "" {
			for _, m := range d.methods {
				if m.ID.Equal(id) {
					return true
				}
			}
			continue
		}
		for _, r := range d.relationships[scope] {
			if r.ID().Equal(id) {
				return true
			}
		}
	}
	return false
}

// GenerateMethod generates a fresh key in st, wraps its public
// projection as a publicKeyJwk VerificationMethod at
// "<document id>#<fragment>", inserts it under scope, and records the
// key-id <-> method-digest mapping. Any failure after key generation
// rolls the generated key back, per §5's cancellation-safety
// requirement.
func (d *CoreDocument) GenerateMethod(ctx context.Context, st *storage.Storage, fragment string, keyType storage.KeyType, alg string, scope verification.MethodScope) (*verification.Method, error) {
	keyId, publicJwk, err := st.Generate(ctx, keyType, alg)
	if err != nil {
		return nil, err
	}

	method, err := d.buildMethod(fragment, publicJwk)
	if err != nil {
		_ = st.Delete(ctx, keyId)
		return nil, err
	}

	digest, err := method.MethodDigest()
	if err != nil {
		_ = st.Delete(ctx, keyId)
		return nil, err
	}

	if err := d.InsertMethod(method, scope); err != nil {
		_ = st.Delete(ctx, keyId)
		return nil, err
	}

	if err := st.InsertKeyId(ctx, digest, keyId); err != nil {
		d.RemoveMethod(method.ID)
		_ = st.Delete(ctx, keyId)
		return nil, err
	}

	return method, nil
}

func (d *CoreDocument) buildMethod(fragment string, publicJwk jwk.Jwk) (*verification.Method, error) {
	methodID, err := did.ParseDIDUrl(d.ID().String() + "#" + fragment)
	if err != nil {
		return nil, err
	}
	data, err := verification.NewJwkMethodData(publicJwk)
	if err != nil {
		return nil, err
	}
	return verification.New(methodID, d.ID(), verification.MethodTypeJsonWebKey2020, data)
}

// PurgeMethod removes the method identified by id and deletes both its
// key-id mapping and the underlying key material in st, failing with
// MethodNotFound if id names no method.
func (d *CoreDocument) PurgeMethod(ctx context.Context, st *storage.Storage, id did.DIDUrl) error {
	method := d.RemoveMethod(id)
	if method == nil {
		return ErrMethodNotFound(id.String())
	}

	digest, err := method.MethodDigest()
	if err != nil {
		return err
	}
	keyId, err := st.GetKeyId(ctx, digest)
	if err != nil {
		return nil
	}
	if err := st.DeleteKeyId(ctx, digest); err != nil {
		return err
	}
	return st.Delete(ctx, keyId)
}
