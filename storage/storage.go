// Package storage defines the pluggable key-material abstraction every
// signing operation in this module goes through: a JwkStorage holding
// opaque key-ids and (optionally) BBS+ secret state, and a KeyIdStorage
// mapping a verification method's digest to the key-id that backs it.
// Private key material never crosses either interface boundary outward;
// callers only ever see public JWKs and opaque key-id strings.
//
// Grounded on dc4eu-vc's internal/persistent/db service boundary (a
// driver-backed store behind a narrow interface, wrapped errors, otel
// spans), generalized from a document-store shape to the generate/sign/
// delete key-lifecycle this module needs.
package storage

import (
	"context"

	"github.com/iotaledger/iota-identity-go/jwk"
)

// KeyType names a storage-specific key-generation constant, e.g.
// "Ed25519" or "P256". Distinct from jwk.Kty: a backend may expose
// several KeyTypes that map to the same Kty/Crv pair.
type KeyType string

const (
	KeyTypeEd25519 KeyType = "Ed25519"
	KeyTypeP256    KeyType = "P256"
	KeyTypeP384    KeyType = "P384"
	KeyTypeP521    KeyType = "P521"
	KeyTypeRSA     KeyType = "RSA"
)

// ProofAlgorithm names a BBS+/JWP proof algorithm.
type ProofAlgorithm string

const (
	ProofAlgorithmBLS12381SHA256   ProofAlgorithm = "BLS12381-SHA256"
	ProofAlgorithmBLS12381SHAKE256 ProofAlgorithm = "BLS12381-SHAKE256"
)

// ProofUpdateCtx carries the minimum state a holder needs to request a
// BBS+ signature update (the RevocationTimeframe2024 workflow): the old
// and new validity-timeframe bytes, plus the claim indices they occupy
// in the signed message vector. It never carries secret state.
type ProofUpdateCtx struct {
	OldStartValidityTimeframe []byte
	OldEndValidityTimeframe   []byte
	NewStartValidityTimeframe []byte
	NewEndValidityTimeframe   []byte
	// Index is the position of the validity-timeframe claim in the
	// signed message vector that SignBBS produced the signature over.
	Index int
}

// JwkStorage holds key material behind opaque key-ids. Implementations
// must never return private-key components from anywhere but Generate
// and Insert's own internal state.
type JwkStorage interface {
	// Generate creates a fresh key of the given type for use with alg,
	// returning an opaque key-id and the key's public projection.
	Generate(ctx context.Context, keyType KeyType, alg string) (keyId string, publicJwk jwk.Jwk, err error)

	// Insert imports an existing key, which must carry private
	// components, returning the key-id it is stored under.
	Insert(ctx context.Context, key jwk.Jwk) (keyId string, err error)

	// Sign produces a signature over data using the key at keyId. The
	// caller-supplied publicJwk is used only to determine the
	// algorithm/curve, never trusted as the signing key itself.
	Sign(ctx context.Context, keyId string, data []byte, publicJwk jwk.Jwk) (signature []byte, err error)

	// Delete removes the key at keyId. Deleting an unknown key-id is an
	// ErrKeyNotFound.
	Delete(ctx context.Context, keyId string) error

	// Exists reports whether keyId names a stored key.
	Exists(ctx context.Context, keyId string) (bool, error)

	// GenerateBBS creates a fresh BBS+ secret key for proof algorithm
	// alg, returning an opaque key-id and the corresponding public JWK.
	GenerateBBS(ctx context.Context, alg ProofAlgorithm) (keyId string, publicJwk jwk.Jwk, err error)

	// SignBBS signs the ordered message vector, returning a BBS+
	// signature over it. header, if non-nil, is bound into the
	// signature as an additional unordered message.
	SignBBS(ctx context.Context, keyId string, messages [][]byte, publicJwk jwk.Jwk, header []byte) (signature []byte, err error)

	// UpdateBBSSignature rotates the validity-timeframe claim described
	// by updateCtx within an existing signature, leaving every other
	// signed message unchanged, and returns the updated signature.
	UpdateBBSSignature(ctx context.Context, keyId string, publicJwk jwk.Jwk, signature []byte, updateCtx ProofUpdateCtx) ([]byte, error)
}

// KeyIdStorage maps a verification method's digest (jwk.MethodDigest) to
// the key-id a JwkStorage holds its key material under. Exactly one
// mapping exists per method digest at any time.
type KeyIdStorage interface {
	// InsertKeyId records digest -> keyId. Fails with
	// ErrKeyIdAlreadyExists if digest already has a mapping.
	InsertKeyId(ctx context.Context, methodDigest string, keyId string) error

	// GetKeyId looks up the key-id for methodDigest. Fails with
	// ErrKeyNotFound if absent.
	GetKeyId(ctx context.Context, methodDigest string) (string, error)

	// DeleteKeyId removes the mapping for methodDigest, if any.
	DeleteKeyId(ctx context.Context, methodDigest string) error
}

// Storage composes a JwkStorage and a KeyIdStorage into the single
// collaborating pair CoreDocument's method lifecycle (generateMethod /
// purgeMethod / createJws) operates against.
type Storage struct {
	JwkStorage
	KeyIdStorage
}

// New wraps a JwkStorage/KeyIdStorage pair into a Storage.
func New(keys JwkStorage, ids KeyIdStorage) *Storage {
	return &Storage{JwkStorage: keys, KeyIdStorage: ids}
}
