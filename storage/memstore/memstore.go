// Package memstore implements an in-process storage.Storage backend
// backed by plain Go maps, suitable for tests and single-process
// deployments. Grounded on the minimal in-memory map-plus-mutex style
// bryk-io-pkg's own document tests use for fixture storage, generalized
// to the generate/sign/delete key lifecycle and BBS+ operations
// storage.JwkStorage/storage.KeyIdStorage require.
package memstore

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/google/uuid"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/storage/bbscrypto"
)

type entry struct {
	private jwk.Jwk
	bbs     *bbscrypto.KeyPair
}

// MemStorage is an in-memory storage.JwkStorage + storage.KeyIdStorage.
// Safe for concurrent use.
type MemStorage struct {
	mu     sync.Mutex
	keys   map[string]entry
	keyIds map[string]string // methodDigest -> keyId
}

// New returns an empty MemStorage.
func New() *MemStorage {
	return &MemStorage{
		keys:   map[string]entry{},
		keyIds: map[string]string{},
	}
}

// NewStorage wraps a fresh MemStorage as a storage.Storage.
func NewStorage() *storage.Storage {
	m := New()
	return storage.New(m, m)
}

func keyTypeToJwk(keyType storage.KeyType) (jwk.Kty, jwk.Crv, error) {
	switch keyType {
	case storage.KeyTypeEd25519:
		return jwk.KtyOKP, jwk.CrvEd25519, nil
	case storage.KeyTypeP256:
		return jwk.KtyEC, jwk.CrvP256, nil
	case storage.KeyTypeP384:
		return jwk.KtyEC, jwk.CrvP384, nil
	case storage.KeyTypeP521:
		return jwk.KtyEC, jwk.CrvP521, nil
	case storage.KeyTypeRSA:
		return jwk.KtyRSA, "", nil
	default:
		return "", "", storage.ErrUnsupportedKeyType(string(keyType))
	}
}

// Generate implements storage.JwkStorage.
func (m *MemStorage) Generate(_ context.Context, keyType storage.KeyType, alg string) (string, jwk.Jwk, error) {
	kty, crv, err := keyTypeToJwk(keyType)
	if err != nil {
		return "", jwk.Jwk{}, err
	}
	key, err := jwk.Generate(kty, crv, alg)
	if err != nil {
		return "", jwk.Jwk{}, storage.ErrStorageBackend("key generation failed", err)
	}

	keyId := uuid.NewString()
	m.mu.Lock()
	m.keys[keyId] = entry{private: key}
	m.mu.Unlock()

	return keyId, key.ToPublic(), nil
}

// Insert implements storage.JwkStorage.
func (m *MemStorage) Insert(_ context.Context, key jwk.Jwk) (string, error) {
	if key.IsPublic() {
		return "", storage.ErrUnsupportedKeyType("insert requires private key material")
	}
	keyId := uuid.NewString()
	m.mu.Lock()
	m.keys[keyId] = entry{private: key}
	m.mu.Unlock()
	return keyId, nil
}

// Sign implements storage.JwkStorage. publicJwk is used only to select
// the signing algorithm; the private key actually used always comes from
// the stored entry at keyId.
func (m *MemStorage) Sign(_ context.Context, keyId string, data []byte, publicJwk jwk.Jwk) ([]byte, error) {
	m.mu.Lock()
	e, ok := m.keys[keyId]
	m.mu.Unlock()
	if !ok {
		return nil, storage.ErrKeyNotFound("no key stored under keyId " + keyId)
	}

	switch e.private.Kty {
	case jwk.KtyOKP:
		if e.private.Crv != jwk.CrvEd25519 {
			return nil, storage.ErrUnsupportedKeyType("unsupported OKP curve: " + string(e.private.Crv))
		}
		seed, err := decodeEd25519Seed(e.private)
		if err != nil {
			return nil, storage.ErrStorageBackend("failed to decode ed25519 private key", err)
		}
		return ed25519.Sign(ed25519.NewKeyFromSeed(seed), data), nil
	default:
		return nil, storage.ErrUnsupportedKeyType("memstore only signs with Ed25519 keys; got " + string(e.private.Kty))
	}
}

// Delete implements storage.JwkStorage.
func (m *MemStorage) Delete(_ context.Context, keyId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[keyId]; !ok {
		return storage.ErrKeyNotFound("no key stored under keyId " + keyId)
	}
	delete(m.keys, keyId)
	return nil
}

// Exists implements storage.JwkStorage.
func (m *MemStorage) Exists(_ context.Context, keyId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[keyId]
	return ok, nil
}

// GenerateBBS implements storage.JwkStorage.
func (m *MemStorage) GenerateBBS(_ context.Context, alg storage.ProofAlgorithm) (string, jwk.Jwk, error) {
	pair, err := bbscrypto.GenerateKeyPair()
	if err != nil {
		return "", jwk.Jwk{}, storage.ErrStorageBackend("bbs key generation failed", err)
	}

	publicJwk := jwk.Jwk{
		Kty: jwk.KtyOKP,
		Crv: jwk.CrvBLS12381G2,
		X:   encodeBase64URL(bbscrypto.EncodePublicKey(pair.Public)),
		Alg: string(alg),
	}

	keyId := uuid.NewString()
	m.mu.Lock()
	m.keys[keyId] = entry{bbs: pair}
	m.mu.Unlock()

	return keyId, publicJwk, nil
}

// SignBBS implements storage.JwkStorage.
func (m *MemStorage) SignBBS(_ context.Context, keyId string, messages [][]byte, publicJwk jwk.Jwk, header []byte) ([]byte, error) {
	m.mu.Lock()
	e, ok := m.keys[keyId]
	m.mu.Unlock()
	if !ok || e.bbs == nil {
		return nil, storage.ErrKeyNotFound("no bbs key stored under keyId " + keyId)
	}
	return bbscrypto.Sign(e.bbs.Secret, messages, header)
}

// UpdateBBSSignature implements storage.JwkStorage, rotating the
// validity-timeframe message described by updateCtx in place.
func (m *MemStorage) UpdateBBSSignature(_ context.Context, keyId string, publicJwk jwk.Jwk, signature []byte, updateCtx storage.ProofUpdateCtx) ([]byte, error) {
	m.mu.Lock()
	e, ok := m.keys[keyId]
	m.mu.Unlock()
	if !ok || e.bbs == nil {
		return nil, storage.ErrKeyNotFound("no bbs key stored under keyId " + keyId)
	}

	oldMessage := append(append([]byte{}, updateCtx.OldStartValidityTimeframe...), updateCtx.OldEndValidityTimeframe...)
	newMessage := append(append([]byte{}, updateCtx.NewStartValidityTimeframe...), updateCtx.NewEndValidityTimeframe...)

	return bbscrypto.UpdateValidityTimeframe(e.bbs.Secret, signature, updateCtx.Index, oldMessage, newMessage)
}

// InsertKeyId implements storage.KeyIdStorage.
func (m *MemStorage) InsertKeyId(_ context.Context, methodDigest string, keyId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keyIds[methodDigest]; ok {
		return storage.ErrKeyIdAlreadyExists("methodDigest " + methodDigest + " already has a keyId mapping")
	}
	m.keyIds[methodDigest] = keyId
	return nil
}

// GetKeyId implements storage.KeyIdStorage.
func (m *MemStorage) GetKeyId(_ context.Context, methodDigest string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keyId, ok := m.keyIds[methodDigest]
	if !ok {
		return "", storage.ErrKeyNotFound("no keyId mapping for methodDigest " + methodDigest)
	}
	return keyId, nil
}

// DeleteKeyId implements storage.KeyIdStorage.
func (m *MemStorage) DeleteKeyId(_ context.Context, methodDigest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyIds, methodDigest)
	return nil
}
