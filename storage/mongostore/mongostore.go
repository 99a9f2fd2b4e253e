// Package mongostore implements a storage.Storage backend over
// go.mongodb.org/mongo-driver, for deployments that need key material
// and key-id mappings to survive process restarts. Grounded on
// dc4eu-vc's internal/persistent/db package: a Service wrapping
// *mongo.Client, per-collection wrapper types with their own
// createIndex, otel-traced operations, and *Backend-wrapped driver
// errors at the core/external boundary.
package mongostore

import (
	"context"
	"encoding/base64"
	"errors"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"

	"github.com/iotaledger/iota-identity-go/internal/config"
	"github.com/iotaledger/iota-identity-go/internal/xlog"
	"github.com/iotaledger/iota-identity-go/internal/xtrace"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/storage/bbscrypto"
)

// Storage is a storage.JwkStorage + storage.KeyIdStorage backed by two
// mongo collections: "keys" (key material, keyed by keyId) and "key_ids"
// (methodDigest -> keyId mappings).
type Storage struct {
	client *mongo.Client
	tracer *xtrace.Tracer
	log    *xlog.Log
	keys   *mongo.Collection
	keyIds *mongo.Collection
}

// Connect dials uri and returns a ready Storage scoped to database
// "identity". log and tracer may be nil.
func Connect(ctx context.Context, uri string, log *xlog.Log, tracer *xtrace.Tracer) (*Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, ErrConnectionFailure("failed to connect to mongo", err)
	}

	db := client.Database("identity")
	s := &Storage{
		client: client,
		tracer: tracer,
		log:    log.Named("mongostore"),
		keys:   db.Collection("keys"),
		keyIds: db.Collection("key_ids"),
	}

	if err := s.keyIds.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "keyId", Value: 1}},
		Options: options.Index().SetName("keyId_lookup"),
	}); err != nil {
		return nil, ErrConnectionFailure("failed to create key_ids index", err)
	}

	s.log.Info("connected")
	return s, nil
}

// ConnectFromConfig dials cfg.MongoURI and returns a ready Storage, the
// way a deployment wiring itself up from an internal/config.Config
// (rather than a hand-supplied URI) would call Connect.
func ConnectFromConfig(ctx context.Context, cfg *config.Config, log *xlog.Log, tracer *xtrace.Tracer) (*Storage, error) {
	return Connect(ctx, cfg.MongoURI, log, tracer)
}

// NewStorage wraps s as a *storage.Storage.
func NewStorage(s *Storage) *storage.Storage {
	return storage.New(s, s)
}

// Close disconnects the underlying mongo client.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) start(ctx context.Context, name string) (context.Context, func(err error)) {
	ctx, span := s.tracer.Start(ctx, name)
	return ctx, func(err error) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

type keyDocument struct {
	ID        string   `bson:"_id"`
	Private   *jwk.Jwk `bson:"private,omitempty"`
	BBSSecret string   `bson:"bbsSecret,omitempty"`
}

type keyIdDocument struct {
	MethodDigest string `bson:"_id"`
	KeyId        string `bson:"keyId"`
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
func (s *Storage) Generate(ctx context.Context, keyType storage.KeyType, alg string) (string, jwk.Jwk, error) {
	ctx, end := s.start(ctx, "mongostore:generate")
	defer func() { end(nil) }()

	kty, crv, err := keyTypeToJwk(keyType)
	if err != nil {
		return "", jwk.Jwk{}, err
	}
	key, err := jwk.Generate(kty, crv, alg)
	if err != nil {
		return "", jwk.Jwk{}, storage.ErrStorageBackend("key generation failed", err)
	}

	keyId := keyID()
	if _, err := s.keys.InsertOne(ctx, keyDocument{ID: keyId, Private: &key}); err != nil {
		return "", jwk.Jwk{}, ErrConnectionFailure("failed to insert generated key", err)
	}
	s.log.Debug("generated key", "keyId", keyId)
	return keyId, key.ToPublic(), nil
}

// Insert implements storage.JwkStorage.
func (s *Storage) Insert(ctx context.Context, key jwk.Jwk) (string, error) {
	ctx, end := s.start(ctx, "mongostore:insert")
	defer func() { end(nil) }()

	if key.IsPublic() {
		return "", storage.ErrUnsupportedKeyType("insert requires private key material")
	}
	keyId := keyID()
	if _, err := s.keys.InsertOne(ctx, keyDocument{ID: keyId, Private: &key}); err != nil {
		return "", ErrConnectionFailure("failed to insert key", err)
	}
	return keyId, nil
}

func (s *Storage) loadKey(ctx context.Context, keyId string) (keyDocument, error) {
	var doc keyDocument
	err := s.keys.FindOne(ctx, bson.M{"_id": keyId}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return keyDocument{}, storage.ErrKeyNotFound("no key stored under keyId " + keyId)
	}
	if err != nil {
		return keyDocument{}, ErrConnectionFailure("failed to load key", err)
	}
	return doc, nil
}

// Sign implements storage.JwkStorage.
func (s *Storage) Sign(ctx context.Context, keyId string, data []byte, publicJwk jwk.Jwk) ([]byte, error) {
	ctx, end := s.start(ctx, "mongostore:sign")
	doc, err := s.loadKey(ctx, keyId)
	if err != nil {
		end(err)
		return nil, err
	}
	sig, err := signWithPrivate(*doc.Private, data)
	end(err)
	return sig, err
}

// Delete implements storage.JwkStorage.
func (s *Storage) Delete(ctx context.Context, keyId string) error {
	ctx, end := s.start(ctx, "mongostore:delete")
	defer func() { end(nil) }()

	res, err := s.keys.DeleteOne(ctx, bson.M{"_id": keyId})
	if err != nil {
		return ErrConnectionFailure("failed to delete key", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrKeyNotFound("no key stored under keyId " + keyId)
	}
	return nil
}

// Exists implements storage.JwkStorage.
func (s *Storage) Exists(ctx context.Context, keyId string) (bool, error) {
	ctx, end := s.start(ctx, "mongostore:exists")
	defer func() { end(nil) }()

	count, err := s.keys.CountDocuments(ctx, bson.M{"_id": keyId})
	if err != nil {
		return false, ErrConnectionFailure("failed to check key existence", err)
	}
	return count > 0, nil
}

// GenerateBBS implements storage.JwkStorage.
func (s *Storage) GenerateBBS(ctx context.Context, alg storage.ProofAlgorithm) (string, jwk.Jwk, error) {
	ctx, end := s.start(ctx, "mongostore:generateBBS")
	defer func() { end(nil) }()

	pair, err := bbscrypto.GenerateKeyPair()
	if err != nil {
		return "", jwk.Jwk{}, storage.ErrStorageBackend("bbs key generation failed", err)
	}

	publicJwk := jwk.Jwk{
		Kty: jwk.KtyOKP,
		Crv: jwk.CrvBLS12381G2,
		X:   base64.RawURLEncoding.EncodeToString(bbscrypto.EncodePublicKey(pair.Public)),
		Alg: string(alg),
	}

	keyId := keyID()
	doc := keyDocument{ID: keyId, BBSSecret: pair.Secret.Text(16)}
	if _, err := s.keys.InsertOne(ctx, doc); err != nil {
		return "", jwk.Jwk{}, ErrConnectionFailure("failed to insert bbs key", err)
	}
	return keyId, publicJwk, nil
}

// SignBBS implements storage.JwkStorage.
func (s *Storage) SignBBS(ctx context.Context, keyId string, messages [][]byte, publicJwk jwk.Jwk, header []byte) ([]byte, error) {
	ctx, end := s.start(ctx, "mongostore:signBBS")
	doc, err := s.loadKey(ctx, keyId)
	if err != nil {
		end(err)
		return nil, err
	}
	if doc.BBSSecret == "" {
		end(nil)
		return nil, storage.ErrKeyNotFound("keyId " + keyId + " does not hold a bbs key")
	}
	secret, ok := new(big.Int).SetString(doc.BBSSecret, 16)
	if !ok {
		end(nil)
		return nil, storage.ErrStorageBackend("stored bbs secret is malformed", nil)
	}
	sig, err := bbscrypto.Sign(secret, messages, header)
	end(err)
	return sig, err
}

// UpdateBBSSignature implements storage.JwkStorage.
func (s *Storage) UpdateBBSSignature(ctx context.Context, keyId string, publicJwk jwk.Jwk, signature []byte, updateCtx storage.ProofUpdateCtx) ([]byte, error) {
	ctx, end := s.start(ctx, "mongostore:updateBBSSignature")
	doc, err := s.loadKey(ctx, keyId)
	if err != nil {
		end(err)
		return nil, err
	}
	if doc.BBSSecret == "" {
		end(nil)
		return nil, storage.ErrKeyNotFound("keyId " + keyId + " does not hold a bbs key")
	}
	secret, ok := new(big.Int).SetString(doc.BBSSecret, 16)
	if !ok {
		end(nil)
		return nil, storage.ErrStorageBackend("stored bbs secret is malformed", nil)
	}

	oldMessage := append(append([]byte{}, updateCtx.OldStartValidityTimeframe...), updateCtx.OldEndValidityTimeframe...)
	newMessage := append(append([]byte{}, updateCtx.NewStartValidityTimeframe...), updateCtx.NewEndValidityTimeframe...)

	updated, err := bbscrypto.UpdateValidityTimeframe(secret, signature, updateCtx.Index, oldMessage, newMessage)
	end(err)
	return updated, err
}

// InsertKeyId implements storage.KeyIdStorage.
func (s *Storage) InsertKeyId(ctx context.Context, methodDigest string, keyId string) error {
	ctx, end := s.start(ctx, "mongostore:insertKeyId")
	defer func() { end(nil) }()

	_, err := s.keyIds.InsertOne(ctx, keyIdDocument{MethodDigest: methodDigest, KeyId: keyId})
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrKeyIdAlreadyExists("methodDigest " + methodDigest + " already has a keyId mapping")
	}
	if err != nil {
		return ErrConnectionFailure("failed to insert keyId mapping", err)
	}
	return nil
}

// GetKeyId implements storage.KeyIdStorage.
func (s *Storage) GetKeyId(ctx context.Context, methodDigest string) (string, error) {
	ctx, end := s.start(ctx, "mongostore:getKeyId")
	defer func() { end(nil) }()

	var doc keyIdDocument
	err := s.keyIds.FindOne(ctx, bson.M{"_id": methodDigest}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", storage.ErrKeyNotFound("no keyId mapping for methodDigest " + methodDigest)
	}
	if err != nil {
		return "", ErrConnectionFailure("failed to load keyId mapping", err)
	}
	return doc.KeyId, nil
}

// DeleteKeyId implements storage.KeyIdStorage.
func (s *Storage) DeleteKeyId(ctx context.Context, methodDigest string) error {
	ctx, end := s.start(ctx, "mongostore:deleteKeyId")
	defer func() { end(nil) }()

	if _, err := s.keyIds.DeleteOne(ctx, bson.M{"_id": methodDigest}); err != nil {
		return ErrConnectionFailure("failed to delete keyId mapping", err)
	}
	return nil
}
