package document

import (
	"context"

	"github.com/iotaledger/iota-identity-go/storage"
	"github.com/iotaledger/iota-identity-go/verification"
)

// GenerateBBSMethod mirrors GenerateMethod for the BBS+/JWP proof family:
// it asks st for a fresh BBS+ key under alg, wraps the public projection
// as a JsonWebKey2020 VerificationMethod, inserts it under scope (JWP
// issuance uses assertionMethod, matching the JWS credential path), and
// records the key-id <-> method-digest mapping. Any failure after key
// generation rolls the generated key back.
func (d *CoreDocument) GenerateBBSMethod(ctx context.Context, st *storage.Storage, fragment string, alg storage.ProofAlgorithm, scope verification.MethodScope) (*verification.Method, error) {
	keyId, publicJwk, err := st.GenerateBBS(ctx, alg)
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
