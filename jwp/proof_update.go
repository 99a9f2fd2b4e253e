package jwp

import (
	"context"
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage"
)

// UpdateBBSSignature rotates j's validity-timeframe claim in place,
// supporting §4.8's RevocationTimeframe2024 holder-requested rotation
// workflow: it asks st to rotate the signature via updateCtx, then
// replaces the claim payload at updateCtx.Index with the new timeframe
// bytes so the signed message vector and the signature stay consistent.
// Every other claim is untouched.
func (j *JwpIssued) UpdateBBSSignature(ctx context.Context, st *storage.Storage, keyId string, publicJwk jwk.Jwk, updateCtx storage.ProofUpdateCtx) error {
	if updateCtx.Index < 0 || updateCtx.Index >= len(j.Payloads) {
		return errClaimCountMismatch("updateCtx.Index is out of range for this JwpIssued's payload vector")
	}

	newSig, err := st.UpdateBBSSignature(ctx, keyId, publicJwk, j.Signature, updateCtx)
	if err != nil {
		return err
	}

	newTimeframe := append(append([]byte{}, updateCtx.NewStartValidityTimeframe...), updateCtx.NewEndValidityTimeframe...)
	newValueJSON, err := json.Marshal(newTimeframe)
	if err != nil {
		return err
	}

	j.Payloads[updateCtx.Index].Value = newValueJSON
	j.Signature = newSig
	return nil
}
