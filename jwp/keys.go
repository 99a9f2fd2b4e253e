package jwp

import (
	"encoding/base64"

	bls "github.com/kilic/bls12-381"

	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/iotaledger/iota-identity-go/storage/bbscrypto"
)

// decodeBBSPublicKey recovers the G2 point a BBS+ public Jwk
// (jwk.CrvBLS12381G2) carries in its "x" member.
func decodeBBSPublicKey(pub jwk.Jwk) (*bls.PointG2, error) {
	if pub.Crv != jwk.CrvBLS12381G2 {
		return nil, errInvalidProof("public key is not a BLS12381G2 BBS+ key")
	}
	raw, err := base64.RawURLEncoding.DecodeString(pub.X)
	if err != nil {
		return nil, errInvalidProof("failed to decode BBS+ public key x member: " + err.Error())
	}
	point, err := bbscrypto.DecodePublicKey(raw)
	if err != nil {
		return nil, errInvalidProof("failed to decode BBS+ public key point: " + err.Error())
	}
	return point, nil
}
