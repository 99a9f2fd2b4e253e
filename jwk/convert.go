package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
)

// decodeB64 decodes a base64url (no padding) JWK member.
func decodeB64(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// ToEd25519PublicKey extracts the crypto/ed25519 public key from an OKP/
// Ed25519 Jwk, for verifiers that operate on standard library key types
// rather than raw JWK fields.
func ToEd25519PublicKey(k Jwk) (ed25519.PublicKey, error) {
	if k.Kty != KtyOKP || k.Crv != CrvEd25519 {
		return nil, ErrUnsupportedKty("jwk: not an Ed25519 OKP key")
	}
	raw, err := decodeB64(k.X)
	if err != nil {
		return nil, ErrInvalidJwk("failed to decode x", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidJwk("x has wrong length for an Ed25519 public key", nil)
	}
	return ed25519.PublicKey(raw), nil
}

// ToECDSAPublicKey reconstructs the crypto/ecdsa public key carried by an
// EC Jwk.
func ToECDSAPublicKey(k Jwk) (*ecdsa.PublicKey, error) {
	if k.Kty != KtyEC {
		return nil, ErrUnsupportedKty("jwk: not an EC key")
	}
	curve, err := ellipticCurve(k.Crv)
	if err != nil {
		return nil, err
	}
	x, err := decodeB64(k.X)
	if err != nil {
		return nil, ErrInvalidJwk("failed to decode x", err)
	}
	y, err := decodeB64(k.Y)
	if err != nil {
		return nil, ErrInvalidJwk("failed to decode y", err)
	}
	return &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}, nil
}

// ToRSAPublicKey reconstructs the crypto/rsa public key carried by an RSA
// Jwk.
func ToRSAPublicKey(k Jwk) (*rsa.PublicKey, error) {
	if k.Kty != KtyRSA {
		return nil, ErrUnsupportedKty("jwk: not an RSA key")
	}
	n, err := decodeB64(k.N)
	if err != nil {
		return nil, ErrInvalidJwk("failed to decode n", err)
	}
	e, err := decodeB64(k.E)
	if err != nil {
		return nil, ErrInvalidJwk("failed to decode e", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(new(big.Int).SetBytes(e).Int64()),
	}, nil
}
