package jws

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/iotaledger/iota-identity-go/jwk"
)

// AlgEdDSA is the only algorithm this package verifies without a supplied
// SignatureVerifier, per §4.5: "built-in for EdDSA/Ed25519, otherwise
// call signatureVerifier.verify".
const AlgEdDSA = "EdDSA"

// Signer signs signingInput and returns the raw (not base64url-encoded)
// signature bytes. CoreDocument.CreateJws supplies one backed by
// storage.JwkStorage.Sign, closed over the resolved key-id and public
// JWK; jws itself never touches private key material.
type Signer func(ctx context.Context, signingInput []byte) ([]byte, error)

// SignatureVerifier is the pluggable capability §4.5/§9 describe:
// implementations must not re-check alg against anything -- CoreDocument
// has already selected this verifier because header.Alg demanded it.
type SignatureVerifier interface {
	Verify(alg string, signingInput, signature []byte, publicJwk jwk.Jwk) error
}

func b64encode(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

func b64decode(s string) ([]byte, error) { return base64.RawURLEncoding.DecodeString(s) }

// SigningInput composes the bytes actually signed: the base64url header
// joined to the payload segment, which is itself base64url-encoded
// unless header.B64 is explicitly false (RFC 7797).
func SigningInput(header Header, payload []byte) ([]byte, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, ErrInvalidJws("failed to marshal protected header", err)
	}
	headerSeg := b64encode(headerJSON)

	payloadSeg := string(payload)
	if header.b64OrDefault() {
		payloadSeg = b64encode(payload)
	}
	return []byte(headerSeg + "." + payloadSeg), nil
}

// Encode builds a compact JWS: it computes the signing input, invokes
// sign, and assembles "header.payload.signature". When header.B64 is
// false the middle (payload) segment is omitted from the returned
// string -- the payload is detached and must be supplied out-of-band at
// verification time.
func Encode(ctx context.Context, header Header, payload []byte, sign Signer) (string, error) {
	signingInput, err := SigningInput(header, payload)
	if err != nil {
		return "", err
	}
	sig, err := sign(ctx, signingInput)
	if err != nil {
		return "", ErrSignatureVerification("signer failed: " + err.Error())
	}

	parts := strings.SplitN(string(signingInput), ".", 2)
	headerSeg := parts[0]
	if header.b64OrDefault() {
		return headerSeg + "." + parts[1] + "." + b64encode(sig), nil
	}
	return headerSeg + ".." + b64encode(sig), nil
}

// Decode splits a compact JWS into its protected header, payload (nil if
// detached), and raw signature, without verifying anything. detached, if
// non-nil, supplies the out-of-band payload for a detached-payload JWS
// and is validated to be consistent with an empty middle segment.
func Decode(compact string, detached []byte) (header Header, payload []byte, signature []byte, err error) {
	segs := strings.Split(compact, ".")
	if len(segs) != 3 {
		return Header{}, nil, nil, ErrInvalidJws("compact JWS must have exactly three segments", nil)
	}

	headerJSON, err := b64decode(segs[0])
	if err != nil {
		return Header{}, nil, nil, ErrInvalidJws("failed to base64url-decode header", err)
	}
	if !json.Valid(headerJSON) {
		return Header{}, nil, nil, ErrInvalidJws("protected header is not valid JSON", nil)
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return Header{}, nil, nil, ErrInvalidJws("failed to unmarshal protected header", err)
	}

	signature, err = b64decode(segs[2])
	if err != nil {
		return Header{}, nil, nil, ErrInvalidJws("failed to base64url-decode signature", err)
	}

	if segs[1] == "" {
		if detached == nil {
			return Header{}, nil, nil, ErrInvalidJws("JWS has a detached payload but none was supplied", nil)
		}
		return header, detached, signature, nil
	}

	if header.b64OrDefault() {
		payload, err = b64decode(segs[1])
		if err != nil {
			return Header{}, nil, nil, ErrInvalidJws("failed to base64url-decode payload", err)
		}
	} else {
		payload = []byte(segs[1])
	}
	return header, payload, signature, nil
}

// Verify decodes compact (using detached as the out-of-band payload when
// the JWS omits its own), then checks its signature against publicJwk.
// header.Alg == EdDSA is verified directly with crypto/ed25519; any
// other alg is delegated to verifier, which must be non-nil in that
// case.
func Verify(compact string, detached []byte, publicJwk jwk.Jwk, verifier SignatureVerifier) (Header, []byte, error) {
	header, payload, signature, err := Decode(compact, detached)
	if err != nil {
		return Header{}, nil, err
	}
	if header.Alg == "" {
		return Header{}, nil, ErrInvalidJws("protected header is missing alg", nil)
	}

	signingInput, err := SigningInput(header, payload)
	if err != nil {
		return Header{}, nil, err
	}

	if header.Alg == AlgEdDSA {
		if err := verifyEdDSA(signingInput, signature, publicJwk); err != nil {
			return Header{}, nil, err
		}
		return header, payload, nil
	}

	if verifier == nil {
		return Header{}, nil, ErrUnsupportedAlg(header.Alg)
	}
	if err := verifier.Verify(header.Alg, signingInput, signature, publicJwk); err != nil {
		return Header{}, nil, err
	}
	return header, payload, nil
}

func verifyEdDSA(signingInput, signature []byte, publicJwk jwk.Jwk) error {
	pub, err := jwk.ToEd25519PublicKey(publicJwk)
	if err != nil {
		return ErrSignatureVerification("invalid EdDSA public key: " + err.Error())
	}
	if len(signature) != ed25519.SignatureSize {
		return ErrSignatureVerification("EdDSA signature has the wrong length")
	}
	if !ed25519.Verify(pub, signingInput, signature) {
		return ErrSignatureVerification("EdDSA signature verification failed")
	}
	return nil
}

// EqualPayload reports whether two decoded payloads are byte-identical,
// a convenience for callers comparing a KB-JWT's bound sd_hash input
// against the presentation string it was computed over.
func EqualPayload(a, b []byte) bool { return bytes.Equal(a, b) }
