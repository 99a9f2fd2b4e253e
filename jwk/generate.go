package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"

	lestrratjwk "github.com/lestrrat-go/jwx/jwk"
)

// Generate creates fresh private key material for the given kty/crv pair
// and returns it as a private Jwk. alg is stamped onto the result verbatim
// (storage.JwkStorage callers use it to pick a SignatureVerifier later).
//
// Curve/RSA generation is delegated to the standard library; lestrrat-go's
// jwk.New is used only to convert the resulting Go key to JWK parameters,
// matching the round-trip dc4eu-vc/pkg/jose/jwk.go performs for its
// EC-only case.
func Generate(kty Kty, crv Crv, alg string) (Jwk, error) {
	switch kty {
	case KtyEC:
		return generateEC(crv, alg)
	case KtyOKP:
		return generateOKP(crv, alg)
	case KtyRSA:
		return generateRSA(alg)
	default:
		return Jwk{}, ErrUnsupportedKty(string(kty))
	}
}

func generateEC(crv Crv, alg string) (Jwk, error) {
	curve, err := ellipticCurve(crv)
	if err != nil {
		return Jwk{}, err
	}

	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return Jwk{}, ErrKeyGeneration("failed to generate EC key", err)
	}

	set, err := lestrratjwk.New(priv)
	if err != nil {
		return Jwk{}, ErrKeyGeneration("failed to wrap EC key", err)
	}

	raw, err := fieldsFromLestrrat(set)
	if err != nil {
		return Jwk{}, err
	}

	return Jwk{
		Kty: KtyEC,
		Crv: crv,
		Alg: alg,
		X:   raw["x"],
		Y:   raw["y"],
		D:   raw["d"],
	}, nil
}

func generateOKP(crv Crv, alg string) (Jwk, error) {
	if crv != CrvEd25519 {
		return Jwk{}, ErrUnsupportedKty("jwk: only Ed25519 OKP generation is supported")
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Jwk{}, ErrKeyGeneration("failed to generate Ed25519 key", err)
	}

	// priv is the 64-byte (seed||pub) expanded form; the JWK "d" member
	// is the 32-byte seed alone.
	seed := priv.Seed()

	return Jwk{
		Kty: KtyOKP,
		Crv: CrvEd25519,
		Alg: alg,
		X:   base64.RawURLEncoding.EncodeToString(pub),
		D:   base64.RawURLEncoding.EncodeToString(seed),
	}, nil
}

func generateRSA(alg string) (Jwk, error) {
	const bits = 2048

	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return Jwk{}, ErrKeyGeneration("failed to generate RSA key", err)
	}

	set, err := lestrratjwk.New(priv)
	if err != nil {
		return Jwk{}, ErrKeyGeneration("failed to wrap RSA key", err)
	}

	raw, err := fieldsFromLestrrat(set)
	if err != nil {
		return Jwk{}, err
	}

	return Jwk{
		Kty: KtyRSA,
		Alg: alg,
		N:   raw["n"],
		E:   raw["e"],
		D:   raw["d"],
		P:   raw["p"],
		Q:   raw["q"],
		Dp:  raw["dp"],
		Dq:  raw["dq"],
		Qi:  raw["qi"],
	}, nil
}

// fieldsFromLestrrat extracts base64url-encoded JWK parameters from a
// lestrrat-go/jwx key, the same AsMap-then-switch idiom
// dc4eu-vc/pkg/jose/jwk.go uses for its EC case, generalized to whichever
// []byte-valued members the key set carries.
func fieldsFromLestrrat(key lestrratjwk.Key) (map[string]string, error) {
	raw, err := key.AsMap(nil)
	if err != nil {
		return nil, ErrInvalidJwk("failed to read key parameters", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		b, ok := v.([]byte)
		if !ok {
			continue
		}
		out[k] = base64.RawURLEncoding.EncodeToString(b)
	}
	return out, nil
}

func ellipticCurve(crv Crv) (elliptic.Curve, error) {
	switch crv {
	case CrvP256:
		return elliptic.P256(), nil
	case CrvP384:
		return elliptic.P384(), nil
	case CrvP521:
		return elliptic.P521(), nil
	default:
		return nil, ErrUnsupportedKty("jwk: unsupported EC curve " + string(crv))
	}
}
