// Package bbscrypto implements the simplified, non-production BBS+-style
// multi-message signature scheme storage.JwkStorage's BBS+ operations
// use: a Boneh-Boyen signature generalized to a commitment over several
// domain-separated per-message generators, computed with
// github.com/kilic/bls12-381's G1/G2 point arithmetic and pairing check.
//
// This is NOT a full implementation of the BBS+ signature scheme (it
// lacks a proper hash-to-curve map and the Pedersen-commitment-based
// zero-knowledge proof of knowledge layer real BBS+ presentations use);
// it exists to give the module's JWP/selective-disclosure machinery a
// real, algebraically sound signature to build on, in the spirit of the
// module's stated non-goal of inventing new cryptographic primitives.
package bbscrypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"math/big"

	bls "github.com/kilic/bls12-381"
)

var (
	ErrDegenerateKey      = errors.New("bbscrypto: degenerate key, x+e is not invertible")
	ErrMalformedSignature = errors.New("bbscrypto: malformed signature encoding")
)

// GroupOrder is the BLS12-381 scalar field order r.
var GroupOrder, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// KeyPair is the secret state a BBS-style key holds: a scalar x and its
// G2 public point W = x*G2.
type KeyPair struct {
	Secret *big.Int
	Public *bls.PointG2
}

// hashToScalar reduces an arbitrary byte string into a scalar mod
// GroupOrder, used both for domain-separated per-message generators and
// for the Boneh-Boyen blinding term e.
func hashToScalar(domain string, parts ...[]byte) *big.Int {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, p := range parts {
		h.Write(p)
	}
	sum := h.Sum(nil)
	return new(big.Int).Mod(new(big.Int).SetBytes(sum), GroupOrder)
}

func randomScalar() (*big.Int, error) {
	return rand.Int(rand.Reader, GroupOrder)
}

// messageGenerator derives the i-th per-message G1 generator H_i
// deterministically from its index: H_i = hashToScalar(i) * G1. This
// substitutes for a true hash-to-curve map, which the vendored
// bls12-381 package does not expose.
func messageGenerator(g1 *bls.G1, index int) *bls.PointG1 {
	idxBytes := big.NewInt(int64(index)).Bytes()
	scalar := hashToScalar("bbs-message-generator", idxBytes)
	return g1.MulScalar(g1.New(), g1.One(), scalar)
}

// GenerateKeyPair produces a fresh secret scalar and its G2 public point.
func GenerateKeyPair() (*KeyPair, error) {
	x, err := randomScalar()
	if err != nil {
		return nil, err
	}
	g2 := bls.NewG2()
	pub := g2.MulScalar(g2.New(), g2.One(), x)
	return &KeyPair{Secret: x, Public: pub}, nil
}

// EncodePublicKey serializes a G2 public point for storage/transport.
func EncodePublicKey(pub *bls.PointG2) []byte {
	return bls.NewG2().ToBytes(pub)
}

// DecodePublicKey parses a G2 public point serialized by EncodePublicKey.
func DecodePublicKey(raw []byte) (*bls.PointG2, error) {
	return bls.NewG2().FromBytes(raw)
}

// commit folds header and the ordered message vector into a single G1
// point B = c*G1 + sum(H_i * m_i).
func commit(messages [][]byte, header []byte) *bls.PointG1 {
	g1 := bls.NewG1()
	c := hashToScalar("bbs-header", header)
	acc := g1.MulScalar(g1.New(), g1.One(), c)
	for i, m := range messages {
		mi := hashToScalar("bbs-message", m)
		term := g1.MulScalar(g1.New(), messageGenerator(g1, i), mi)
		acc = g1.Add(g1.New(), acc, term)
	}
	return acc
}

// encodeSignature packs a G1 point and a scalar into length-prefixed
// signature bytes: [2-byte BE point length][point][scalar].
func encodeSignature(g1 *bls.G1, a *bls.PointG1, e *big.Int) []byte {
	aBytes := g1.ToBytes(a)
	out := make([]byte, 0, 2+len(aBytes)+len(e.Bytes()))
	out = append(out, byte(len(aBytes)>>8), byte(len(aBytes)))
	out = append(out, aBytes...)
	out = append(out, e.Bytes()...)
	return out
}

func decodeSignature(g1 *bls.G1, signature []byte) (*bls.PointG1, *big.Int, error) {
	if len(signature) < 2 {
		return nil, nil, ErrMalformedSignature
	}
	aLen := int(signature[0])<<8 | int(signature[1])
	if len(signature) < 2+aLen {
		return nil, nil, ErrMalformedSignature
	}
	a, err := g1.FromBytes(signature[2 : 2+aLen])
	if err != nil {
		return nil, nil, err
	}
	e := new(big.Int).SetBytes(signature[2+aLen:])
	return a, e, nil
}

// Sign computes a Boneh-Boyen-style signature over the commitment of
// messages and header under secret key x: draws a blinding scalar e,
// forms B = commit(messages, header), A = (x+e)^-1 * B, and returns
// the length-prefixed encoding of A and e.
func Sign(x *big.Int, messages [][]byte, header []byte) ([]byte, error) {
	e, err := randomScalar()
	if err != nil {
		return nil, err
	}
	b := commit(messages, header)

	exp := new(big.Int).Add(x, e)
	exp.Mod(exp, GroupOrder)
	inv := new(big.Int).ModInverse(exp, GroupOrder)
	if inv == nil {
		return nil, ErrDegenerateKey
	}

	g1 := bls.NewG1()
	a := g1.MulScalar(g1.New(), b, inv)
	return encodeSignature(g1, a, e), nil
}

// Verify checks a signature produced by Sign against the public key, via
// e(A, W + e*G2) == e(B, G2).
func Verify(pub *bls.PointG2, signature []byte, messages [][]byte, header []byte) (bool, error) {
	g1 := bls.NewG1()
	g2 := bls.NewG2()

	a, e, err := decodeSignature(g1, signature)
	if err != nil {
		return false, err
	}
	b := commit(messages, header)

	ePoint := g2.MulScalar(g2.New(), g2.One(), e)
	rhs2 := g2.Add(g2.New(), pub, ePoint)

	engine := bls.NewPairingEngine()
	engine.AddPair(a, rhs2)
	engine.AddPairInv(b, g2.One())
	return engine.Check(), nil
}

// MessageTerm returns the individual per-message G1 contribution
// H_i^{m_i} that commit sums into B for message index i. A holder
// presenting index i as undisclosed reveals this term in place of the
// raw message: VerifyWithTerms can still fold it into B and check the
// pairing equation, while recovering m from the term requires solving a
// discrete log over G1 -- the same hardness assumption the signature's
// own pairing check already rests on. This is the substitute this
// package uses for a true Pedersen-commitment zero-knowledge proof of
// knowledge, consistent with the package's stated scope.
func MessageTerm(index int, message []byte) *bls.PointG1 {
	g1 := bls.NewG1()
	mi := hashToScalar("bbs-message", message)
	return g1.MulScalar(g1.New(), messageGenerator(g1, index), mi)
}

// EncodeG1Point serializes a G1 point for undisclosed-commitment
// transport.
func EncodeG1Point(p *bls.PointG1) []byte {
	return bls.NewG1().ToBytes(p)
}

// DecodeG1Point parses a G1 point serialized by EncodeG1Point.
func DecodeG1Point(raw []byte) (*bls.PointG1, error) {
	return bls.NewG1().FromBytes(raw)
}

// VerifyWithTerms checks a signature using a mix of disclosed raw
// messages and undisclosed precomputed per-message terms (see
// MessageTerm), reconstructing B = c*G1 + sum(terms) across all total
// message indices without ever learning an undisclosed message's
// plaintext value. disclosed and undisclosedTerms together must cover
// every index in [0,total).
func VerifyWithTerms(pub *bls.PointG2, signature []byte, header []byte, total int, disclosed map[int][]byte, undisclosedTerms map[int]*bls.PointG1) (bool, error) {
	g1 := bls.NewG1()
	g2 := bls.NewG2()

	a, e, err := decodeSignature(g1, signature)
	if err != nil {
		return false, err
	}

	c := hashToScalar("bbs-header", header)
	b := g1.MulScalar(g1.New(), g1.One(), c)
	for i := 0; i < total; i++ {
		if m, ok := disclosed[i]; ok {
			mi := hashToScalar("bbs-message", m)
			term := g1.MulScalar(g1.New(), messageGenerator(g1, i), mi)
			b = g1.Add(g1.New(), b, term)
			continue
		}
		term, ok := undisclosedTerms[i]
		if !ok {
			return false, ErrMalformedSignature
		}
		b = g1.Add(g1.New(), b, term)
	}

	ePoint := g2.MulScalar(g2.New(), g2.One(), e)
	rhs2 := g2.Add(g2.New(), pub, ePoint)

	engine := bls.NewPairingEngine()
	engine.AddPair(a, rhs2)
	engine.AddPairInv(b, g2.One())
	return engine.Check(), nil
}

// UpdateValidityTimeframe rotates the single message at index from its
// old to new bytes, exploiting the commitment's linearity:
//
//	A' = A + (H_index * (newScalar-oldScalar)) * (x+e)^-1
//
// leaving e and every other signed message untouched. e is recovered
// from the signature's own trailing bytes, not re-derived.
func UpdateValidityTimeframe(x *big.Int, signature []byte, index int, oldMessage, newMessage []byte) ([]byte, error) {
	g1 := bls.NewG1()

	a, e, err := decodeSignature(g1, signature)
	if err != nil {
		return nil, err
	}

	exp := new(big.Int).Add(x, e)
	exp.Mod(exp, GroupOrder)
	inv := new(big.Int).ModInverse(exp, GroupOrder)
	if inv == nil {
		return nil, ErrDegenerateKey
	}

	oldScalar := hashToScalar("bbs-message", oldMessage)
	newScalar := hashToScalar("bbs-message", newMessage)
	diff := new(big.Int).Sub(newScalar, oldScalar)
	diff.Mod(diff, GroupOrder)

	hi := messageGenerator(g1, index)
	delta := g1.MulScalar(g1.New(), hi, diff)
	deltaScaled := g1.MulScalar(g1.New(), delta, inv)
	aPrime := g1.Add(g1.New(), a, deltaScaled)

	return encodeSignature(g1, aPrime, e), nil
}
