// Package jwp implements the JWP/BBS+ selective-disclosure envelope
// (§4.8): JwpIssued/JwpPresented, the SelectiveDisclosurePresentation
// builder, and the Jpt credential/presentation validators. Grounded on
// document/jws.go's CreateJws/VerifyJws shape, generalized from a single
// Ed25519/ECDSA signature over opaque payload bytes to a BBS+-style
// signature over an ordered, selectively-revealable message vector via
// storage/bbscrypto.
package jwp

import "github.com/iotaledger/iota-identity-go/internal/ierr"

const (
	CodeUnknownClaim       = "UnknownClaim"
	CodeInvalidPath        = "InvalidPath"
	CodeMalformedCompact   = "MalformedCompact"
	CodeMissingCommitment  = "MissingCommitment"
	CodeMissingKey         = "MissingKey"
	CodeInvalidProof       = "InvalidProof"
	CodeClaimCountMismatch = "ClaimCountMismatch"
)

func errUnknownClaim(path string) error {
	return ierr.New(ierr.KindSemantic, CodeUnknownClaim, "no claim at path "+path)
}

func errInvalidPath(path string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidPath, "malformed claim path "+path, cause)
}

func errMalformedCompact(message string) error {
	return ierr.New(ierr.KindSyntax, CodeMalformedCompact, message)
}

func errMissingCommitment(path string) error {
	return ierr.New(ierr.KindSemantic, CodeMissingCommitment, "undisclosed payload at "+path+" carries no commitment")
}

func errMissingKey(message string) error {
	return ierr.New(ierr.KindCryptographic, CodeMissingKey, message)
}

func errInvalidProof(message string) error {
	return ierr.New(ierr.KindCryptographic, CodeInvalidProof, message)
}

func errClaimCountMismatch(message string) error {
	return ierr.New(ierr.KindSemantic, CodeClaimCountMismatch, message)
}
