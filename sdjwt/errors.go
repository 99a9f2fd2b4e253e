package sdjwt

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the sdjwt package.
const (
	CodeInvalidDisclosure = "InvalidDisclosure"
	CodeInvalidPointer    = "InvalidJSONPointer"
	CodeDuplicateClaim    = "DuplicateClaim"
	CodeInvalidCompact    = "InvalidCompactSdJwt"
	CodeInvalidKeyBinding = "InvalidKeyBindingJwt"
	CodeKeyBindingSdHash  = "KeyBindingSdHashMismatch"
	CodeKeyBindingTyp     = "KeyBindingTypMismatch"
	CodeKeyBindingClaim   = "KeyBindingClaimMismatch"
)

func ErrInvalidDisclosure(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidDisclosure, message, cause)
}

func ErrInvalidPointer(pointer string) error {
	return ierr.New(ierr.KindSyntax, CodeInvalidPointer, "invalid JSON Pointer: "+pointer)
}

func ErrDuplicateClaim(name string) error {
	return ierr.New(ierr.KindSemantic, CodeDuplicateClaim, "claim name disclosed twice: "+name)
}

func ErrInvalidCompact(message string) error {
	return ierr.New(ierr.KindSyntax, CodeInvalidCompact, message)
}

func ErrInvalidKeyBinding(message string, cause error) error {
	return ierr.Wrap(ierr.KindCryptographic, CodeInvalidKeyBinding, message, cause)
}

func ErrKeyBindingSdHash(message string) error {
	return ierr.New(ierr.KindSemantic, CodeKeyBindingSdHash, message)
}

func ErrKeyBindingTyp(typ string) error {
	return ierr.New(ierr.KindSemantic, CodeKeyBindingTyp, `kb-jwt "typ" must be "kb+jwt", got: `+typ)
}

func ErrKeyBindingClaim(message string) error {
	return ierr.New(ierr.KindSemantic, CodeKeyBindingClaim, message)
}
