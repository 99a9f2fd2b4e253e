package revocation

import "github.com/iotaledger/iota-identity-go/internal/ierr"

// Error codes for the revocation package.
const (
	CodeInvalidBitmap         = "InvalidBitmap"
	CodeInvalidStatusList      = "InvalidStatusList"
	CodeIndexOutOfRange        = "IndexOutOfRange"
	CodeOutsideValidityTimeframe = "OutsideValidityTimeframe"
	CodeUnsupportedStatusPurpose = "UnsupportedStatusPurpose"
)

// ErrInvalidBitmap reports a RevocationBitmap2022 data URL that is not
// "data:application/octet-stream;base64,<zlib bytes>".
func ErrInvalidBitmap(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidBitmap, message, cause)
}

// ErrInvalidStatusList reports a malformed StatusList2021 encodedList
// member.
func ErrInvalidStatusList(message string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeInvalidStatusList, message, cause)
}

// ErrIndexOutOfRange reports a bitmap/status-list index beyond what the
// caller is willing to grow to.
func ErrIndexOutOfRange(message string) error {
	return ierr.New(ierr.KindSemantic, CodeIndexOutOfRange, message)
}

// ErrOutsideValidityTimeframe reports a RevocationTimeframe2024 status
// whose [start, end) window does not contain the checked instant.
func ErrOutsideValidityTimeframe(message string) error {
	return ierr.New(ierr.KindStatus, CodeOutsideValidityTimeframe, message)
}

// ErrUnsupportedStatusPurpose reports a StatusList2021 statusPurpose
// outside {revocation, suspension}.
func ErrUnsupportedStatusPurpose(purpose string) error {
	return ierr.New(ierr.KindSemantic, CodeUnsupportedStatusPurpose, "unsupported statusPurpose: "+purpose)
}
