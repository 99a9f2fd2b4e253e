package mongostore

import "github.com/iotaledger/iota-identity-go/internal/ierr"

const CodeConnectionFailure = "ConnectionFailure"

// ErrConnectionFailure wraps a failure establishing or using the
// underlying mongo.Client connection.
func ErrConnectionFailure(message string, cause error) error {
	return ierr.Wrap(ierr.KindStorage, CodeConnectionFailure, message, cause)
}
