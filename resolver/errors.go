// Package resolver implements §4.9's method-dispatch DID resolver:
// Resolve parses a DID, looks up the handler registered for its method,
// and awaits its result; ResolveMultiple fans concurrent resolutions out
// across a batch of DIDs, at most one round-trip per unique DID, then
// replays the results in the caller's original order. Grounded on
// ParichayaHQ-credence/internal/did/resolver.go's MultiDIDResolver
// (method-name-keyed handler map, register/resolve split), narrowed to
// the spec's plainer dispatch-map shape -- no DIDResolutionOptions/
// caching layer, since those belong to a surrounding application rather
// than this package.
package resolver

import "github.com/iotaledger/iota-identity-go/internal/ierr"

const (
	CodeUnsupportedMethod = "UnsupportedMethod"
	CodeHandlerError      = "HandlerError"
	CodeParseFailure      = "ParseFailure"
)

func errUnsupportedMethod(method string) error {
	return ierr.New(ierr.KindResolution, CodeUnsupportedMethod, "no handler registered for DID method "+method)
}

func errHandlerError(didStr string, cause error) error {
	return ierr.Wrap(ierr.KindResolution, CodeHandlerError, "handler failed to resolve "+didStr, cause)
}

func errParseFailure(input string, cause error) error {
	return ierr.Wrap(ierr.KindSyntax, CodeParseFailure, "failed to parse DID "+input, cause)
}
