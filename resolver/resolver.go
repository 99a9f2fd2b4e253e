package resolver

import (
	"context"
	"sync"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/internal/xlog"
	"github.com/iotaledger/iota-identity-go/internal/xtrace"
)

// Handler fetches and unpacks the document published under id. A method's
// handler owns whatever transport the method needs (a ledger client, an
// HTTP directory, an embedded table for did:key-style methods); this
// package only owns the dispatch.
type Handler func(ctx context.Context, id did.CoreDID) (*document.CoreDocument, error)

// Resolver is a dispatch map from DID method name to Handler, the
// single point every other package resolves a DID through: validator's
// credential/presentation validators take an already-resolved
// *document.CoreDocument precisely so that resolution (with its network
// round-trips and per-method transport) stays isolated here.
type Resolver struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *xlog.Log
	tracer   *xtrace.Tracer
}

// New returns an empty Resolver. log/tracer may be nil; every method on
// Resolver is safe to call on a nil *xlog.Log or *xtrace.Tracer.
func New(log *xlog.Log, tracer *xtrace.Tracer) *Resolver {
	return &Resolver{
		handlers: map[string]Handler{},
		log:      log,
		tracer:   tracer,
	}
}

// AttachHandler registers handler for method, replacing any handler
// previously registered for it.
func (r *Resolver) AttachHandler(method string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[method] = handler
}

// DetachHandler removes the handler registered for method, if any.
func (r *Resolver) DetachHandler(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, method)
}

func (r *Resolver) handlerFor(method string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[method]
	return h, ok
}

// Resolve parses input as a DID, looks up the handler for its method,
// and awaits its result.
func (r *Resolver) Resolve(ctx context.Context, input string) (*document.CoreDocument, error) {
	id, err := did.Parse(input)
	if err != nil {
		return nil, errParseFailure(input, err)
	}

	handler, ok := r.handlerFor(id.Method())
	if !ok {
		return nil, errUnsupportedMethod(id.Method())
	}

	r.log.Trace("resolving DID", "did", input, "method", id.Method())
	doc, err := handler(ctx, id)
	if err != nil {
		r.log.Error(err, "DID resolution failed", "did", input)
		return nil, errHandlerError(input, err)
	}
	return doc, nil
}

// ResolveResult pairs a resolved document with any error Resolve
// returned for it, so ResolveMultiple can report partial failures
// without aborting the whole batch.
type ResolveResult struct {
	Document *document.CoreDocument
	Err      error
}

// ResolveMultiple resolves every DID in dids, making at most one
// Resolve call per unique DID string even if dids repeats one, then
// replays results.len(dids) entries long in dids' original order.
func (r *Resolver) ResolveMultiple(ctx context.Context, dids []string) []ResolveResult {
	ctx, span := r.tracer.Start(ctx, "resolver.resolveMultiple")
	defer span.End()

	unique := make([]string, 0, len(dids))
	seen := make(map[string]bool, len(dids))
	for _, d := range dids {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	byDID := make(map[string]ResolveResult, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(len(unique))
	for _, d := range unique {
		go func(d string) {
			defer wg.Done()
			doc, err := r.Resolve(ctx, d)
			mu.Lock()
			byDID[d] = ResolveResult{Document: doc, Err: err}
			mu.Unlock()
		}(d)
	}
	wg.Wait()

	results := make([]ResolveResult, len(dids))
	for i, d := range dids {
		results[i] = byDID[d]
	}
	return results
}
