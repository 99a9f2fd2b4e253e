// Package document implements CoreDocument and IotaDocument: the
// method-agnostic DID document aggregate and its IOTA ledger-anchored
// specialization. Grounded on the Document aggregate and field-by-field
// relationship lists of bryk-io-pkg/did/document.go, generalized from
// that package's string-reference-only relationships to an
// embedded-method-or-reference union, with an interior-mutability and
// ConcurrentlyModified guard around every mutating operation.
package document

import (
	"encoding/json"
	"sync"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/verification"
)

// MethodRef is either a verification method embedded directly into a
// relationship list, or a DIDUrl pointing back into the general method
// pool.
type MethodRef struct {
	embedded *verification.Method
	ref      *did.DIDUrl
}

// EmbeddedMethodRef wraps a method defined inline in a relationship list.
func EmbeddedMethodRef(m *verification.Method) MethodRef {
	return MethodRef{embedded: m}
}

// PointerMethodRef wraps a reference to a method in the general pool.
func PointerMethodRef(id did.DIDUrl) MethodRef {
	return MethodRef{ref: &id}
}

// ID returns the id this reference ultimately names, whether embedded or
// pointed-to.
func (r MethodRef) ID() did.DIDUrl {
	if r.embedded != nil {
		return r.embedded.ID
	}
	return *r.ref
}

// IsEmbedded reports whether this reference carries its own method
// definition rather than pointing into the pool.
func (r MethodRef) IsEmbedded() bool { return r.embedded != nil }

// MarshalJSON renders an embedded method as its full object, and a
// pointer reference as a bare DIDUrl string, matching did-core's
// relationship-list wire shape.
func (r MethodRef) MarshalJSON() ([]byte, error) {
	if r.embedded != nil {
		return json.Marshal(r.embedded)
	}
	return json.Marshal(r.ref.String())
}

// unmarshalMethodRef decodes a single relationship-list entry: a bare
// string names a pointer reference, an object embeds a full method.
func unmarshalMethodRef(raw json.RawMessage) (MethodRef, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		id, err := did.ParseDIDUrl(asString)
		if err != nil {
			return MethodRef{}, err
		}
		return PointerMethodRef(id), nil
	}

	method, err := verification.UnmarshalMethod(raw)
	if err != nil {
		return MethodRef{}, err
	}
	return EmbeddedMethodRef(method), nil
}

// CoreDocument is the method-agnostic DID document aggregate. All
// mutation happens through its typed operations; external code never
// edits the slices directly.
type CoreDocument struct {
	mu sync.RWMutex

	id          did.CoreDID
	controllers []did.CoreDID
	alsoKnownAs []string

	methods       []*verification.Method
	relationships map[verification.MethodScope][]MethodRef
	services      []*verification.Service

	properties map[string]json.RawMessage
}

// New builds an empty CoreDocument identified by id.
func New(id did.CoreDID) *CoreDocument {
	rel := make(map[verification.MethodScope][]MethodRef, len(verification.Scopes()))
	for _, s := range verification.Scopes() {
		rel[s] = nil
	}
	return &CoreDocument{
		id:            id,
		relationships: rel,
		properties:    map[string]json.RawMessage{},
	}
}

// ID returns the document's DID.
func (d *CoreDocument) ID() did.CoreDID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.id
}

// beginWrite and endWrite bracket a mutating operation. Plain insert/
// remove helpers that cannot fail for domain reasons still take the lock
// unconditionally (a writer simply waits its turn); operations exposed to
// callers as fallible (ResolveMethod, ResolveService, InsertMethod,
// AttachMethodRelationship, InsertService) use tryBeginWrite/
// tryBeginRead instead, so a caller racing an in-flight write observes
// ConcurrentlyModified rather than blocking or reading a torn document.
func (d *CoreDocument) beginWrite() {
	d.mu.Lock()
}

func (d *CoreDocument) endWrite() {
	d.mu.Unlock()
}

func (d *CoreDocument) tryBeginWrite() error {
	if !d.mu.TryLock() {
		return ErrConcurrentlyModified("document is being modified by another goroutine")
	}
	return nil
}

func (d *CoreDocument) tryBeginRead() error {
	if !d.mu.TryRLock() {
		return ErrConcurrentlyModified("document is being modified by another goroutine")
	}
	return nil
}

// AddController appends controller to the controller set if not already
// present.
func (d *CoreDocument) AddController(controller did.CoreDID) {
	d.beginWrite()
	defer d.endWrite()

	for _, c := range d.controllers {
		if c.Equal(controller) {
			return
		}
	}
	d.controllers = append(d.controllers, controller)
}

// Controllers returns a copy of the controller set, in insertion order.
func (d *CoreDocument) Controllers() []did.CoreDID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]did.CoreDID, len(d.controllers))
	copy(out, d.controllers)
	return out
}

// AddAlsoKnownAs appends an alsoKnownAs entry if not already present.
func (d *CoreDocument) AddAlsoKnownAs(alias string) {
	d.beginWrite()
	defer d.endWrite()

	for _, a := range d.alsoKnownAs {
		if a == alias {
			return
		}
	}
	d.alsoKnownAs = append(d.alsoKnownAs, alias)
}

// SetProperty sets a custom top-level property. Setting a reserved
// property name (id, controller, etc.) is the caller's responsibility to
// avoid; CoreDocument does not police it, matching did-core's
// extensibility model.
func (d *CoreDocument) SetProperty(name string, value json.RawMessage) {
	d.beginWrite()
	defer d.endWrite()
	d.properties[name] = value
}

// idInUse reports whether id collides with any existing method or
// service id in the document. Callers must hold d.mu.
func (d *CoreDocument) idInUse(id did.DIDUrl) bool {
	for _, m := range d.methods {
		if m.ID.Equal(id) {
			return true
		}
	}
	for _, refs := range d.relationships {
		for _, r := range refs {
			if r.IsEmbedded() && r.ID().Equal(id) {
				return true
			}
		}
	}
	for _, s := range d.services {
		if s.ID.Equal(id) {
			return true
		}
	}
	return false
}

// InsertMethod inserts method into the general pool (scope ==
// ScopeVerificationMethod) or directly embeds it into the named
// relationship list. Fails with MethodAlreadyExists if method.ID collides
// with any existing method or service id.
func (d *CoreDocument) InsertMethod(method *verification.Method, scope verification.MethodScope) error {
	if err := d.tryBeginWrite(); err != nil {
		return err
	}
	defer d.endWrite()

	if d.idInUse(method.ID) {
		return ErrMethodAlreadyExists(method.ID.String())
	}

	if scope == verification.ScopeVerificationMethod || scope == "" {
		d.methods = append(d.methods, method)
		return nil
	}

	d.relationships[scope] = append(d.relationships[scope], EmbeddedMethodRef(method))
	return nil
}

// RemoveMethod removes the method identified by id from whichever of the
// six lists contains it (general pool, or any relationship list, whether
// embedded there or only referenced). Returns the removed method, or nil
// if no embedded definition existed for id (a dangling reference is still
// detached). References to id in other relationship lists are also
// pruned.
func (d *CoreDocument) RemoveMethod(id did.DIDUrl) *verification.Method {
	d.beginWrite()
	defer d.endWrite()

	var removed *verification.Method
	for i, m := range d.methods {
		if m.ID.Equal(id) {
			removed = m
			d.methods = append(d.methods[:i], d.methods[i+1:]...)
			break
		}
	}

	for scope, refs := range d.relationships {
		kept := refs[:0]
		for _, r := range refs {
			if r.ID().Equal(id) {
				if r.IsEmbedded() {
					removed = r.embedded
				}
				continue
			}
			kept = append(kept, r)
		}
		d.relationships[scope] = kept
	}

	return removed
}

// AttachMethodRelationship adds a pointer reference to id in relationship
// list rel. id must already exist in the general pool. Idempotent: a
// second attach of the same (id, rel) pair is a no-op.
func (d *CoreDocument) AttachMethodRelationship(id did.DIDUrl, rel verification.MethodScope) error {
	if err := d.tryBeginWrite(); err != nil {
		return err
	}
	defer d.endWrite()

	found := false
	for _, m := range d.methods {
		if m.ID.Equal(id) {
			found = true
			break
		}
	}
	if !found {
		return ErrMethodNotFound(id.String())
	}

	for _, r := range d.relationships[rel] {
		if r.ID().Equal(id) {
			return nil
		}
	}
	d.relationships[rel] = append(d.relationships[rel], PointerMethodRef(id))
	return nil
}

// DetachMethodRelationship removes the pointer reference to id from rel,
// if present. Idempotent.
func (d *CoreDocument) DetachMethodRelationship(id did.DIDUrl, rel verification.MethodScope) {
	d.beginWrite()
	defer d.endWrite()

	refs := d.relationships[rel]
	kept := refs[:0]
	for _, r := range refs {
		if !r.IsEmbedded() && r.ID().Equal(id) {
			continue
		}
		kept = append(kept, r)
	}
	d.relationships[rel] = kept
}

// ResolveMethod finds a method by DIDUrl or bare fragment, searching the
// given scope (or every list, if scope is empty). Fragment-only queries
// match across the document. Returns the first match in declaration
// order: general pool first, then relationship lists in Scopes() order.
func (d *CoreDocument) ResolveMethod(query string, scope verification.MethodScope) (*verification.Method, error) {
	if err := d.tryBeginRead(); err != nil {
		return nil, err
	}
	defer d.mu.RUnlock()

	matches := func(candidateID did.DIDUrl) bool {
		if query == candidateID.String() {
			return true
		}
		return query == candidateID.Fragment() && candidateID.Fragment() != ""
	}

	if scope == "" || scope == verification.ScopeVerificationMethod {
		for _, m := range d.methods {
			if matches(m.ID) {
				return m, nil
			}
		}
	}

	scopesToSearch := verification.Scopes()
	if scope != "" && scope != verification.ScopeVerificationMethod {
		scopesToSearch = []verification.MethodScope{scope}
	}
	for _, s := range scopesToSearch {
		for _, r := range d.relationships[s] {
			if matches(r.ID()) {
				if r.IsEmbedded() {
					return r.embedded, nil
				}
				for _, m := range d.methods {
					if m.ID.Equal(r.ID()) {
						return m, nil
					}
				}
			}
		}
	}

	return nil, ErrMethodNotFound(query)
}

// InsertService inserts svc, failing with ServiceAlreadyExists if its id
// collides with any existing method or service id.
func (d *CoreDocument) InsertService(svc *verification.Service) error {
	if err := d.tryBeginWrite(); err != nil {
		return err
	}
	defer d.endWrite()

	if d.idInUse(svc.ID) {
		return ErrServiceAlreadyExists(svc.ID.String())
	}
	d.services = append(d.services, svc)
	return nil
}

// RemoveService removes and returns the service identified by id, or nil
// if none matched.
func (d *CoreDocument) RemoveService(id did.DIDUrl) *verification.Service {
	d.beginWrite()
	defer d.endWrite()

	for i, s := range d.services {
		if s.ID.Equal(id) {
			d.services = append(d.services[:i], d.services[i+1:]...)
			return s
		}
	}
	return nil
}

// ResolveService finds a service by DIDUrl or bare fragment.
func (d *CoreDocument) ResolveService(query string) (*verification.Service, error) {
	if err := d.tryBeginRead(); err != nil {
		return nil, err
	}
	defer d.mu.RUnlock()

	for _, s := range d.services {
		if query == s.ID.String() || (query == s.ID.Fragment() && s.ID.Fragment() != "") {
			return s, nil
		}
	}
	return nil, ErrServiceNotFound(query)
}

// Methods returns a copy of the general method pool.
func (d *CoreDocument) Methods() []*verification.Method {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*verification.Method, len(d.methods))
	copy(out, d.methods)
	return out
}

// Services returns a copy of the service list.
func (d *CoreDocument) Services() []*verification.Service {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*verification.Service, len(d.services))
	copy(out, d.services)
	return out
}

// Relationship returns a copy of the references in the given relationship
// list.
func (d *CoreDocument) Relationship(scope verification.MethodScope) []MethodRef {
	d.mu.RLock()
	defer d.mu.RUnlock()
	refs := d.relationships[scope]
	out := make([]MethodRef, len(refs))
	copy(out, refs)
	return out
}

// Clone performs a deep copy of d, including every method, service,
// relationship reference, and custom property.
func (d *CoreDocument) Clone() *CoreDocument {
	d.mu.RLock()
	defer d.mu.RUnlock()

	clone := New(d.id)
	clone.controllers = append([]did.CoreDID(nil), d.controllers...)
	clone.alsoKnownAs = append([]string(nil), d.alsoKnownAs...)
	clone.methods = append([]*verification.Method(nil), d.methods...)
	clone.services = append([]*verification.Service(nil), d.services...)
	for scope, refs := range d.relationships {
		clone.relationships[scope] = append([]MethodRef(nil), refs...)
	}
	for k, v := range d.properties {
		clone.properties[k] = v
	}
	return clone
}

// MarshalJSON renders the did-core document shape. @context is left to
// embedding types (CoreDocument itself carries no context member).
func (d *CoreDocument) MarshalJSON() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	type wire struct {
		ID                   did.CoreDID            `json:"id"`
		Controller           []did.CoreDID          `json:"controller,omitempty"`
		AlsoKnownAs          []string               `json:"alsoKnownAs,omitempty"`
		VerificationMethod   []*verification.Method `json:"verificationMethod,omitempty"`
		Authentication       []MethodRef            `json:"authentication,omitempty"`
		AssertionMethod      []MethodRef            `json:"assertionMethod,omitempty"`
		KeyAgreement         []MethodRef            `json:"keyAgreement,omitempty"`
		CapabilityDelegation []MethodRef            `json:"capabilityDelegation,omitempty"`
		CapabilityInvocation []MethodRef            `json:"capabilityInvocation,omitempty"`
		Service              []*verification.Service `json:"service,omitempty"`
	}

	w := wire{
		ID:                   d.id,
		Controller:           d.controllers,
		AlsoKnownAs:          d.alsoKnownAs,
		VerificationMethod:   d.methods,
		Authentication:       d.relationships[verification.ScopeAuthentication],
		AssertionMethod:      d.relationships[verification.ScopeAssertionMethod],
		KeyAgreement:         d.relationships[verification.ScopeKeyAgreement],
		CapabilityDelegation: d.relationships[verification.ScopeCapabilityDelegation],
		CapabilityInvocation: d.relationships[verification.ScopeCapabilityInvocation],
		Service:              d.services,
	}

	base, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	if len(d.properties) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.properties {
		merged[k] = v
	}
	return json.Marshal(merged)
}
