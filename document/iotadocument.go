package document

import (
	"encoding/binary"
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/verification"
)

const (
	stateMetadataMagic0 = 'D'
	stateMetadataMagic1 = 'I'
	stateMetadataMagic2 = 'D'

	stateMetadataVersion = 1

	// EncodingJSON is the only state-metadata payload encoding currently
	// defined.
	EncodingJSON = 0
)

// IotaDocumentMetadata is the non-subject metadata an IotaDocument carries
// alongside its CoreDocument: ledger timestamps, lifecycle state, and the
// Alias Output's controlling addresses.
type IotaDocumentMetadata struct {
	Created                string                     `json:"created,omitempty"`
	Updated                string                     `json:"updated,omitempty"`
	Deactivated            bool                       `json:"deactivated,omitempty"`
	StateControllerAddress string                     `json:"stateControllerAddress,omitempty"`
	GovernorAddress        string                     `json:"governorAddress,omitempty"`
	Properties             map[string]json.RawMessage `json:"properties,omitempty"`
}

// IotaDocument pairs a CoreDocument with IotaDocumentMetadata and
// constrains its id to an IotaDID, per the Alias Output-anchored
// publication model.
type IotaDocument struct {
	id       did.IotaDID
	core     *CoreDocument
	metadata IotaDocumentMetadata
}

// NewIotaDocument builds a fresh, unpublished IotaDocument for id.
func NewIotaDocument(id did.IotaDID) *IotaDocument {
	return &IotaDocument{
		id:       id,
		core:     New(id.CoreDID()),
		metadata: IotaDocumentMetadata{Properties: map[string]json.RawMessage{}},
	}
}

// ID returns the document's IotaDID.
func (d *IotaDocument) ID() did.IotaDID { return d.id }

// Core returns the embedded method-agnostic document, through which every
// method/service/relationship operation is performed.
func (d *IotaDocument) Core() *CoreDocument { return d.core }

// Metadata returns a copy of the ledger metadata.
func (d *IotaDocument) Metadata() IotaDocumentMetadata { return d.metadata }

// SetMetadata replaces the ledger metadata wholesale; callers typically
// read-modify-write via Metadata().
func (d *IotaDocument) SetMetadata(meta IotaDocumentMetadata) { d.metadata = meta }

// stateMetadataPayload is the JSON shape packed into an Alias Output's
// state metadata: the CoreDocument without its id (recoverable from the
// Alias Output's alias id) plus the ledger metadata.
type stateMetadataPayload struct {
	Doc  json.RawMessage      `json:"doc"`
	Meta IotaDocumentMetadata `json:"meta"`
}

// corewithoutID mirrors CoreDocument.MarshalJSON's output but strips the
// "id" member, since the Alias Output's own alias id recovers it.
func coreWithoutID(raw json.RawMessage) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return json.Marshal(m)
}

// Pack serializes the document into Alias Output state-metadata bytes:
//
//	[ 3-byte magic "DID" ][ 1-byte version=1 ][ 1-byte encoding ][ 2-byte LE length ][ payload ]
//
// Only EncodingJSON is defined.
func (d *IotaDocument) Pack(encoding byte) ([]byte, error) {
	if encoding != EncodingJSON {
		return nil, ErrInvalidStateMetadata("unsupported state metadata encoding", nil)
	}

	coreJSON, err := d.core.MarshalJSON()
	if err != nil {
		return nil, ErrInvalidStateMetadata("failed to marshal core document", err)
	}
	docWithoutID, err := coreWithoutID(coreJSON)
	if err != nil {
		return nil, ErrInvalidStateMetadata("failed to strip id from core document", err)
	}

	payload, err := json.Marshal(stateMetadataPayload{Doc: docWithoutID, Meta: d.metadata})
	if err != nil {
		return nil, ErrInvalidStateMetadata("failed to marshal state metadata payload", err)
	}
	if len(payload) > 0xFFFF {
		return nil, ErrInvalidStateMetadata("state metadata payload exceeds 65535 bytes", nil)
	}

	out := make([]byte, 0, 7+len(payload))
	out = append(out, stateMetadataMagic0, stateMetadataMagic1, stateMetadataMagic2)
	out = append(out, stateMetadataVersion, encoding)
	length := make([]byte, 2)
	binary.LittleEndian.PutUint16(length, uint16(len(payload)))
	out = append(out, length...)
	out = append(out, payload...)
	return out, nil
}

// UnpackFromOutput parses Alias Output state-metadata bytes back into an
// IotaDocument identified by id. If stateMetadata is empty and allowEmpty
// is true, returns an empty, deactivated IotaDocument instead of failing.
func UnpackFromOutput(id did.IotaDID, stateMetadata []byte, allowEmpty bool) (*IotaDocument, error) {
	if len(stateMetadata) == 0 {
		if allowEmpty {
			doc := NewIotaDocument(id)
			doc.metadata.Deactivated = true
			return doc, nil
		}
		return nil, ErrInvalidStateMetadata("state metadata is empty", nil)
	}

	if len(stateMetadata) < 7 {
		return nil, ErrInvalidStateMetadata("state metadata shorter than header", nil)
	}
	if stateMetadata[0] != stateMetadataMagic0 || stateMetadata[1] != stateMetadataMagic1 || stateMetadata[2] != stateMetadataMagic2 {
		return nil, ErrInvalidStateMetadata("bad magic bytes", nil)
	}
	if stateMetadata[3] != stateMetadataVersion {
		return nil, ErrInvalidStateMetadata("unsupported state metadata version", nil)
	}
	encoding := stateMetadata[4]
	if encoding != EncodingJSON {
		return nil, ErrInvalidStateMetadata("unsupported state metadata encoding", nil)
	}

	length := binary.LittleEndian.Uint16(stateMetadata[5:7])
	payload := stateMetadata[7:]
	if int(length) != len(payload) {
		return nil, ErrInvalidStateMetadata("declared length does not match payload size", nil)
	}

	var parsed stateMetadataPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, ErrInvalidStateMetadata("failed to decode payload JSON", err)
	}

	doc := NewIotaDocument(id)
	doc.metadata = parsed.Meta

	withID, err := reattachID(parsed.Doc, id.CoreDID())
	if err != nil {
		return nil, ErrInvalidStateMetadata("failed to reattach document id", err)
	}
	core, err := unmarshalCoreDocument(withID)
	if err != nil {
		return nil, ErrInvalidStateMetadata("failed to decode core document", err)
	}
	doc.core = core

	return doc, nil
}

func reattachID(raw json.RawMessage, id did.CoreDID) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	idJSON, err := json.Marshal(id.String())
	if err != nil {
		return nil, err
	}
	m["id"] = idJSON
	return json.Marshal(m)
}

// unmarshalCoreDocument rebuilds a full CoreDocument from its wire form,
// re-running every entry through InsertMethod/InsertService/
// AttachMethodRelationship so the aggregate's invariants (no duplicate
// ids across methods and services) are enforced on the way in rather than
// trusted from the wire bytes.
func unmarshalCoreDocument(raw json.RawMessage) (*CoreDocument, error) {
	var wire struct {
		ID                   did.CoreDID       `json:"id"`
		Controller           []did.CoreDID     `json:"controller,omitempty"`
		AlsoKnownAs          []string          `json:"alsoKnownAs,omitempty"`
		VerificationMethod   []json.RawMessage `json:"verificationMethod,omitempty"`
		Authentication       []json.RawMessage `json:"authentication,omitempty"`
		AssertionMethod      []json.RawMessage `json:"assertionMethod,omitempty"`
		KeyAgreement         []json.RawMessage `json:"keyAgreement,omitempty"`
		CapabilityDelegation []json.RawMessage `json:"capabilityDelegation,omitempty"`
		CapabilityInvocation []json.RawMessage `json:"capabilityInvocation,omitempty"`
		Service              []json.RawMessage `json:"service,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	doc := New(wire.ID)
	for _, c := range wire.Controller {
		doc.AddController(c)
	}
	for _, a := range wire.AlsoKnownAs {
		doc.AddAlsoKnownAs(a)
	}

	for _, m := range wire.VerificationMethod {
		method, err := verification.UnmarshalMethod(m)
		if err != nil {
			return nil, err
		}
		if err := doc.InsertMethod(method, verification.ScopeVerificationMethod); err != nil {
			return nil, err
		}
	}

	relationshipFields := []struct {
		scope   verification.MethodScope
		entries []json.RawMessage
	}{
		{verification.ScopeAuthentication, wire.Authentication},
		{verification.ScopeAssertionMethod, wire.AssertionMethod},
		{verification.ScopeKeyAgreement, wire.KeyAgreement},
		{verification.ScopeCapabilityDelegation, wire.CapabilityDelegation},
		{verification.ScopeCapabilityInvocation, wire.CapabilityInvocation},
	}
	for _, field := range relationshipFields {
		for _, raw := range field.entries {
			ref, err := unmarshalMethodRef(raw)
			if err != nil {
				return nil, err
			}
			if ref.IsEmbedded() {
				if err := doc.InsertMethod(ref.embedded, field.scope); err != nil {
					return nil, err
				}
				continue
			}
			if err := doc.AttachMethodRelationship(ref.ID(), field.scope); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range wire.Service {
		svc, err := verification.UnmarshalService(s)
		if err != nil {
			return nil, err
		}
		if err := doc.InsertService(svc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// IsPlaceholder reports whether the document has never been published
// (Absent state): the underlying IotaDID carries the all-zero alias id.
func (d *IotaDocument) IsPlaceholder() bool { return d.id.IsPlaceholder() }

// Deactivate marks the document deactivated, corresponding to
// deactivateDidOutput clearing the Alias Output's state metadata. The
// document retains its last-known method pool in memory, but Pack will
// still serialize it; callers publishing a deactivation typically pack an
// empty CoreDocument instead.
func (d *IotaDocument) Deactivate() { d.metadata.Deactivated = true }

// Reactivate clears the deactivated flag, corresponding to re-publishing
// a non-empty document over a previously deactivated Alias Output.
func (d *IotaDocument) Reactivate() { d.metadata.Deactivated = false }
