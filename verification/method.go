// Package verification implements the VerificationMethod and Service
// building blocks, plus the five verification-relationship kinds a
// CoreDocument indexes them under. Grounded on the
// VerificationKey/ServiceEndpoint shape of
// bryk-io-pkg/did/{key,document}.go, generalized from that package's
// single-purpose multibase/base58 key encoding to a JWK-centric model.
package verification

import (
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/did"
	"github.com/iotaledger/iota-identity-go/jwk"
	"github.com/multiformats/go-multibase"
)

// MethodDataType discriminates the encoding of a VerificationMethod's key
// material.
type MethodDataType string

const (
	MethodDataMultibase MethodDataType = "Multibase"
	MethodDataBase58    MethodDataType = "Base58"
	MethodDataJwk       MethodDataType = "Jwk"
	MethodDataCustom    MethodDataType = "Custom"
)

// MethodData is the tagged union of key-material encodings a
// VerificationMethod may carry: multibase, base58, JWK, or a custom
// encoding.
type MethodData struct {
	typ MethodDataType

	multibase string
	base58    string
	jwk       jwk.Jwk
	custom    json.RawMessage
}

// NewMultibaseMethodData encodes raw key bytes using the given multibase
// base, by default base58-btc ('z' prefix) as did:key and most DID methods
// expect.
func NewMultibaseMethodData(raw []byte, base multibase.Encoding) (MethodData, error) {
	encoded, err := multibase.Encode(base, raw)
	if err != nil {
		return MethodData{}, ErrInvalidMethodData("failed to multibase-encode key material", err)
	}
	return MethodData{typ: MethodDataMultibase, multibase: encoded}, nil
}

// NewBase58MethodData wraps an already-base58-encoded key, the legacy
// publicKeyBase58 encoding superseded by Multibase.
func NewBase58MethodData(encoded string) MethodData {
	return MethodData{typ: MethodDataBase58, base58: encoded}
}

// NewJwkMethodData wraps a public Jwk. Supplying a private key is
// rejected: a verification method is, by definition, public-facing.
func NewJwkMethodData(key jwk.Jwk) (MethodData, error) {
	if !key.IsPublic() {
		return MethodData{}, ErrInvalidMethodData("verification method data must not carry private key material", nil)
	}
	if err := key.Validate(); err != nil {
		return MethodData{}, ErrInvalidMethodData("invalid jwk", err)
	}
	return MethodData{typ: MethodDataJwk, jwk: key}, nil
}

// NewCustomMethodData wraps an arbitrary JSON value for method types not
// natively modeled here.
func NewCustomMethodData(raw json.RawMessage) MethodData {
	return MethodData{typ: MethodDataCustom, custom: raw}
}

// Type reports which encoding this MethodData carries.
func (d MethodData) Type() MethodDataType { return d.typ }

// PublicKeyJwk returns the wrapped Jwk and true if Type is MethodDataJwk.
func (d MethodData) PublicKeyJwk() (jwk.Jwk, bool) {
	return d.jwk, d.typ == MethodDataJwk
}

// Multibase returns the wrapped multibase string and true if Type is
// MethodDataMultibase.
func (d MethodData) Multibase() (string, bool) {
	return d.multibase, d.typ == MethodDataMultibase
}

// TryDecode decodes MethodDataMultibase or MethodDataBase58 key material
// into raw bytes. It is a programmer error to call this on MethodDataJwk
// or MethodDataCustom; those report ok=false.
func (d MethodData) TryDecode() (raw []byte, ok bool, err error) {
	switch d.typ {
	case MethodDataMultibase:
		_, raw, err := multibase.Decode(d.multibase)
		return raw, err == nil, err
	case MethodDataBase58:
		raw, err := base58Decode(d.base58)
		return raw, err == nil, err
	default:
		return nil, false, nil
	}
}

// MarshalJSON renders MethodData under whichever single property name its
// Type dictates, matching the did-core verificationMethod serialization
// (publicKeyMultibase / publicKeyBase58 / publicKeyJwk).
func (d MethodData) MarshalJSON() ([]byte, error) {
	switch d.typ {
	case MethodDataMultibase:
		return json.Marshal(struct {
			Value string `json:"publicKeyMultibase"`
		}{d.multibase})
	case MethodDataBase58:
		return json.Marshal(struct {
			Value string `json:"publicKeyBase58"`
		}{d.base58})
	case MethodDataJwk:
		return json.Marshal(struct {
			Value jwk.Jwk `json:"publicKeyJwk"`
		}{d.jwk})
	case MethodDataCustom:
		return d.custom, nil
	default:
		return nil, ErrInvalidMethodData("method data has no type set", nil)
	}
}

// MethodType names the cryptographic suite a VerificationMethod uses, e.g.
// "JsonWebKey2020" or "Ed25519VerificationKey2018".
type MethodType string

const (
	MethodTypeJsonWebKey2020              MethodType = "JsonWebKey2020"
	MethodTypeEd25519VerificationKey2018  MethodType = "Ed25519VerificationKey2018"
	MethodTypeMultikey                    MethodType = "Multikey"
)

// Method is a single entry in a document's verification method pool, per
// https://www.w3.org/TR/did-core/#verification-methods.
type Method struct {
	ID         did.DIDUrl  `json:"id"`
	Controller did.CoreDID `json:"controller"`
	Type       MethodType  `json:"type"`
	Data       MethodData  `json:"-"`
}

// New builds a Method, failing if data is the zero value.
func New(id did.DIDUrl, controller did.CoreDID, typ MethodType, data MethodData) (*Method, error) {
	if data.typ == "" {
		return nil, ErrInvalidMethodData("method data must not be empty", nil)
	}
	return &Method{ID: id, Controller: controller, Type: typ, Data: data}, nil
}

// MarshalJSON flattens Data's single property alongside the method's own
// fields, matching the did-core wire shape where publicKeyJwk (etc.) is a
// sibling of id/type/controller rather than nested under "data".
func (m Method) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID         did.DIDUrl  `json:"id"`
		Controller did.CoreDID `json:"controller"`
		Type       MethodType  `json:"type"`
	}
	base, err := json.Marshal(alias{ID: m.ID, Controller: m.Controller, Type: m.Type})
	if err != nil {
		return nil, err
	}
	dataJSON, err := m.Data.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return mergeJSONObjects(base, dataJSON)
}

func mergeJSONObjects(a, b []byte) ([]byte, error) {
	var am, bm map[string]json.RawMessage
	if err := json.Unmarshal(a, &am); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &bm); err != nil {
		return nil, err
	}
	for k, v := range bm {
		am[k] = v
	}
	return json.Marshal(am)
}

// UnmarshalMethod decodes a verificationMethod wire object, inferring its
// MethodData variant from whichever publicKey* member is present.
func UnmarshalMethod(raw []byte) (*Method, error) {
	var shallow struct {
		ID         did.DIDUrl  `json:"id"`
		Controller did.CoreDID `json:"controller"`
		Type       MethodType  `json:"type"`
		Jwk        *jwk.Jwk    `json:"publicKeyJwk,omitempty"`
		Multibase  *string     `json:"publicKeyMultibase,omitempty"`
		Base58     *string     `json:"publicKeyBase58,omitempty"`
	}
	if err := json.Unmarshal(raw, &shallow); err != nil {
		return nil, ErrInvalidMethodData("failed to decode verification method", err)
	}

	var data MethodData
	switch {
	case shallow.Jwk != nil:
		var err error
		data, err = NewJwkMethodData(*shallow.Jwk)
		if err != nil {
			return nil, err
		}
	case shallow.Multibase != nil:
		data = MethodData{typ: MethodDataMultibase, multibase: *shallow.Multibase}
	case shallow.Base58 != nil:
		data = NewBase58MethodData(*shallow.Base58)
	default:
		data = NewCustomMethodData(raw)
	}

	return &Method{ID: shallow.ID, Controller: shallow.Controller, Type: shallow.Type, Data: data}, nil
}

// MethodDigest derives the stable identifier storage.KeyIdStorage keys its
// method-digest-to-key-id mapping by, valid only for MethodDataJwk
// methods.
func (m Method) MethodDigest() (string, error) {
	key, ok := m.Data.PublicKeyJwk()
	if !ok {
		return "", ErrInvalidMethodData("method digest requires publicKeyJwk data", nil)
	}
	return jwk.MethodDigest(key)
}
