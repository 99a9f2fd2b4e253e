package revocation

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/internal/config"
)

// StatusPurpose is a StatusList2021 credentialSubject.statusPurpose
// value.
type StatusPurpose string

const (
	StatusPurposeRevocation StatusPurpose = "revocation"
	StatusPurposeSuspension StatusPurpose = "suspension"
)

// DefaultStatusListBits is the bit length (131072 = 16 KiB) a freshly
// issued StatusList2021Credential gets absent an internal/config.Config
// (see NewStatusListFromConfig).
const DefaultStatusListBits = 131072

const statusListCredentialType = "StatusList2021Credential"
const statusListSubjectType = "StatusList2021"

// StatusList is a fixed-length bitstring, one bit per credential index,
// wire-encoded per §6 as base64url(gzip(bitstring)).
type StatusList struct {
	bits []byte
}

// NewStatusList builds an all-zero StatusList of the given bit length
// (rounded up to a whole byte); lengthBits <= 0 selects
// DefaultStatusListBits.
func NewStatusList(lengthBits int) *StatusList {
	if lengthBits <= 0 {
		lengthBits = DefaultStatusListBits
	}
	return &StatusList{bits: make([]byte, (lengthBits+7)/8)}
}

// NewStatusListFromConfig builds an all-zero StatusList sized per
// cfg.StatusList2021DefaultBits.
func NewStatusListFromConfig(cfg *config.Config) *StatusList {
	return NewStatusList(cfg.StatusList2021DefaultBits)
}

// Get reports whether index is set.
func (s *StatusList) Get(index int) (bool, error) {
	byteIdx := index / 8
	if index < 0 || byteIdx >= len(s.bits) {
		return false, ErrIndexOutOfRange("status list index out of range")
	}
	return s.bits[byteIdx]&(1<<(uint(index)%8)) != 0, nil
}

// Set assigns index to value.
func (s *StatusList) Set(index int, value bool) error {
	byteIdx := index / 8
	if index < 0 || byteIdx >= len(s.bits) {
		return ErrIndexOutOfRange("status list index out of range")
	}
	if value {
		s.bits[byteIdx] |= 1 << (uint(index) % 8)
	} else {
		s.bits[byteIdx] &^= 1 << (uint(index) % 8)
	}
	return nil
}

// EncodedList renders s as base64url(gzip(bitstring)), the
// credentialSubject.encodedList wire value.
func (s *StatusList) EncodedList() (string, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(s.bits); err != nil {
		return "", ErrInvalidStatusList("failed to compress status list", err)
	}
	if err := w.Close(); err != nil {
		return "", ErrInvalidStatusList("failed to finalize status list compression", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeEncodedList parses a credentialSubject.encodedList member back
// into a StatusList.
func DecodeEncodedList(encoded string) (*StatusList, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidStatusList("failed to base64url-decode encodedList", err)
	}
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, ErrInvalidStatusList("failed to open gzip stream", err)
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrInvalidStatusList("failed to decompress encodedList", err)
	}
	return &StatusList{bits: raw}, nil
}

// NewStatusList2021Credential builds a StatusList2021Credential issued
// by issuer, covering lengthBits indices, all initially unset.
// subjectID is the credentialSubject's own id (conventionally the
// credential's own URL with a "#list" fragment).
func NewStatusList2021Credential(issuer, subjectID string, purpose StatusPurpose, lengthBits int) (*credential.Credential, error) {
	if purpose != StatusPurposeRevocation && purpose != StatusPurposeSuspension {
		return nil, ErrUnsupportedStatusPurpose(string(purpose))
	}

	list := NewStatusList(lengthBits)
	encoded, err := list.EncodedList()
	if err != nil {
		return nil, err
	}

	props := map[string]json.RawMessage{
		"type":          mustJSONValue(statusListSubjectType),
		"statusPurpose": mustJSONValue(string(purpose)),
		"encodedList":   mustJSONValue(encoded),
	}

	c, err := credential.New(issuer, []credential.Subject{{
		ID:         subjectID,
		Properties: props,
	}}, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	c.Type = append(c.Type, statusListCredentialType)
	return c, nil
}

// DecodeStatusList2021Credential extracts the StatusList and
// statusPurpose embedded in a StatusList2021Credential's
// credentialSubject.
func DecodeStatusList2021Credential(c *credential.Credential) (*StatusList, StatusPurpose, error) {
	if len(c.CredentialSubject) == 0 {
		return nil, "", ErrInvalidStatusList("status list credential has no credentialSubject", nil)
	}
	subject := c.CredentialSubject[0]

	purposeRaw, ok := subject.Properties["statusPurpose"]
	if !ok {
		return nil, "", ErrInvalidStatusList("credentialSubject is missing statusPurpose", nil)
	}
	var purposeStr string
	if err := json.Unmarshal(purposeRaw, &purposeStr); err != nil {
		return nil, "", ErrInvalidStatusList("statusPurpose must be a string", err)
	}
	purpose := StatusPurpose(purposeStr)
	if purpose != StatusPurposeRevocation && purpose != StatusPurposeSuspension {
		return nil, "", ErrUnsupportedStatusPurpose(string(purpose))
	}

	encodedRaw, ok := subject.Properties["encodedList"]
	if !ok {
		return nil, "", ErrInvalidStatusList("credentialSubject is missing encodedList", nil)
	}
	var encoded string
	if err := json.Unmarshal(encodedRaw, &encoded); err != nil {
		return nil, "", ErrInvalidStatusList("encodedList must be a string", err)
	}
	list, err := DecodeEncodedList(encoded)
	if err != nil {
		return nil, "", err
	}
	return list, purpose, nil
}

func mustJSONValue(v string) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
