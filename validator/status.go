package validator

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/iotaledger/iota-identity-go/credential"
	"github.com/iotaledger/iota-identity-go/document"
	"github.com/iotaledger/iota-identity-go/revocation"
)

// credentialStatus.type values §4.6's checkStatus dispatches on.
const (
	StatusTypeRevocationBitmap2022    = "RevocationBitmap2022"
	StatusTypeStatusList2021Entry     = "StatusList2021Entry"
	StatusTypeRevocationTimeframe2024 = "RevocationTimeframe2024"
)

// CheckStatus implements §4.6's checkStatus over every credentialStatus
// entry on c. issuerDoc resolves RevocationBitmap2022 services;
// statusListCredential supplies an already-resolved StatusList2021
// credential for StatusList2021Entry (the core never performs the HTTP
// fetch itself, per §1's scope boundary -- callers resolve it and pass
// it in). Either may be nil if the credential carries no status of that
// kind.
func CheckStatus(c *credential.Credential, issuerDoc *document.CoreDocument, statusListCredential *credential.Credential, check StatusCheck) error {
	if check == StatusCheckSkipAll {
		return nil
	}
	for _, status := range c.CredentialStatus {
		if err := checkOneStatus(status, issuerDoc, statusListCredential, check); err != nil {
			return err
		}
	}
	return nil
}

func checkOneStatus(status credential.Status, issuerDoc *document.CoreDocument, statusListCredential *credential.Credential, check StatusCheck) error {
	switch status.Type {
	case StatusTypeRevocationBitmap2022:
		return checkRevocationBitmap(status, issuerDoc)
	case StatusTypeStatusList2021Entry:
		return checkStatusList2021(status, statusListCredential)
	case StatusTypeRevocationTimeframe2024:
		return checkRevocationTimeframe(status)
	default:
		if check == StatusCheckStrict {
			return errUnsupportedStatusType(status.Type)
		}
		return nil
	}
}

func checkRevocationBitmap(status credential.Status, issuerDoc *document.CoreDocument) error {
	if issuerDoc == nil {
		return errUnsupportedStatusType(status.Type)
	}
	svc, err := issuerDoc.ResolveService(status.ID)
	if err != nil {
		return err
	}
	uri, ok := svc.Endpoint.URI()
	if !ok {
		return errUnsupportedStatusType(status.Type)
	}
	bitmap, err := revocation.DecodeBitmapDataURL(uri)
	if err != nil {
		return err
	}

	idx, err := statusIndex(status.Properties, "revocationBitmapIndex")
	if err != nil {
		return err
	}
	if bitmap.IsRevoked(uint32(idx)) {
		return errStatusRevoked("credential index is revoked in RevocationBitmap2022")
	}
	return nil
}

func checkStatusList2021(status credential.Status, statusListCredential *credential.Credential) error {
	if statusListCredential == nil {
		return errUnsupportedStatusType(status.Type)
	}
	list, purpose, err := revocation.DecodeStatusList2021Credential(statusListCredential)
	if err != nil {
		return err
	}

	idx, err := statusIndex(status.Properties, "statusListIndex")
	if err != nil {
		return err
	}
	set, err := list.Get(idx)
	if err != nil {
		return err
	}
	if set {
		return errStatusRevoked("credential index is set in StatusList2021 (" + string(purpose) + ")")
	}
	return nil
}

func checkRevocationTimeframe(status credential.Status) error {
	startRaw, ok1 := status.Properties["startValidityTimeframe"]
	endRaw, ok2 := status.Properties["endValidityTimeframe"]
	if !ok1 || !ok2 {
		return errUnsupportedStatusType(status.Type)
	}
	var startStr, endStr string
	if err := json.Unmarshal(startRaw, &startStr); err != nil {
		return errUnsupportedStatusType(status.Type)
	}
	if err := json.Unmarshal(endRaw, &endStr); err != nil {
		return errUnsupportedStatusType(status.Type)
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return errUnsupportedStatusType(status.Type)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return errUnsupportedStatusType(status.Type)
	}

	tf := revocation.TimeframeStatus{StartValidityTimeframe: start, EndValidityTimeframe: end}
	return tf.Check(now())
}

func statusIndex(props map[string]json.RawMessage, key string) (int, error) {
	raw, ok := props[key]
	if !ok {
		return 0, errUnsupportedStatusType(key)
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		idx, err := strconv.Atoi(asString)
		if err != nil {
			return 0, errUnsupportedStatusType(key)
		}
		return idx, nil
	}
	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return int(asNumber), nil
	}
	return 0, errUnsupportedStatusType(key)
}
