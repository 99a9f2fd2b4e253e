package revocation

import "time"

// TimeframeStatus is a RevocationTimeframe2024 credentialStatus: the
// credential is valid only while now lies in
// [StartValidityTimeframe, EndValidityTimeframe).
type TimeframeStatus struct {
	StartValidityTimeframe time.Time
	EndValidityTimeframe   time.Time
}

// Check reports whether now falls within the timeframe.
func (t TimeframeStatus) Check(now time.Time) error {
	if now.Before(t.StartValidityTimeframe) || !now.Before(t.EndValidityTimeframe) {
		return ErrOutsideValidityTimeframe("credential is outside its RevocationTimeframe2024 validity window")
	}
	return nil
}
