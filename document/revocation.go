package document

import (
	"github.com/iotaledger/iota-identity-go/revocation"
	"github.com/iotaledger/iota-identity-go/verification"
)

// ServiceTypeRevocationBitmap2022 is the service type
// RevokeCredentials/UnrevokeCredentials look for.
const ServiceTypeRevocationBitmap2022 = "RevocationBitmap2022"

// RevokeCredentials sets every index in indices in the RevocationBitmap2022
// service matching serviceQuery (a DIDUrl or bare fragment, per
// ResolveService), rewriting its endpoint data URL in place.
func (d *CoreDocument) RevokeCredentials(serviceQuery string, indices []uint32) error {
	return d.updateRevocationBitmap(serviceQuery, indices, true)
}

// UnrevokeCredentials clears every index in indices in the matching
// RevocationBitmap2022 service.
func (d *CoreDocument) UnrevokeCredentials(serviceQuery string, indices []uint32) error {
	return d.updateRevocationBitmap(serviceQuery, indices, false)
}

func (d *CoreDocument) updateRevocationBitmap(serviceQuery string, indices []uint32, revoke bool) error {
	if err := d.tryBeginWrite(); err != nil {
		return err
	}
	defer d.endWrite()

	svc := d.findRevocationServiceLocked(serviceQuery)
	if svc == nil {
		return ErrRevocationServiceNotFound(serviceQuery)
	}

	uri, ok := svc.Endpoint.URI()
	if !ok {
		return ErrInvalidServiceEndpoint("RevocationBitmap2022 service endpoint must be a single URI")
	}
	bitmap, err := revocation.DecodeBitmapDataURL(uri)
	if err != nil {
		return err
	}

	for _, idx := range indices {
		if revoke {
			bitmap.Revoke(idx)
		} else {
			bitmap.Unrevoke(idx)
		}
	}

	encoded, err := bitmap.EncodeDataURL()
	if err != nil {
		return err
	}
	svc.Endpoint = verification.NewURIEndpoint(encoded)
	return nil
}

// findRevocationServiceLocked mirrors ResolveService's matching rule but
// assumes the caller already holds d.mu for writing, and additionally
// requires the RevocationBitmap2022 type.
func (d *CoreDocument) findRevocationServiceLocked(query string) *verification.Service {
	for _, s := range d.services {
		if query != s.ID.String() && !(query == s.ID.Fragment() && s.ID.Fragment() != "") {
			continue
		}
		for _, t := range s.Type {
			if t == ServiceTypeRevocationBitmap2022 {
				return s
			}
		}
	}
	return nil
}
