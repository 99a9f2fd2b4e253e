package verification

import (
	"encoding/json"

	"github.com/iotaledger/iota-identity-go/did"
)

// ServiceEndpoint is the "serviceEndpoint" property, which per did-core may
// be a single URI, a set of URIs, or a map of named endpoints. Grounded on
// the single-URI ServiceEndpoint of bryk-io-pkg/did/document.go, widened
// to the full union did-core §5.4 allows.
type ServiceEndpoint struct {
	uri  string
	set  []string
	maps map[string]string
}

// NewURIEndpoint wraps a single endpoint URI.
func NewURIEndpoint(uri string) ServiceEndpoint {
	return ServiceEndpoint{uri: uri}
}

// NewSetEndpoint wraps a set of endpoint URIs.
func NewSetEndpoint(uris []string) ServiceEndpoint {
	return ServiceEndpoint{set: uris}
}

// NewMapEndpoint wraps a named map of endpoint URIs.
func NewMapEndpoint(m map[string]string) ServiceEndpoint {
	return ServiceEndpoint{maps: m}
}

// URI returns the endpoint's single URI form and true, or "", false if
// the endpoint was constructed as a set or named map (revocation's
// data-URL bitmap services always use the single-URI form).
func (e ServiceEndpoint) URI() (string, bool) {
	if e.set != nil || e.maps != nil {
		return "", false
	}
	return e.uri, true
}

// MarshalJSON renders whichever variant was set.
func (e ServiceEndpoint) MarshalJSON() ([]byte, error) {
	switch {
	case e.maps != nil:
		return json.Marshal(e.maps)
	case e.set != nil:
		return json.Marshal(e.set)
	default:
		return json.Marshal(e.uri)
	}
}

// UnmarshalJSON accepts any of the three shapes did-core allows.
func (e *ServiceEndpoint) UnmarshalJSON(data []byte) error {
	var uri string
	if err := json.Unmarshal(data, &uri); err == nil {
		*e = ServiceEndpoint{uri: uri}
		return nil
	}

	var set []string
	if err := json.Unmarshal(data, &set); err == nil {
		*e = ServiceEndpoint{set: set}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return ErrInvalidService("serviceEndpoint must be a URI, array of URIs, or map of URIs")
	}
	*e = ServiceEndpoint{maps: m}
	return nil
}

// Service is an entry in a document's "service" array, per
// https://www.w3.org/TR/did-core/#services.
type Service struct {
	ID         did.DIDUrl                 `json:"id"`
	Type       []string                   `json:"type"`
	Endpoint   ServiceEndpoint            `json:"serviceEndpoint"`
	Properties map[string]json.RawMessage `json:"-"`
}

// NewService validates and builds a Service entry.
func NewService(id did.DIDUrl, types []string, endpoint ServiceEndpoint) (*Service, error) {
	if len(types) == 0 {
		return nil, ErrInvalidService("service must declare at least one type")
	}
	return &Service{ID: id, Type: types, Endpoint: endpoint}, nil
}

// UnmarshalService decodes a service wire object, capturing any member
// beyond id/type/serviceEndpoint as a custom Property.
func UnmarshalService(raw []byte) (*Service, error) {
	var shallow struct {
		ID       did.DIDUrl      `json:"id"`
		Type     json.RawMessage `json:"type"`
		Endpoint ServiceEndpoint `json:"serviceEndpoint"`
	}
	if err := json.Unmarshal(raw, &shallow); err != nil {
		return nil, ErrInvalidService("failed to decode service: " + err.Error())
	}

	var types []string
	if err := json.Unmarshal(shallow.Type, &types); err != nil {
		var single string
		if err := json.Unmarshal(shallow.Type, &single); err != nil {
			return nil, ErrInvalidService("service type must be a string or array of strings")
		}
		types = []string{single}
	}

	svc, err := NewService(shallow.ID, types, shallow.Endpoint)
	if err != nil {
		return nil, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err == nil {
		delete(all, "id")
		delete(all, "type")
		delete(all, "serviceEndpoint")
		if len(all) > 0 {
			svc.Properties = all
		}
	}

	return svc, nil
}

// MarshalJSON flattens Properties alongside the service's own fields.
func (s Service) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID       did.DIDUrl      `json:"id"`
		Type     []string        `json:"type"`
		Endpoint ServiceEndpoint `json:"serviceEndpoint"`
	}
	base, err := json.Marshal(alias{ID: s.ID, Type: s.Type, Endpoint: s.Endpoint})
	if err != nil {
		return nil, err
	}
	if len(s.Properties) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Properties {
		merged[k] = v
	}
	return json.Marshal(merged)
}
