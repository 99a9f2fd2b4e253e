package did

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/iotaledger/iota-identity-go/internal/config"
)

const (
	// IotaMethod is the method-name segment IotaDID always carries.
	IotaMethod = "iota"

	// tagLength is the byte length of an Alias Output's AliasID, and
	// therefore of every IotaDID method-specific tag.
	tagLength = 32
)

// networkNameRE matches a network name: 1 to 6 lower-case ASCII
// alphanumerics.
var networkNameRE = regexp.MustCompile(`^[a-z0-9]{1,6}$`)

// tagRE matches the 64 hex characters encoding a 32-byte Alias ID.
var tagRE = regexp.MustCompile(`^(?i)[0-9a-f]{64}$`)

// IotaDID is the did:iota method-specific identifier: a network name and
// the 32-byte AliasID of the Alias Output anchoring the DID document.
type IotaDID struct {
	core    CoreDID
	network string
	tag     [tagLength]byte
}

// NewIotaDID builds an IotaDID from a network name and a 32-byte alias id.
// An empty network name is rejected -- callers that want the default
// network must pass it explicitly (see PlaceholderFromConfig/
// ParseIotaDIDFromConfig).
func NewIotaDID(network string, aliasID [tagLength]byte) (IotaDID, error) {
	if !networkNameRE.MatchString(network) {
		return IotaDID{}, ErrInvalidNetwork(fmt.Sprintf("network name %q must be 1-6 lower-case alphanumerics", network))
	}

	methodID := networkMethodID(network, aliasID)
	core, err := New(IotaMethod, methodID)
	if err != nil {
		return IotaDID{}, err
	}

	return IotaDID{core: core, network: network, tag: aliasID}, nil
}

// networkMethodID renders "<network>:<hex>", or bare "<hex>" when network
// equals defaultNetwork is decided by callers -- this helper always
// includes the network segment; Placeholder/Parse take care of omission.
func networkMethodID(network string, aliasID [tagLength]byte) string {
	return fmt.Sprintf("%s:%s", network, hex.EncodeToString(aliasID[:]))
}

// Placeholder returns the all-zero IotaDID used before an Alias Output has
// been published (the Absent state).
func Placeholder(network string) (IotaDID, error) {
	var zero [tagLength]byte
	return NewIotaDID(network, zero)
}

// PlaceholderFromConfig returns Placeholder for cfg.DefaultNetwork, the
// network callers fall back to when they don't pin one themselves.
func PlaceholderFromConfig(cfg *config.Config) (IotaDID, error) {
	return Placeholder(cfg.DefaultNetwork)
}

// ParseIotaDID parses "did:iota:<hex>" (network omitted, implying
// defaultNetwork) or "did:iota:<network>:<hex>".
func ParseIotaDID(input string, defaultNetwork string) (IotaDID, error) {
	core, err := Parse(input)
	if err != nil {
		return IotaDID{}, err
	}
	if core.Method() != IotaMethod {
		return IotaDID{}, ErrInvalidMethod(fmt.Sprintf("expected method %q, got %q", IotaMethod, core.Method()))
	}

	network := defaultNetwork
	tagStr := core.MethodID()
	if idx := strings.LastIndex(core.MethodID(), ":"); idx >= 0 {
		network = core.MethodID()[:idx]
		tagStr = core.MethodID()[idx+1:]
		if !networkNameRE.MatchString(network) {
			return IotaDID{}, ErrInvalidNetwork(fmt.Sprintf("network name %q must be 1-6 lower-case alphanumerics", network))
		}
	}

	if !tagRE.MatchString(tagStr) {
		return IotaDID{}, ErrInvalidTag(fmt.Sprintf("alias id %q must be 64 hex characters", tagStr))
	}
	raw, err := hex.DecodeString(tagStr)
	if err != nil {
		return IotaDID{}, ErrInvalidTag(fmt.Sprintf("alias id %q is not valid hex", tagStr))
	}

	var tag [tagLength]byte
	copy(tag[:], raw)

	return IotaDID{core: core, network: network, tag: tag}, nil
}

// ParseIotaDIDFromConfig parses input the way ParseIotaDID does, using
// cfg.DefaultNetwork as the implied network when input omits one.
func ParseIotaDIDFromConfig(input string, cfg *config.Config) (IotaDID, error) {
	return ParseIotaDID(input, cfg.DefaultNetwork)
}

// Network returns the network name, defaulted or explicit.
func (d IotaDID) Network() string { return d.network }

// Tag returns the 32-byte Alias ID.
func (d IotaDID) Tag() [tagLength]byte { return d.tag }

// ToAliasID renders the tag as a "0x"-prefixed hex string, the form the
// ledger client's Alias Output lookups expect.
func (d IotaDID) ToAliasID() string {
	return "0x" + hex.EncodeToString(d.tag[:])
}

// IsPlaceholder reports whether the tag is all-zero, i.e. the DID has
// never been published.
func (d IotaDID) IsPlaceholder() bool {
	var zero [tagLength]byte
	return d.tag == zero
}

// CoreDID returns the method-agnostic view of this identifier.
func (d IotaDID) CoreDID() CoreDID { return d.core }

// String renders "did:iota:<hex>" when network equals defaultNetwork, or
// "did:iota:<network>:<hex>" otherwise. Since IotaDID does not itself know
// the embedding application's default network, String always includes the
// network segment; use StringWithDefaultNetwork to omit it.
func (d IotaDID) String() string { return d.core.String() }

// StringWithDefaultNetwork renders the method-specific-id without the
// network segment when it equals defaultNetwork.
func (d IotaDID) StringWithDefaultNetwork(defaultNetwork string) string {
	if d.network == defaultNetwork {
		return fmt.Sprintf("%s:%s:%s", scheme, IotaMethod, hex.EncodeToString(d.tag[:]))
	}
	return d.core.String()
}

// Equal compares two IotaDIDs by value.
func (d IotaDID) Equal(other IotaDID) bool {
	return d.network == other.network && d.tag == other.tag
}

// MarshalText implements encoding.TextMarshaler.
func (d IotaDID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
