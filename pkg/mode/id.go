package mode

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the family a mode instance belongs to.
type Kind uint8

const (
	// KindInactive is the scan-only null object.
	KindInactive Kind = iota

	// KindClient is a client (station) mode.
	KindClient

	// KindSoftAP is an access point mode.
	KindSoftAP

	// KindP2P is a peer-to-peer group mode.
	KindP2P
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInactive:
		return "inactive"
	case KindClient:
		return "client"
	case KindSoftAP:
		return "softap"
	case KindP2P:
		return "p2p"
	default:
		return "unknown"
	}
}

// legacyInactiveID is the numeric identity older tooling used for the
// scan-only mode.
const legacyInactiveID int64 = -2

// ID is the immutable identity of a mode instance.
//
// Identities are namespaced by Kind. Real instances carry a random UUID; the
// nil UUID is reserved for the inactive mode and is never produced by NewID.
type ID struct {
	Kind     Kind
	Instance uuid.UUID
}

// InactiveID is the reserved identity of the scan-only mode.
var InactiveID = ID{Kind: KindInactive, Instance: uuid.Nil}

// NewID returns a fresh identity for a mode of the given kind.
func NewID(kind Kind) ID {
	return ID{Kind: kind, Instance: uuid.New()}
}

// IsInactive reports whether id is the reserved inactive identity.
func (id ID) IsInactive() bool {
	return id == InactiveID
}

// String renders the identity as "kind/uuid".
func (id ID) String() string {
	return id.Kind.String() + "/" + id.Instance.String()
}

// Short returns the kind and the first eight characters of the instance.
func (id ID) Short() string {
	return id.Kind.String() + "/" + id.Instance.String()[:8]
}

// Legacy returns the numeric identity used by older log consumers.
// Only the inactive identity has a stable legacy value; other identities
// return 0.
func (id ID) Legacy() int64 {
	if id.IsInactive() {
		return legacyInactiveID
	}
	return 0
}

// ParseID parses the output of ID.String.
func ParseID(s string) (ID, error) {
	kindStr, instStr, ok := strings.Cut(s, "/")
	if !ok {
		return ID{}, fmt.Errorf("invalid mode id %q", s)
	}

	var kind Kind
	switch kindStr {
	case "inactive":
		kind = KindInactive
	case "client":
		kind = KindClient
	case "softap":
		kind = KindSoftAP
	case "p2p":
		kind = KindP2P
	default:
		return ID{}, fmt.Errorf("invalid mode kind %q", kindStr)
	}

	inst, err := uuid.Parse(instStr)
	if err != nil {
		return ID{}, fmt.Errorf("invalid mode instance: %w", err)
	}
	if inst == uuid.Nil && kind != KindInactive {
		return ID{}, fmt.Errorf("reserved instance for kind %s", kind)
	}

	return ID{Kind: kind, Instance: inst}, nil
}
