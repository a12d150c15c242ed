package mode

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewIDNeverInactive(t *testing.T) {
	seen := make(map[ID]bool)
	for _, kind := range []Kind{KindClient, KindSoftAP, KindP2P} {
		for i := 0; i < 100; i++ {
			id := NewID(kind)
			if id.IsInactive() {
				t.Fatalf("NewID(%s) returned the inactive identity", kind)
			}
			if id.Instance == uuid.Nil {
				t.Fatalf("NewID(%s) returned the nil instance", kind)
			}
			if seen[id] {
				t.Fatalf("NewID(%s) returned a duplicate: %s", kind, id)
			}
			seen[id] = true
		}
	}
}

func TestIDRoundTrip(t *testing.T) {
	ids := []ID{InactiveID, NewID(KindClient), NewID(KindSoftAP), NewID(KindP2P)}

	for _, id := range ids {
		t.Run(id.Kind.String(), func(t *testing.T) {
			got, err := ParseID(id.String())
			if err != nil {
				t.Fatalf("ParseID(%q) error = %v", id.String(), err)
			}
			if got != id {
				t.Errorf("ParseID(%q) = %v, want %v", id.String(), got, id)
			}
		})
	}
}

func TestParseIDRejects(t *testing.T) {
	bad := []string{
		"",
		"client",
		"radio/" + uuid.NewString(),
		"client/not-a-uuid",
		"client/" + uuid.Nil.String(),
	}

	for _, s := range bad {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) succeeded, want error", s)
		}
	}
}

func TestIDLegacy(t *testing.T) {
	if got := InactiveID.Legacy(); got != -2 {
		t.Errorf("InactiveID.Legacy() = %d, want -2", got)
	}
	if got := NewID(KindClient).Legacy(); got != 0 {
		t.Errorf("client Legacy() = %d, want 0", got)
	}
}

func TestIDShort(t *testing.T) {
	if got, want := InactiveID.Short(), "inactive/00000000"; got != want {
		t.Errorf("InactiveID.Short() = %q, want %q", got, want)
	}
}
