package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisabled, "DISABLED"},
		{StateScanOnly, "SCAN_ONLY"},
		{StateClient, "CLIENT"},
		{StateSoftAP, "SOFT_AP"},
		{StateP2P, "P2P"},
		{State(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		in      string
		want    State
		wantErr bool
	}{
		{"disabled", StateDisabled, false},
		{"SCAN_ONLY", StateScanOnly, false},
		{"scan-only", StateScanOnly, false},
		{" Client ", StateClient, false},
		{"softap", StateSoftAP, false},
		{"soft_ap", StateSoftAP, false},
		{"p2p", StateP2P, false},
		{"monitor", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseState(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseState(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseState(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Every state parses back from its name.
	for _, s := range States() {
		got, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStateKind(t *testing.T) {
	assert.True(t, StateDisabled.Inactive())
	assert.True(t, StateScanOnly.Inactive())
	assert.False(t, StateClient.Inactive())

	assert.Equal(t, mode.KindInactive, StateScanOnly.Kind())
	assert.Equal(t, mode.KindClient, StateClient.Kind())
	assert.Equal(t, mode.KindSoftAP, StateSoftAP.Kind())
	assert.Equal(t, mode.KindP2P, StateP2P.Kind())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, PolicyReject, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyQueue, p)

	_, err = ParsePolicy("drop")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Equal(t, "UNKNOWN", Policy(7).String())
}

func TestHistoryRing(t *testing.T) {
	h := newHistory(3)
	assert.Empty(t, h.list())

	for i := 0; i < 5; i++ {
		h.add(Record{Reason: string(rune('a' + i))})
	}
	var reasons []string
	for _, r := range h.list() {
		reasons = append(reasons, r.Reason)
	}
	assert.Equal(t, []string{"c", "d", "e"}, reasons)

	// A zero-size history keeps nothing.
	empty := newHistory(0)
	empty.add(Record{})
	assert.Empty(t, empty.list())
}

func TestRecordString(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 15, 250_000_000, time.UTC)
	rec := Record{
		At:       at,
		From:     StateScanOnly,
		To:       StateClient,
		ToMode:   mode.NewID(mode.KindClient),
		Result:   wlanlog.TransitionOK,
		Reason:   "boot",
		Duration: 1500 * time.Microsecond,
		UIDs:     []int{1000},
	}
	s := rec.String()
	assert.Contains(t, s, "12:30:15.250 SCAN_ONLY -> CLIENT OK mode=client/")
	assert.Contains(t, s, "took=1.5ms")
	assert.Contains(t, s, `reason="boot"`)
	assert.Contains(t, s, "uids=[1000]")

	failed := Record{At: at, From: StateDisabled, To: StateSoftAP, Result: wlanlog.TransitionFailed, Err: "no radio"}
	assert.Equal(t, `12:30:15.250 DISABLED -> SOFT_AP FAILED err="no radio"`, failed.String())
}
