package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

func newTestSimulated(t *testing.T) *Simulated {
	t.Helper()
	cfg := DefaultSimulatedConfig()
	cfg.AssociateDelay = 0
	s := NewSimulated(cfg)
	require.NoError(t, s.SetUp(context.Background()))
	return s
}

func homeRequest(t *testing.T) AssociateRequest {
	t.Helper()
	psk, err := DerivePSK("correct horse", "home")
	require.NoError(t, err)
	return AssociateRequest{NetworkID: 1, SSID: "home", Security: mode.SecurityWPA2PSK, PSK: psk}
}

func TestSimulatedAssociate(t *testing.T) {
	s := newTestSimulated(t)

	assoc, err := s.Associate(context.Background(), homeRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "02:00:5e:00:00:01", assoc.BSSID)
	assert.Equal(t, 5180, assoc.FrequencyMHz)
	assert.Equal(t, mode.Standard11AX, assoc.Standard)
	assert.Equal(t, "02:00:5e:00:00:01", s.Snapshot().BSSID)

	stats, err := s.LinkStats()
	require.NoError(t, err)
	assert.NotZero(t, stats.RxPackets)

	tx, rx := s.PacketFates()
	assert.Len(t, tx, 2)
	assert.Len(t, rx, 2)
}

func TestSimulatedAssociateFailures(t *testing.T) {
	s := newTestSimulated(t)
	ctx := context.Background()

	t.Run("wrong psk", func(t *testing.T) {
		req := homeRequest(t)
		req.PSK = make([]byte, 32)
		_, err := s.Associate(ctx, req)
		assert.ErrorIs(t, err, ErrAuthFailed)
	})

	t.Run("unknown ssid", func(t *testing.T) {
		_, err := s.Associate(ctx, AssociateRequest{SSID: "nowhere"})
		assert.ErrorIs(t, err, ErrNetworkNotFound)
	})

	t.Run("wrong bssid", func(t *testing.T) {
		req := homeRequest(t)
		req.BSSID = "02:00:5e:00:00:99"
		_, err := s.Associate(ctx, req)
		assert.ErrorIs(t, err, ErrNetworkNotFound)
	})

	t.Run("injected", func(t *testing.T) {
		boom := errors.New("firmware crash")
		s.SetAssociateError(boom)
		defer s.SetAssociateError(nil)

		_, err := s.Associate(ctx, homeRequest(t))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("interface down", func(t *testing.T) {
		require.NoError(t, s.SetDown(ctx))
		defer s.SetUp(ctx)

		_, err := s.Associate(ctx, homeRequest(t))
		assert.ErrorIs(t, err, ErrInterfaceDown)
	})

	_, err := s.LinkStats()
	assert.ErrorIs(t, err, ErrNotAssociated)
}

func TestSimulatedAssociateHonoursContext(t *testing.T) {
	s := newTestSimulated(t)
	s.SetAssociateDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Associate(ctx, homeRequest(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimulatedWatchLink(t *testing.T) {
	s := newTestSimulated(t)

	var mu sync.Mutex
	var events []LinkEvent

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.WatchLink(ctx, func(ev LinkEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}))

	_, err := s.Associate(context.Background(), homeRequest(t))
	require.NoError(t, err)
	s.DropLink("beacon loss")

	mu.Lock()
	require.Len(t, events, 2)
	assert.Equal(t, LinkUp, events[0].Type)
	assert.Equal(t, LinkDown, events[1].Type)
	assert.Equal(t, "beacon loss", events[1].Reason)
	mu.Unlock()

	cancel()
	assert.Eventually(t, func() bool { return s.Snapshot().Watchers == 0 }, time.Second, 5*time.Millisecond)
}

func TestSimulatedFeatureSettings(t *testing.T) {
	s := newTestSimulated(t)

	assert.NoError(t, s.SetPowerSave(true))
	assert.NoError(t, s.SetLowLatency(true))
	assert.NoError(t, s.SetCountryCode("DE"))
	assert.ErrorIs(t, s.SetCountryCode("germany"), ErrInvalidCountry)
	assert.NoError(t, s.ConfigureRoaming(mode.RoamingConfig{BlocklistBSSIDs: []string{"02:00:5e:00:00:02"}}))

	st := s.Snapshot()
	assert.True(t, st.PowerSave)
	assert.True(t, st.LowLatency)
	assert.Equal(t, "DE", st.Country)
	assert.Len(t, st.Roaming.BlocklistBSSIDs, 1)

	tooMany := make([]string, 17)
	assert.Error(t, s.ConfigureRoaming(mode.RoamingConfig{BlocklistBSSIDs: tooMany}))

	noCaps := NewSimulated(SimulatedConfig{})
	assert.ErrorIs(t, noCaps.SetLowLatency(true), ErrUnsupported)
	assert.ErrorIs(t, noCaps.SetPowerSave(true), ErrInterfaceDown)
}

func TestSimulatedAPAndGroup(t *testing.T) {
	s := newTestSimulated(t)
	ctx := context.Background()

	require.NoError(t, s.StartAP(ctx, APConfig{SSID: "hotspot", Passphrase: "hotspot-pass"}))
	assert.ErrorIs(t, s.StartAP(ctx, APConfig{SSID: "again"}), ErrAPActive)
	require.NotNil(t, s.Snapshot().AP)
	require.NoError(t, s.StopAP(ctx))
	assert.Nil(t, s.Snapshot().AP)

	g, err := s.StartP2PGroup(ctx, P2PConfig{DeviceName: "printer", GroupOwnerIntent: 15})
	require.NoError(t, err)
	assert.Equal(t, "DIRECT-printer", g.SSID)
	assert.True(t, g.GroupOwner)
	_, err = s.StartP2PGroup(ctx, P2PConfig{})
	assert.ErrorIs(t, err, ErrGroupActive)
	require.NoError(t, s.StopP2PGroup(ctx))
	assert.Nil(t, s.Snapshot().Group)
}

func TestSimulatedProbeAndCommand(t *testing.T) {
	s := newTestSimulated(t)
	ctx := context.Background()

	_, err := s.Probe(ctx, 3)
	assert.ErrorIs(t, err, ErrNotAssociated)

	_, err = s.Associate(ctx, homeRequest(t))
	require.NoError(t, err)

	d, err := s.Probe(ctx, 3)
	require.NoError(t, err)
	assert.Positive(t, d)

	_, err = s.Probe(ctx, 42)
	assert.ErrorIs(t, err, ErrProbeUnsupported)

	out, err := s.Command(ctx, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "simulated")

	_, err = s.Command(ctx, "reboot")
	assert.ErrorIs(t, err, ErrUnsupported)
}
