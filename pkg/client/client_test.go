package client

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wlanmode/wlanmode-go/pkg/connection"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
	"github.com/wlanmode/wlanmode-go/pkg/netstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	homeID  = 1
	cafeID  = 2
	ghostID = 3
)

func testNetworks() []mode.NetworkConfig {
	return []mode.NetworkConfig{
		{ID: homeID, SSID: "home", Security: mode.SecurityWPA2PSK, Passphrase: "correct horse"},
		{ID: cafeID, SSID: "cafe", Security: mode.SecurityOpen},
		{ID: ghostID, SSID: "ghost", Security: mode.SecurityOpen},
	}
}

// result is the outcome delivered to a listener.
type result struct {
	ok     bool
	reason mode.FailureReason
}

// recorder captures listener deliveries.
type recorder struct {
	ch chan result
}

func newRecorder() (*recorder, *mode.ListenerWrapper) {
	r := &recorder{ch: make(chan result, 4)}
	return r, mode.WrapListener(mode.ActionListenerFuncs{
		Success: func() { r.ch <- result{ok: true} },
		Failure: func(reason mode.FailureReason) { r.ch <- result{reason: reason} },
	})
}

func (r *recorder) wait(t *testing.T) result {
	t.Helper()
	select {
	case res := <-r.ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("listener not resolved")
		return result{}
	}
}

// assertOnce fails if a second result is delivered.
func (r *recorder) assertOnce(t *testing.T) {
	t.Helper()
	select {
	case res := <-r.ch:
		t.Errorf("listener resolved twice, extra result %+v", res)
	case <-time.After(50 * time.Millisecond):
	}
}

// traceRecorder is an in-memory trace logger.
type traceRecorder struct {
	mu     sync.Mutex
	events []wlanlog.Event
}

func (r *traceRecorder) Log(ev wlanlog.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *traceRecorder) operations(name, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Operation != nil && ev.Operation.Name == name && ev.Operation.Outcome == outcome {
			n++
		}
	}
	return n
}

type testEnv struct {
	mode  *Mode
	radio *driver.Simulated
	store *netstore.Memory
	trace *traceRecorder
}

func newTestMode(t *testing.T, delay time.Duration, mutate func(*Config)) *testEnv {
	t.Helper()

	simCfg := driver.DefaultSimulatedConfig()
	simCfg.AssociateDelay = delay
	radio := driver.NewSimulated(simCfg)

	store, err := netstore.NewMemory(testNetworks()...)
	require.NoError(t, err)

	trace := &traceRecorder{}
	cfg := DefaultConfig()
	cfg.Radio = radio
	cfg.Store = store
	cfg.Trace = trace
	cfg.ConnectTimeout = time.Second
	cfg.Backoff = connection.BackoffConfig{Initial: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	if mutate != nil {
		mutate(&cfg)
	}

	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Retire() })

	return &testEnv{mode: m, radio: radio, store: store, trace: trace}
}

func (e *testEnv) connect(t *testing.T, id int) {
	t.Helper()
	rec, l := newRecorder()
	e.mode.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: id}, l, 1000)
	res := rec.wait(t)
	require.True(t, res.ok, "connect to %d failed: %v", id, res.reason)
}

func TestNewValidation(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrNoRadio)

	_, err = New(context.Background(), Config{Radio: driver.NewSimulated(driver.DefaultSimulatedConfig())})
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestNewStartsDisconnected(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode

	assert.Equal(t, mode.KindClient, m.ID().Kind)
	assert.True(t, m.IsDisconnected())
	assert.False(t, m.IsConnected())
	assert.Nil(t, m.CurrentNetwork())
	assert.Equal(t, "02:00:5e:10:00:01", m.FactoryMACAddress())
	assert.True(t, env.radio.Snapshot().Up)

	info := m.ConnectionInfo()
	assert.False(t, info.Connected())
	assert.Equal(t, "DISCONNECTED", info.SupplicantState)
}

func TestConnectNetwork(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode

	env.connect(t, homeID)

	assert.True(t, m.IsConnected())
	assert.False(t, m.IsConnecting())
	assert.False(t, m.IsSupplicantTransientState())

	info := m.ConnectionInfo()
	assert.Equal(t, "home", info.SSID)
	assert.Equal(t, "02:00:5e:00:00:01", info.BSSID)
	assert.Equal(t, homeID, info.NetworkID)
	assert.Equal(t, 5180, info.FrequencyMHz)
	assert.Equal(t, "COMPLETED", info.SupplicantState)

	require.NotNil(t, m.CurrentNetwork())
	assert.Equal(t, mode.Network{ID: homeID, Interface: "wlan0"}, *m.CurrentNetwork())
	assert.Equal(t, "02:00:5e:00:00:01", m.ConnectedBSSID())
	require.NotNil(t, m.ConnectedConfiguration())
	assert.Equal(t, "home", m.ConnectedConfiguration().SSID)
	assert.Nil(t, m.ConnectingConfiguration())

	assert.Equal(t, 1, env.trace.operations("connect", "success"))
}

func TestConnectNetworkUnknown(t *testing.T) {
	env := newTestMode(t, 0, nil)

	rec, l := newRecorder()
	env.mode.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: 99}, l, 1000)

	res := rec.wait(t)
	assert.False(t, res.ok)
	assert.Equal(t, mode.ReasonError, res.reason)
	assert.True(t, env.mode.IsDisconnected())
}

func TestConnectNetworkUnreachable(t *testing.T) {
	env := newTestMode(t, 0, nil)

	rec, l := newRecorder()
	env.mode.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: ghostID}, l, 1000)

	res := rec.wait(t)
	assert.False(t, res.ok)
	assert.Equal(t, mode.ReasonError, res.reason)
	rec.assertOnce(t)
	assert.True(t, env.mode.IsDisconnected())
	assert.Equal(t, 1, env.trace.operations("connect", "failure"))
}

func TestConnectNetworkAlreadyConnected(t *testing.T) {
	env := newTestMode(t, 0, nil)
	env.connect(t, homeID)

	env.connect(t, homeID)
	assert.Equal(t, 1, env.radio.Snapshot().Associations)

	// Changed credentials force a new association.
	rec, l := newRecorder()
	env.mode.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: homeID, CredentialChanged: true}, l, 1000)
	assert.True(t, rec.wait(t).ok)
	assert.Equal(t, 2, env.radio.Snapshot().Associations)
}

func TestConnectSwitchesNetwork(t *testing.T) {
	env := newTestMode(t, 0, nil)
	env.connect(t, homeID)
	env.connect(t, cafeID)

	info := env.mode.ConnectionInfo()
	assert.Equal(t, "cafe", info.SSID)
	assert.Equal(t, cafeID, info.NetworkID)
	assert.Equal(t, "02:00:5e:00:00:02", env.radio.Snapshot().BSSID)
}

func TestConnectSupersededFailsBusy(t *testing.T) {
	env := newTestMode(t, 200*time.Millisecond, nil)
	m := env.mode

	first, l1 := newRecorder()
	m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: homeID}, l1, 1000)
	assert.True(t, m.IsConnecting() || m.IsDisconnected())

	second, l2 := newRecorder()
	m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: cafeID}, l2, 1001)

	res := first.wait(t)
	assert.False(t, res.ok)
	assert.Equal(t, mode.ReasonBusy, res.reason)

	assert.True(t, second.wait(t).ok)
	first.assertOnce(t)
	second.assertOnce(t)

	assert.Equal(t, "cafe", m.ConnectionInfo().SSID)
}

func TestConnectingConfiguration(t *testing.T) {
	env := newTestMode(t, 300*time.Millisecond, nil)
	m := env.mode

	rec, l := newRecorder()
	m.StartConnectToNetwork(homeID, 1000, "02:00:5e:00:00:01")
	m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: cafeID}, l, 1000)

	require.Eventually(t, m.IsConnecting, time.Second, 5*time.Millisecond)
	cfg := m.ConnectingConfiguration()
	require.NotNil(t, cfg)
	assert.Equal(t, "cafe", cfg.SSID)
	assert.Equal(t, "", m.ConnectingBSSID())

	assert.True(t, rec.wait(t).ok)
	assert.Nil(t, m.ConnectingConfiguration())
}

func TestDisconnectFailsPending(t *testing.T) {
	env := newTestMode(t, 200*time.Millisecond, nil)
	m := env.mode

	rec, l := newRecorder()
	m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: homeID}, l, 1000)
	m.Disconnect()

	res := rec.wait(t)
	assert.Equal(t, mode.ReasonBusy, res.reason)
	rec.assertOnce(t)

	require.Eventually(t, func() bool {
		return m.IsDisconnected() && env.radio.Snapshot().BSSID == ""
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDisconnectAndReconnect(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode
	env.connect(t, homeID)

	m.Disconnect()
	require.Eventually(t, func() bool {
		return m.IsDisconnected() && env.radio.Snapshot().BSSID == ""
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, m.CurrentNetwork())

	m.Reconnect(mode.WorkSource{UIDs: []int{1000}})
	require.Eventually(t, m.IsConnected, time.Second, 5*time.Millisecond)
	assert.Equal(t, "home", m.ConnectionInfo().SSID)
}

func TestSaveNetwork(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode

	rec, l := newRecorder()
	m.SaveNetwork(mode.NetworkUpdateResult{NetworkID: cafeID}, l, 1000)
	assert.True(t, rec.wait(t).ok)

	rec, l = newRecorder()
	m.SaveNetwork(mode.NetworkUpdateResult{NetworkID: 42}, l, 1000)
	assert.Equal(t, mode.ReasonError, rec.wait(t).reason)

	env.connect(t, homeID)
	rec, l = newRecorder()
	m.SaveNetwork(mode.NetworkUpdateResult{NetworkID: homeID, CredentialChanged: true}, l, 1000)
	assert.True(t, rec.wait(t).ok)
	require.Eventually(t, func() bool {
		return env.radio.Snapshot().Associations == 2 && m.IsConnected()
	}, time.Second, 5*time.Millisecond)
}

func TestLinkLossReconnects(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode
	env.connect(t, homeID)

	env.radio.DropLink("beacon loss")

	require.Eventually(t, func() bool {
		return m.IsConnected() && env.radio.Snapshot().Associations == 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "home", m.ConnectionInfo().SSID)
}

func TestLinkLossWhileNetworkGone(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode
	env.connect(t, cafeID)

	env.radio.RemoveNetwork("cafe")
	env.radio.DropLink("deauth")

	require.Eventually(t, m.IsConnecting, time.Second, 5*time.Millisecond)
	assert.False(t, m.IsConnected())
	assert.Nil(t, m.CurrentNetwork())
	assert.Equal(t, "SCANNING", m.ConnectionInfo().SupplicantState)

	env.radio.AddNetwork(driver.SimNetwork{SSID: "cafe", BSSID: "02:00:5e:00:00:02", Security: mode.SecurityOpen, FrequencyMHz: 2437})
	require.Eventually(t, m.IsConnected, 2*time.Second, 5*time.Millisecond)
}

func TestRoamToNetwork(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode
	env.radio.AddNetwork(driver.SimNetwork{SSID: "home", BSSID: "02:00:5e:00:00:09", Security: mode.SecurityWPA2PSK,
		Passphrase: "correct horse", RSSI: -40, FrequencyMHz: 5500, Standard: mode.Standard11AX})
	env.connect(t, homeID)
	assert.Equal(t, "02:00:5e:00:00:09", m.ConnectedBSSID())

	env.radio.AddNetwork(driver.SimNetwork{SSID: "home", BSSID: "02:00:5e:00:00:01", Security: mode.SecurityWPA2PSK,
		Passphrase: "correct horse", RSSI: -48, FrequencyMHz: 5180, Standard: mode.Standard11AX})
	m.StartRoamToNetwork(homeID, "02:00:5e:00:00:01")

	require.Eventually(t, func() bool {
		return m.ConnectedBSSID() == "02:00:5e:00:00:01" && !m.IsRoaming()
	}, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsConnected())
	assert.Equal(t, 1, env.trace.operations("roam", "success"))
}

func TestProbeLink(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode

	probe := func(mcs int) (time.Duration, mode.LinkProbeFailure, bool) {
		type outcome struct {
			elapsed time.Duration
			failure mode.LinkProbeFailure
			ok      bool
		}
		ch := make(chan outcome, 2)
		m.ProbeLink(mode.LinkProbeFuncs{
			Ack:     func(d time.Duration) { ch <- outcome{elapsed: d, ok: true} },
			Failure: func(f mode.LinkProbeFailure) { ch <- outcome{failure: f} },
		}, mcs)
		select {
		case o := <-ch:
			return o.elapsed, o.failure, o.ok
		case <-time.After(time.Second):
			t.Fatal("probe callback not invoked")
			return 0, 0, false
		}
	}

	_, failure, ok := probe(-1)
	assert.False(t, ok)
	assert.Equal(t, mode.LinkProbeErrorNotConnected, failure)

	env.connect(t, homeID)

	elapsed, _, ok := probe(-1)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Millisecond, elapsed)

	_, failure, ok = probe(20)
	assert.False(t, ok)
	assert.Equal(t, mode.LinkProbeFailureMCSUnsupported, failure)

	// A nil callback is ignored.
	m.ProbeLink(nil, 0)
}

func TestProbeFailureMapping(t *testing.T) {
	tests := []struct {
		err  error
		want mode.LinkProbeFailure
	}{
		{driver.ErrProbeUnsupported, mode.LinkProbeFailureMCSUnsupported},
		{driver.ErrNotAssociated, mode.LinkProbeErrorNotConnected},
		{context.DeadlineExceeded, mode.LinkProbeFailureTimeout},
		{context.Canceled, mode.LinkProbeFailureUnspecified},
		{errors.New("no ack"), mode.LinkProbeFailureNoAck},
	}
	for _, tt := range tests {
		if got := probeFailure(tt.err); got != tt.want {
			t.Errorf("probeFailure(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRetire(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode
	env.connect(t, homeID)

	require.NoError(t, m.Retire())
	assert.True(t, m.Retired())
	assert.Equal(t, "", env.radio.Snapshot().BSSID)

	// A retired mode answers like the inactive mode.
	assert.False(t, m.IsConnected())
	assert.True(t, m.IsDisconnected())
	assert.Equal(t, mode.NoConnection(), m.ConnectionInfo())
	assert.Nil(t, m.CurrentNetwork())
	assert.Equal(t, "", m.FactoryMACAddress())
	assert.Zero(t, m.SupportedFeatures())
	assert.Nil(t, m.DeviceWiphyCapabilities())
	assert.False(t, m.SetPowerSave(true))
	assert.True(t, m.SetConnectedNetworkScorer(&fakeScorer{}))
	assert.Equal(t, "", m.DriverCommand("version"))
	assert.IsType(t, mode.NoopMulticastFilter{}, m.MulticastFilter())

	rec, l := newRecorder()
	m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: homeID}, l, 1000)
	assert.Equal(t, mode.ReasonBusy, rec.wait(t).reason)

	rec, l = newRecorder()
	m.SaveNetwork(mode.NetworkUpdateResult{NetworkID: homeID}, l, 1000)
	assert.True(t, rec.wait(t).ok)

	// Second call is a no-op.
	assert.NoError(t, m.Retire())

	require.Eventually(t, func() bool {
		return env.radio.Snapshot().Watchers == 0
	}, time.Second, 5*time.Millisecond)

	var buf bytes.Buffer
	m.Dump(&buf, nil)
	assert.Contains(t, buf.String(), "retired:          true")
}

func TestRetireFailsPendingBusy(t *testing.T) {
	env := newTestMode(t, 500*time.Millisecond, nil)
	m := env.mode

	rec, l := newRecorder()
	m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: homeID}, l, 1000)

	require.NoError(t, m.Retire())
	assert.Equal(t, mode.ReasonBusy, rec.wait(t).reason)
	rec.assertOnce(t)
	assert.Equal(t, "", env.radio.Snapshot().BSSID)
}

func TestConcurrentConnectsResolveOnce(t *testing.T) {
	env := newTestMode(t, 5*time.Millisecond, nil)
	m := env.mode

	const n = 20
	recs := make([]*recorder, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		rec, l := newRecorder()
		recs[i] = rec
		id := homeID
		if i%2 == 1 {
			id = cafeID
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ConnectNetwork(mode.NetworkUpdateResult{NetworkID: id}, l, 1000+i)
		}()
	}
	wg.Wait()

	successes := 0
	for _, rec := range recs {
		res := rec.wait(t)
		if res.ok {
			successes++
		} else {
			assert.Equal(t, mode.ReasonBusy, res.reason)
		}
	}
	for _, rec := range recs {
		rec.assertOnce(t)
	}
	assert.GreaterOrEqual(t, successes, 1)
	require.Eventually(t, m.IsConnected, time.Second, 5*time.Millisecond)
}

func TestDump(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode
	env.connect(t, homeID)
	m.MulticastFilter().StartFiltering()

	var buf bytes.Buffer
	m.Dump(&buf, nil)
	out := buf.String()
	assert.Contains(t, out, "Client mode client/")
	assert.Contains(t, out, "link state:       CONNECTED")
	assert.Contains(t, out, `"home"`)
	assert.Contains(t, out, "multicast filter: true")

	buf.Reset()
	m.DumpIPClient(&buf, nil)
	assert.Contains(t, buf.String(), "no lease")

	buf.Reset()
	m.DumpScoreReport(&buf, nil)
	assert.Contains(t, buf.String(), "rssi=-48")

	// A nil writer is ignored.
	m.Dump(nil, nil)
}

func TestPacketFatesAndCommands(t *testing.T) {
	env := newTestMode(t, 0, nil)
	m := env.mode

	assert.NotNil(t, m.TxPacketFates())
	assert.Empty(t, m.RxPacketFates())

	env.connect(t, homeID)
	assert.Len(t, m.TxPacketFates(), 2)
	assert.Len(t, m.RxPacketFates(), 2)

	assert.Equal(t, "simulated-radio 1.0", m.DriverCommand("version"))
	assert.Equal(t, "", m.DriverCommand("reboot"))
}

func TestActivateJoinsConfiguredNetwork(t *testing.T) {
	env := newTestMode(t, 0, func(c *Config) {
		c.NetworkID = homeID
		c.WorkSource = mode.WorkSource{UIDs: []int{1010}}
	})
	m := env.mode

	// Nothing happens before activation.
	assert.True(t, m.IsDisconnected())
	assert.Equal(t, 0, env.radio.Snapshot().Associations)

	m.Activate()
	require.Eventually(t, m.IsConnected, time.Second, 5*time.Millisecond)
	assert.Equal(t, homeID, m.ConnectionInfo().NetworkID)

	m.Activate()
	assert.Equal(t, 1, env.radio.Snapshot().Associations)
}

func TestActivateWithoutNetwork(t *testing.T) {
	env := newTestMode(t, 0, nil)
	env.mode.Activate()
	assert.True(t, env.mode.IsDisconnected())
	assert.Equal(t, 0, env.radio.Snapshot().Associations)
}
