package interactive

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanmode/wlanmode-go/pkg/client"
	"github.com/wlanmode/wlanmode-go/pkg/connection"
	"github.com/wlanmode/wlanmode-go/pkg/controller"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
	"github.com/wlanmode/wlanmode-go/pkg/netstore"
)

// syncBuffer collects console output written from listener goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Take returns and clears the output so far.
func (b *syncBuffer) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.buf.String()
	b.buf.Reset()
	return s
}

func (b *syncBuffer) Contains(s string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Contains(b.buf.String(), s)
}

type fixture struct {
	console *Console
	out     *syncBuffer
	ctrl    *controller.Controller
	radio   *driver.Simulated
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	simCfg := driver.DefaultSimulatedConfig()
	simCfg.AssociateDelay = 0
	radio := driver.NewSimulated(simCfg)
	store, err := netstore.NewMemory(
		mode.NetworkConfig{ID: 1, SSID: "home", Security: mode.SecurityWPA2PSK, Passphrase: "correct horse"},
		mode.NetworkConfig{ID: 2, SSID: "cafe", Security: mode.SecurityOpen},
	)
	require.NoError(t, err)

	cfg := controller.DefaultConfig()
	cfg.Initial = controller.StateScanOnly
	cfg.Builders[controller.StateClient] = func(ctx context.Context, req controller.TransitionRequest) (mode.Mode, error) {
		ccfg := client.DefaultConfig()
		ccfg.Radio = radio
		ccfg.Store = store
		ccfg.WorkSource = req.WorkSource
		ccfg.NetworkID = req.NetworkID
		ccfg.Backoff = connection.BackoffConfig{Initial: 10 * time.Millisecond, Max: 20 * time.Millisecond}
		return client.New(ctx, ccfg)
	}
	ctrl, err := controller.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctrl.Close() })

	out := &syncBuffer{}
	return &fixture{
		console: newConsole(Config{Controller: ctrl, Store: store, Simulated: radio}, out),
		out:     out,
		ctrl:    ctrl,
		radio:   radio,
	}
}

func (f *fixture) exec(t *testing.T, line string) string {
	t.Helper()
	require.True(t, f.console.Exec(context.Background(), line), "console exited on %q", line)
	return f.out.Take()
}

func TestConsoleState(t *testing.T) {
	f := newFixture(t)

	out := f.exec(t, "state")
	assert.Contains(t, out, "State: SCAN_ONLY")
	assert.Contains(t, out, "Link:  disconnected")
}

func TestConsoleModeSwitch(t *testing.T) {
	f := newFixture(t)

	out := f.exec(t, "mode client 1")
	assert.Contains(t, out, "Now CLIENT")
	assert.Equal(t, controller.StateClient, f.ctrl.State())
	require.Eventually(t, f.ctrl.Current().IsConnected, 2*time.Second, 5*time.Millisecond)

	out = f.exec(t, "info")
	assert.Contains(t, out, "SSID:      home")
	assert.Contains(t, out, "BSSID:     02:00:5e:00:00:01")

	out = f.exec(t, "stats")
	assert.Contains(t, out, "RX:")

	out = f.exec(t, "history")
	assert.Contains(t, out, "SCAN_ONLY -> CLIENT OK")
	assert.Contains(t, out, `reason="console"`)
	assert.Contains(t, out, "uids=[1000]")

	out = f.exec(t, "mode scan-only")
	assert.Contains(t, out, "Now SCAN_ONLY")
	assert.Empty(t, f.radio.Snapshot().BSSID)
}

func TestConsoleModeErrors(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.exec(t, "mode"), "Usage: mode")
	assert.Contains(t, f.exec(t, "mode warp"), "Error:")
	assert.Contains(t, f.exec(t, "mode client x"), "Invalid network ID: x")
	assert.Contains(t, f.exec(t, "mode softap"), "Transition failed")
	assert.Equal(t, controller.StateScanOnly, f.ctrl.State())
}

func TestConsoleConnectInScanOnly(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.exec(t, "connect 1"), "connect 1: failed (BUSY)")
	assert.Contains(t, f.exec(t, "save 2"), "save 2: ok")
	assert.Contains(t, f.exec(t, "connect 99"), "Unknown network: 99")
	assert.Contains(t, f.exec(t, "connect"), "Usage: connect <netid>")
	assert.Contains(t, f.exec(t, "info"), "Not connected")
	assert.Contains(t, f.exec(t, "stats"), "No link layer statistics")
	assert.Contains(t, f.exec(t, "dpp DPP:K:abc;;"), "DPP bootstrap rejected")
	assert.Contains(t, f.exec(t, "probe"), "probe: failed (NOT_CONNECTED)")
}

func TestConsoleConnectInClient(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "mode client")

	f.exec(t, "connect 2")
	require.Eventually(t, func() bool { return f.out.Contains("connect 2: ok") }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "02:00:5e:00:00:02", f.radio.Snapshot().BSSID)

	assert.Contains(t, f.exec(t, "disconnect"), "Disconnect requested")
	require.Eventually(t, f.ctrl.Current().IsDisconnected, 2*time.Second, 5*time.Millisecond)
}

func TestConsoleNetworks(t *testing.T) {
	f := newFixture(t)

	out := f.exec(t, "networks")
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "cafe")
	assert.Contains(t, out, "wpa2-psk")
}

func TestConsoleDrop(t *testing.T) {
	f := newFixture(t)
	assert.Contains(t, f.exec(t, "drop"), "Link dropped")

	f.console.sim = nil
	assert.Contains(t, f.exec(t, "drop"), "only available with -simulate")
}

func TestConsoleFeatureCommands(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.exec(t, "powersave"), "Usage: powersave on|off")
	assert.Contains(t, f.exec(t, "country"), "Usage: country <cc>")
	assert.Contains(t, f.exec(t, "dump"), "Mode controller")
	assert.Contains(t, f.exec(t, "fates"), "TX fates: 0")
}

func TestConsoleHelpAndQuit(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.exec(t, "help"), "mode <state> [netid]")
	assert.Contains(t, f.exec(t, "bogus"), "Unknown command: bogus")
	assert.Empty(t, f.exec(t, "   "))

	assert.False(t, f.console.Exec(context.Background(), "quit"))
}
