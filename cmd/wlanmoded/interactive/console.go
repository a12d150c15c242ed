// Package interactive provides the interactive command-line interface
// for wlanmoded.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/wlanmode/wlanmode-go/pkg/controller"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
	"github.com/wlanmode/wlanmode-go/pkg/netstore"
)

// ConsoleUID attributes console requests when Config.UID is zero.
const ConsoleUID = 1000

// Config wires the console to a running daemon.
type Config struct {
	Controller *controller.Controller
	Store      netstore.Store

	// Simulated enables the drop command. Nil on real hardware.
	Simulated *driver.Simulated

	// UID is reported as the calling UID of console requests.
	UID int
}

// Console handles interactive mode for wlanmoded.
type Console struct {
	ctrl  *controller.Controller
	store netstore.Store
	sim   *driver.Simulated
	uid   int

	rl  *readline.Instance
	out io.Writer
}

// New creates a console reading from the terminal.
func New(cfg Config) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "wlan> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	c := newConsole(cfg, rl.Stdout())
	c.rl = rl
	return c, nil
}

func newConsole(cfg Config, out io.Writer) *Console {
	uid := cfg.UID
	if uid == 0 {
		uid = ConsoleUID
	}
	return &Console{
		ctrl:  cfg.Controller,
		store: cfg.Store,
		sim:   cfg.Simulated,
		uid:   uid,
		out:   out,
	}
}

// Attach points the console at a daemon started after the console was
// created. Call before Run.
func (c *Console) Attach(cfg Config) {
	c.ctrl = cfg.Controller
	c.store = cfg.Store
	c.sim = cfg.Simulated
	if cfg.UID != 0 {
		c.uid = cfg.UID
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.Exec(ctx, line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the console should exit.
func (c *Console) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "state", "s":
		c.cmdState()

	case "mode", "m":
		c.cmdMode(ctx, args)

	case "connect", "c":
		c.cmdConnect(args, false)

	case "save":
		c.cmdConnect(args, true)

	case "disconnect", "d":
		c.ctrl.Current().Disconnect()
		fmt.Fprintln(c.out, "Disconnect requested")

	case "reconnect", "r":
		c.ctrl.Current().Reconnect(mode.WorkSource{UIDs: []int{c.uid}})
		fmt.Fprintln(c.out, "Reconnect requested")

	case "info", "i":
		c.cmdInfo()

	case "stats":
		c.cmdStats()

	case "fates":
		c.cmdFates()

	case "dump":
		c.ctrl.Dump(c.out, args)

	case "dpp":
		c.cmdDPP(args)

	case "powersave", "ps":
		c.cmdPowerSave(args)

	case "country":
		c.cmdCountry(args)

	case "history", "h":
		c.cmdHistory()

	case "networks", "n":
		c.cmdNetworks()

	case "probe":
		c.cmdProbe(args)

	case "drop":
		c.cmdDrop(args)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Mode Commands:
  state                - Show the current state and mode
  mode <state> [netid] - Switch to disabled, scan-only, client, softap or p2p
  history              - Show recent transitions
  dump                 - Dump controller and mode state

  Connection:
    networks           - List configured networks
    connect <netid>    - Connect to a configured network
    save <netid>       - Save a network, connecting if it is current
    disconnect         - Drop the link
    reconnect          - Reconnect to the last network
    info               - Show connection info
    stats              - Show link layer statistics
    fates              - Show packet fate counts
    probe [mcs]        - Probe the link

  Features:
    dpp <uri>          - Add a DPP bootstrap QR code
    powersave on|off   - Set power save
    country <cc>       - Set the regulatory country code

  Simulation:
    drop [reason]      - Drop the simulated link

  General:
    help               - Show this help
    quit               - Exit`)
}

func (c *Console) cmdState() {
	state, m := c.ctrl.Active()
	fmt.Fprintf(c.out, "State: %s\n", state)
	fmt.Fprintf(c.out, "Mode:  %s\n", m.ID())
	switch {
	case m.IsConnected():
		fmt.Fprintf(c.out, "Link:  connected to %s\n", m.ConnectedBSSID())
	case m.IsConnecting():
		fmt.Fprintf(c.out, "Link:  connecting to %s\n", m.ConnectingBSSID())
	default:
		fmt.Fprintln(c.out, "Link:  disconnected")
	}
}

func (c *Console) cmdMode(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: mode <disabled|scan-only|client|softap|p2p> [netid]")
		return
	}
	state, err := controller.ParseState(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	req := controller.Request(state, "console")
	req.WorkSource = mode.WorkSource{UIDs: []int{c.uid}}
	if len(args) > 1 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(c.out, "Invalid network ID: %s\n", args[1])
			return
		}
		req.NetworkID = id
	}

	start := time.Now()
	if err := c.ctrl.Transition(ctx, req); err != nil {
		fmt.Fprintf(c.out, "Transition failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Now %s (%s, took %s)\n", c.ctrl.State(), c.ctrl.CurrentID().Short(),
		time.Since(start).Round(time.Millisecond))
}

func (c *Console) cmdConnect(args []string, save bool) {
	name := "connect"
	if save {
		name = "save"
	}
	if len(args) == 0 {
		fmt.Fprintf(c.out, "Usage: %s <netid>\n", name)
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid network ID: %s\n", args[0])
		return
	}
	if _, ok := c.store.Lookup(id); !ok {
		fmt.Fprintf(c.out, "Unknown network: %d\n", id)
		return
	}

	listener := mode.WrapListener(mode.ActionListenerFuncs{
		Success: func() {
			fmt.Fprintf(c.out, "%s %d: ok\n", name, id)
		},
		Failure: func(reason mode.FailureReason) {
			fmt.Fprintf(c.out, "%s %d: failed (%s)\n", name, id, reason)
		},
	})
	result := mode.NetworkUpdateResult{NetworkID: id}
	if save {
		c.ctrl.Current().SaveNetwork(result, listener, c.uid)
	} else {
		c.ctrl.Current().ConnectNetwork(result, listener, c.uid)
	}
}

func (c *Console) cmdInfo() {
	info := c.ctrl.Current().ConnectionInfo()
	if !info.Connected() {
		fmt.Fprintf(c.out, "Not connected (%s)\n", info.SupplicantState)
		return
	}
	fmt.Fprintf(c.out, "SSID:      %s\n", info.SSID)
	fmt.Fprintf(c.out, "BSSID:     %s\n", info.BSSID)
	fmt.Fprintf(c.out, "Network:   %d\n", info.NetworkID)
	fmt.Fprintf(c.out, "RSSI:      %d dBm\n", info.RSSI)
	fmt.Fprintf(c.out, "Speed:     %d Mbps\n", info.LinkSpeedMbps)
	fmt.Fprintf(c.out, "Frequency: %d MHz (%s)\n", info.FrequencyMHz, info.Standard)
	if info.IPAddress != nil {
		fmt.Fprintf(c.out, "IP:        %s\n", info.IPAddress)
	}
	fmt.Fprintf(c.out, "State:     %s\n", info.SupplicantState)
}

func (c *Console) cmdStats() {
	stats := c.ctrl.Current().LinkLayerStats()
	if stats == nil {
		fmt.Fprintln(c.out, "No link layer statistics")
		return
	}
	fmt.Fprintf(c.out, "RX: %d bytes, %d packets, %d dropped\n", stats.RxBytes, stats.RxPackets, stats.RxDropped)
	fmt.Fprintf(c.out, "TX: %d bytes, %d packets, %d retries, %d failed\n",
		stats.TxBytes, stats.TxPackets, stats.TxRetries, stats.TxFailed)
	fmt.Fprintf(c.out, "Beacons: %d, RSSI: %d dBm\n", stats.BeaconRx, stats.RSSIMgmt)
}

func (c *Console) cmdFates() {
	m := c.ctrl.Current()
	tx, rx := m.TxPacketFates(), m.RxPacketFates()
	fmt.Fprintf(c.out, "TX fates: %d\n", len(tx))
	for _, r := range tx {
		fmt.Fprintf(c.out, "  %10s fate=%d len=%d\n", r.Timestamp, r.Fate, len(r.Frame))
	}
	fmt.Fprintf(c.out, "RX fates: %d\n", len(rx))
	for _, r := range rx {
		fmt.Fprintf(c.out, "  %10s fate=%d len=%d\n", r.Timestamp, r.Fate, len(r.Frame))
	}
}

func (c *Console) cmdDPP(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: dpp <uri>")
		return
	}
	id := c.ctrl.Current().DppAddBootstrapQRCode(args[0])
	if id == mode.DppFailure {
		fmt.Fprintln(c.out, "DPP bootstrap rejected")
		return
	}
	fmt.Fprintf(c.out, "DPP bootstrap ID: %d\n", id)
}

func (c *Console) cmdPowerSave(args []string) {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(c.out, "Usage: powersave on|off")
		return
	}
	printAccepted(c.out, "Power save "+args[0], c.ctrl.Current().SetPowerSave(args[0] == "on"))
}

func (c *Console) cmdCountry(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: country <cc>")
		return
	}
	code := strings.ToUpper(args[0])
	printAccepted(c.out, "Country "+code, c.ctrl.Current().SetCountryCode(code))
}

func printAccepted(w io.Writer, what string, ok bool) {
	if ok {
		fmt.Fprintf(w, "%s: accepted\n", what)
	} else {
		fmt.Fprintf(w, "%s: rejected\n", what)
	}
}

func (c *Console) cmdHistory() {
	records := c.ctrl.History()
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No transitions")
		return
	}
	for _, r := range records {
		fmt.Fprintln(c.out, r)
	}
}

func (c *Console) cmdNetworks() {
	networks := c.store.List()
	if len(networks) == 0 {
		fmt.Fprintln(c.out, "No networks configured")
		return
	}
	fmt.Fprintf(c.out, "%-4s %-32s %s\n", "ID", "SSID", "SECURITY")
	for _, n := range networks {
		fmt.Fprintf(c.out, "%-4d %-32s %s\n", n.ID, n.SSID, n.Security)
	}
}

func (c *Console) cmdProbe(args []string) {
	mcs := -1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(c.out, "Invalid MCS: %s\n", args[0])
			return
		}
		mcs = v
	}
	c.ctrl.Current().ProbeLink(mode.LinkProbeFuncs{
		Ack: func(elapsed time.Duration) {
			fmt.Fprintf(c.out, "probe: ack after %s\n", elapsed)
		},
		Failure: func(reason mode.LinkProbeFailure) {
			fmt.Fprintf(c.out, "probe: failed (%s)\n", reason)
		},
	}, mcs)
}

func (c *Console) cmdDrop(args []string) {
	if c.sim == nil {
		fmt.Fprintln(c.out, "drop is only available with -simulate")
		return
	}
	reason := "dropped from console"
	if len(args) > 0 {
		reason = strings.Join(args, " ")
	}
	c.sim.DropLink(reason)
	fmt.Fprintln(c.out, "Link dropped")
}
