//go:build linux

package driver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/vishvananda/netlink"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// linkOps is the subset of rtnetlink the Netlink radio uses.
type linkOps interface {
	LinkByName(name string) (netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	LinkSetDown(link netlink.Link) error
	LinkSubscribe(ch chan<- netlink.LinkUpdate, done <-chan struct{}) error
}

// kernelLinkOps calls the netlink package directly.
type kernelLinkOps struct{}

func (kernelLinkOps) LinkByName(name string) (netlink.Link, error) { return netlink.LinkByName(name) }
func (kernelLinkOps) LinkSetUp(link netlink.Link) error            { return netlink.LinkSetUp(link) }
func (kernelLinkOps) LinkSetDown(link netlink.Link) error          { return netlink.LinkSetDown(link) }
func (kernelLinkOps) LinkSubscribe(ch chan<- netlink.LinkUpdate, done <-chan struct{}) error {
	return netlink.LinkSubscribe(ch, done)
}

// NetlinkConfig configures a Netlink radio.
type NetlinkConfig struct {
	// Interface is the wireless interface name, e.g. wlan0.
	Interface string

	// Supplicant handles association, access point and group control.
	// Without one those operations fail with ErrNoSupplicant.
	Supplicant Supplicant

	// Capabilities reported to the modes.
	Capabilities Capabilities

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger
}

// Netlink is a Radio backed by the kernel's rtnetlink interface.
type Netlink struct {
	iface  string
	sup    Supplicant
	caps   Capabilities
	ops    linkOps
	logger *slog.Logger

	mu          sync.RWMutex
	associated  bool
	country     string
	lowLatency  bool
	roaming     mode.RoamingConfig
	statsOffset netlink.LinkStatistics
}

// NewNetlink creates a Netlink radio for cfg.Interface. The interface must
// exist.
func NewNetlink(cfg NetlinkConfig) (*Netlink, error) {
	return newNetlink(cfg, kernelLinkOps{})
}

func newNetlink(cfg NetlinkConfig, ops linkOps) (*Netlink, error) {
	if cfg.Interface == "" {
		return nil, fmt.Errorf("netlink radio: interface name required")
	}
	if _, err := ops.LinkByName(cfg.Interface); err != nil {
		return nil, fmt.Errorf("netlink radio: %s: %w", cfg.Interface, err)
	}

	return &Netlink{
		iface:  cfg.Interface,
		sup:    cfg.Supplicant,
		caps:   cfg.Capabilities,
		ops:    ops,
		logger: cfg.Logger,
	}, nil
}

var _ Radio = (*Netlink)(nil)

// Name returns the interface name.
func (n *Netlink) Name() string { return n.iface }

// Capabilities returns the configured capabilities.
func (n *Netlink) Capabilities() Capabilities { return n.caps }

// SetUp brings the interface administratively up.
func (n *Netlink) SetUp(ctx context.Context) error {
	link, err := n.ops.LinkByName(n.iface)
	if err != nil {
		return err
	}
	if err := n.ops.LinkSetUp(link); err != nil {
		return fmt.Errorf("set %s up: %w", n.iface, err)
	}
	n.debugLog("interface up")
	return nil
}

// SetDown brings the interface administratively down.
func (n *Netlink) SetDown(ctx context.Context) error {
	link, err := n.ops.LinkByName(n.iface)
	if err != nil {
		return err
	}
	if err := n.ops.LinkSetDown(link); err != nil {
		return fmt.Errorf("set %s down: %w", n.iface, err)
	}

	n.mu.Lock()
	n.associated = false
	n.mu.Unlock()

	n.debugLog("interface down")
	return nil
}

// HardwareAddr returns the interface MAC address, or nil if the interface
// vanished.
func (n *Netlink) HardwareAddr() net.HardwareAddr {
	link, err := n.ops.LinkByName(n.iface)
	if err != nil || link.Attrs() == nil {
		return nil
	}
	return link.Attrs().HardwareAddr
}

// Associate joins the requested network through the supplicant.
func (n *Netlink) Associate(ctx context.Context, req AssociateRequest) (Association, error) {
	if n.sup == nil {
		return Association{}, ErrNoSupplicant
	}
	if !n.operational() {
		// The supplicant can still bring the link up; only a missing
		// interface is fatal.
		if _, err := n.ops.LinkByName(n.iface); err != nil {
			return Association{}, fmt.Errorf("%w: %v", ErrInterfaceDown, err)
		}
	}

	assoc, err := n.sup.Associate(ctx, req)
	if err != nil {
		return Association{}, err
	}

	n.mu.Lock()
	n.associated = true
	n.statsOffset = n.currentStats()
	n.mu.Unlock()

	n.debugLog("associated", slog.String("bssid", assoc.BSSID), slog.Int("freq", assoc.FrequencyMHz))
	return assoc, nil
}

// Disassociate leaves the current network.
func (n *Netlink) Disassociate(ctx context.Context) error {
	n.mu.Lock()
	wasAssociated := n.associated
	n.associated = false
	n.mu.Unlock()

	if n.sup == nil {
		return ErrNoSupplicant
	}
	if !wasAssociated {
		return nil
	}
	return n.sup.Disassociate(ctx)
}

// LinkStats returns the interface counters accumulated since association.
func (n *Netlink) LinkStats() (mode.LinkLayerStats, error) {
	n.mu.RLock()
	associated := n.associated
	offset := n.statsOffset
	n.mu.RUnlock()

	if !associated {
		return mode.LinkLayerStats{}, ErrNotAssociated
	}

	link, err := n.ops.LinkByName(n.iface)
	if err != nil {
		return mode.LinkLayerStats{}, err
	}
	attrs := link.Attrs()
	if attrs == nil || attrs.Statistics == nil {
		return mode.LinkLayerStats{}, ErrUnsupported
	}
	s := attrs.Statistics

	return mode.LinkLayerStats{
		Timestamp: time.Now(),
		RxBytes:   s.RxBytes - offset.RxBytes,
		TxBytes:   s.TxBytes - offset.TxBytes,
		RxPackets: s.RxPackets - offset.RxPackets,
		TxPackets: s.TxPackets - offset.TxPackets,
		TxFailed:  s.TxErrors - offset.TxErrors,
		RxDropped: s.RxDropped - offset.RxDropped,
	}, nil
}

// Probe sends a link probe through the supplicant.
func (n *Netlink) Probe(ctx context.Context, mcs int) (time.Duration, error) {
	if n.sup == nil {
		return 0, ErrNoSupplicant
	}
	return n.sup.Probe(ctx, mcs)
}

// SetPowerSave toggles 802.11 power save.
func (n *Netlink) SetPowerSave(enabled bool) error {
	if n.sup == nil {
		return ErrNoSupplicant
	}
	return n.sup.SetPowerSave(enabled)
}

// SetLowLatency records the low latency preference. Only radios advertising
// FeatureLowLatency accept it.
func (n *Netlink) SetLowLatency(enabled bool) error {
	if !n.caps.Features.Has(mode.FeatureLowLatency) {
		return ErrUnsupported
	}
	n.mu.Lock()
	n.lowLatency = enabled
	n.mu.Unlock()
	return nil
}

// SetCountryCode sets the regulatory domain.
func (n *Netlink) SetCountryCode(code string) error {
	if !ValidCountryCode(code) {
		return ErrInvalidCountry
	}
	if n.sup == nil {
		return ErrNoSupplicant
	}
	if err := n.sup.SetCountryCode(code); err != nil {
		return err
	}
	n.mu.Lock()
	n.country = code
	n.mu.Unlock()
	return nil
}

// ConfigureRoaming installs the firmware roaming lists.
func (n *Netlink) ConfigureRoaming(cfg mode.RoamingConfig) error {
	if !n.caps.Features.Has(mode.FeatureControlRoaming) {
		return ErrUnsupported
	}
	if len(cfg.BlocklistBSSIDs) > n.caps.Roaming.MaxBlocklistSize ||
		len(cfg.AllowlistSSIDs) > n.caps.Roaming.MaxAllowlistSize {
		return fmt.Errorf("%w: roaming list exceeds capability", ErrUnsupported)
	}
	n.mu.Lock()
	n.roaming = cfg
	n.mu.Unlock()
	return nil
}

// WatchLink subscribes to operational-state changes of the interface.
func (n *Netlink) WatchLink(ctx context.Context, fn func(LinkEvent)) error {
	updates := make(chan netlink.LinkUpdate)
	done := make(chan struct{})

	if err := n.ops.LinkSubscribe(updates, done); err != nil {
		return fmt.Errorf("subscribe to link updates: %w", err)
	}

	go func() {
		defer close(done)

		last := netlink.LinkOperState(netlink.OperUnknown)
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				ev, changed := n.translate(update, &last)
				if changed {
					fn(ev)
				}
			}
		}
	}()

	return nil
}

// translate maps a link update to a LinkEvent if the operational state of
// our interface changed.
func (n *Netlink) translate(update netlink.LinkUpdate, last *netlink.LinkOperState) (LinkEvent, bool) {
	if update.Link == nil || update.Link.Attrs() == nil {
		return LinkEvent{}, false
	}
	attrs := update.Link.Attrs()
	if attrs.Name != n.iface {
		return LinkEvent{}, false
	}

	state := attrs.OperState
	if state == *last {
		return LinkEvent{}, false
	}
	prev := *last
	*last = state

	switch state {
	case netlink.OperUp:
		return LinkEvent{Type: LinkUp}, true
	case netlink.OperDown, netlink.OperLowerLayerDown, netlink.OperDormant, netlink.OperNotPresent:
		if prev != netlink.OperUp {
			return LinkEvent{}, false
		}
		n.mu.Lock()
		n.associated = false
		n.mu.Unlock()
		return LinkEvent{Type: LinkDown, Reason: "operstate " + state.String()}, true
	default:
		return LinkEvent{}, false
	}
}

// StartAP starts an access point through the supplicant.
func (n *Netlink) StartAP(ctx context.Context, cfg APConfig) error {
	if n.sup == nil {
		return ErrNoSupplicant
	}
	return n.sup.StartAP(ctx, cfg)
}

// StopAP stops the access point.
func (n *Netlink) StopAP(ctx context.Context) error {
	if n.sup == nil {
		return ErrNoSupplicant
	}
	return n.sup.StopAP(ctx)
}

// StartP2PGroup starts a peer-to-peer group through the supplicant.
func (n *Netlink) StartP2PGroup(ctx context.Context, cfg P2PConfig) (P2PGroup, error) {
	if n.sup == nil {
		return P2PGroup{}, ErrNoSupplicant
	}
	return n.sup.StartP2PGroup(ctx, cfg)
}

// StopP2PGroup stops the peer-to-peer group.
func (n *Netlink) StopP2PGroup(ctx context.Context) error {
	if n.sup == nil {
		return ErrNoSupplicant
	}
	return n.sup.StopP2PGroup(ctx)
}

// PacketFates is not available over rtnetlink.
func (n *Netlink) PacketFates() ([]mode.TxFateReport, []mode.RxFateReport) {
	return []mode.TxFateReport{}, []mode.RxFateReport{}
}

// Command passes cmd to the supplicant.
func (n *Netlink) Command(ctx context.Context, cmd string) (string, error) {
	if n.sup == nil {
		return "", ErrNoSupplicant
	}
	return n.sup.Command(ctx, cmd)
}

func (n *Netlink) operational() bool {
	link, err := n.ops.LinkByName(n.iface)
	if err != nil || link.Attrs() == nil {
		return false
	}
	return link.Attrs().OperState == netlink.OperUp
}

// currentStats must be called with n.mu held.
func (n *Netlink) currentStats() netlink.LinkStatistics {
	link, err := n.ops.LinkByName(n.iface)
	if err != nil || link.Attrs() == nil || link.Attrs().Statistics == nil {
		return netlink.LinkStatistics{}
	}
	return *link.Attrs().Statistics
}

func (n *Netlink) debugLog(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Debug(msg, append([]any{slog.String("iface", n.iface)}, args...)...)
	}
}
