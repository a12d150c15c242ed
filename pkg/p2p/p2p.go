// Package p2p provides the peer-to-peer group operating mode.
//
// The mode starts a group on the radio and announces it with DNS-SD so
// peers on the group network can find the service behind it. Client
// operations answer like the inactive mode.
package p2p

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/wlanmode/wlanmode-go/pkg/driver"
	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Configuration errors.
var (
	ErrNoRadio       = errors.New("p2p: radio required")
	ErrInvalidIntent = errors.New("p2p: group owner intent must be 0-15")
)

// Timeouts for radio calls made outside a transition's context.
const (
	DefaultStartTimeout = 10 * time.Second
	DefaultStopTimeout  = 5 * time.Second
)

// TXT record keys.
const (
	TXTKeySSID      = "ssid"
	TXTKeyFrequency = "freq"
	TXTKeyOwner     = "go"
	TXTKeyMode      = "id"
)

// Config configures a peer-to-peer mode.
type Config struct {
	// Radio hosts the group. Required.
	Radio driver.Radio

	// Group parameters.
	Group driver.P2PConfig

	// ServiceType and Port are announced for the group.
	// Defaults DefaultServiceType and DefaultPort.
	ServiceType string
	Port        int

	// Advertiser announces the group. Nil disables announcements.
	Advertiser Advertiser

	WorkSource mode.WorkSource

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger

	// Trace receives group state events. Nil disables tracing.
	Trace wlanlog.Logger
}

// Validate checks the group parameters.
func (c *Config) Validate() error {
	if c.Radio == nil {
		return ErrNoRadio
	}
	if c.Group.GroupOwnerIntent < 0 || c.Group.GroupOwnerIntent > 15 {
		return ErrInvalidIntent
	}
	if p := c.Group.Passphrase; p != "" && (len(p) < 8 || len(p) > 63) {
		return fmt.Errorf("p2p: %w", driver.ErrInvalidPassword)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("p2p: invalid port %d", c.Port)
	}
	return nil
}

// groupState tracks whether this instance holds the group.
type groupState uint8

const (
	groupPending groupState = iota
	groupStarted
	groupFailed
	groupStopped
)

func (s groupState) String() string {
	switch s {
	case groupPending:
		return "PENDING"
	case groupStarted:
		return "STARTED"
	case groupFailed:
		return "FAILED"
	case groupStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Mode is the peer-to-peer group operating mode.
type Mode struct {
	*mode.ScanOnly

	id          mode.ID
	radio       driver.Radio
	groupCfg    driver.P2PConfig
	serviceType string
	port        int
	adv         Advertiser
	ws          mode.WorkSource
	logger      *slog.Logger
	trace       wlanlog.Logger

	mu         sync.Mutex
	state      groupState
	group      driver.P2PGroup
	service    ServiceInfo
	advertised bool
	started    time.Time
}

var (
	_ mode.Mode      = (*Mode)(nil)
	_ mode.Retirer   = (*Mode)(nil)
	_ mode.Activator = (*Mode)(nil)
)

// Start starts the group and announces it. If the announcement fails the
// group is stopped again and Start fails.
//
// If the radio still runs the group of the mode being replaced, Start
// returns a pending mode and Activate starts the group once that mode has
// been retired.
func Start(ctx context.Context, cfg Config) (*Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mode{
		ScanOnly:    mode.NewScanOnly(),
		id:          mode.NewID(mode.KindP2P),
		radio:       cfg.Radio,
		groupCfg:    cfg.Group,
		serviceType: cfg.ServiceType,
		port:        cfg.Port,
		adv:         cfg.Advertiser,
		ws:          cfg.WorkSource,
		logger:      cfg.Logger,
		trace:       cfg.Trace,
	}
	if m.serviceType == "" {
		m.serviceType = DefaultServiceType
	}
	if m.port == 0 {
		m.port = DefaultPort
	}

	group, service, advertised, err := m.bringUp(ctx)
	switch {
	case errors.Is(err, driver.ErrGroupActive):
		m.state = groupPending
		m.emitState("", groupPending.String(), "group busy")
		if m.logger != nil {
			m.logger.Debug("p2p group start deferred", slog.String("iface", cfg.Radio.Name()))
		}
		return m, nil
	case err != nil:
		return nil, err
	}

	m.setStarted(group, service, advertised)
	m.emitState("", groupStarted.String(), "")
	if m.logger != nil {
		m.logger.Info("p2p group started",
			slog.String("iface", group.Interface),
			slog.String("ssid", group.SSID),
			slog.Bool("group_owner", group.GroupOwner))
	}
	return m, nil
}

// bringUp starts the group and announces it. A failed announcement stops
// the group again.
func (m *Mode) bringUp(ctx context.Context) (driver.P2PGroup, ServiceInfo, bool, error) {
	group, err := m.radio.StartP2PGroup(ctx, m.groupCfg)
	if err != nil {
		return driver.P2PGroup{}, ServiceInfo{}, false, fmt.Errorf("start p2p group on %s: %w", m.radio.Name(), err)
	}

	service := ServiceInfo{
		Instance: group.SSID,
		Service:  m.serviceType,
		Port:     m.port,
		TXT:      groupTXT(group, m.id),
	}
	if m.adv == nil {
		return group, service, false, nil
	}
	if err := m.adv.Advertise(ctx, service); err != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), DefaultStopTimeout)
		defer cancel()
		if stopErr := m.radio.StopP2PGroup(stopCtx); stopErr != nil {
			err = multierror.Append(err, stopErr)
		}
		return driver.P2PGroup{}, ServiceInfo{}, false, fmt.Errorf("advertise p2p group: %w", err)
	}
	return group, service, true, nil
}

func (m *Mode) setStarted(group driver.P2PGroup, service ServiceInfo, advertised bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = groupStarted
	m.group = group
	m.service = service
	m.advertised = advertised
	m.started = time.Now()
}

func groupTXT(g driver.P2PGroup, id mode.ID) map[string]string {
	owner := "0"
	if g.GroupOwner {
		owner = "1"
	}
	return map[string]string{
		TXTKeySSID:      g.SSID,
		TXTKeyFrequency: strconv.Itoa(g.FrequencyMHz),
		TXTKeyOwner:     owner,
		TXTKeyMode:      id.Short(),
	}
}

// ID returns the instance identity.
func (m *Mode) ID() mode.ID { return m.id }

// Group returns the running group. It is zero until the group is up.
func (m *Mode) Group() driver.P2PGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.group
}

// Service returns the announced service.
func (m *Mode) Service() ServiceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.service
}

// Serving reports whether this instance currently holds the group.
func (m *Mode) Serving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == groupStarted
}

// Activate starts a group whose start was deferred. It does nothing for a
// mode that already serves or has been retired. A failed start leaves the
// mode without a group.
func (m *Mode) Activate() {
	m.mu.Lock()
	pending := m.state == groupPending
	m.mu.Unlock()
	if !pending {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultStartTimeout)
	defer cancel()
	group, service, advertised, err := m.bringUp(ctx)

	m.mu.Lock()
	if m.state != groupPending {
		// Retired while starting.
		m.mu.Unlock()
		if err == nil {
			_ = m.takeDown(advertised)
		}
		return
	}
	if err != nil {
		m.state = groupFailed
		m.mu.Unlock()
		m.emitState(groupPending.String(), groupFailed.String(), err.Error())
		if m.logger != nil {
			m.logger.Warn("p2p group start failed", slog.String("iface", m.radio.Name()), slog.Any("error", err))
		}
		return
	}
	m.mu.Unlock()

	m.setStarted(group, service, advertised)
	m.emitState(groupPending.String(), groupStarted.String(), "")
	if m.logger != nil {
		m.logger.Info("p2p group started",
			slog.String("iface", group.Interface),
			slog.String("ssid", group.SSID),
			slog.Bool("group_owner", group.GroupOwner))
	}
}

// Retire withdraws the announcement and stops the group if this instance
// started it. It is safe to call more than once.
func (m *Mode) Retire() error {
	m.mu.Lock()
	prev := m.state
	if prev == groupStopped {
		m.mu.Unlock()
		return nil
	}
	m.state = groupStopped
	advertised := m.advertised
	m.advertised = false
	iface := m.group.Interface
	m.mu.Unlock()

	var err error
	if prev == groupStarted {
		err = m.takeDown(advertised)
	}

	m.emitState(prev.String(), groupStopped.String(), "retired")
	if m.logger != nil {
		m.logger.Info("p2p group stopped", slog.String("iface", iface))
	}
	return err
}

func (m *Mode) takeDown(advertised bool) error {
	var result *multierror.Error
	if advertised {
		if err := m.adv.Stop(); err != nil {
			result = multierror.Append(result, fmt.Errorf("stop advertisement: %w", err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultStopTimeout)
	defer cancel()
	if err := m.radio.StopP2PGroup(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("stop p2p group: %w", err))
	}
	return result.ErrorOrNil()
}

// Dump writes the group state to w.
func (m *Mode) Dump(w io.Writer, args []string) {
	if w == nil {
		return
	}
	m.mu.Lock()
	state := m.state
	group := m.group
	service := m.service
	advertised := m.advertised
	var uptime time.Duration
	if state == groupStarted {
		uptime = time.Since(m.started).Round(time.Second)
	}
	m.mu.Unlock()

	fmt.Fprintf(w, "P2P mode %s\n", m.id)
	fmt.Fprintf(w, "  radio:       %s\n", m.radio.Name())
	fmt.Fprintf(w, "  state:       %s\n", state)
	fmt.Fprintf(w, "  group:       %s %q go=%t freq=%d\n", group.Interface, group.SSID, group.GroupOwner, group.FrequencyMHz)
	fmt.Fprintf(w, "  advertised:  %t", advertised)
	if advertised {
		fmt.Fprintf(w, " %s port=%d", service.Service, service.Port)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  uptime:      %s\n", uptime)
	fmt.Fprintf(w, "  retired:     %t\n", state == groupStopped)
	fmt.Fprintf(w, "  requested:   uids=%v\n", m.ws.UIDs)
}

// emitState must be called without holding mu.
func (m *Mode) emitState(oldState, newState, reason string) {
	m.mu.Lock()
	iface := m.group.Interface
	m.mu.Unlock()
	if iface == "" {
		iface = m.radio.Name()
	}

	wlanlog.Emit(m.trace, wlanlog.Event{
		Interface: iface,
		ModeID:    m.id.String(),
		Category:  wlanlog.CategoryState,
		StateChange: &wlanlog.StateChangeEvent{
			Entity:   wlanlog.StateEntityGroup,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}
