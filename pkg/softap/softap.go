// Package softap provides the access point operating mode.
//
// While the radio serves as an access point it is not available for client
// duty, so every client operation answers like the inactive mode. Only the
// identity, diagnostics and retirement differ.
package softap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/wlanmode/wlanmode-go/pkg/driver"
	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Configuration errors.
var (
	ErrNoRadio     = errors.New("softap: radio required")
	ErrInvalidSSID = errors.New("softap: SSID must be 1-32 bytes")
	ErrInvalidBand = errors.New("softap: band must be 2g, 5g or 6g")
)

// Timeouts for radio calls made outside a transition's context.
const (
	DefaultStartTimeout = 10 * time.Second
	DefaultStopTimeout  = 5 * time.Second
)

// apState tracks whether this instance holds the access point.
type apState uint8

const (
	apPending apState = iota
	apStarted
	apFailed
	apStopped
)

func (s apState) String() string {
	switch s {
	case apPending:
		return "PENDING"
	case apStarted:
		return "STARTED"
	case apFailed:
		return "FAILED"
	case apStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Config configures an access point mode.
type Config struct {
	// Radio hosts the access point. Required.
	Radio driver.Radio

	// AP is the access point configuration. An empty passphrase starts an
	// open network.
	AP driver.APConfig

	// WorkSource attributes the access point.
	WorkSource mode.WorkSource

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger

	// Trace receives access point state events. Nil disables tracing.
	Trace wlanlog.Logger
}

// Validate checks the access point parameters.
func (c *Config) Validate() error {
	if c.Radio == nil {
		return ErrNoRadio
	}
	if n := len(c.AP.SSID); n == 0 || n > 32 {
		return ErrInvalidSSID
	}
	if p := c.AP.Passphrase; p != "" && (len(p) < 8 || len(p) > 63) {
		return fmt.Errorf("softap: %w", driver.ErrInvalidPassword)
	}
	switch c.AP.Band {
	case "", "2g", "5g", "6g":
	default:
		return ErrInvalidBand
	}
	if c.AP.Channel < 0 {
		return fmt.Errorf("softap: invalid channel %d", c.AP.Channel)
	}
	return nil
}

// Mode is the access point operating mode.
type Mode struct {
	*mode.ScanOnly

	id     mode.ID
	radio  driver.Radio
	ap     driver.APConfig
	ws     mode.WorkSource
	logger *slog.Logger
	trace  wlanlog.Logger

	mu      sync.Mutex
	state   apState
	started time.Time
}

var (
	_ mode.Mode      = (*Mode)(nil)
	_ mode.Retirer   = (*Mode)(nil)
	_ mode.Activator = (*Mode)(nil)
)

// Start brings the access point up. It fails if the radio rejects the
// configuration.
//
// If the radio still serves the access point of the mode being replaced,
// Start returns a pending mode and Activate brings the access point up once
// that mode has been retired.
func Start(ctx context.Context, cfg Config) (*Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mode{
		ScanOnly: mode.NewScanOnly(),
		id:       mode.NewID(mode.KindSoftAP),
		radio:    cfg.Radio,
		ap:       cfg.AP,
		ws:       cfg.WorkSource,
		logger:   cfg.Logger,
		trace:    cfg.Trace,
	}

	err := cfg.Radio.StartAP(ctx, cfg.AP)
	switch {
	case errors.Is(err, driver.ErrAPActive):
		m.state = apPending
		m.emitState("", apPending.String(), "access point busy")
		if m.logger != nil {
			m.logger.Debug("access point start deferred", slog.String("iface", cfg.Radio.Name()), slog.String("ssid", cfg.AP.SSID))
		}
		return m, nil
	case err != nil:
		return nil, fmt.Errorf("start access point %q on %s: %w", cfg.AP.SSID, cfg.Radio.Name(), err)
	}

	m.state = apStarted
	m.started = time.Now()
	m.emitState("", apStarted.String(), "")
	if m.logger != nil {
		m.logger.Info("access point started", slog.String("iface", cfg.Radio.Name()), slog.String("ssid", cfg.AP.SSID))
	}
	return m, nil
}

// ID returns the instance identity.
func (m *Mode) ID() mode.ID { return m.id }

// SSID returns the advertised network name.
func (m *Mode) SSID() string { return m.ap.SSID }

// Serving reports whether this instance currently holds the access point.
func (m *Mode) Serving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == apStarted
}

// Activate brings up an access point whose start was deferred. It does
// nothing for a mode that already serves or has been retired. A failed start
// leaves the mode without an access point.
func (m *Mode) Activate() {
	m.mu.Lock()
	pending := m.state == apPending
	m.mu.Unlock()
	if !pending {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultStartTimeout)
	defer cancel()
	err := m.radio.StartAP(ctx, m.ap)

	m.mu.Lock()
	if m.state != apPending {
		// Retired while starting.
		m.mu.Unlock()
		if err == nil {
			_ = m.stop()
		}
		return
	}
	if err != nil {
		m.state = apFailed
		m.mu.Unlock()
		m.emitState(apPending.String(), apFailed.String(), err.Error())
		if m.logger != nil {
			m.logger.Warn("access point start failed",
				slog.String("iface", m.radio.Name()),
				slog.String("ssid", m.ap.SSID),
				slog.Any("error", err))
		}
		return
	}
	m.state = apStarted
	m.started = time.Now()
	m.mu.Unlock()

	m.emitState(apPending.String(), apStarted.String(), "")
	if m.logger != nil {
		m.logger.Info("access point started", slog.String("iface", m.radio.Name()), slog.String("ssid", m.ap.SSID))
	}
}

// Retire stops the access point if this instance brought it up. It is safe
// to call more than once.
func (m *Mode) Retire() error {
	m.mu.Lock()
	prev := m.state
	if prev == apStopped {
		m.mu.Unlock()
		return nil
	}
	m.state = apStopped
	m.mu.Unlock()

	var err error
	if prev == apStarted {
		err = m.stop()
	}

	m.emitState(prev.String(), apStopped.String(), "retired")
	if m.logger != nil {
		m.logger.Info("access point stopped", slog.String("iface", m.radio.Name()))
	}
	return err
}

func (m *Mode) stop() error {
	var result *multierror.Error

	ctx, cancel := context.WithTimeout(context.Background(), DefaultStopTimeout)
	defer cancel()
	if err := m.radio.StopAP(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("stop access point: %w", err))
	}
	return result.ErrorOrNil()
}

// Dump writes the access point state to w.
func (m *Mode) Dump(w io.Writer, args []string) {
	if w == nil {
		return
	}
	m.mu.Lock()
	state := m.state
	var uptime time.Duration
	if state == apStarted {
		uptime = time.Since(m.started).Round(time.Second)
	}
	m.mu.Unlock()

	security := "open"
	if m.ap.Passphrase != "" {
		security = "wpa2-psk"
	}
	band := m.ap.Band
	if band == "" {
		band = "auto"
	}

	fmt.Fprintf(w, "SoftAP mode %s\n", m.id)
	fmt.Fprintf(w, "  interface: %s\n", m.radio.Name())
	fmt.Fprintf(w, "  ssid:      %q hidden=%t\n", m.ap.SSID, m.ap.Hidden)
	fmt.Fprintf(w, "  security:  %s\n", security)
	fmt.Fprintf(w, "  band:      %s channel=%d\n", band, m.ap.Channel)
	fmt.Fprintf(w, "  state:     %s\n", state)
	fmt.Fprintf(w, "  uptime:    %s\n", uptime)
	fmt.Fprintf(w, "  retired:   %t\n", state == apStopped)
	fmt.Fprintf(w, "  requested: uids=%v\n", m.ws.UIDs)
}

func (m *Mode) emitState(oldState, newState, reason string) {
	wlanlog.Emit(m.trace, wlanlog.Event{
		Interface: m.radio.Name(),
		ModeID:    m.id.String(),
		Category:  wlanlog.CategoryState,
		StateChange: &wlanlog.StateChangeEvent{
			Entity:   wlanlog.StateEntityAccessPoint,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}
