package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/wlanmode/wlanmode-go/pkg/client"
	"github.com/wlanmode/wlanmode-go/pkg/config"
	"github.com/wlanmode/wlanmode-go/pkg/controller"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
	"github.com/wlanmode/wlanmode-go/pkg/netstore"
	"github.com/wlanmode/wlanmode-go/pkg/p2p"
	"github.com/wlanmode/wlanmode-go/pkg/softap"
)

// radioTimeout bounds the up/down calls made on state changes.
const radioTimeout = 5 * time.Second

// daemon holds everything wired from one configuration.
type daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	radio     driver.Radio
	store     netstore.Store
	trace     wlanlog.Logger
	traceFile *wlanlog.FileLogger
	ctrl      *controller.Controller
}

// newDaemon wires radio, store, trace and controller from cfg. On error
// everything opened so far is closed again.
func newDaemon(cfg *config.Config, logger *slog.Logger) (_ *daemon, err error) {
	d := &daemon{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = d.close()
		}
	}()

	if d.radio, err = openRadio(cfg, logger); err != nil {
		return nil, err
	}
	if d.store, err = openStore(cfg, logger); err != nil {
		return nil, err
	}
	if err = d.openTrace(); err != nil {
		return nil, err
	}

	ctrlCfg := controller.DefaultConfig()
	ctrlCfg.Initial = cfg.InitialState()
	ctrlCfg.Policy = cfg.TransitionPolicy()
	ctrlCfg.HistorySize = cfg.HistorySize
	ctrlCfg.Builders = d.builders()
	ctrlCfg.Logger = logger
	ctrlCfg.Trace = d.trace

	if d.ctrl, err = controller.New(ctrlCfg); err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	d.ctrl.OnTransition(d.onTransition)
	return d, nil
}

// openRadio returns the simulated radio or the kernel interface.
func openRadio(cfg *config.Config, logger *slog.Logger) (driver.Radio, error) {
	if cfg.Simulate {
		simCfg := driver.DefaultSimulatedConfig()
		simCfg.Interface = cfg.Interface
		return driver.NewSimulated(simCfg), nil
	}

	logger.Warn("no supplicant binding configured; association, access point and group control are unavailable",
		slog.String("iface", cfg.Interface))
	radio, err := driver.NewNetlink(driver.NetlinkConfig{
		Interface: cfg.Interface,
		Capabilities: driver.Capabilities{
			Features: mode.FeatureInfra | mode.FeatureLinkLayerStats,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open radio: %w", err)
	}
	return radio, nil
}

// simulatedNetworks match the networks visible to the simulated radio.
func simulatedNetworks() []mode.NetworkConfig {
	return []mode.NetworkConfig{
		{ID: 1, SSID: "home", Security: mode.SecurityWPA2PSK, Passphrase: "correct horse"},
		{ID: 2, SSID: "cafe", Security: mode.SecurityOpen},
	}
}

// openStore opens the configured network store.
func openStore(cfg *config.Config, logger *slog.Logger) (netstore.Store, error) {
	switch cfg.Store.Type {
	case config.StoreFile:
		f, err := netstore.OpenFile(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open network store: %w", err)
		}
		return f, nil

	case config.StoreUCI:
		u, err := netstore.NewUCI(netstore.UCIConfig{Root: cfg.Store.Path, Device: cfg.Store.Device})
		if errors.Is(err, netstore.ErrNoUCIConfig) {
			return nil, fmt.Errorf("open network store: %w", err)
		}
		if err != nil {
			logger.Warn("skipped unusable uci sections", slog.Any("error", err))
		}
		return u, nil

	default:
		var seed []mode.NetworkConfig
		if cfg.Simulate {
			seed = simulatedNetworks()
		}
		m, err := netstore.NewMemory(seed...)
		if err != nil {
			return nil, fmt.Errorf("open network store: %w", err)
		}
		return m, nil
	}
}

// openTrace sets up the file trace and the slog mirror.
func (d *daemon) openTrace() error {
	var loggers []wlanlog.Logger
	if path := d.cfg.Trace.Path; path != "" {
		f, err := wlanlog.NewFileLogger(path)
		if err != nil {
			return fmt.Errorf("open trace %s: %w", path, err)
		}
		d.traceFile = f
		loggers = append(loggers, f)
	}
	if d.cfg.Trace.Slog {
		loggers = append(loggers, wlanlog.NewSlogAdapter(d.logger))
	}

	switch len(loggers) {
	case 0:
	case 1:
		d.trace = loggers[0]
	default:
		d.trace = wlanlog.NewMultiLogger(loggers...)
	}
	return nil
}

// builders returns the mode constructors for the active states.
func (d *daemon) builders() map[controller.State]controller.Builder {
	return map[controller.State]controller.Builder{
		controller.StateClient: d.buildClient,
		controller.StateSoftAP: d.buildSoftAP,
		controller.StateP2P:    d.buildP2P,
	}
}

func (d *daemon) buildClient(ctx context.Context, req controller.TransitionRequest) (mode.Mode, error) {
	cfg := client.DefaultConfig()
	cfg.Radio = d.radio
	cfg.Store = d.store
	cfg.WorkSource = req.WorkSource
	cfg.NetworkID = req.NetworkID
	cfg.ConnectTimeout = d.cfg.Client.ConnectTimeout
	cfg.CommandTimeout = d.cfg.Client.CommandTimeout
	cfg.Backoff = d.cfg.ConnectionBackoff()
	cfg.OnMessage = func(msg mode.Message) {
		d.logger.Debug("client message", slog.Int("what", msg.What))
	}
	cfg.Logger = d.logger
	cfg.Trace = d.trace

	m, err := client.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cc := d.cfg.Country; cc != "" && !m.SetCountryCode(cc) {
		d.logger.Warn("country code not applied", slog.String("country", cc))
	}
	return m, nil
}

func (d *daemon) buildSoftAP(ctx context.Context, req controller.TransitionRequest) (mode.Mode, error) {
	ap := d.cfg.APConfig()
	if p, ok := req.Params.(driver.APConfig); ok {
		ap = p
	}
	return softap.Start(ctx, softap.Config{
		Radio:      d.radio,
		AP:         ap,
		WorkSource: req.WorkSource,
		Logger:     d.logger,
		Trace:      d.trace,
	})
}

func (d *daemon) buildP2P(ctx context.Context, req controller.TransitionRequest) (mode.Mode, error) {
	group := d.cfg.GroupConfig()
	if p, ok := req.Params.(driver.P2PConfig); ok {
		group = p
	}
	cfg := p2p.Config{
		Radio:       d.radio,
		Group:       group,
		ServiceType: d.cfg.P2P.ServiceType,
		Port:        d.cfg.P2P.Port,
		WorkSource:  req.WorkSource,
		Logger:      d.logger,
		Trace:       d.trace,
	}
	if d.cfg.P2P.Advertise {
		cfg.Advertiser = p2p.NewMDNSAdvertiser(p2p.DefaultAdvertiserConfig())
	}
	return p2p.Start(ctx, cfg)
}

// onTransition powers the radio down in DISABLED and up in SCAN_ONLY. The
// active modes bring it up themselves.
func (d *daemon) onTransition(rec controller.Record) {
	if rec.Result != wlanlog.TransitionOK {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), radioTimeout)
	defer cancel()

	var err error
	switch rec.To {
	case controller.StateDisabled:
		err = d.radio.SetDown(ctx)
	case controller.StateScanOnly:
		err = d.radio.SetUp(ctx)
	}
	if err != nil {
		d.logger.Warn("radio power change failed", slog.String("state", rec.To.String()), slog.Any("error", err))
	}
}

// start applies the initial state to the radio.
func (d *daemon) start(ctx context.Context) error {
	if d.ctrl.State() != controller.StateScanOnly {
		return nil
	}
	if err := d.radio.SetUp(ctx); err != nil {
		return fmt.Errorf("bring %s up: %w", d.radio.Name(), err)
	}
	return nil
}

// close retires the active mode, powers the radio down and closes the trace.
func (d *daemon) close() error {
	var result *multierror.Error
	if d.ctrl != nil {
		if err := d.ctrl.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if d.radio != nil {
		ctx, cancel := context.WithTimeout(context.Background(), radioTimeout)
		if err := d.radio.SetDown(ctx); err != nil && !errors.Is(err, driver.ErrUnsupported) {
			result = multierror.Append(result, fmt.Errorf("bring %s down: %w", d.radio.Name(), err))
		}
		cancel()
	}
	if d.traceFile != nil {
		if err := d.traceFile.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close trace: %w", err))
		}
	}
	return result.ErrorOrNil()
}
