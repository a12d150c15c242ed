// Package config loads the daemon configuration from a YAML file.
//
// A minimal file names the interface and leaves everything else at its
// default:
//
//	interface: wlan0
//	initial: scan-only
//	store:
//	  type: file
//	  path: /etc/wlanmode/networks.yaml
//
// Durations use Go syntax ("30s", "1m").
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wlanmode/wlanmode-go/pkg/client"
	"github.com/wlanmode/wlanmode-go/pkg/connection"
	"github.com/wlanmode/wlanmode-go/pkg/controller"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	"github.com/wlanmode/wlanmode-go/pkg/p2p"
)

// Store types.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreUCI    = "uci"
)

// DefaultInterface is used when no interface is configured.
const DefaultInterface = "wlan0"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the daemon configuration.
type Config struct {
	// Interface is the wireless interface to manage.
	Interface string `yaml:"interface"`

	// Simulate uses an in-memory radio instead of the kernel interface.
	Simulate bool `yaml:"simulate,omitempty"`

	// Initial is the state at start: "disabled" or "scan-only".
	Initial string `yaml:"initial"`

	// Policy for transitions requested during a transition: "queue" or
	// "reject".
	Policy string `yaml:"policy"`

	// HistorySize bounds the controller's transition history.
	HistorySize int `yaml:"history_size,omitempty"`

	// Country is the regulatory domain applied to client modes. Empty keeps
	// the radio's setting.
	Country string `yaml:"country,omitempty"`

	Store  StoreConfig  `yaml:"store"`
	Trace  TraceConfig  `yaml:"trace,omitempty"`
	Client ClientConfig `yaml:"client"`
	SoftAP SoftAPConfig `yaml:"softap,omitempty"`
	P2P    P2PConfig    `yaml:"p2p,omitempty"`
}

// StoreConfig selects the network configuration store.
type StoreConfig struct {
	// Type is "memory", "file" or "uci".
	Type string `yaml:"type"`

	// Path is the profile file for the file store, or the UCI config
	// directory for the uci store.
	Path string `yaml:"path,omitempty"`

	// Device restricts the uci store to one wifi-device.
	Device string `yaml:"device,omitempty"`
}

// TraceConfig configures the mode trace.
type TraceConfig struct {
	// Path of the .wlog trace file. Empty disables the file trace.
	Path string `yaml:"path,omitempty"`

	// Slog mirrors trace events to the operational log at debug level.
	Slog bool `yaml:"slog,omitempty"`
}

// ClientConfig configures client modes.
type ClientConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	Backoff        BackoffConfig `yaml:"backoff"`
}

// BackoffConfig mirrors connection.BackoffConfig.
type BackoffConfig struct {
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	Multiplier float64       `yaml:"multiplier"`
	Jitter     float64       `yaml:"jitter"`
}

// SoftAPConfig configures the access point mode.
type SoftAPConfig struct {
	SSID       string `yaml:"ssid,omitempty"`
	Passphrase string `yaml:"passphrase,omitempty"`
	Band       string `yaml:"band,omitempty"`
	Channel    int    `yaml:"channel,omitempty"`
	Hidden     bool   `yaml:"hidden,omitempty"`
}

// P2PConfig configures the peer-to-peer mode.
type P2PConfig struct {
	DeviceName  string `yaml:"device_name,omitempty"`
	Intent      int    `yaml:"intent,omitempty"`
	Passphrase  string `yaml:"passphrase,omitempty"`
	ServiceType string `yaml:"service_type,omitempty"`
	Port        int    `yaml:"port,omitempty"`

	// Advertise announces the group with DNS-SD.
	Advertise bool `yaml:"advertise,omitempty"`
}

// Default returns a configuration for wlan0 starting in scan-only with an
// in-memory store.
func Default() *Config {
	backoff := connection.DefaultBackoffConfig()
	return &Config{
		Interface:   DefaultInterface,
		Initial:     "scan-only",
		Policy:      "queue",
		HistorySize: controller.DefaultHistorySize,
		Store:       StoreConfig{Type: StoreMemory},
		Client: ClientConfig{
			ConnectTimeout: connection.DefaultConnectTimeout,
			CommandTimeout: client.DefaultCommandTimeout,
			Backoff: BackoffConfig{
				Initial:    backoff.Initial,
				Max:        backoff.Max,
				Multiplier: backoff.Multiplier,
				Jitter:     backoff.Jitter,
			},
		},
		SoftAP: SoftAPConfig{SSID: "wlanmode-ap", Band: "2g"},
		P2P: P2PConfig{
			DeviceName:  "wlanmode",
			Intent:      7,
			ServiceType: p2p.DefaultServiceType,
			Port:        p2p.DefaultPort,
		},
	}
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	// File is the path that failed to load.
	File string

	// Line is the line of the offending node, 0 if unknown.
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Line > 0 {
		b.WriteString(":" + strconv.Itoa(e.Line))
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Line: yamlLine(err), Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "validation failed", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// yamlLine extracts the first line number from a yaml.v3 error.
func yamlLine(err error) int {
	var te *yaml.TypeError
	msg := err.Error()
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}
	_, rest, ok := strings.Cut(msg, "line ")
	if !ok {
		return 0
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	n, _ := strconv.Atoi(rest[:end])
	return n
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Interface == "" {
		return fmt.Errorf("%w: interface required", ErrInvalid)
	}
	state, err := controller.ParseState(c.Initial)
	if err != nil {
		return fmt.Errorf("%w: initial: %v", ErrInvalid, err)
	}
	if !state.Inactive() {
		return fmt.Errorf("%w: initial: %v", ErrInvalid, controller.ErrInvalidInitial)
	}
	if _, err := controller.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: policy: %v", ErrInvalid, err)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("%w: history_size must not be negative", ErrInvalid)
	}
	if c.Country != "" && !driver.ValidCountryCode(c.Country) {
		return fmt.Errorf("%w: country %q", ErrInvalid, c.Country)
	}

	switch c.Store.Type {
	case StoreMemory:
	case StoreFile:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store: file store needs a path", ErrInvalid)
		}
	case StoreUCI:
	default:
		return fmt.Errorf("%w: store: unknown type %q", ErrInvalid, c.Store.Type)
	}

	if c.Client.ConnectTimeout < 0 || c.Client.CommandTimeout < 0 {
		return fmt.Errorf("%w: client: negative timeout", ErrInvalid)
	}
	b := c.Client.Backoff
	if b.Initial < 0 || b.Max < 0 || (b.Max > 0 && b.Initial > b.Max) {
		return fmt.Errorf("%w: client: backoff initial %s exceeds max %s", ErrInvalid, b.Initial, b.Max)
	}
	if b.Multiplier != 0 && b.Multiplier < 1 {
		return fmt.Errorf("%w: client: backoff multiplier %.2f below 1", ErrInvalid, b.Multiplier)
	}
	if b.Jitter < 0 || b.Jitter > 1 {
		return fmt.Errorf("%w: client: backoff jitter %.2f outside [0,1]", ErrInvalid, b.Jitter)
	}

	if p := c.SoftAP.Passphrase; p != "" && (len(p) < 8 || len(p) > 63) {
		return fmt.Errorf("%w: softap: %v", ErrInvalid, driver.ErrInvalidPassword)
	}
	if len(c.SoftAP.SSID) > 32 {
		return fmt.Errorf("%w: softap: ssid longer than 32 bytes", ErrInvalid)
	}
	if c.P2P.Intent < 0 || c.P2P.Intent > 15 {
		return fmt.Errorf("%w: p2p: %v", ErrInvalid, p2p.ErrInvalidIntent)
	}
	if c.P2P.Port < 0 || c.P2P.Port > 65535 {
		return fmt.Errorf("%w: p2p: invalid port %d", ErrInvalid, c.P2P.Port)
	}
	return nil
}

// InitialState returns the parsed initial state. Call after Validate.
func (c *Config) InitialState() controller.State {
	s, _ := controller.ParseState(c.Initial)
	return s
}

// TransitionPolicy returns the parsed policy. Call after Validate.
func (c *Config) TransitionPolicy() controller.Policy {
	p, _ := controller.ParsePolicy(c.Policy)
	return p
}

// ConnectionBackoff converts the client backoff section.
func (c *Config) ConnectionBackoff() connection.BackoffConfig {
	return connection.BackoffConfig{
		Initial:    c.Client.Backoff.Initial,
		Max:        c.Client.Backoff.Max,
		Multiplier: c.Client.Backoff.Multiplier,
		Jitter:     c.Client.Backoff.Jitter,
	}
}

// APConfig converts the softap section.
func (c *Config) APConfig() driver.APConfig {
	return driver.APConfig{
		SSID:       c.SoftAP.SSID,
		Passphrase: c.SoftAP.Passphrase,
		Band:       c.SoftAP.Band,
		Channel:    c.SoftAP.Channel,
		Hidden:     c.SoftAP.Hidden,
	}
}

// GroupConfig converts the p2p section.
func (c *Config) GroupConfig() driver.P2PConfig {
	return driver.P2PConfig{
		DeviceName:       c.P2P.DeviceName,
		GroupOwnerIntent: c.P2P.Intent,
		Passphrase:       c.P2P.Passphrase,
	}
}
