package netstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/digineo/go-uci"
	"github.com/hashicorp/go-multierror"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Default UCI locations on OpenWrt.
const (
	DefaultUCIRoot   = "/etc/config"
	DefaultUCIConfig = "wireless"
)

// ErrNoUCIConfig is returned when the wireless config does not exist.
var ErrNoUCIConfig = errors.New("uci config not found")

// UCIConfig configures a UCI store.
type UCIConfig struct {
	// Root is the UCI config directory. Default /etc/config.
	Root string

	// Config is the config file name. Default "wireless".
	Config string

	// Device restricts the store to wifi-iface sections bound to this
	// wifi-device. Empty accepts all.
	Device string
}

// UCI is a Store over the station interfaces of an OpenWrt wireless
// config. Every `config wifi-iface` section with `option mode 'sta'` is a
// network; sections with `option disabled '1'` keep their ID but are not
// served.
type UCI struct {
	cfg  UCIConfig
	tree uci.Tree

	mu    sync.RWMutex
	cache *Memory
}

var _ Store = (*UCI)(nil)

// NewUCI opens the wireless config and loads its station sections. Sections
// that cannot be used are reported in the returned error, which is a
// *multierror.Error; the store is still usable in that case.
func NewUCI(cfg UCIConfig) (*UCI, error) {
	if cfg.Root == "" {
		cfg.Root = DefaultUCIRoot
	}
	if cfg.Config == "" {
		cfg.Config = DefaultUCIConfig
	}

	u := &UCI{
		cfg:   cfg,
		tree:  uci.NewTree(cfg.Root),
		cache: &Memory{networks: make(map[int]mode.NetworkConfig)},
	}
	err := u.Reload()
	if errors.Is(err, ErrNoUCIConfig) {
		return nil, err
	}
	return u, err
}

// Reload re-reads the wireless config from disk. Unusable station sections
// are skipped and reported in a *multierror.Error.
func (u *UCI) Reload() error {
	if err := u.tree.LoadConfig(u.cfg.Config, true); err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrNoUCIConfig, u.cfg.Root, u.cfg.Config, err)
	}
	sections, ok := u.tree.GetSections(u.cfg.Config, "wifi-iface")
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNoUCIConfig, u.cfg.Root, u.cfg.Config)
	}

	var result *multierror.Error
	cache := &Memory{networks: make(map[int]mode.NetworkConfig)}
	id := 0
	for _, section := range sections {
		if u.option(section, "mode") != "sta" {
			continue
		}
		if u.cfg.Device != "" && u.option(section, "device") != u.cfg.Device {
			continue
		}
		netID := id
		id++

		if u.option(section, "disabled") == "1" {
			continue
		}
		cfg, err := u.network(netID, section)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("section %s: %w", section, err))
			continue
		}
		cache.networks[netID] = cfg
	}

	u.mu.Lock()
	u.cache = cache
	u.mu.Unlock()

	return result.ErrorOrNil()
}

func (u *UCI) network(id int, section string) (mode.NetworkConfig, error) {
	sec, err := parseEncryption(u.option(section, "encryption"))
	if err != nil {
		return mode.NetworkConfig{}, err
	}

	cfg := mode.NetworkConfig{
		ID:         id,
		SSID:       u.option(section, "ssid"),
		BSSID:      u.option(section, "bssid"),
		Security:   sec,
		Passphrase: u.option(section, "key"),
		Hidden:     u.option(section, "hidden") == "1",
	}
	if err := Validate(cfg); err != nil {
		return mode.NetworkConfig{}, err
	}
	return cfg, nil
}

// option returns the last value of an option, or "" if unset.
func (u *UCI) option(section, name string) string {
	values, ok := u.tree.Get(u.cfg.Config, section, name)
	if !ok || len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// parseEncryption maps an OpenWrt encryption value such as "psk2+ccmp" to
// a Security. Enterprise and WEP modes are not supported.
func parseEncryption(enc string) (mode.Security, error) {
	base, _, _ := strings.Cut(enc, "+")
	switch base {
	case "", "none":
		return mode.SecurityOpen, nil
	case "psk", "psk2", "psk-mixed", "sae-mixed":
		return mode.SecurityWPA2PSK, nil
	case "sae":
		return mode.SecurityWPA3SAE, nil
	case "owe":
		return mode.SecurityOWE, nil
	default:
		return mode.SecurityOpen, fmt.Errorf("%w: unsupported encryption %q", ErrInvalidNetwork, enc)
	}
}

// Lookup implements Store.
func (u *UCI) Lookup(id int) (mode.NetworkConfig, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cache.Lookup(id)
}

// List implements Store.
func (u *UCI) List() []mode.NetworkConfig {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cache.List()
}
