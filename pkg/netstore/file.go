package netstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// ProfileVersion is the current version of the profile file format.
const ProfileVersion = 1

// Profile is the on-disk form of a network configuration.
type Profile struct {
	ID         int    `yaml:"id"`
	SSID       string `yaml:"ssid"`
	BSSID      string `yaml:"bssid,omitempty"`
	Security   string `yaml:"security"`
	Passphrase string `yaml:"passphrase,omitempty"`
	Hidden     bool   `yaml:"hidden,omitempty"`
	Priority   int    `yaml:"priority,omitempty"`
}

// profileFile is the document stored at File.path.
type profileFile struct {
	// Version is the profile file format version.
	Version int `yaml:"version"`

	// SavedAt is when the file was last written by Save.
	SavedAt time.Time `yaml:"saved_at,omitempty"`

	Networks []Profile `yaml:"networks"`
}

// ToProfile converts cfg to its on-disk form.
func ToProfile(cfg mode.NetworkConfig) Profile {
	return Profile{
		ID:         cfg.ID,
		SSID:       cfg.SSID,
		BSSID:      cfg.BSSID,
		Security:   cfg.Security.String(),
		Passphrase: cfg.Passphrase,
		Hidden:     cfg.Hidden,
		Priority:   cfg.Priority,
	}
}

// NetworkConfig converts p to a validated configuration.
func (p Profile) NetworkConfig() (mode.NetworkConfig, error) {
	sec, ok := mode.ParseSecurity(p.Security)
	if !ok {
		return mode.NetworkConfig{}, fmt.Errorf("%w: network %d: unknown security %q", ErrInvalidNetwork, p.ID, p.Security)
	}
	cfg := mode.NetworkConfig{
		ID:         p.ID,
		SSID:       p.SSID,
		BSSID:      p.BSSID,
		Security:   sec,
		Passphrase: p.Passphrase,
		Hidden:     p.Hidden,
		Priority:   p.Priority,
	}
	if err := Validate(cfg); err != nil {
		return mode.NetworkConfig{}, fmt.Errorf("network %d: %w", p.ID, err)
	}
	return cfg, nil
}

// File is a Store backed by a YAML profile file. Lookups are served from the
// copy read by the last Load or Save.
type File struct {
	mu    sync.Mutex
	path  string
	cache *Memory
}

var _ Store = (*File)(nil)

// NewFile creates a File store for path. It does not read the file; call
// Load for that.
func NewFile(path string) *File {
	return &File{path: path, cache: &Memory{networks: make(map[int]mode.NetworkConfig)}}
}

// OpenFile creates a File store and loads path.
func OpenFile(path string) (*File, error) {
	f := NewFile(path)
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the profile file path.
func (f *File) Path() string { return f.path }

// Load reads the profile file, replacing the cached configurations.
// A missing file yields an empty store.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		f.cache = &Memory{networks: make(map[int]mode.NetworkConfig)}
		return nil
	}
	if err != nil {
		return err
	}

	var doc profileFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", f.path, err)
	}
	if doc.Version > ProfileVersion {
		return fmt.Errorf("%s: unsupported profile version %d", f.path, doc.Version)
	}

	cfgs := make([]mode.NetworkConfig, 0, len(doc.Networks))
	for _, p := range doc.Networks {
		cfg, err := p.NetworkConfig()
		if err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
		cfgs = append(cfgs, cfg)
	}

	cache, err := NewMemory(cfgs...)
	if err != nil {
		return fmt.Errorf("%s: %w", f.path, err)
	}
	f.cache = cache
	return nil
}

// Save writes cfgs to the profile file and makes them the cached set.
func (f *File) Save(cfgs []mode.NetworkConfig) error {
	cache, err := NewMemory(cfgs...)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	doc := profileFile{
		Version: ProfileVersion,
		SavedAt: time.Now(),
	}
	for _, cfg := range cache.List() {
		doc.Networks = append(doc.Networks, ToProfile(cfg))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	// Profiles hold passphrases.
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return err
	}

	f.cache = cache
	return nil
}

// Clear removes the profile file and empties the store.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cache = &Memory{networks: make(map[int]mode.NetworkConfig)}
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Lookup implements Store.
func (f *File) Lookup(id int) (mode.NetworkConfig, bool) {
	return f.current().Lookup(id)
}

// List implements Store.
func (f *File) List() []mode.NetworkConfig {
	return f.current().List()
}

func (f *File) current() *Memory {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache
}
