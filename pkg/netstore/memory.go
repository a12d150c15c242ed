package netstore

import (
	"fmt"
	"sync"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Memory is an in-memory Store.
type Memory struct {
	mu       sync.RWMutex
	networks map[int]mode.NetworkConfig
}

var _ Store = (*Memory)(nil)

// NewMemory creates a Memory store holding cfgs.
func NewMemory(cfgs ...mode.NetworkConfig) (*Memory, error) {
	m := &Memory{networks: make(map[int]mode.NetworkConfig)}
	for _, cfg := range cfgs {
		if _, ok := m.networks[cfg.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, cfg.ID)
		}
		if err := m.Put(cfg); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Put adds or replaces a configuration.
func (m *Memory) Put(cfg mode.NetworkConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	m.mu.Lock()
	m.networks[cfg.ID] = cfg
	m.mu.Unlock()
	return nil
}

// Remove deletes the configuration with the given ID.
func (m *Memory) Remove(id int) {
	m.mu.Lock()
	delete(m.networks, id)
	m.mu.Unlock()
}

// Lookup implements Store.
func (m *Memory) Lookup(id int) (mode.NetworkConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.networks[id]
	return cfg, ok
}

// List implements Store.
func (m *Memory) List() []mode.NetworkConfig {
	m.mu.RLock()
	out := make([]mode.NetworkConfig, 0, len(m.networks))
	for _, cfg := range m.networks {
		out = append(out, cfg)
	}
	m.mu.RUnlock()

	sortByID(out)
	return out
}
