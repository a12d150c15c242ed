package netstore

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Store errors.
var (
	ErrInvalidNetwork = errors.New("invalid network configuration")
	ErrDuplicateID    = errors.New("duplicate network id")
)

// Store resolves saved network configurations by ID.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Lookup returns the configuration with the given ID.
	Lookup(id int) (mode.NetworkConfig, bool)

	// List returns all configurations ordered by ID.
	List() []mode.NetworkConfig
}

// Validate checks that cfg could be handed to a radio.
func Validate(cfg mode.NetworkConfig) error {
	if cfg.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidNetwork, cfg.ID)
	}
	if len(cfg.SSID) == 0 || len(cfg.SSID) > 32 {
		return fmt.Errorf("%w: ssid length %d", ErrInvalidNetwork, len(cfg.SSID))
	}

	switch cfg.Security {
	case mode.SecurityWPA2PSK:
		n := len(cfg.Passphrase)
		if n != 64 && (n < 8 || n > 63) {
			return fmt.Errorf("%w: %s passphrase length %d", ErrInvalidNetwork, cfg.Security, n)
		}
	case mode.SecurityWPA3SAE:
		if cfg.Passphrase == "" {
			return fmt.Errorf("%w: %s needs a passphrase", ErrInvalidNetwork, cfg.Security)
		}
	case mode.SecurityOpen, mode.SecurityOWE:
	default:
		return fmt.Errorf("%w: unknown security %d", ErrInvalidNetwork, cfg.Security)
	}
	return nil
}

func sortByID(cfgs []mode.NetworkConfig) {
	sort.Slice(cfgs, func(i, j int) bool { return cfgs[i].ID < cfgs[j].ID })
}
