//go:build !linux

package driver

import (
	"fmt"
	"log/slog"
	"runtime"
)

// NetlinkConfig configures a Netlink radio.
type NetlinkConfig struct {
	Interface    string
	Supplicant   Supplicant
	Capabilities Capabilities
	Logger       *slog.Logger
}

// Netlink is only available on Linux.
type Netlink struct {
	Radio
}

// NewNetlink always fails outside Linux.
func NewNetlink(cfg NetlinkConfig) (*Netlink, error) {
	return nil, fmt.Errorf("netlink radio on %s: %w", runtime.GOOS, ErrUnsupported)
}
