package client

import (
	"errors"
	"log/slog"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/connection"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
	"github.com/wlanmode/wlanmode-go/pkg/netstore"
)

// Configuration errors.
var (
	ErrNoRadio = errors.New("client: radio required")
	ErrNoStore = errors.New("client: network store required")
)

// Default timeouts.
const (
	// DefaultCommandTimeout bounds DriverCommand.
	DefaultCommandTimeout = 2 * time.Second

	// DefaultRetireTimeout bounds the disassociation performed by Retire.
	DefaultRetireTimeout = 5 * time.Second
)

// Config configures a client Mode.
type Config struct {
	// Radio is the interface the mode drives. Required.
	Radio driver.Radio

	// Store resolves network IDs. Required.
	Store netstore.Store

	// WorkSource attributes the mode's radio activity.
	WorkSource mode.WorkSource

	// NetworkID is joined when the mode is activated. mode.InvalidNetworkID
	// leaves the mode disconnected.
	NetworkID int

	// ConnectTimeout bounds one association attempt.
	// Default connection.DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// CommandTimeout bounds raw driver commands. Default DefaultCommandTimeout.
	CommandTimeout time.Duration

	// Backoff between automatic reconnection attempts after link loss.
	Backoff connection.BackoffConfig

	// Provisioner serves DPP, ANQP and Passpoint requests. Without one
	// those requests fail like they do in the inactive mode.
	Provisioner mode.Provisioning

	// OnMessage receives messages posted with SendMessage. It runs on a
	// background goroutine. Without it messages are counted and dropped.
	OnMessage func(mode.Message)

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger

	// Trace receives connect, save and link events. Nil disables tracing.
	Trace wlanlog.Logger
}

// DefaultConfig returns a Config with default timeouts and backoff. Radio
// and Store must still be set.
func DefaultConfig() Config {
	return Config{
		NetworkID:      mode.InvalidNetworkID,
		ConnectTimeout: connection.DefaultConnectTimeout,
		CommandTimeout: DefaultCommandTimeout,
		Backoff:        connection.DefaultBackoffConfig(),
	}
}

// Validate checks that the required collaborators are set.
func (c *Config) Validate() error {
	if c.Radio == nil {
		return ErrNoRadio
	}
	if c.Store == nil {
		return ErrNoStore
	}
	return nil
}
