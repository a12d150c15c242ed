package p2p

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// DNS-SD defaults.
const (
	// DefaultServiceType is advertised when Config.ServiceType is empty.
	DefaultServiceType = "_wlanmode-p2p._udp"

	// Domain is the DNS-SD domain.
	Domain = "local."

	// DefaultPort is advertised when Config.Port is zero.
	DefaultPort = 7236

	// MaxInstanceNameLen is the DNS label limit for instance names.
	MaxInstanceNameLen = 63
)

// ServiceInfo describes the service advertised for a group.
type ServiceInfo struct {
	Instance string
	Service  string
	Port     int
	TXT      map[string]string
}

// Advertiser announces a group's service to peers.
type Advertiser interface {
	// Advertise starts announcing info, replacing any earlier announcement.
	Advertise(ctx context.Context, info ServiceInfo) error

	// Stop withdraws the announcement. Stopping twice is not an error.
	Stop() error
}

// AdvertiserConfig configures an MDNSAdvertiser.
type AdvertiserConfig struct {
	// Interface restricts announcements to one interface. Empty means all.
	Interface string

	// TTL is the DNS record TTL.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns a config announcing on all interfaces with
// a 120 second TTL.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{TTL: 120 * time.Second}
}

// MDNSAdvertiser implements Advertiser with multicast DNS.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

var _ Advertiser = (*MDNSAdvertiser)(nil)

// NewMDNSAdvertiser creates an advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) *MDNSAdvertiser {
	return &MDNSAdvertiser{config: config}
}

// interfaces returns the interfaces to announce on, nil for all.
func (a *MDNSAdvertiser) interfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise registers the service.
func (a *MDNSAdvertiser) Advertise(ctx context.Context, info ServiceInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	instance := info.Instance
	if len(instance) > MaxInstanceNameLen {
		instance = instance[:MaxInstanceNameLen]
	}
	service := info.Service
	if service == "" {
		service = DefaultServiceType
	}
	port := info.Port
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(instance, service, Domain, port, TXTStrings(info.TXT), a.interfaces(), opts...)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", service, err)
	}
	a.server = server
	return nil
}

// Stop shuts the announcement down.
func (a *MDNSAdvertiser) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
	return nil
}

// TXTStrings renders records as sorted "key=value" strings.
func TXTStrings(txt map[string]string) []string {
	out := make([]string, 0, len(txt))
	for k, v := range txt {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// ParseTXT parses "key=value" strings. A string without "=" is a flag with
// an empty value.
func ParseTXT(strs []string) map[string]string {
	txt := make(map[string]string, len(strs))
	for _, s := range strs {
		if s == "" {
			continue
		}
		k, v, _ := strings.Cut(s, "=")
		txt[k] = v
	}
	return txt
}
