// Command wlanmoded manages the operating mode of a wireless interface.
//
// The daemon starts the interface in the configured inactive state and
// switches between disabled, scan-only, client, softap and p2p on request.
// With -interactive it runs a console for driving transitions by hand.
//
// Usage:
//
//	wlanmoded [flags]
//
// Flags:
//
//	-config string     Configuration file path
//	-iface string      Wireless interface (overrides the config file)
//	-initial string    Initial state: disabled, scan-only
//	-simulate          Use a simulated radio
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-trace string      Mode trace file (.wlog)
//	-interactive       Run the interactive console
//
// Examples:
//
//	# Explore the modes against a simulated radio
//	wlanmoded -simulate -interactive
//
//	# Manage wlan1 with OpenWrt station profiles
//	wlanmoded -config /etc/wlanmode/wlanmoded.yaml -iface wlan1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/wlanmode/wlanmode-go/cmd/wlanmoded/interactive"
	"github.com/wlanmode/wlanmode-go/pkg/config"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
)

// Flags holds the command line. Empty values keep the config file setting.
type Flags struct {
	ConfigFile  string
	Interface   string
	Initial     string
	Simulate    bool
	LogLevel    string
	Trace       string
	Interactive bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Interface, "iface", "", "Wireless interface (overrides the config file)")
	flag.StringVar(&flags.Initial, "initial", "", "Initial state: disabled, scan-only")
	flag.BoolVar(&flags.Simulate, "simulate", false, "Use a simulated radio")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.Trace, "trace", "", "Mode trace file (.wlog)")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Run the interactive console")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg, err := loadConfig(flags)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level, err := parseLevel(flags.LogLevel)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The console owns the terminal; logs go through its writer.
	var console *interactive.Console
	var logOut io.Writer = os.Stderr
	if flags.Interactive {
		console, err = interactive.New(interactive.Config{})
		if err != nil {
			log.Fatalf("Failed to start console: %v", err)
		}
		logOut = console.Stdout()
		log.SetOutput(logOut)
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	log.Println("wlanmoded")
	log.Println("=========")
	log.Printf("Interface: %s", cfg.Interface)
	log.Printf("Initial:   %s", cfg.Initial)
	log.Printf("Store:     %s", cfg.Store.Type)
	if cfg.Simulate {
		log.Println("Radio:     simulated")
	}

	d, err := newDaemon(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	if err := d.start(ctx); err != nil {
		_ = d.close()
		log.Fatalf("Failed to start: %v", err)
	}
	log.Printf("Started in %s", d.ctrl.State())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if console != nil {
		sim, _ := d.radio.(*driver.Simulated)
		console.Attach(interactive.Config{
			Controller: d.ctrl,
			Store:      d.store,
			Simulated:  sim,
		})
		go console.Run(ctx, cancel)
	}

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	if err := d.close(); err != nil {
		log.Printf("Shutdown: %v", err)
		os.Exit(1)
	}
	log.Println("Stopped")
}

// loadConfig reads the config file, if any, and applies the flags over it.
func loadConfig(f Flags) (*config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		loaded, err := config.Load(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Interface != "" {
		cfg.Interface = f.Interface
	}
	if f.Initial != "" {
		cfg.Initial = f.Initial
	}
	if f.Simulate {
		cfg.Simulate = true
	}
	if f.Trace != "" {
		cfg.Trace.Path = f.Trace
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
