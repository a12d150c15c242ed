// Command wlanmode-log views and analyzes mode trace files.
//
// Trace files are written by wlanmoded when run with -trace.
//
// Usage:
//
//	wlanmode-log <command> [flags] <file.wlog>
//
// Commands:
//
//	view     View trace in human-readable format
//	stats    Show statistics about the trace
//	export   Export trace to JSON lines or CSV
//	filter   Filter trace and write to new file
//
// Examples:
//
//	# View all events
//	wlanmode-log view wlan0.wlog
//
//	# View only transitions
//	wlanmode-log view -category transition wlan0.wlog
//
//	# Everything recorded while in, or moving into or out of, client mode
//	wlanmode-log view -state client wlan0.wlog
//
//	# Statistics of one mode instance
//	wlanmode-log stats -mode-id client/3f2a9c1b-... wlan0.wlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wlanmode/wlanmode-go/cmd/wlanmode-log/commands"
)

const usage = `wlanmode-log - Mode Trace Analyzer

Usage:
  wlanmode-log <command> [flags] <file.wlog>

Commands:
  view     View trace in human-readable format
  stats    Show statistics about the trace
  export   Export trace to JSON lines or CSV
  filter   Filter trace and write to new file

Use "wlanmode-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet returns a flag set with the shared filter flags registered.
func newFlagSet(name, summary string) (*flag.FlagSet, *commands.FilterFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wlanmode-log %s - %s

Usage:
  wlanmode-log %s [flags] <file.wlog>

Flags:
`, name, summary, name)
		fs.PrintDefaults()
	}

	ff := &commands.FilterFlags{}
	fs.StringVar(&ff.Category, "category", "", "Filter by category (transition, operation, state, error)")
	fs.StringVar(&ff.State, "state", "", "Filter by controller state (disabled, scan-only, client, softap, p2p)")
	fs.StringVar(&ff.Interface, "iface", "", "Filter by interface name")
	fs.StringVar(&ff.ModeID, "mode-id", "", "Filter by mode identity")
	fs.StringVar(&ff.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&ff.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return fs, ff
}

// parse parses args and returns the trace path and filter, exiting on error.
func parse(fs *flag.FlagSet, ff *commands.FilterFlags, args []string) (string, commands.FilterFlags) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0), *ff
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs, ff := newFlagSet("view", "View trace in human-readable format")
	path, flags := parse(fs, ff, args)

	filter, err := flags.Build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs, ff := newFlagSet("stats", "Show statistics about the trace")
	path, flags := parse(fs, ff, args)

	filter, err := flags.Build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunStats(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs, ff := newFlagSet("export", "Export trace to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path, flags := parse(fs, ff, args)

	filter, err := flags.Build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunExport(path, *format, *output, filter); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs, ff := newFlagSet("filter", "Filter trace and write to new file")
	output := fs.String("o", "", "Output file (required)")
	path, flags := parse(fs, ff, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	filter, err := flags.Build()
	if err != nil {
		fail(err)
	}
	n, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}
