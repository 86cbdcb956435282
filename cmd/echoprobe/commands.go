package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/echoprobe/internal/config"
	"github.com/muurk/echoprobe/internal/discovery"
	"github.com/muurk/echoprobe/internal/server"
	"github.com/muurk/echoprobe/internal/tui"
	"github.com/muurk/echoprobe/internal/ui"
)

// Scan command flags
var (
	broadcastAddr string
	scanPort      int
	scanTimeout   int
	outputFormat  string
	watchMode     bool
)

// Serve command flags
var (
	serveHost string
	servePort int
)

func init() {
	scanCmd.Flags().StringVar(&broadcastAddr, "broadcast", "", "Broadcast address for the discovery request (default from config, else 255.255.255.255)")
	scanCmd.Flags().IntVar(&scanPort, "port", 0, "UDP port to bind and send to (default from config, else 3610)")
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Collection window in seconds (default from config, else 5)")
	scanCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
	scanCmd.Flags().BoolVar(&watchMode, "watch", false, "Show replies live as they arrive")

	// The root command runs a scan by default, so it shares the flags
	rootCmd.Flags().AddFlagSet(scanCmd.Flags())

	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Address to listen on")
	serveCmd.Flags().IntVar(&servePort, "listen-port", 8090, "HTTP port for the WebSocket endpoint")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nameCmd)
}

// scanCmd discovers ECHONET Lite nodes on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for ECHONET Lite nodes on the network",
	Long: `Scan for ECHONET Lite nodes using a UDP broadcast.

This command broadcasts the standard "get instance list" request on
port 3610 and displays every node that replies before the collection
window closes, with the raw reply payload in hex.`,
	Example: `  # Scan with the defaults (255.255.255.255, port 3610, 5 seconds)
  echoprobe scan

  # Use the subnet's directed broadcast address
  echoprobe scan --broadcast 192.168.0.255

  # Longer window, one line per node
  echoprobe scan --timeout 10 --format compact

  # Watch replies arrive live
  echoprobe scan --watch`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	opts, registry, err := scanOptions()
	if err != nil {
		return err
	}

	var responses []discovery.Response
	if watchMode {
		responses, err = tui.Run(cmd.Context(), opts)
	} else {
		if outputFormat == "detailed" {
			fmt.Printf("Scanning for ECHONET Lite nodes (broadcast %s, %s)...\n\n",
				opts.BroadcastAddr, opts.Timeout)
		}
		responses, err = discovery.Scan(cmd.Context(), opts)
	}
	if err != nil {
		// Partial results are still worth showing before failing.
		if len(responses) == 0 {
			return fmt.Errorf("scan failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: scan ended early: %v\n", err)
	}

	nicknames := recordSightings(registry, responses)

	report := &ui.Report{
		Responses: responses,
		Nicknames: nicknames,
		Styled:    outputFormat == "detailed" && ui.IsTerminal(),
	}
	out, err := report.Render(outputFormat)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// scanOptions merges flags with the config registry. Flags win over
// preferences; preferences win over the built-in defaults.
func scanOptions() (discovery.Options, *config.Registry, error) {
	var opts discovery.Options

	registry, err := config.LoadRegistry()
	if err != nil {
		// A broken config file should not block a scan
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		registry = nil
	}

	addr := broadcastAddr
	if addr == "" && registry != nil {
		addr = registry.Preferences.Broadcast
	}
	if addr != "" {
		ip := net.ParseIP(addr)
		if ip == nil || ip.To4() == nil {
			return opts, nil, fmt.Errorf("invalid broadcast address %q", addr)
		}
		opts.BroadcastAddr = ip
	}

	opts.Port = scanPort
	if opts.Port == 0 && registry != nil {
		opts.Port = registry.Preferences.Port
	}

	timeout := scanTimeout
	if timeout == 0 && registry != nil {
		timeout = registry.Preferences.ScanTimeout
	}
	opts.Timeout = time.Duration(timeout) * time.Second

	return opts.WithDefaults(), registry, nil
}

// recordSightings updates last-seen timestamps for responders and
// returns the nickname map for the report.
func recordSightings(registry *config.Registry, responses []discovery.Response) map[string]string {
	if registry == nil {
		return nil
	}

	for _, r := range responses {
		registry.UpdateNodeLastSeen(r.Addr.IP.String())
	}
	if len(responses) > 0 {
		if err := registry.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not update config: %v\n", err)
		}
	}

	nicknames := make(map[string]string)
	for ip, node := range registry.Nodes {
		if node.Nickname != "" {
			nicknames[ip] = node.Nickname
		}
	}
	return nicknames
}

// serveCmd exposes scans over WebSocket
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve discovery scans over WebSocket",
	Long: `Run an HTTP server with a /ws endpoint that streams discovery
replies to WebSocket clients as they arrive.

A client sends {"type": "scan"} (optionally with "broadcast", "port",
and "timeout_seconds") and receives one JSON message per responding
node, followed by a terminal "done" message.`,
	Example: `  # Listen on the default local port
  echoprobe serve

  # Expose to the LAN on a custom port
  echoprobe serve --host 0.0.0.0 --listen-port 9000`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(&server.Config{
		Host: serveHost,
		Port: servePort,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Listening on ws://%s:%d/ws (ctrl+c to stop)\n", serveHost, servePort)
	return srv.Run(ctx)
}

// nameCmd assigns a nickname to a discovered node
var nameCmd = &cobra.Command{
	Use:   "name <ip> <nickname>",
	Short: "Set a nickname for a node",
	Long: `Assign a user-friendly name to an ECHONET Lite node.

The nickname is stored in the config file and shown next to the
node's address in scan reports. ECHONET Lite itself has no notion of
a device name, so this is purely local bookkeeping.`,
	Example: `  echoprobe name 192.168.0.42 "Living room AC"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ip := net.ParseIP(args[0])
		if ip == nil {
			return fmt.Errorf("invalid IP address %q", args[0])
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		registry.SetNodeNickname(ip.String(), args[1])
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("Saved nickname %q for %s\n", args[1], ip)
		return nil
	},
}
