// Package logging provides structured logging for echoprobe.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. Logging is silent by default so
// the CLI output stays clean; set ECHOPROBE_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: detailed debugging info (hex dumps of datagrams, socket state)
//   - Info: normal operations (requests sent, replies received)
//   - Warn: non-fatal issues (interface enumeration failures)
//   - Error: fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Discovery reply received",
//	    zap.String("remote_addr", "192.168.0.42:3610"),
//	    zap.Int("length", 18),
//	)
//
// # Datagram Logging
//
// LogDatagram records a raw UDP payload with hex and ASCII dumps,
// which is the main debugging aid when a node replies with something
// unexpected:
//
//	logging.LogDatagram("Discovery reply received", addr, payload)
//
// # Configuration
//
// CLI commands initialize from the environment so logging stays off
// unless asked for:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
