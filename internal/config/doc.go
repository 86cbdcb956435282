// Package config manages the user configuration file for echoprobe.
//
// The configuration lives in the OS-appropriate config directory
// (e.g. ~/.config/echoprobe/config.yaml on Linux) and stores two
// kinds of data:
//
//   - Scan preferences: the broadcast address, UDP port, and
//     collection timeout used when the corresponding flags are not
//     given on the command line.
//   - Node metadata: user-defined nicknames and last-seen timestamps
//     for known ECHONET Lite nodes, keyed by IP address. The protocol
//     itself has no notion of a friendly name, so this is purely
//     client-side bookkeeping.
//
// The registry is loaded lazily and saved atomically (write to a
// temporary file, then rename) to prevent corruption on crash.
package config
