// Package tui implements the live scan view for echoprobe.
//
// Running "echoprobe scan --watch" shows a spinner with the remaining
// collection time and appends each responder as its reply arrives,
// instead of printing the report only after the window closes. The
// view is built with bubbletea; replies are streamed from a discovery
// session running in the background.
//
// Key bindings: q or ctrl+c abort the scan early, keeping the
// responses collected so far.
package tui
