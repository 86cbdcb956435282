// Package ui renders scan results for the terminal.
//
// It provides the styled report shown after a scan completes, in
// three formats: detailed (one block per responder), compact (one
// line per responder, the classic "address  hex" output), and json
// (for scripting). Styling uses lipgloss and degrades to plain text
// when stdout is not a terminal.
package ui
