package ui

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/echoprobe/internal/discovery"
	"github.com/muurk/echoprobe/internal/protocol"
)

// Report renders the outcome of one discovery scan.
type Report struct {
	Responses []discovery.Response

	// Nicknames maps responder IPs to user-defined names from the
	// config registry. Optional.
	Nicknames map[string]string

	// Styled enables lipgloss styling. Callers normally set this to
	// IsTerminal().
	Styled bool
}

// jsonResponse is the scripting-friendly shape of one reply.
type jsonResponse struct {
	Address    string    `json:"address"`
	Port       int       `json:"port"`
	Nickname   string    `json:"nickname,omitempty"`
	Service    string    `json:"service,omitempty"`
	PayloadHex string    `json:"payload_hex"`
	ReceivedAt time.Time `json:"received_at"`
}

// Render formats the report in the requested format: "detailed",
// "compact", or "json".
func (r *Report) Render(format string) (string, error) {
	switch format {
	case "detailed":
		return r.FormatDetailed(), nil
	case "compact":
		return r.FormatCompact(), nil
	case "json":
		return r.FormatJSON()
	default:
		return "", fmt.Errorf("unknown output format %q (expected detailed, compact, or json)", format)
	}
}

// FormatCompact returns one line per reply: "address  hex-payload",
// the classic discovery output.
func (r *Report) FormatCompact() string {
	var b strings.Builder
	for _, resp := range r.Responses {
		b.WriteString(resp.String())
		b.WriteString("\n")
	}
	return b.String()
}

// FormatDetailed returns a block per responder with the decoded
// frame header, the raw payload, and the nickname when one is known.
func (r *Report) FormatDetailed() string {
	var b strings.Builder

	if len(r.Responses) == 0 {
		b.WriteString(r.style(EmptyStyle, "No ECHONET Lite nodes found."))
		b.WriteString("\n\n")
		b.WriteString("Troubleshooting:\n")
		b.WriteString("  - Verify your computer is on the same subnet as the devices\n")
		b.WriteString("  - Try the subnet's directed broadcast address (e.g. --broadcast 192.168.0.255)\n")
		b.WriteString("  - Check that the firewall allows UDP port 3610 in both directions\n")
		b.WriteString("  - Try increasing --timeout for slow devices\n")
		return b.String()
	}

	b.WriteString(r.style(HeaderStyle, fmt.Sprintf("Found %d node(s):", len(r.Responses))))
	b.WriteString("\n\n")

	for i, resp := range r.Responses {
		addr := resp.Addr.String()
		line := fmt.Sprintf("%d. %s", i+1, r.style(AddrStyle, addr))
		if nick := r.Nicknames[resp.Addr.IP.String()]; nick != "" {
			line += " " + r.style(LabelStyle, "("+nick+")")
		}
		b.WriteString(line)
		b.WriteString("\n")

		if frame, err := protocol.DecodeHeader(resp.Payload); err == nil {
			b.WriteString(fmt.Sprintf("   %s %s\n",
				r.style(LabelStyle, "Service:"),
				r.style(ValueStyle, fmt.Sprintf("%s from %s", frame.ESVString(), frame.SEOJ)),
			))
		}
		b.WriteString(fmt.Sprintf("   %s %s\n",
			r.style(LabelStyle, "Payload:"),
			r.style(ValueStyle, hex.EncodeToString(resp.Payload)),
		))
		b.WriteString(fmt.Sprintf("   %s %s\n",
			r.style(LabelStyle, "Time:   "),
			r.style(ValueStyle, resp.ReceivedAt.Format(time.RFC3339)),
		))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatJSON returns the replies as a JSON array for scripting.
func (r *Report) FormatJSON() (string, error) {
	out := make([]jsonResponse, 0, len(r.Responses))
	for _, resp := range r.Responses {
		jr := jsonResponse{
			Address:    resp.Addr.IP.String(),
			Port:       resp.Addr.Port,
			Nickname:   r.Nicknames[resp.Addr.IP.String()],
			PayloadHex: hex.EncodeToString(resp.Payload),
			ReceivedAt: resp.ReceivedAt,
		}
		if frame, err := protocol.DecodeHeader(resp.Payload); err == nil {
			jr.Service = frame.ESVString()
		}
		out = append(out, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scan results: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Report) style(s lipgloss.Style, text string) string {
	if !r.Styled {
		return text
	}
	return s.Render(text)
}
