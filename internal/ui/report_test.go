package ui

import (
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/muurk/echoprobe/internal/discovery"
)

func sampleResponses() []discovery.Response {
	reply := []byte{
		0x10, 0x81, 0x00, 0x00,
		0x0E, 0xF0, 0x01, 0x0E, 0xF0, 0x01,
		0x72, 0x01, 0xD6, 0x04, 0x01, 0x02, 0x7B, 0x01,
	}
	return []discovery.Response{
		{
			Addr:       &net.UDPAddr{IP: net.IPv4(192, 168, 0, 42), Port: 3610},
			Payload:    reply,
			ReceivedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			Addr:       &net.UDPAddr{IP: net.IPv4(192, 168, 0, 43), Port: 3610},
			Payload:    []byte{0xDE, 0xAD},
			ReceivedAt: time.Date(2026, 8, 20, 12, 0, 1, 0, time.UTC),
		},
	}
}

func TestFormatCompact(t *testing.T) {
	r := &Report{Responses: sampleResponses()}

	got := r.FormatCompact()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("FormatCompact() produced %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "192.168.0.42:3610") {
		t.Errorf("line 1 = %q, want it to start with the responder address", lines[0])
	}
	if !strings.HasSuffix(lines[1], "dead") {
		t.Errorf("line 2 = %q, want it to end with the hex payload", lines[1])
	}
}

func TestFormatDetailed(t *testing.T) {
	r := &Report{
		Responses: sampleResponses(),
		Nicknames: map[string]string{"192.168.0.42": "Floor heating"},
	}

	got := r.FormatDetailed()

	for _, want := range []string{
		"Found 2 node(s):",
		"192.168.0.42:3610",
		"(Floor heating)",
		"Get_Res",
		"108100000ef0010ef0017201d60401027b01",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatDetailed() missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatDetailedEmpty(t *testing.T) {
	r := &Report{}

	got := r.FormatDetailed()
	if !strings.Contains(got, "No ECHONET Lite nodes found.") {
		t.Errorf("FormatDetailed() should mention empty result, got:\n%s", got)
	}
	if !strings.Contains(got, "Troubleshooting") {
		t.Errorf("FormatDetailed() should include troubleshooting hints")
	}
}

func TestFormatJSON(t *testing.T) {
	r := &Report{Responses: sampleResponses()}

	got, err := r.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("FormatJSON() produced invalid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d entries, want 2", len(decoded))
	}
	if decoded[0]["address"] != "192.168.0.42" {
		t.Errorf("address = %v, want 192.168.0.42", decoded[0]["address"])
	}
	if decoded[0]["service"] != "Get_Res" {
		t.Errorf("service = %v, want Get_Res", decoded[0]["service"])
	}
	if decoded[1]["payload_hex"] != "dead" {
		t.Errorf("payload_hex = %v, want dead", decoded[1]["payload_hex"])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	r := &Report{}
	if _, err := r.Render("xml"); err == nil {
		t.Error("Render(\"xml\") should fail")
	}
}
