package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muurk/echoprobe/internal/discovery"
)

// newTestServer returns a Server whose scan function is stubbed, plus
// an httptest server exposing its /ws endpoint.
func newTestServer(t *testing.T, scan ScanFunc) *httptest.Server {
	t.Helper()

	s, err := New(&Config{Host: "127.0.0.1"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.scan = scan

	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketScanStreamsResponses(t *testing.T) {
	replies := []discovery.Response{
		{
			Addr:       &net.UDPAddr{IP: net.IPv4(192, 168, 0, 42), Port: 3610},
			Payload:    []byte{0x10, 0x81, 0x00, 0x00},
			ReceivedAt: time.Now(),
		},
		{
			Addr:       &net.UDPAddr{IP: net.IPv4(192, 168, 0, 43), Port: 3610},
			Payload:    []byte{0xDE, 0xAD},
			ReceivedAt: time.Now(),
		},
	}

	ts := newTestServer(t, func(ctx context.Context, opts discovery.Options, fn func(discovery.Response)) error {
		for _, r := range replies {
			fn(r)
		}
		return nil
	})
	conn := dialWS(t, ts)

	if err := conn.WriteJSON(scanRequest{Type: "scan", TimeoutSeconds: 1}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var events []scanEvent
	for {
		var ev scanEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		events = append(events, ev)
		if ev.Type == "done" || ev.Type == "error" {
			break
		}
	}

	if len(events) != 3 {
		t.Fatalf("received %d events, want 3 (2 responses + done)", len(events))
	}
	if events[0].Type != "response" || events[0].Address != "192.168.0.42" {
		t.Errorf("events[0] = %+v, want response from 192.168.0.42", events[0])
	}
	if events[0].PayloadHex != "10810000" {
		t.Errorf("events[0].PayloadHex = %q, want 10810000", events[0].PayloadHex)
	}
	if events[1].Address != "192.168.0.43" || events[1].PayloadHex != "dead" {
		t.Errorf("events[1] = %+v, want response from 192.168.0.43", events[1])
	}
	if events[2].Type != "done" || events[2].Count != 2 {
		t.Errorf("events[2] = %+v, want done with count 2", events[2])
	}
}

func TestWebSocketScanReportsError(t *testing.T) {
	ts := newTestServer(t, func(ctx context.Context, opts discovery.Options, fn func(discovery.Response)) error {
		return errors.New("network is down")
	})
	conn := dialWS(t, ts)

	if err := conn.WriteJSON(scanRequest{Type: "scan"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var ev scanEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ev.Type != "error" || !strings.Contains(ev.Error, "network is down") {
		t.Errorf("event = %+v, want error mentioning the scan failure", ev)
	}
}

func TestWebSocketRejectsUnknownRequestType(t *testing.T) {
	ts := newTestServer(t, func(ctx context.Context, opts discovery.Options, fn func(discovery.Response)) error {
		t.Error("scan should not run for an unknown request type")
		return nil
	})
	conn := dialWS(t, ts)

	if err := conn.WriteJSON(scanRequest{Type: "subscribe"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var ev scanEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ev.Type != "error" {
		t.Errorf("event type = %q, want error", ev.Type)
	}
}

func TestScanOptionsMergesRequest(t *testing.T) {
	s, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	opts, err := s.scanOptions(scanRequest{
		Type:           "scan",
		Broadcast:      "192.168.0.255",
		TimeoutSeconds: 2,
	})
	if err != nil {
		t.Fatalf("scanOptions() error = %v", err)
	}

	if !opts.BroadcastAddr.Equal(net.IPv4(192, 168, 0, 255)) {
		t.Errorf("BroadcastAddr = %v, want 192.168.0.255", opts.BroadcastAddr)
	}
	if opts.Port != 3610 {
		t.Errorf("Port = %d, want default 3610", opts.Port)
	}
	if opts.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", opts.Timeout)
	}
}

func TestScanOptionsRejectsBadInput(t *testing.T) {
	s, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := s.scanOptions(scanRequest{Type: "scan", Broadcast: "not-an-ip"}); err == nil {
		t.Error("scanOptions() should reject a malformed broadcast address")
	}
	if _, err := s.scanOptions(scanRequest{Type: "scan", TimeoutSeconds: 600}); err == nil {
		t.Error("scanOptions() should reject an excessive timeout")
	}
}
