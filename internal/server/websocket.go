package server

import (
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/echoprobe/internal/discovery"
	"github.com/muurk/echoprobe/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Upper bound on a requested collection window
	maxScanTimeout = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Scans are triggered from local dashboards; same-origin policy
	// is not useful on a LAN tool.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// scanRequest is the single message a client sends after connecting.
type scanRequest struct {
	Type           string `json:"type"`
	Broadcast      string `json:"broadcast,omitempty"`
	Port           int    `json:"port,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// scanEvent is a server-to-client message: one per discovery reply,
// then a terminal "done" or "error".
type scanEvent struct {
	Type       string `json:"type"`
	Address    string `json:"address,omitempty"`
	Port       int    `json:"port,omitempty"`
	PayloadHex string `json:"payload_hex,omitempty"`
	ReceivedAt string `json:"received_at,omitempty"`
	Count      int    `json:"count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// handleWebSocket upgrades the connection, reads one scan request,
// and streams discovery replies back until the window closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	logging.Info("WebSocket client connected",
		zap.String("remote_addr", r.RemoteAddr),
	)

	var req scanRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.writeEvent(conn, scanEvent{Type: "error", Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.Type != "scan" {
		s.writeEvent(conn, scanEvent{Type: "error", Error: fmt.Sprintf("unknown request type %q", req.Type)})
		return
	}

	opts, err := s.scanOptions(req)
	if err != nil {
		s.writeEvent(conn, scanEvent{Type: "error", Error: err.Error()})
		return
	}

	count := 0
	err = s.scan(r.Context(), opts, func(resp discovery.Response) {
		count++
		s.writeEvent(conn, scanEvent{
			Type:       "response",
			Address:    resp.Addr.IP.String(),
			Port:       resp.Addr.Port,
			PayloadHex: hex.EncodeToString(resp.Payload),
			ReceivedAt: resp.ReceivedAt.Format(time.RFC3339Nano),
		})
	})
	if err != nil {
		// Partial results have already been streamed; report the
		// failure as the terminal event.
		s.writeEvent(conn, scanEvent{Type: "error", Error: err.Error(), Count: count})
		return
	}

	s.writeEvent(conn, scanEvent{Type: "done", Count: count})

	logging.Info("Scan complete",
		zap.String("remote_addr", r.RemoteAddr),
		zap.Int("responses", count),
	)
}

// scanOptions merges a client request with the server's configured
// defaults.
func (s *Server) scanOptions(req scanRequest) (discovery.Options, error) {
	opts := s.config.ScanDefaults

	if req.Broadcast != "" {
		ip := net.ParseIP(req.Broadcast)
		if ip == nil || ip.To4() == nil {
			return opts, fmt.Errorf("invalid broadcast address %q", req.Broadcast)
		}
		opts.BroadcastAddr = ip
	}
	if req.Port != 0 {
		opts.Port = req.Port
	}
	if req.TimeoutSeconds != 0 {
		timeout := time.Duration(req.TimeoutSeconds) * time.Second
		if timeout > maxScanTimeout {
			return opts, fmt.Errorf("timeout %ds exceeds maximum %s", req.TimeoutSeconds, maxScanTimeout)
		}
		opts.Timeout = timeout
	}

	return opts.WithDefaults(), nil
}

func (s *Server) writeEvent(conn *websocket.Conn, ev scanEvent) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		logging.Warn("Failed to write WebSocket message", zap.Error(err))
	}
}
