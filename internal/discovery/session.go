package discovery

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/echoprobe/internal/logging"
)

// MaxDatagramSize is the receive buffer size per datagram, matching
// the typical Ethernet MTU. Oversized replies are clipped, not
// rejected.
const MaxDatagramSize = 1500

type sessionState int

const (
	stateOpen sessionState = iota
	stateClosed
)

// Session owns the UDP socket for one broadcast-and-collect discovery
// cycle. It is single use: Open -> Broadcast -> Collect -> Close. A
// new Session must be opened for each cycle.
type Session struct {
	conn     *net.UDPConn
	port     int
	localIPs []net.IP

	mu    sync.Mutex
	state sessionState
}

// Open creates a UDP socket bound to the wildcard address on port.
// The net package sets SO_BROADCAST on datagram sockets, so the
// session can send to a broadcast address without further setup.
// Port 0 binds an ephemeral port, which is useful for tests.
func Open(port int) (*Session, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: port})
	if err != nil {
		return nil, &BindError{Port: port, Err: err}
	}

	boundPort := conn.LocalAddr().(*net.UDPAddr).Port

	logging.Debug("Discovery session opened",
		zap.String("local_addr", conn.LocalAddr().String()),
	)

	return &Session{
		conn:     conn,
		port:     boundPort,
		localIPs: localIPv4s(),
		state:    stateOpen,
	}, nil
}

// Broadcast transmits frame as a single datagram to ip:port. No retry
// is attempted; a failed send aborts the discovery cycle.
func (s *Session) Broadcast(frame []byte, ip net.IP, port int) error {
	if err := s.ensureOpen("broadcast"); err != nil {
		return err
	}

	dst := &net.UDPAddr{IP: ip, Port: port}
	if _, err := s.conn.WriteToUDP(frame, dst); err != nil {
		return &SendError{Addr: dst, Err: err}
	}

	logging.LogDatagram("Discovery request sent", dst.String(), frame)
	return nil
}

// Collect receives reply datagrams until d has elapsed and returns
// them in arrival order.
//
// The deadline is absolute: it is recorded on entry and every receive
// attempt is bounded by the remaining time, so total wall time never
// exceeds d regardless of how many datagrams arrive. Zero replies
// within the window is not an error; the result is simply empty.
//
// Cancelling ctx makes Collect return immediately with whatever has
// been accumulated. A transport failure mid-collection is returned as
// a *ReceiveError together with the responses received before it.
func (s *Session) Collect(ctx context.Context, d time.Duration) ([]Response, error) {
	responses := make([]Response, 0)
	err := s.CollectStream(ctx, d, func(r Response) {
		responses = append(responses, r)
	})
	return responses, err
}

// CollectStream is Collect with incremental delivery: fn is invoked
// for each reply as it arrives, from the collecting goroutine. The
// deadline, cancellation, and error semantics are those of Collect.
func (s *Session) CollectStream(ctx context.Context, d time.Duration, fn func(Response)) error {
	if err := s.ensureOpen("collect"); err != nil {
		return err
	}

	deadline := time.Now().Add(d)

	// Wake a blocked read when the caller cancels, so cancellation
	// does not wait out the remaining window.
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, MaxDatagramSize)
	received := 0

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 || ctx.Err() != nil {
			break
		}

		if err := s.conn.SetReadDeadline(time.Now().Add(remaining)); err != nil {
			return &ReceiveError{Err: err}
		}

		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				// Deadline expiry is the expected end of collection.
				break
			}
			return &ReceiveError{Err: err}
		}

		// A broadcast from a socket bound to the discovery port is
		// delivered back to that host. Skip our own request so a
		// responder-free network yields an empty result.
		if s.isSelf(addr) {
			logging.Debug("Skipping own broadcast", zap.String("addr", addr.String()))
			continue
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		fn(Response{Addr: addr, Payload: payload, ReceivedAt: time.Now()})
		received++

		logging.LogDatagram("Discovery reply received", addr.String(), payload)
	}

	logging.Debug("Collection window closed", zap.Int("responses", received))
	return nil
}

// Close releases the socket. Safe to call more than once; only the
// first call closes the underlying connection.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	return s.conn.Close()
}

func (s *Session) ensureOpen(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return &StateError{Op: op}
	}
	return nil
}

// isSelf reports whether a datagram came from this host's own
// discovery socket: same port and a local interface address.
func (s *Session) isSelf(src *net.UDPAddr) bool {
	if src == nil || src.Port != s.port {
		return false
	}
	for _, ip := range s.localIPs {
		if ip.Equal(src.IP) {
			return true
		}
	}
	return false
}

// localIPv4s returns the host's IPv4 interface addresses. Used only
// for self-broadcast filtering; failure to enumerate interfaces just
// disables the filter.
func localIPv4s() []net.IP {
	var ips []net.IP
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logging.Warn("Could not enumerate local addresses", zap.Error(err))
		return nil
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			ips = append(ips, ip4)
		}
	}
	return ips
}
