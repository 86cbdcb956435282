package discovery

import (
	"context"
	"net"
	"time"

	"github.com/muurk/echoprobe/internal/protocol"
)

// Defaults for the configuration surface: subnet-wide broadcast on
// the well-known ECHONET Lite port, five second collection window.
const (
	DefaultTimeout = 5 * time.Second
)

// DefaultBroadcastAddr is the limited broadcast address. Networks
// that block it can use the subnet's directed broadcast address
// instead (e.g. 192.168.0.255).
var DefaultBroadcastAddr = net.IPv4bcast

// Options configures one discovery cycle. The zero value scans with
// the defaults above.
type Options struct {
	// BroadcastAddr is the destination for the discovery request.
	BroadcastAddr net.IP

	// Port is the UDP port to bind and to send to.
	Port int

	// Timeout is the collection window after the broadcast.
	Timeout time.Duration
}

// WithDefaults returns a copy of o with unset fields replaced by the
// defaults above.
func (o Options) WithDefaults() Options {
	if o.BroadcastAddr == nil {
		o.BroadcastAddr = DefaultBroadcastAddr
	}
	if o.Port == 0 {
		o.Port = protocol.DefaultPort
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Scan runs one complete discovery cycle: open a session, broadcast
// the instance list request, collect replies until the window closes,
// close the session. Replies are returned in arrival order; a mid-
// collection transport failure returns the replies received so far
// together with the error.
func Scan(ctx context.Context, opts Options) ([]Response, error) {
	var responses []Response
	err := ScanStream(ctx, opts, func(r Response) {
		responses = append(responses, r)
	})
	return responses, err
}

// ScanStream is Scan with incremental delivery; fn is invoked for
// each reply as it arrives.
func ScanStream(ctx context.Context, opts Options, fn func(Response)) error {
	opts = opts.WithDefaults()

	session, err := Open(opts.Port)
	if err != nil {
		return err
	}
	defer session.Close()

	frame := protocol.BuildInstanceListRequest()
	if err := session.Broadcast(frame, opts.BroadcastAddr, opts.Port); err != nil {
		return err
	}

	return session.CollectStream(ctx, opts.Timeout, fn)
}
