package discovery

import (
	"fmt"
	"net"
)

// Error types for the discovery session. Each carries the network
// context (port, address, operation) an operator needs to diagnose a
// misconfigured interface, blocked broadcast, or firewall.

// BindError indicates the discovery socket could not be created or
// bound. Typical causes: the port is held by another process without
// address reuse, or broadcast permission was denied by the OS.
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind discovery socket on port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// SendError indicates the broadcast datagram could not be
// transmitted. Typical causes: no route to the broadcast address or
// the interface is down.
type SendError struct {
	Addr *net.UDPAddr
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to broadcast discovery request to %s: %v", e.Addr, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// ReceiveError indicates a transport failure while collecting
// replies. Deadline expiry is not a ReceiveError; it is the normal
// end of collection. Responses accumulated before the failure are
// still returned alongside this error.
type ReceiveError struct {
	Err error
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("receive failed during discovery collection: %v", e.Err)
}

func (e *ReceiveError) Unwrap() error { return e.Err }

// StateError indicates an operation was invoked on a session that is
// not open (already closed, or never opened).
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s on a closed discovery session", e.Op)
}
