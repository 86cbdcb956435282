package discovery

import (
	"encoding/hex"
	"fmt"
	"net"
	"time"
)

// Response is one reply datagram received during a collection window.
// The payload is the raw frame exactly as it arrived; nothing in it
// is parsed or validated here.
type Response struct {
	// Addr is the responder's address. ECHONET Lite nodes reply from
	// their unicast address on the discovery port.
	Addr *net.UDPAddr

	// Payload is the raw datagram, clipped at MaxDatagramSize.
	Payload []byte

	// ReceivedAt is when the datagram was read from the socket.
	ReceivedAt time.Time
}

// String returns a one-line representation matching the classic
// "address  hex-payload" discovery output.
func (r Response) String() string {
	return fmt.Sprintf("%s  %s", r.Addr, hex.EncodeToString(r.Payload))
}
