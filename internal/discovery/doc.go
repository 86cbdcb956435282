// Package discovery performs ECHONET Lite node discovery over UDP
// broadcast.
//
// ECHONET Lite nodes listen on UDP port 3610. Broadcasting a single
// "Get instance list" request (built by the protocol package) makes
// every node on the segment reply with the object instances it
// exposes. This package owns the socket lifecycle for one such
// broadcast-and-collect cycle.
//
// # Discovery Process
//
//  1. Open a broadcast-capable UDP socket bound to the wildcard
//     address on the ECHONET Lite port
//  2. Broadcast the 14-byte discovery request to the subnet
//  3. Collect every reply datagram that arrives before the deadline
//  4. Close the socket
//
// # Usage Example
//
//	responses, err := discovery.Scan(context.Background(), discovery.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range responses {
//	    fmt.Printf("%s  %x\n", r.Addr, r.Payload)
//	}
//
// Replies are reported as raw (address, payload) pairs in arrival
// order; interpreting the instance list inside a reply is left to the
// caller. Responders are not deduplicated and lost packets are not
// retried.
//
// # Session Lifecycle
//
// A Session moves through Open -> Closed exactly once. Broadcast and
// Collect are only valid while open; a new Session must be opened for
// each discovery cycle. Close is idempotent.
//
// # Network Requirements
//
// - Broadcast must be permitted on the network interface
// - Nodes must be on the same local network segment
// - Firewall must allow UDP port 3610 in both directions
package discovery
