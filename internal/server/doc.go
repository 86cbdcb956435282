// Package server exposes discovery scans over WebSocket.
//
// "echoprobe serve" runs a small HTTP server with a single /ws
// endpoint. A client opens a WebSocket connection, sends one scan
// request, and receives each discovery reply as a JSON message while
// the collection window is open:
//
//	-> {"type": "scan", "broadcast": "192.168.0.255", "timeout_seconds": 5}
//	<- {"type": "response", "address": "192.168.0.42", "port": 3610, "payload_hex": "1081..."}
//	<- {"type": "response", "address": "192.168.0.51", "port": 3610, "payload_hex": "1081..."}
//	<- {"type": "done", "count": 2}
//
// This lets a dashboard or home-automation frontend trigger scans
// without shelling out to the CLI. One scan runs per connection; the
// connection closes after the done (or error) message.
package server
