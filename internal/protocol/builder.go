package protocol

import "encoding/binary"

// Request builder for outgoing ECHONET Lite frames. Discovery needs a
// single fixed request, but frames are assembled from their parts so
// other EPC/EOJ combinations can reuse the same layout.

// BuildGetRequest constructs a single-property Get request frame: the
// 12-byte header followed by OPC=1 and one property block with an
// empty data field (a Get carries no EDT).
func BuildGetRequest(tid uint16, seoj, deoj EOJ, epc byte) []byte {
	frame := make([]byte, 0, HeaderSize+2)

	frame = append(frame, EHD1, EHD2Format1)
	frame = binary.BigEndian.AppendUint16(frame, tid)
	frame = append(frame, seoj.Encode()...)
	frame = append(frame, deoj.Encode()...)
	frame = append(frame, ESVGet)
	frame = append(frame, 0x01) // OPC: one property follows
	frame = append(frame, epc)
	frame = append(frame, 0x00) // PDC: no property data

	return frame
}

// BuildInstanceListRequest constructs the node discovery request: a
// Get for the instance list property (0xD6) of the node profile
// object, addressed node profile to node profile with TID 0. The
// result is always the same 14 bytes:
//
//	10 81 00 00 0e f0 01 0e f0 01 62 01 d6 00
//
// Broadcast on UDP port 3610, every ECHONET Lite node on the segment
// answers it with its object instance list.
func BuildInstanceListRequest() []byte {
	return BuildGetRequest(0x0000, NodeProfile, NodeProfile, EPCInstanceList)
}
