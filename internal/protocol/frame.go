package protocol

import (
	"encoding/binary"
	"fmt"
)

// Frame header constants (ECHONET Lite specification, section 3.2).
const (
	// EHD1 identifies the frame as ECHONET Lite.
	EHD1 = 0x10

	// EHD2Format1 selects the format 1 (structured) frame layout.
	EHD2Format1 = 0x81

	// HeaderSize is the fixed frame prefix: EHD1 + EHD2 + TID +
	// SEOJ + DEOJ + ESV + OPC. Every well-formed frame carries at
	// least this much.
	HeaderSize = 12

	// DefaultPort is the well-known UDP port for ECHONET Lite.
	DefaultPort = 3610
)

// ESV service codes. Discovery sends Get; nodes answer with GetRes
// (or GetSNA when they reject the request). INF is the unsolicited
// announce some nodes broadcast on startup.
const (
	ESVGet    = 0x62
	ESVGetRes = 0x72
	ESVGetSNA = 0x52
	ESVInf    = 0x73
)

// EPC property codes used by discovery.
const (
	// EPCInstanceList is the self-node instance list notification
	// property on the node profile object.
	EPCInstanceList = 0xD6
)

// Frame holds the decoded fixed header of an ECHONET Lite frame. The
// property blocks that follow the header are kept raw in Properties;
// this tool reports replies without interpreting them.
type Frame struct {
	TID        uint16
	SEOJ       EOJ
	DEOJ       EOJ
	ESV        byte
	Properties []byte // OPC byte onward, unparsed
	Raw        []byte // complete original datagram
}

// DecodeHeader parses the fixed prefix of an ECHONET Lite frame
// (through the service code). It validates only the EHD bytes and the
// minimum length; the property block is carried through untouched.
func DecodeHeader(data []byte) (*Frame, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("frame too short: %d bytes (header is %d)", len(data), HeaderSize)
	}
	if data[0] != EHD1 {
		return nil, fmt.Errorf("not an ECHONET Lite frame: EHD1 = 0x%02x (expected 0x%02x)", data[0], EHD1)
	}
	if data[1] != EHD2Format1 {
		return nil, fmt.Errorf("unsupported frame format: EHD2 = 0x%02x (expected 0x%02x)", data[1], EHD2Format1)
	}

	return &Frame{
		TID:        binary.BigEndian.Uint16(data[2:4]),
		SEOJ:       DecodeEOJ(data[4:7]),
		DEOJ:       DecodeEOJ(data[7:10]),
		ESV:        data[10],
		Properties: data[11:],
		Raw:        data,
	}, nil
}

// ESVString returns a human-readable service code name.
func (f *Frame) ESVString() string {
	switch f.ESV {
	case ESVGet:
		return "Get"
	case ESVGetRes:
		return "Get_Res"
	case ESVGetSNA:
		return "Get_SNA"
	case ESVInf:
		return "INF"
	default:
		return fmt.Sprintf("unknown(0x%02X)", f.ESV)
	}
}

// String returns a debug representation of the frame header.
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{TID=0x%04X, SEOJ=%s, DEOJ=%s, ESV=%s}",
		f.TID, f.SEOJ, f.DEOJ, f.ESVString())
}
