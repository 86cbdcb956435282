package protocol

import "fmt"

// EOJ is a 3-byte ECHONET object code: class group code, class code,
// instance code. The node profile object every node must implement is
// 0x0EF001.
type EOJ uint32

// Well-known object codes relevant to discovery.
const (
	// NodeProfile is the node profile object (class 0x0EF0, instance 1).
	// Discovery requests are addressed from and to this object.
	NodeProfile EOJ = 0x0EF001
)

// Class codes seen in instance lists on typical home networks, used
// only to render a friendly name for a responding object.
const (
	classHomeAirConditioner uint16 = 0x0130
	classFloorHeating       uint16 = 0x027B
	classLighting           uint16 = 0x0291
	classLightingSystem     uint16 = 0x02A3
	classRefrigerator       uint16 = 0x03B7
	classController         uint16 = 0x05FF
	classNodeProfile        uint16 = 0x0EF0
)

// MakeEOJ assembles an object code from its class (group+class, 16
// bits) and instance (8 bits) parts.
func MakeEOJ(class uint16, instance uint8) EOJ {
	return EOJ(uint32(class)<<8 | uint32(instance))
}

// Class returns the 16-bit class code (class group byte + class byte).
func (e EOJ) Class() uint16 {
	return uint16(e >> 8)
}

// Instance returns the instance code.
func (e EOJ) Instance() uint8 {
	return uint8(e)
}

// Encode returns the 3-byte big-endian wire form.
func (e EOJ) Encode() []byte {
	return []byte{byte(e >> 16), byte(e >> 8), byte(e)}
}

// DecodeEOJ reads a 3-byte big-endian object code. Returns 0 if data
// is not exactly 3 bytes.
func DecodeEOJ(data []byte) EOJ {
	if len(data) != 3 {
		return 0
	}
	return EOJ(uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]))
}

// ClassName returns a human-readable name for the object's class, or
// an empty string for classes this tool does not know about.
func (e EOJ) ClassName() string {
	switch e.Class() {
	case classHomeAirConditioner:
		return "Home air conditioner"
	case classFloorHeating:
		return "Floor heating"
	case classLighting:
		return "Single-function lighting"
	case classLightingSystem:
		return "Lighting system"
	case classRefrigerator:
		return "Refrigerator"
	case classController:
		return "Controller"
	case classNodeProfile:
		return "Node profile"
	default:
		return ""
	}
}

// String renders the object code in the conventional hex form, e.g.
// "0EF0:01" for the node profile object.
func (e EOJ) String() string {
	if name := e.ClassName(); name != "" {
		return fmt.Sprintf("%04X:%02X (%s)", e.Class(), e.Instance(), name)
	}
	return fmt.Sprintf("%04X:%02X", e.Class(), e.Instance())
}
