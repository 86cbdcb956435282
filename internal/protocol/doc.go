// Package protocol implements the ECHONET Lite wire format used for
// node discovery.
//
// ECHONET Lite is a UDP-based application protocol for home and
// building energy devices (air conditioners, floor heating, lighting,
// smart meters). Every ECHONET Lite node carries a node profile object
// (EOJ 0x0EF001) that answers a "Get" request for property 0xD6 with
// the list of object instances the node exposes. Broadcasting that
// single request is how nodes on a subnet are discovered.
//
// # Frame Format
//
// An ECHONET Lite frame (format 1) is big-endian with fixed offsets:
//
//	[0]      EHD1    0x10   ECHONET Lite header 1
//	[1]      EHD2    0x81   Format 1 header
//	[2-3]    TID            Transaction ID
//	[4-6]    SEOJ           Source ECHONET object
//	[7-9]    DEOJ           Destination ECHONET object
//	[10]     ESV            Service code (0x62 = Get)
//	[11]     OPC            Property count
//	[12+]    EPC/PDC/EDT    Property blocks
//
// The discovery request built by BuildInstanceListRequest is exactly
// 14 bytes: the 12-byte header plus one property block with EPC 0xD6
// and PDC 0 (a Get request carries no property data).
//
// # Scope
//
// This package builds request frames and decodes the fixed header of
// reply frames for display. It deliberately does not interpret the
// property blocks of replies (instance lists, property maps); replies
// are reported to the caller as raw bytes.
//
// Protocol references:
//   - https://echonet.jp/spec_v114_lite/ (ECHONET Lite specification)
//   - https://echonet.jp/spec_object_rr2/ (object specifications)
package protocol
