// Package frame implements bit-exact encode/decode of the five
// POWERLINK message types (SoC, PReq, PRes, SoA, ASnd) within an
// Ethernet-II envelope, EtherType 0x88AB. The package is stateless:
// every function is a pure transform over a byte slice.
package frame

import "encoding/binary"

// EtherType is the POWERLINK EtherType, DS 301 §4.6.1.1.
const EtherType uint16 = 0x88AB

// MinEthernetLength is the minimum Ethernet II frame length (header +
// payload), excluding the 4-octet FCS which the NIC/driver appends and
// strips.
const MinEthernetLength = 60

// EPLVersion is this stack's POWERLINK protocol version, BCD-encoded
// (major in the high nibble, minor in the low), carried in every SoA.
const EPLVersion uint8 = 0x20

// HeaderLength is the length in octets of the Ethernet-II header plus
// the POWERLINK MessageType/destination/source fields that precede the
// message-specific payload.
const HeaderLength = 6 + 6 + 2 + 1 + 1 + 1

// MessageType is the 7-bit POWERLINK message type, DS 301 Table 3.
type MessageType uint8

const (
	TypeSoC  MessageType = 0x01
	TypePReq MessageType = 0x03
	TypePRes MessageType = 0x04
	TypeSoA  MessageType = 0x05
	TypeASnd MessageType = 0x06
)

func (t MessageType) String() string {
	switch t {
	case TypeSoC:
		return "SoC"
	case TypePReq:
		return "PReq"
	case TypePRes:
		return "PRes"
	case TypeSoA:
		return "SoA"
	case TypeASnd:
		return "ASnd"
	default:
		return "unknown"
	}
}

// Multicast MAC addresses, DS 301 §4.6.1.1.1.
var (
	MulticastSoC  = [6]byte{0x01, 0x11, 0x1E, 0x00, 0x00, 0x01}
	MulticastPRes = [6]byte{0x01, 0x11, 0x1E, 0x00, 0x00, 0x02}
	MulticastSoA  = [6]byte{0x01, 0x11, 0x1E, 0x00, 0x00, 0x03}
	MulticastASnd = [6]byte{0x01, 0x11, 0x1E, 0x00, 0x00, 0x04}
	MulticastAMNI = [6]byte{0x01, 0x11, 0x1E, 0x00, 0x00, 0x05}
)

// SoA requested-service IDs, DS 301 §7.3.3.2.2.4.
const (
	ServiceNoService      uint8 = 0x00
	ServiceIdentRequest   uint8 = 0x01
	ServiceStatusRequest  uint8 = 0x02
	ServiceNMTRequest     uint8 = 0x03
	ServiceUnspecified    uint8 = 0x07
)

// ASnd service IDs, DS 301 §4.6.2.1.
const (
	ASndIdentResponse  uint8 = 0x01
	ASndStatusResponse uint8 = 0x02
	ASndNMTRequest     uint8 = 0x03
	ASndNMTCommand     uint8 = 0x04
	ASndSDO            uint8 = 0x05
)

// NMT command IDs carried as the first payload octet of an ASndNMTCommand,
// DS 301 Table 95. These are the commands that move a CN through its own
// boot sequence once the MN considers it configured.
const (
	NMTStartNode            uint8 = 0x01
	NMTStopNode             uint8 = 0x02
	NMTEnterPreOperational2 uint8 = 0x03
	NMTEnableReadyToOperate uint8 = 0x04
	NMTResetNode            uint8 = 0x05
	NMTResetCommunication   uint8 = 0x06
	NMTResetConfiguration   uint8 = 0x07
)

func putUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func putUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func putUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func getUint16(b []byte) uint16    { return binary.LittleEndian.Uint16(b) }
func getUint32(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }
func getUint64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }
