package powerlink

import "net"

// EthernetDriver is the capability boundary onto a raw Ethernet NIC.
// Implementations must receive EtherType 0x88AB promiscuously, plus
// ARP, and must not block in Recv.
type EthernetDriver interface {
	// Connect opens the underlying socket/NIC handle.
	Connect(ifaceName string) error
	Disconnect() error
	// Send transmits one Ethernet-II frame (including its 14-octet
	// header). Returns ErrBusy if the driver's transmit path is
	// currently saturated.
	Send(frame []byte) error
	// Recv copies the next received frame into buf and returns its
	// length, or (0, false, nil) if
	// none is pending. It never blocks.
	Recv(buf []byte) (n int, ok bool, err error)
}

// UDPDriver is the capability boundary onto the UDP socket used for
// SDO-over-UDP (port 3819), non-blocking like EthernetDriver.
type UDPDriver interface {
	Connect(localAddr *net.UDPAddr) error
	Disconnect() error
	SendTo(dstIP net.IP, dstPort int, payload []byte) error
	RecvFrom(buf []byte) (n int, src *net.UDPAddr, ok bool, err error)
}

// Clock is the capability boundary onto the monotonic microsecond
// counter the DLL cycle engine is driven from. NetTime/RelativeTime
// stamped into SoC are derived from NowMicros.
type Clock interface {
	NowMicros() uint64
}
