package sdo

import "github.com/epsg-core/powerlink"

// Transport carries raw command-layer octets between two nodes,
// hiding whether they travel inside an ASnd SDO payload or a UDP
// datagram on port 3819. A command layer only ever sees Transport, not
// the underlying frame or socket.
type Transport interface {
	Send(dst powerlink.NodeID, payload []byte) error
	// Recv returns the next pending datagram, or ok=false if none is
	// waiting. It never blocks.
	Recv() (src powerlink.NodeID, payload []byte, ok bool)
}
