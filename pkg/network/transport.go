package network

import (
	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/frame"
)

// asndTransport carries SDO command-layer octets inside ASnd frames,
// implementing sdo.Transport over an EthernetDriver. Recv is fed by the
// node's own frame dispatch loop rather than reading the driver
// directly, since a driver's queue also carries SoC/PReq/PRes/SoA
// frames this transport has no business seeing.
type asndTransport struct {
	self   powerlink.NodeID
	driver powerlink.EthernetDriver
	inbox  []inboxEntry
}

type inboxEntry struct {
	src     powerlink.NodeID
	payload []byte
}

func newASndTransport(self powerlink.NodeID, driver powerlink.EthernetDriver) *asndTransport {
	return &asndTransport{self: self, driver: driver}
}

// Send wraps payload in an ASnd frame addressed to dst and hands it to
// the driver.
func (t *asndTransport) Send(dst powerlink.NodeID, payload []byte) error {
	f := &frame.Frame{
		DstNode:     uint8(dst),
		SrcNode:     uint8(t.self),
		MessageType: frame.TypeASnd,
		Body:        &frame.ASnd{ServiceID: frame.ASndSDO, Payload: payload},
	}
	buf, err := frame.Encode(f)
	if err != nil {
		return err
	}
	return t.driver.Send(buf)
}

// Recv pops the oldest queued datagram delivered via deliver, or
// reports ok=false if none is pending.
func (t *asndTransport) Recv() (src powerlink.NodeID, payload []byte, ok bool) {
	if len(t.inbox) == 0 {
		return 0, nil, false
	}
	e := t.inbox[0]
	t.inbox = t.inbox[1:]
	return e.src, e.payload, true
}

// deliver queues an inbound ASnd-SDO payload for a later Recv.
func (t *asndTransport) deliver(src powerlink.NodeID, payload []byte) {
	t.inbox = append(t.inbox, inboxEntry{src: src, payload: payload})
}
