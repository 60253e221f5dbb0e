package dll

import "github.com/epsg-core/powerlink"

// Slot describes one CN's place in the isochronous phase. MultiplexCycle
// 0 means the node is polled every cycle. A nonzero MultiplexCycle n
// means the node is polled only once every n cycles, on the cycle
// identified by MultiplexSlot (in [1,n]) — configured out of band, the
// same way an operator assigns every multiplexed CN a distinct slot
// number so no two multiplexed nodes are ever due on the same cycle.
type Slot struct {
	NodeID         powerlink.NodeID
	Mandatory      bool
	MultiplexCycle uint8
	MultiplexSlot  uint8
}

// due reports whether this slot should be polled on cycle m. A
// MultiplexCycle of 0 (isochronous, non-multiplexed) is always due. The
// cycle counter is monotonic across lost cycles: a skipped cycle still
// advances m, so a multiplexed node's phase never drifts to make up
// for what was missed ("skip, don't compress").
func (s Slot) due(m uint64) bool {
	if s.MultiplexCycle == 0 {
		return true
	}
	return m%uint64(s.MultiplexCycle) == uint64(s.MultiplexSlot-1)
}
