package dll

import (
	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/errctrl"
	"github.com/epsg-core/powerlink/pkg/frame"
)

// ManagerCycle drives one MN's cycle: it decides the order isochronous
// CNs are polled in, computes which multiplexed CNs are due, and picks
// the async queue entry a cycle's SoA invites. It builds and inspects
// frame.Frame values but never touches a driver; the caller is
// responsible for Send/Recv.
type ManagerCycle struct {
	Slots     []Slot
	Scheduler *Scheduler
	// Errors holds one error-control Handler per CN, DS 301's
	// LossOfPRes and CRC counters are per-node: a flaky CN must not
	// poison another CN's threshold.
	Errors map[powerlink.NodeID]*errctrl.Handler

	cycleCount uint64
	phase      Phase
	slotIdx    int
	observed   map[powerlink.NodeID]map[errctrl.Kind]bool
}

// NewManagerCycle returns a ManagerCycle over the given isochronous
// slot list, in poll order, with one error Handler preallocated per
// slot's node.
func NewManagerCycle(slots []Slot) *ManagerCycle {
	c := &ManagerCycle{
		Slots:     slots,
		Scheduler: NewScheduler(),
		Errors:    make(map[powerlink.NodeID]*errctrl.Handler),
		phase:     PhaseIdle,
	}
	for _, s := range slots {
		c.Errors[s.NodeID] = errctrl.NewHandler()
	}
	return c
}

// errorsFor returns node's error Handler, creating one if this is the
// first time node has been observed (e.g. a node added after
// construction).
func (c *ManagerCycle) errorsFor(node powerlink.NodeID) *errctrl.Handler {
	h, ok := c.Errors[node]
	if !ok {
		h = errctrl.NewHandler()
		c.Errors[node] = h
	}
	return h
}

// CycleCount is the monotonic cycle counter M used for multiplexed-CN
// scheduling; it increments once per call to EndCycle, including for
// cycles that were aborted.
func (c *ManagerCycle) CycleCount() uint64 { return c.cycleCount }

// BeginCycle starts a new cycle and returns the SoC to broadcast.
func (c *ManagerCycle) BeginCycle(netTime, relTime uint64, multiplexCompleted bool) *frame.SoC {
	c.phase = PhaseIsochronous
	c.slotIdx = 0
	c.observed = make(map[powerlink.NodeID]map[errctrl.Kind]bool)
	return &frame.SoC{MC: multiplexCompleted, NetTime: netTime, RelativeTime: relTime}
}

// NextPReqTarget returns the next isochronous slot due this cycle,
// skipping multiplexed CNs not due on CycleCount(), or ok=false once
// the isochronous phase is exhausted.
func (c *ManagerCycle) NextPReqTarget() (slot Slot, ok bool) {
	if c.phase != PhaseIsochronous {
		return Slot{}, false
	}
	for c.slotIdx < len(c.Slots) {
		s := c.Slots[c.slotIdx]
		c.slotIdx++
		if s.due(c.cycleCount) {
			return s, true
		}
	}
	c.phase = PhaseAsynchronous
	return Slot{}, false
}

// BuildPReq constructs the PReq frame for node carrying payload.
func BuildPReq(node powerlink.NodeID, payload []byte, pdoVersion uint8) *frame.PReq {
	return &frame.PReq{RD: true, PDOVersion: pdoVersion, Payload: payload}
}

// markObserved records that node's counter of kind was touched this
// cycle, so EndCycle knows not to decay it.
func (c *ManagerCycle) markObserved(node powerlink.NodeID, kind errctrl.Kind) {
	m, ok := c.observed[node]
	if !ok {
		m = make(map[errctrl.Kind]bool)
		c.observed[node] = m
	}
	m[kind] = true
}

// ObservePResTimeout records that node's PRes did not arrive in time,
// applying the error-control effect for KindLossOfPRes against node's
// own counter.
func (c *ManagerCycle) ObservePResTimeout(node powerlink.NodeID) errctrl.Effect {
	c.markObserved(node, errctrl.KindLossOfPRes)
	return c.errorsFor(node).Observe(errctrl.KindLossOfPRes)
}

// ObserveCRCError records a CRC fault on a frame received from node
// this cycle.
func (c *ManagerCycle) ObserveCRCError(node powerlink.NodeID) errctrl.Effect {
	c.markObserved(node, errctrl.KindCRCError)
	return c.errorsFor(node).Observe(errctrl.KindCRCError)
}

// BuildSoA asks the async scheduler for the next request to invite and
// returns the SoA to broadcast. If every queue is empty it returns a
// ServiceNoService SoA.
func (c *ManagerCycle) BuildSoA(nmtStatus uint8, eplVersion uint8) *frame.SoA {
	kind, node, ok := c.Scheduler.Next()
	if !ok {
		return &frame.SoA{NMTStatus: nmtStatus, RequestedServiceID: frame.ServiceNoService, EPLVersion: eplVersion}
	}
	var serviceID uint8
	switch kind {
	case QueueIdentRequest:
		serviceID = frame.ServiceIdentRequest
	case QueueStatusRequest:
		serviceID = frame.ServiceStatusRequest
	default:
		serviceID = frame.ServiceNMTRequest
	}
	return &frame.SoA{
		NMTStatus:              nmtStatus,
		RequestedServiceID:     serviceID,
		RequestedServiceTarget: uint8(node),
		EPLVersion:             eplVersion,
	}
}

// EndCycle decays every node's error counters not observed this cycle
// and advances the cycle counter.
func (c *ManagerCycle) EndCycle() {
	for node, h := range c.Errors {
		h.EndCycle(c.observed[node])
	}
	c.cycleCount++
	c.phase = PhaseDone
}
