package dll

import (
	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/errctrl"
	"github.com/epsg-core/powerlink/pkg/frame"
)

// ControlledCycle reacts, from a single CN's perspective, to the
// frames the MN drives a cycle with: it recognizes the PReq addressed
// to it, builds the matching PRes, and decides whether a received SoA
// invites it to send an ASnd.
type ControlledCycle struct {
	NodeID powerlink.NodeID
	Errors *errctrl.Handler

	socSeen bool
}

// NewControlledCycle returns a ControlledCycle for nodeID.
func NewControlledCycle(nodeID powerlink.NodeID) *ControlledCycle {
	return &ControlledCycle{NodeID: nodeID, Errors: errctrl.NewHandler()}
}

// HandleSoC records that this cycle's SoC arrived, so the next Tick
// does not count a LossOfSoC timeout for this period.
func (c *ControlledCycle) HandleSoC(soc *frame.SoC) {
	c.socSeen = true
}

// ObserveSoCTimeout records that no SoC arrived within the expected
// cycle window.
func (c *ControlledCycle) ObserveSoCTimeout() errctrl.Effect {
	c.socSeen = false
	return c.Errors.Observe(errctrl.KindLossOfSoC)
}

// Tick is the entry point a node's run loop calls once per expected
// cycle period. If this period's SoC arrived (HandleSoC was called
// since the last Tick) it just rearms for the next period; otherwise
// it raises ObserveSoCTimeout and reports timedOut so the caller can
// react.
func (c *ControlledCycle) Tick() (effect errctrl.Effect, timedOut bool) {
	if c.socSeen {
		c.socSeen = false
		return errctrl.EffectNone, false
	}
	return c.ObserveSoCTimeout(), true
}

// AddressedToMe reports whether preq targets this node.
func (c *ControlledCycle) AddressedToMe(dstNode uint8) bool {
	return powerlink.NodeID(dstNode) == c.NodeID
}

// ObservePReqTimeout records that the PReq expected this cycle never
// arrived.
func (c *ControlledCycle) ObservePReqTimeout() errctrl.Effect {
	return c.Errors.Observe(errctrl.KindLossOfPReq)
}

// BuildPRes constructs this node's response to a PReq it was addressed
// by, carrying payload and the request-to-send level rs (nonzero when
// this node has asynchronous data pending).
func (c *ControlledCycle) BuildPRes(payload []byte, rs uint8, nmtStatus uint8, pdoVersion uint8) *frame.PRes {
	return &frame.PRes{RD: true, RS: rs & 0x07, NMTStatus: nmtStatus, PDOVersion: pdoVersion, Payload: payload}
}

// Invited reports whether soa invites this node to transmit an ASnd,
// and which service it should carry.
func (c *ControlledCycle) Invited(soa *frame.SoA) (serviceID uint8, invited bool) {
	if soa.RequestedServiceID == frame.ServiceNoService || soa.RequestedServiceID == frame.ServiceUnspecified {
		return 0, false
	}
	if powerlink.NodeID(soa.RequestedServiceTarget) != c.NodeID {
		return 0, false
	}
	return soa.RequestedServiceID, true
}

// EndCycle decays error counters not observed this cycle.
func (c *ControlledCycle) EndCycle(observed map[errctrl.Kind]bool) {
	c.Errors.EndCycle(observed)
}
