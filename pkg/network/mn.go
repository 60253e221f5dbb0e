package network

import (
	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/boot"
	"github.com/epsg-core/powerlink/pkg/dll"
	"github.com/epsg-core/powerlink/pkg/errctrl"
	"github.com/epsg-core/powerlink/pkg/frame"
	"github.com/epsg-core/powerlink/pkg/nmt"
	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/epsg-core/powerlink/pkg/pdo"
	"github.com/epsg-core/powerlink/pkg/sdo"
)

// maxPResPollAttempts bounds how many frames RunCycle drains from the
// driver while waiting for one CN's PRes before declaring it lost;
// every other frame it sees along the way (an SDO reply, an
// IdentResponse) is dispatched rather than dropped.
const maxPResPollAttempts = 32

// ManagingNode is the MN side of one POWERLINK segment: it drives the
// cycle, sequences every CN's boot, and issues remote configuration
// over per-CN SDO clients.
type ManagingNode struct {
	node

	Slots      []dll.Slot
	Cycle      *dll.ManagerCycle
	Boot       *boot.Coordinator
	transports map[powerlink.NodeID]*asndTransport
	SDOClients map[powerlink.NodeID]*sdo.Client

	// TPDOMappings project this node's object dictionary into the PReq
	// payload sent to each CN; RPDOMappings apply each CN's PRes
	// payload back into the dictionary. Both are nil until the caller
	// configures a CN's PDO mapping after boot.
	TPDOMappings map[powerlink.NodeID]*pdo.Mapping
	RPDOMappings map[powerlink.NodeID]*pdo.Mapping
}

// NewManagingNode builds an MN wired with an isochronous slot list,
// one boot-coordinator entry and one SDO client per slot.
func NewManagingNode(dict *od.ObjectDictionary, slots []dll.Slot, driver powerlink.EthernetDriver, clock powerlink.Clock) *ManagingNode {
	mn := &ManagingNode{
		node:         newNode(powerlink.NodeIDMN, nmt.KindMN, dict, driver, clock),
		Slots:        slots,
		Cycle:        dll.NewManagerCycle(slots),
		Boot:         boot.NewCoordinator(),
		transports:   make(map[powerlink.NodeID]*asndTransport),
		SDOClients:   make(map[powerlink.NodeID]*sdo.Client),
		TPDOMappings: make(map[powerlink.NodeID]*pdo.Mapping),
		RPDOMappings: make(map[powerlink.NodeID]*pdo.Mapping),
	}
	for _, s := range slots {
		mn.Boot.AddExpected(s.NodeID, s.Mandatory, boot.Expectation{})
		t := newASndTransport(powerlink.NodeIDMN, driver)
		mn.transports[s.NodeID] = t
		mn.SDOClients[s.NodeID] = sdo.NewClient(s.NodeID, t)
	}
	return mn
}

// StartBoot moves the MN's own NMT state out of NotActive into
// PreOperational1 and enqueues an IdentRequest for every expected CN,
// the first step of the boot sequence DS 301 §7.2 describes.
func (mn *ManagingNode) StartBoot() {
	mn.NMT.Apply(nmt.EventInitDone)
	for _, s := range mn.Slots {
		mn.Boot.BeginIdentRequest(s.NodeID)
		_ = mn.Cycle.Scheduler.Enqueue(dll.QueueIdentRequest, s.NodeID)
	}
}

func (mn *ManagingNode) send(body frame.Body, msgType frame.MessageType, dstMAC [6]byte, dstNode uint8) error {
	f := &frame.Frame{DstMAC: dstMAC, MessageType: msgType, DstNode: dstNode, SrcNode: uint8(mn.ID), Body: body}
	buf, err := frame.Encode(f)
	if err != nil {
		return err
	}
	return mn.Driver.Send(buf)
}

// RunCycle drives exactly one cycle: it first advances boot progress
// and this node's own NMT state, then sends SoC, the isochronous
// PReq/PRes exchange for every slot due this cycle, then SoA.
func (mn *ManagingNode) RunCycle(now uint64) error {
	mn.pollBootProgress()
	mn.advanceNMT()

	soc := mn.Cycle.BeginCycle(now, now, false)
	if err := mn.send(soc, frame.TypeSoC, frame.MulticastSoC, uint8(powerlink.NodeIDBroadcast)); err != nil {
		return err
	}

	for {
		slot, ok := mn.Cycle.NextPReqTarget()
		if !ok {
			break
		}
		mn.pollSlot(slot)
	}

	soa := mn.Cycle.BuildSoA(uint8(mn.NMT.Current), frame.EPLVersion)
	if err := mn.send(soa, frame.TypeSoA, frame.MulticastSoA, uint8(powerlink.NodeIDBroadcast)); err != nil {
		return err
	}
	mn.Cycle.EndCycle()
	return nil
}

// advanceNMT drives this node's own NMT state machine from boot
// progress, DS 301 §8 Scenario 1: PreOperational1 is left once every
// mandatory CN has identified, PreOperational2 and ReadyToOperate are
// each left in turn once every mandatory CN has finished configuring.
func (mn *ManagingNode) advanceNMT() {
	switch mn.NMT.Current {
	case nmt.StatePreOperational1:
		if mn.Boot.AllMandatoryIdentified() {
			mn.NMT.Apply(nmt.EventAllMandatoryIdent)
		}
	case nmt.StatePreOperational2:
		if mn.Boot.AllMandatoryReady() {
			mn.NMT.Apply(nmt.EventConfigured)
		}
	case nmt.StateReadyToOperate:
		if mn.Boot.AllMandatoryReady() {
			mn.NMT.Apply(nmt.EventEnterOperational)
		}
	}
}

// pollBootProgress advances each CN through the boot coordinator's
// remaining phases and, once a CN is configured, issues the
// NMTCommand ASnd DS 301 §7.2 phase 4 requires to move it onward:
// NMTEnableReadyToOperate out of PreOperational2, then NMTStartNode
// out of ReadyToOperate. Version verification and configuration
// completion are not backed by a real remote SDO round-trip here — see
// DESIGN.md — they advance synchronously once identification succeeds.
func (mn *ManagingNode) pollBootProgress() {
	for _, s := range mn.Slots {
		e := mn.Boot.Entry(s.NodeID)
		if e == nil {
			continue
		}
		switch e.Phase {
		case boot.PhaseVerifyingVersion:
			mn.Boot.VersionVerified(s.NodeID)
		case boot.PhaseConfiguring:
			mn.Boot.ConfigurationComplete(s.NodeID)
			if err := mn.sendNMTCommand(s.NodeID, frame.NMTEnableReadyToOperate); err != nil {
				mn.logger.WithError(err).Warnf("failed to send EnableReadyToOperate to node %d", s.NodeID)
			}
		case boot.PhaseEnteringReadyToOperate:
			mn.Boot.NodeOperational(s.NodeID)
			if err := mn.sendNMTCommand(s.NodeID, frame.NMTStartNode); err != nil {
				mn.logger.WithError(err).Warnf("failed to send StartNode to node %d", s.NodeID)
			}
		}
	}
}

// sendNMTCommand issues an ASndNMTCommand carrying cmd to target.
func (mn *ManagingNode) sendNMTCommand(target powerlink.NodeID, cmd uint8) error {
	f := buildNMTCommand(uint8(mn.ID), uint8(target), cmd)
	buf, err := frame.Encode(f)
	if err != nil {
		return err
	}
	return mn.Driver.Send(buf)
}

func (mn *ManagingNode) pollSlot(slot dll.Slot) {
	payload := mn.tpdoPayload(slot.NodeID)
	preq := dll.BuildPReq(slot.NodeID, payload, 0)
	if err := mn.send(preq, frame.TypePReq, [6]byte{}, uint8(slot.NodeID)); err != nil {
		mn.logger.WithError(err).Warn("failed to send PReq")
		return
	}
	pres, ok := mn.awaitPRes(slot.NodeID)
	if !ok {
		mn.handlePResLoss(slot.NodeID, mn.Cycle.ObservePResTimeout(slot.NodeID))
		return
	}
	mn.applyPRes(slot.NodeID, pres)
}

// handlePResLoss reacts to the error-control effect of a missed PRes:
// once a CN's own LossOfPRes counter crosses threshold it is declared
// failed and commanded to stop, DS 301 §8's "CN is marked failed and
// NMT command StopNode issued" behavior.
func (mn *ManagingNode) handlePResLoss(nodeID powerlink.NodeID, effect errctrl.Effect) {
	if effect == errctrl.EffectNone {
		return
	}
	mn.Boot.Fail(nodeID, errLossOfPRes)
	if err := mn.sendNMTCommand(nodeID, frame.NMTStopNode); err != nil {
		mn.logger.WithError(err).Warnf("failed to send StopNode to node %d", nodeID)
	}
}

func (mn *ManagingNode) tpdoPayload(nodeID powerlink.NodeID) []byte {
	m, ok := mn.TPDOMappings[nodeID]
	if !ok {
		return nil
	}
	payload, err := m.ProjectToFrame(nil)
	if err != nil {
		mn.logger.WithError(err).Warn("failed to project TPDO mapping")
		return nil
	}
	return payload
}

func (mn *ManagingNode) applyPRes(nodeID powerlink.NodeID, pres *frame.PRes) {
	if pres.RS > 0 {
		_ = mn.Cycle.Scheduler.Enqueue(dll.QueueInvited, nodeID)
	}
	m, ok := mn.RPDOMappings[nodeID]
	if !ok {
		return
	}
	if err := m.ApplyFromFrame(pres.Payload); err != nil {
		mn.logger.WithError(err).Warn("failed to apply RPDO mapping")
	}
}

// awaitPRes drains frames from the driver until it sees a PRes from
// nodeID, dispatching every other frame it encounters along the way so
// an ASnd SDO reply or IdentResponse arriving interleaved with polling
// is not lost.
func (mn *ManagingNode) awaitPRes(nodeID powerlink.NodeID) (*frame.PRes, bool) {
	buf := make([]byte, frame.MinEthernetLength+1500)
	for attempt := 0; attempt < maxPResPollAttempts; attempt++ {
		n, ok, err := mn.Driver.Recv(buf)
		if err != nil || !ok {
			continue
		}
		f, err := frame.Decode(buf[:n])
		if err != nil {
			continue
		}
		if f.MessageType == frame.TypePRes && powerlink.NodeID(f.SrcNode) == nodeID {
			return f.Body.(*frame.PRes), true
		}
		mn.dispatch(f)
	}
	return nil, false
}

// dispatch routes a frame that was not the PRes awaitPRes was waiting
// for: an ASnd SDO reply goes to its transport's inbox, an
// IdentResponse advances the boot coordinator.
func (mn *ManagingNode) dispatch(f *frame.Frame) {
	if f.MessageType != frame.TypeASnd {
		return
	}
	asnd := f.Body.(*frame.ASnd)
	src := powerlink.NodeID(f.SrcNode)
	switch asnd.ServiceID {
	case frame.ASndSDO:
		if t, ok := mn.transports[src]; ok {
			t.deliver(src, asnd.Payload)
		}
	case frame.ASndIdentResponse:
		if id, ok := decodeIdentResponse(asnd.Payload); ok {
			if err := mn.Boot.IdentResponseReceived(src, id); err != nil {
				mn.logger.WithError(err).Warnf("ident response rejected for node %d", src)
			}
		}
	}
}
