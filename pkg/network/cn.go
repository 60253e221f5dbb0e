package network

import (
	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/boot"
	"github.com/epsg-core/powerlink/pkg/config"
	"github.com/epsg-core/powerlink/pkg/dll"
	"github.com/epsg-core/powerlink/pkg/errctrl"
	"github.com/epsg-core/powerlink/pkg/frame"
	"github.com/epsg-core/powerlink/pkg/nmt"
	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/epsg-core/powerlink/pkg/pdo"
	"github.com/epsg-core/powerlink/pkg/sdo"
)

// ControlledNode is one CN: it reacts to the frames an MN drives a
// cycle with, answers remote configuration over SDO, and reports its
// identity and status when an SoA invites it.
type ControlledNode struct {
	node

	Cycle     *dll.ControlledCycle
	SDOServer *sdo.Server
	Config    *config.NodeConfigurator

	// TPDOMapping projects this node's dictionary into its PRes
	// payload; RPDOMapping applies an inbound PReq payload back into
	// the dictionary. Both are nil until configured.
	TPDOMapping *pdo.Mapping
	RPDOMapping *pdo.Mapping
}

// NewControlledNode builds a CN over dict, ready to answer PReq/SoA
// once added to a Network.
func NewControlledNode(id powerlink.NodeID, dict *od.ObjectDictionary, driver powerlink.EthernetDriver, clock powerlink.Clock) *ControlledNode {
	return &ControlledNode{
		node:      newNode(id, nmt.KindCN, dict, driver, clock),
		Cycle:     dll.NewControlledCycle(id),
		SDOServer: sdo.NewServer(dict),
		Config:    config.NewNodeConfigurator(dict),
	}
}

// HandleFrame decodes one received Ethernet frame and reacts, returning
// the frame (if any) this node should transmit in response. It is the
// caller's job to hand HandleFrame every frame the driver receives,
// in order.
func (cn *ControlledNode) HandleFrame(raw []byte) ([]byte, error) {
	f, err := frame.Decode(raw)
	if err != nil {
		return nil, err
	}
	switch f.MessageType {
	case frame.TypeSoC:
		return cn.handleSoC(f.Body.(*frame.SoC))
	case frame.TypePReq:
		return cn.handlePReq(f)
	case frame.TypeSoA:
		return cn.handleSoA(f.Body.(*frame.SoA))
	case frame.TypeASnd:
		return cn.handleASnd(f)
	default:
		return nil, nil
	}
}

func (cn *ControlledNode) handleSoC(soc *frame.SoC) ([]byte, error) {
	cn.Cycle.HandleSoC(soc)
	cn.NMT.Apply(nmt.EventSoCReceived)
	return nil, nil
}

// CheckSoCTimeout is the tick entry point a node's run loop calls once
// per expected cycle period, independent of HandleFrame, so a cycle
// that never arrives can still be noticed. When LossOfSoC crosses
// threshold it drops the NMT state from PreOperational2 back to
// PreOperational1, DS 301's table row for that fault.
func (cn *ControlledNode) CheckSoCTimeout() {
	effect, timedOut := cn.Cycle.Tick()
	if !timedOut || effect != errctrl.EffectCycleAbort {
		return
	}
	cn.NMT.Apply(nmt.EventErrorDetected)
}

func (cn *ControlledNode) handlePReq(f *frame.Frame) ([]byte, error) {
	if !cn.Cycle.AddressedToMe(f.DstNode) {
		return nil, nil
	}
	preq := f.Body.(*frame.PReq)
	if cn.RPDOMapping != nil {
		if err := cn.RPDOMapping.ApplyFromFrame(preq.Payload); err != nil {
			cn.logger.WithError(err).Warn("failed to apply RPDO mapping")
		}
	}
	var payload []byte
	if cn.TPDOMapping != nil {
		var err error
		payload, err = cn.TPDOMapping.ProjectToFrame(nil)
		if err != nil {
			cn.logger.WithError(err).Warn("failed to project TPDO mapping")
			payload = nil
		}
	}
	pres := cn.Cycle.BuildPRes(payload, 0, uint8(cn.NMT.Current), preq.PDOVersion)
	out := &frame.Frame{DstMAC: frame.MulticastPRes, SrcNode: uint8(cn.ID), MessageType: frame.TypePRes, Body: pres}
	return frame.Encode(out)
}

func (cn *ControlledNode) handleSoA(soa *frame.SoA) ([]byte, error) {
	serviceID, invited := cn.Cycle.Invited(soa)
	if !invited {
		return nil, nil
	}
	switch serviceID {
	case frame.ServiceIdentRequest:
		return cn.buildIdentResponse()
	case frame.ServiceStatusRequest:
		return cn.buildStatusResponse()
	default:
		return nil, nil
	}
}

func (cn *ControlledNode) buildIdentResponse() ([]byte, error) {
	id, err := cn.Config.ReadIdentity()
	if err != nil {
		return nil, err
	}
	payload := encodeIdentResponse(boot.Identity(id))
	out := &frame.Frame{SrcNode: uint8(cn.ID), MessageType: frame.TypeASnd, Body: &frame.ASnd{ServiceID: frame.ASndIdentResponse, Payload: payload}}
	return frame.Encode(out)
}

func (cn *ControlledNode) buildStatusResponse() ([]byte, error) {
	out := &frame.Frame{SrcNode: uint8(cn.ID), MessageType: frame.TypeASnd, Body: &frame.ASnd{ServiceID: frame.ASndStatusResponse, Payload: []byte{uint8(cn.NMT.Current)}}}
	return frame.Encode(out)
}

func (cn *ControlledNode) handleASnd(f *frame.Frame) ([]byte, error) {
	asnd := f.Body.(*frame.ASnd)
	switch asnd.ServiceID {
	case frame.ASndSDO:
		return cn.handleSDO(f, asnd)
	case frame.ASndNMTCommand:
		cn.handleNMTCommand(f, asnd)
		return nil, nil
	default:
		return nil, nil
	}
}

func (cn *ControlledNode) handleSDO(f *frame.Frame, asnd *frame.ASnd) ([]byte, error) {
	src := powerlink.NodeID(f.SrcNode)
	resp, err := cn.SDOServer.HandleFrame(src, asnd.Payload)
	if err != nil || resp == nil {
		return nil, err
	}
	out := &frame.Frame{DstNode: f.SrcNode, SrcNode: uint8(cn.ID), MessageType: frame.TypeASnd, Body: &frame.ASnd{ServiceID: frame.ASndSDO, Payload: resp}}
	return frame.Encode(out)
}

// handleNMTCommand applies the NMT event an inbound NMTCommand ASnd
// carries, DS 301 §7.3.3.2.3, when it addresses this node directly or
// broadcasts to every CN.
func (cn *ControlledNode) handleNMTCommand(f *frame.Frame, asnd *frame.ASnd) {
	if f.DstNode != uint8(cn.ID) && f.DstNode != uint8(powerlink.NodeIDBroadcast) {
		return
	}
	if len(asnd.Payload) == 0 {
		return
	}
	event, ok := nmtCommandEvent(asnd.Payload[0])
	if !ok {
		return
	}
	cn.NMT.Apply(event)
}
