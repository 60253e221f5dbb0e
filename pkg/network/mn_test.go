package network

import (
	"testing"

	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/boot"
	"github.com/epsg-core/powerlink/pkg/dll"
	"github.com/epsg-core/powerlink/pkg/errctrl"
	"github.com/epsg-core/powerlink/pkg/frame"
	"github.com/epsg-core/powerlink/pkg/nmt"
	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/stretchr/testify/require"
)

func testSlots() []dll.Slot {
	return []dll.Slot{{NodeID: 3, Mandatory: true}}
}

func TestManagingNodeStartBootEnqueuesIdentRequests(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{}
	mn := NewManagingNode(dict, testSlots(), d, nil)

	mn.StartBoot()
	require.Equal(t, 1, mn.Cycle.Scheduler.Len(dll.QueueIdentRequest))
	require.Equal(t, boot.PhaseIdentifying, mn.Boot.Entry(3).Phase)
}

func TestManagingNodeRunCycleSendsSoCPReqSoA(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{}
	mn := NewManagingNode(dict, testSlots(), d, nil)

	pres := &frame.Frame{SrcNode: 3, MessageType: frame.TypePRes, Body: &frame.PRes{NMTStatus: 0}}
	buf, err := frame.Encode(pres)
	require.NoError(t, err)
	d.toRecv = append(d.toRecv, buf)

	require.NoError(t, mn.RunCycle(0))
	require.Len(t, d.sent, 3)

	decoded, err := frame.Decode(d.sent[0])
	require.NoError(t, err)
	require.Equal(t, frame.TypeSoC, decoded.MessageType)

	decoded, err = frame.Decode(d.sent[1])
	require.NoError(t, err)
	require.Equal(t, frame.TypePReq, decoded.MessageType)
	require.Equal(t, uint8(3), decoded.DstNode)

	decoded, err = frame.Decode(d.sent[2])
	require.NoError(t, err)
	require.Equal(t, frame.TypeSoA, decoded.MessageType)

	require.Equal(t, uint64(1), mn.Cycle.CycleCount())
}

func TestManagingNodeRunCycleObservesPResTimeout(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{} // no PRes queued: every poll attempt finds nothing pending
	mn := NewManagingNode(dict, testSlots(), d, nil)

	require.NoError(t, mn.RunCycle(0))
	require.Equal(t, errctrl.IncrementPerError, mn.Cycle.Errors[3].Counter(errctrl.KindLossOfPRes).Value)
}

func TestManagingNodeDispatchDeliversSDOPayloadToTransport(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{}
	mn := NewManagingNode(dict, testSlots(), d, nil)

	f := &frame.Frame{SrcNode: 3, MessageType: frame.TypeASnd, Body: &frame.ASnd{ServiceID: frame.ASndSDO, Payload: []byte{1, 2, 3}}}
	mn.dispatch(f)

	src, payload, ok := mn.transports[3].Recv()
	require.True(t, ok)
	require.Equal(t, powerlink.NodeID(3), src)
	require.Equal(t, []byte{1, 2, 3}, payload)
}

func TestManagingNodeDispatchAdvancesBootOnIdentResponse(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{}
	mn := NewManagingNode(dict, testSlots(), d, nil)
	mn.StartBoot()

	payload := encodeIdentResponse(boot.Identity{VendorID: 0x42})
	f := &frame.Frame{SrcNode: 3, MessageType: frame.TypeASnd, Body: &frame.ASnd{ServiceID: frame.ASndIdentResponse, Payload: payload}}
	mn.dispatch(f)

	require.Equal(t, boot.PhaseVerifyingVersion, mn.Boot.Entry(3).Phase)
}

func TestManagingNodeDrivesBootToOperationalAndIssuesNMTCommands(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{}
	mn := NewManagingNode(dict, testSlots(), d, nil)

	mn.StartBoot()
	require.Equal(t, nmt.StatePreOperational1, mn.NMT.Current)

	payload := encodeIdentResponse(boot.Identity{})
	mn.dispatch(&frame.Frame{SrcNode: 3, MessageType: frame.TypeASnd, Body: &frame.ASnd{ServiceID: frame.ASndIdentResponse, Payload: payload}})
	require.Equal(t, boot.PhaseVerifyingVersion, mn.Boot.Entry(3).Phase)

	pres := &frame.Frame{SrcNode: 3, MessageType: frame.TypePRes, Body: &frame.PRes{NMTStatus: 0}}
	buf, err := frame.Encode(pres)
	require.NoError(t, err)

	// Three cycles walk the coordinator through VerifyingVersion ->
	// Configuring -> EnteringReadyToOperate -> Operational, each step
	// driving the MN's own NMT state the same amount further.
	for i := 0; i < 3; i++ {
		d.toRecv = append(d.toRecv, buf)
		require.NoError(t, mn.RunCycle(uint64(i)))
	}

	require.Equal(t, nmt.StateOperational, mn.NMT.Current)
	require.Equal(t, boot.PhaseOperational, mn.Boot.Entry(3).Phase)

	var sawEnable, sawStart bool
	for _, raw := range d.sent {
		f, err := frame.Decode(raw)
		require.NoError(t, err)
		if f.MessageType != frame.TypeASnd {
			continue
		}
		asnd := f.Body.(*frame.ASnd)
		if asnd.ServiceID != frame.ASndNMTCommand {
			continue
		}
		switch asnd.Payload[0] {
		case frame.NMTEnableReadyToOperate:
			sawEnable = true
		case frame.NMTStartNode:
			sawStart = true
		}
	}
	require.True(t, sawEnable, "expected an EnableReadyToOperate NMT command")
	require.True(t, sawStart, "expected a StartNode NMT command")
}

func TestManagingNodePResLossThresholdFailsNodeAndSendsStopNode(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{} // no PRes ever queued: every poll attempt times out
	mn := NewManagingNode(dict, testSlots(), d, nil)

	for i := 0; i < 15; i++ {
		require.NoError(t, mn.RunCycle(uint64(i)))
	}

	require.Equal(t, boot.PhaseFailed, mn.Boot.Entry(3).Phase)

	var sawStop bool
	for _, raw := range d.sent {
		f, err := frame.Decode(raw)
		require.NoError(t, err)
		if f.MessageType != frame.TypeASnd {
			continue
		}
		asnd := f.Body.(*frame.ASnd)
		if asnd.ServiceID == frame.ASndNMTCommand && asnd.Payload[0] == frame.NMTStopNode {
			sawStop = true
		}
	}
	require.True(t, sawStop, "expected a StopNode NMT command once LossOfPRes crossed threshold")
}

func TestManagingNodeApplyPResEnqueuesInvitedOnNonZeroRS(t *testing.T) {
	dict := od.Bootstrap(od.KindMN, 240)
	d := &fakeDriver{}
	mn := NewManagingNode(dict, testSlots(), d, nil)

	mn.applyPRes(3, &frame.PRes{RS: 2})
	require.Equal(t, 1, mn.Cycle.Scheduler.Len(dll.QueueInvited))

	mn.applyPRes(3, &frame.PRes{RS: 0})
	require.Equal(t, 1, mn.Cycle.Scheduler.Len(dll.QueueInvited))
}
