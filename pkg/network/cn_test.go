package network

import (
	"testing"

	"github.com/epsg-core/powerlink/pkg/frame"
	"github.com/epsg-core/powerlink/pkg/nmt"
	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/stretchr/testify/require"
)

func newTestCN(t *testing.T) (*ControlledNode, *fakeDriver) {
	t.Helper()
	dict := od.Bootstrap(od.KindCN, 3)
	d := &fakeDriver{}
	return NewControlledNode(3, dict, d, nil), d
}

func encode(t *testing.T, f *frame.Frame) []byte {
	t.Helper()
	buf, err := frame.Encode(f)
	require.NoError(t, err)
	return buf
}

func TestControlledNodeHandleSoCAdvancesNMT(t *testing.T) {
	cn, _ := newTestCN(t)
	raw := encode(t, &frame.Frame{MessageType: frame.TypeSoC, Body: &frame.SoC{}})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.Nil(t, resp)
	require.Equal(t, nmt.StatePreOperational1, cn.NMT.Current)
}

func TestControlledNodeHandlePReqAddressedRespondsWithPRes(t *testing.T) {
	cn, _ := newTestCN(t)
	raw := encode(t, &frame.Frame{MessageType: frame.TypePReq, DstNode: 3, Body: &frame.PReq{Payload: []byte{9}}})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.NotNil(t, resp)

	decoded, err := frame.Decode(resp)
	require.NoError(t, err)
	require.Equal(t, frame.TypePRes, decoded.MessageType)
}

func TestControlledNodeHandlePReqIgnoresOtherNode(t *testing.T) {
	cn, _ := newTestCN(t)
	raw := encode(t, &frame.Frame{MessageType: frame.TypePReq, DstNode: 9, Body: &frame.PReq{}})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestControlledNodeHandleSoAIdentRequestRespondsWithIdentity(t *testing.T) {
	cn, _ := newTestCN(t)
	raw := encode(t, &frame.Frame{MessageType: frame.TypeSoA, Body: &frame.SoA{RequestedServiceID: frame.ServiceIdentRequest, RequestedServiceTarget: 3}})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.NotNil(t, resp)

	decoded, err := frame.Decode(resp)
	require.NoError(t, err)
	asnd := decoded.Body.(*frame.ASnd)
	require.Equal(t, frame.ASndIdentResponse, asnd.ServiceID)

	id, ok := decodeIdentResponse(asnd.Payload)
	require.True(t, ok)
	require.Equal(t, uint32(0), id.VendorID)
}

func TestControlledNodeHandleSoANotInvitedReturnsNil(t *testing.T) {
	cn, _ := newTestCN(t)
	raw := encode(t, &frame.Frame{MessageType: frame.TypeSoA, Body: &frame.SoA{RequestedServiceID: frame.ServiceIdentRequest, RequestedServiceTarget: 9}})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestControlledNodeHandleASndSDOPassesThroughServer(t *testing.T) {
	cn, _ := newTestCN(t)
	// An opening sequence-layer frame (ConInitialization, no command
	// layer body yet) should get a sequence-layer-only reply from the
	// SDO server as it moves from Idle to Initializing.
	raw := encode(t, &frame.Frame{MessageType: frame.TypeASnd, SrcNode: 7, Body: &frame.ASnd{ServiceID: frame.ASndSDO, Payload: []byte{0x00, 0x40}}})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.NotNil(t, resp)

	decoded, err := frame.Decode(resp)
	require.NoError(t, err)
	require.Equal(t, frame.TypeASnd, decoded.MessageType)
}

func TestControlledNodeHandleASndNMTCommandAppliesEvent(t *testing.T) {
	cn, _ := newTestCN(t)
	cn.NMT.Current = nmt.StateReadyToOperate

	raw := encode(t, &frame.Frame{
		MessageType: frame.TypeASnd,
		DstNode:     3,
		Body:        &frame.ASnd{ServiceID: frame.ASndNMTCommand, Payload: []byte{frame.NMTStartNode}},
	})
	resp, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.Nil(t, resp)
	require.Equal(t, nmt.StateOperational, cn.NMT.Current)
}

func TestControlledNodeHandleASndNMTCommandIgnoresOtherNode(t *testing.T) {
	cn, _ := newTestCN(t)
	cn.NMT.Current = nmt.StateReadyToOperate

	raw := encode(t, &frame.Frame{
		MessageType: frame.TypeASnd,
		DstNode:     9,
		Body:        &frame.ASnd{ServiceID: frame.ASndNMTCommand, Payload: []byte{frame.NMTStartNode}},
	})
	_, err := cn.HandleFrame(raw)
	require.NoError(t, err)
	require.Equal(t, nmt.StateReadyToOperate, cn.NMT.Current)
}

func TestControlledNodeCheckSoCTimeoutDropsPreOperational2ToPreOperational1(t *testing.T) {
	cn, _ := newTestCN(t)
	cn.NMT.Current = nmt.StatePreOperational2

	// LossOfSoC's threshold is 15 increments of 8; none of these ticks
	// ever see a SoC, so every one of them counts.
	for i := 0; i < 15; i++ {
		cn.CheckSoCTimeout()
	}

	require.Equal(t, nmt.StatePreOperational1, cn.NMT.Current)
}

func TestControlledNodeCheckSoCTimeoutRearmedByHandleSoC(t *testing.T) {
	cn, _ := newTestCN(t)
	cn.NMT.Current = nmt.StatePreOperational2

	raw := encode(t, &frame.Frame{MessageType: frame.TypeSoC, Body: &frame.SoC{}})
	for i := 0; i < 15; i++ {
		_, err := cn.HandleFrame(raw)
		require.NoError(t, err)
		cn.CheckSoCTimeout()
	}

	require.Equal(t, nmt.StatePreOperational2, cn.NMT.Current)
}
