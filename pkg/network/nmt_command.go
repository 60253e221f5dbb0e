package network

import (
	"github.com/epsg-core/powerlink/pkg/frame"
	"github.com/epsg-core/powerlink/pkg/nmt"
)

// nmtCommandEvent maps a DS 301 NMTCommand sub-service ID, as carried in
// an ASndNMTCommand's first payload octet, to the local NMT event it
// raises. ok is false for a command ID this stack does not recognize.
func nmtCommandEvent(cmd uint8) (event nmt.Event, ok bool) {
	switch cmd {
	case frame.NMTStartNode:
		return nmt.EventEnterOperational, true
	case frame.NMTStopNode:
		return nmt.EventEnterStopped, true
	case frame.NMTEnterPreOperational2:
		return nmt.EventEnterPreOperational2, true
	case frame.NMTEnableReadyToOperate:
		return nmt.EventEnterReadyToOperate, true
	case frame.NMTResetNode:
		return nmt.EventResetNode, true
	case frame.NMTResetCommunication:
		return nmt.EventResetCommunication, true
	case frame.NMTResetConfiguration:
		return nmt.EventResetConfiguration, true
	default:
		return 0, false
	}
}

// buildNMTCommand constructs the ASnd frame carrying cmd to target,
// DS 301 §7.3.3.2.3. A broadcast command addresses every CN at once.
func buildNMTCommand(srcNode uint8, target uint8, cmd uint8) *frame.Frame {
	return &frame.Frame{
		SrcNode:     srcNode,
		DstNode:     target,
		MessageType: frame.TypeASnd,
		Body:        &frame.ASnd{ServiceID: frame.ASndNMTCommand, Payload: []byte{cmd}},
	}
}
