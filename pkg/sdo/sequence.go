package sdo

// SequenceHeader is the 2-byte sequence layer header prefixing every
// command-layer frame, DS 301 §4.6.4.1: a 6-bit sequence number plus a
// 2-bit connection-control field for each direction.
type SequenceHeader struct {
	ReceiveSeqNum uint8
	ReceiveCon    Con
	SendSeqNum    uint8
	SendCon       Con
}

func (h SequenceHeader) Encode() [2]byte {
	return [2]byte{
		(h.ReceiveSeqNum & 0x3F) | (uint8(h.ReceiveCon) << 6),
		(h.SendSeqNum & 0x3F) | (uint8(h.SendCon) << 6),
	}
}

func DecodeSequenceHeader(b [2]byte) SequenceHeader {
	return SequenceHeader{
		ReceiveSeqNum: b[0] & 0x3F,
		ReceiveCon:    Con(b[0] >> 6),
		SendSeqNum:    b[1] & 0x3F,
		SendCon:       Con(b[1] >> 6),
	}
}

// SequenceLayer tracks one end of a sequence-layer connection: its own
// send sequence counter, the peer's last acknowledged sequence number,
// and the connection's lifecycle state.
type SequenceLayer struct {
	State      ConnState
	txSeqNum   uint8
	rxSeqNum   uint8
	retransmits int
}

// NewSequenceLayer returns a layer in StateIdle.
func NewSequenceLayer() *SequenceLayer {
	return &SequenceLayer{State: StateIdle}
}

// Open begins the initialization handshake, moving to
// StateInitializing and returning the header to send.
func (s *SequenceLayer) Open() SequenceHeader {
	s.State = StateInitializing
	return SequenceHeader{SendSeqNum: s.txSeqNum, SendCon: ConInitialization, ReceiveCon: ConNoConnection}
}

// Close moves to StateClosing; a subsequent received frame with
// ReceiveCon == ConNoConnection completes the teardown.
func (s *SequenceLayer) Close() SequenceHeader {
	s.State = StateClosing
	return SequenceHeader{SendSeqNum: s.txSeqNum, SendCon: ConNoConnection, ReceiveCon: ConNoConnection}
}

// Accept processes a received header, advancing the connection state
// machine and returning the header for the corresponding
// acknowledgement. It reports ErrSeqNumOutOfOrder if the peer's send
// sequence number skips ahead of what a retransmit-free exchange would
// produce.
func (s *SequenceLayer) Accept(h SequenceHeader) (SequenceHeader, error) {
	switch s.State {
	case StateIdle:
		if h.SendCon != ConInitialization {
			return SequenceHeader{}, ErrWrongState
		}
		s.rxSeqNum = h.SendSeqNum
		s.State = StateInitializing
		return SequenceHeader{SendSeqNum: s.txSeqNum, SendCon: ConInitialization, ReceiveSeqNum: s.rxSeqNum, ReceiveCon: ConConnectionValid}, nil

	case StateInitializing:
		if h.SendCon == ConInitialization {
			s.rxSeqNum = h.SendSeqNum
			s.State = StateConnected
			return SequenceHeader{SendSeqNum: s.txSeqNum, SendCon: ConConnectionValid, ReceiveSeqNum: s.rxSeqNum, ReceiveCon: ConConnectionValid}, nil
		}
		if h.SendCon == ConConnectionValid {
			s.rxSeqNum = h.SendSeqNum
			s.State = StateConnected
			return SequenceHeader{}, nil
		}
		return SequenceHeader{}, ErrWrongState

	case StateConnected:
		expected := (s.rxSeqNum + 1) % SeqNumModulo
		if h.SendCon == ConNoConnection {
			s.State = StateIdle
			return SequenceHeader{SendCon: ConNoConnection, ReceiveCon: ConNoConnection}, nil
		}
		if h.SendSeqNum != expected {
			return SequenceHeader{}, ErrSeqNumOutOfOrder
		}
		s.rxSeqNum = h.SendSeqNum
		return SequenceHeader{SendSeqNum: s.txSeqNum, SendCon: ConConnectionValid, ReceiveSeqNum: s.rxSeqNum, ReceiveCon: ConConnectionValid}, nil

	case StateClosing:
		if h.ReceiveCon == ConNoConnection {
			s.State = StateIdle
		}
		return SequenceHeader{}, nil

	default:
		return SequenceHeader{}, ErrWrongState
	}
}

// NextSend advances and returns this side's own send sequence number,
// wrapping modulo 64.
func (s *SequenceLayer) NextSend() uint8 {
	s.txSeqNum = (s.txSeqNum + 1) % SeqNumModulo
	return s.txSeqNum
}

// NoteRetransmit increments the retry counter and reports whether the
// connection should now be aborted (DS 301's bounded retransmit
// count).
func (s *SequenceLayer) NoteRetransmit() (shouldAbort bool) {
	s.retransmits++
	return s.retransmits > MaxRetransmits
}

// NoteAcknowledged resets the retry counter after a frame is
// acknowledged.
func (s *SequenceLayer) NoteAcknowledged() {
	s.retransmits = 0
}
