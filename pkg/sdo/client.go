package sdo

import (
	"github.com/epsg-core/powerlink"
)

// Client issues ReadByIndex/WriteByIndex requests to a single peer,
// tagging each with a fresh transaction ID. HandleResponse reports the
// transaction ID of every response; it does not check it against the
// requests sent.
type Client struct {
	peer       powerlink.NodeID
	transport  Transport
	sequence   *SequenceLayer
	nextTxn    uint8
	pending    map[uint8]chan clientResult
	readAsm    *Assembler
}

type clientResult struct {
	data  []byte
	abort error
}

func NewClient(peer powerlink.NodeID, transport Transport) *Client {
	return &Client{
		peer:      peer,
		transport: transport,
		sequence:  NewSequenceLayer(),
		pending:   make(map[uint8]chan clientResult),
		readAsm:   &Assembler{},
	}
}

func (c *Client) allocateTxn() uint8 {
	c.nextTxn++
	return c.nextTxn
}

// sendCommand wraps a command-layer frame in the current sequence
// header and hands it to the transport.
func (c *Client) sendCommand(h CommandHeader, body []byte) error {
	seqHeader := SequenceHeader{SendSeqNum: c.sequence.NextSend(), SendCon: ConConnectionValid}
	raw := seqHeader.Encode()
	payload := append(raw[:], h.Encode()...)
	payload = append(payload, body...)
	return c.transport.Send(c.peer, payload)
}

// ReadByIndex sends a read request for index/subIndex and returns the
// transaction ID it allocated for it, without waiting for the reply.
// The value arrives through HandleResponse, which the caller feeds
// with every inbound frame addressed to this client; a segmented value
// is returned once its last segment has been handled.
func (c *Client) ReadByIndex(index uint16, subIndex uint8) (uint8, error) {
	txn := c.allocateTxn()
	h := CommandHeader{TransactionID: txn, CommandID: CommandReadByIndex}
	return txn, c.sendCommand(h, IndexRef{Index: index, SubIndex: subIndex}.Encode())
}

// WriteByIndex sends value to index/subIndex, splitting it into
// segments if it exceeds one frame's capacity.
func (c *Client) WriteByIndex(index uint16, subIndex uint8, value []byte) (uint8, error) {
	txn := c.allocateTxn()
	ref := IndexRef{Index: index, SubIndex: subIndex}
	dis := NewDisassembler(value)
	first := true
	for {
		segment, kind, ok := dis.Next()
		if !ok {
			break
		}
		h := CommandHeader{TransactionID: txn, CommandID: CommandWriteByIndex, Segmentation: kind}
		var body []byte
		if first {
			if kind == SegmentInitiate {
				h.SegmentSize = uint16(len(value))
			}
			body = append(ref.Encode(), segment...)
			first = false
		} else {
			body = segment
		}
		if err := c.sendCommand(h, body); err != nil {
			return txn, err
		}
	}
	return txn, nil
}

// HandleResponse decodes one inbound frame from the peer, advances the
// sequence layer, and if it completes a read transfer, returns the
// fully assembled value.
func (c *Client) HandleResponse(raw []byte) (txn uint8, value []byte, complete bool, abort error, err error) {
	if len(raw) < 2 {
		return 0, nil, false, nil, ErrTruncated
	}
	var hdrBytes [2]byte
	copy(hdrBytes[:], raw[:2])
	header := DecodeSequenceHeader(hdrBytes)
	if _, err := c.sequence.Accept(header); err != nil {
		return 0, nil, false, nil, err
	}
	if len(raw) == 2 {
		return 0, nil, false, nil, nil
	}
	cmdHeader, body, err := DecodeCommandHeader(raw[2:])
	if err != nil {
		return 0, nil, false, nil, err
	}
	if cmdHeader.IsAbort {
		code, _ := DecodeAbort(body)
		return cmdHeader.TransactionID, nil, true, code, nil
	}
	switch cmdHeader.Segmentation {
	case SegmentExpedited:
		return cmdHeader.TransactionID, body, true, nil, nil
	case SegmentInitiate:
		c.readAsm.Begin(int(cmdHeader.SegmentSize))
		c.readAsm.Append(body)
		return cmdHeader.TransactionID, nil, false, nil, nil
	case SegmentMiddle:
		c.readAsm.Append(body)
		return cmdHeader.TransactionID, nil, false, nil, nil
	case SegmentComplete:
		c.readAsm.Append(body)
		value := c.readAsm.Bytes()
		c.readAsm.Reset()
		return cmdHeader.TransactionID, value, true, nil, nil
	}
	return cmdHeader.TransactionID, nil, false, nil, nil
}
