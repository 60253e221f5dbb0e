package sdo

import (
	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/od"
)

// Server answers ReadByIndex/WriteByIndex commands against a local
// object dictionary, one SequenceLayer and one segmented-transfer
// Assembler per peer.
type Server struct {
	dict       *od.ObjectDictionary
	sequences  map[powerlink.NodeID]*SequenceLayer
	assemblers map[powerlink.NodeID]*Assembler
}

func NewServer(dict *od.ObjectDictionary) *Server {
	return &Server{
		dict:       dict,
		sequences:  make(map[powerlink.NodeID]*SequenceLayer),
		assemblers: make(map[powerlink.NodeID]*Assembler),
	}
}

func (s *Server) sequenceFor(src powerlink.NodeID) *SequenceLayer {
	seq, ok := s.sequences[src]
	if !ok {
		seq = NewSequenceLayer()
		s.sequences[src] = seq
	}
	return seq
}

// HandleFrame processes one inbound sequence-layer frame from src and
// returns the response to send back, if any.
func (s *Server) HandleFrame(src powerlink.NodeID, raw []byte) ([]byte, error) {
	if len(raw) < 2 {
		return nil, ErrTruncated
	}
	var hdrBytes [2]byte
	copy(hdrBytes[:], raw[:2])
	header := DecodeSequenceHeader(hdrBytes)
	seq := s.sequenceFor(src)

	respHeader, err := seq.Accept(header)
	if err != nil {
		return nil, err
	}
	if seq.State != StateConnected || len(raw) == 2 {
		out := respHeader.Encode()
		return out[:], nil
	}

	cmdHeader, body, err := DecodeCommandHeader(raw[2:])
	if err != nil {
		return nil, err
	}
	respCmd, respBody := s.handleCommand(src, cmdHeader, body)

	out := respHeader.Encode()
	result := append(out[:], respCmd.Encode()...)
	result = append(result, respBody...)
	return result, nil
}

func (s *Server) handleCommand(src powerlink.NodeID, h CommandHeader, body []byte) (CommandHeader, []byte) {
	resp := CommandHeader{TransactionID: h.TransactionID, IsResponse: true, CommandID: h.CommandID}

	switch h.CommandID {
	case CommandReadByIndex:
		ref, _, err := DecodeIndexRef(body)
		if err != nil {
			resp.IsAbort = true
			return resp, EncodeAbort(AbortCommandInvalid)
		}
		v, err := s.dict.Find(ref.Index, ref.SubIndex)
		if err != nil {
			resp.IsAbort = true
			return resp, EncodeAbort(ConvertODRToAbort(err))
		}
		value := v.Bytes()
		resp.Segmentation = SegmentExpedited
		resp.SegmentSize = uint16(len(value))
		return resp, value

	case CommandWriteByIndex:
		ref, rest, err := DecodeIndexRef(body)
		if err != nil {
			resp.IsAbort = true
			return resp, EncodeAbort(AbortCommandInvalid)
		}
		v, err := s.dict.Find(ref.Index, ref.SubIndex)
		if err != nil {
			resp.IsAbort = true
			return resp, EncodeAbort(ConvertODRToAbort(err))
		}
		asm := s.assembler(src, ref)
		switch h.Segmentation {
		case SegmentExpedited:
			if err := v.SetBytes(rest); err != nil {
				resp.IsAbort = true
				return resp, EncodeAbort(ConvertODRToAbort(err))
			}
			asm.Reset()
		case SegmentInitiate:
			asm.Begin(int(h.SegmentSize))
			asm.Append(rest)
		case SegmentMiddle:
			asm.Append(rest)
		case SegmentComplete:
			asm.Append(rest)
			if err := v.SetBytes(asm.Bytes()); err != nil {
				asm.Reset()
				resp.IsAbort = true
				return resp, EncodeAbort(ConvertODRToAbort(err))
			}
			asm.Reset()
		}
		return resp, nil

	default:
		resp.IsAbort = true
		return resp, EncodeAbort(AbortCommandInvalid)
	}
}

func (s *Server) assembler(src powerlink.NodeID, ref IndexRef) *Assembler {
	asm, ok := s.assemblers[src]
	if !ok {
		asm = &Assembler{}
		s.assemblers[src] = asm
	}
	return asm
}
