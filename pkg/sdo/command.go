package sdo

import "encoding/binary"

// CommandHeader is the 8-byte command layer header, DS 301 §6.3.2.3,
// followed by up to 4 index/sub-index octets (for ReadByIndex /
// WriteByIndex) and then the segment payload.
type CommandHeader struct {
	TransactionID uint8
	IsResponse    bool
	IsAbort       bool
	Segmentation  Segmentation
	CommandID     CommandID
	SegmentSize   uint16
}

const commandHeaderLength = 8

func (h CommandHeader) Encode() []byte {
	buf := make([]byte, commandHeaderLength)
	buf[0] = h.TransactionID
	var flags byte
	if h.IsResponse {
		flags |= 0x80
	}
	if h.IsAbort {
		flags |= 0x40
	}
	flags |= (byte(h.Segmentation) & 0x03) << 4
	buf[1] = flags
	buf[2] = byte(h.CommandID)
	buf[3] = 0
	binary.LittleEndian.PutUint16(buf[4:6], h.SegmentSize)
	return buf
}

func DecodeCommandHeader(buf []byte) (CommandHeader, []byte, error) {
	if len(buf) < commandHeaderLength {
		return CommandHeader{}, nil, ErrTruncated
	}
	h := CommandHeader{
		TransactionID: buf[0],
		IsResponse:    buf[1]&0x80 != 0,
		IsAbort:       buf[1]&0x40 != 0,
		Segmentation:  Segmentation((buf[1] >> 4) & 0x03),
		CommandID:     CommandID(buf[2]),
		SegmentSize:   binary.LittleEndian.Uint16(buf[4:6]),
	}
	return h, buf[commandHeaderLength:], nil
}

// IndexRef is the index/sub-index addressing pair carried in a
// ReadByIndex/WriteByIndex body, DS 301 §6.3.2.4.2.
type IndexRef struct {
	Index    uint16
	SubIndex uint8
}

func (r IndexRef) Encode() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf[0:2], r.Index)
	buf[2] = r.SubIndex
	return buf
}

func DecodeIndexRef(buf []byte) (IndexRef, []byte, error) {
	if len(buf) < 4 {
		return IndexRef{}, nil, ErrTruncated
	}
	return IndexRef{Index: binary.LittleEndian.Uint16(buf[0:2]), SubIndex: buf[2]}, buf[4:], nil
}

func EncodeAbort(code AbortCode) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(code))
	return buf
}

func DecodeAbort(buf []byte) (AbortCode, error) {
	if len(buf) < 4 {
		return 0, ErrTruncated
	}
	return AbortCode(binary.LittleEndian.Uint32(buf)), nil
}
