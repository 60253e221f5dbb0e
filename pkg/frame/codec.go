package frame

// Encode renders f as the exact octets DS 301 §4.6 defines: a 14-octet
// Ethernet-II header, the MessageType/destination/source triplet, the
// message-specific payload, and zero padding up to MinEthernetLength
// when the natural length falls short.
func Encode(f *Frame) ([]byte, error) {
	if f.Body == nil {
		return nil, ErrUnknownMessageType
	}
	if uint8(f.MessageType)&0x80 != 0 {
		return nil, ErrFieldOutOfRange
	}
	bodyLen := f.Body.encodedLen()
	total := HeaderLength + bodyLen
	if total < MinEthernetLength {
		total = MinEthernetLength
	}
	buf := make([]byte, total)
	copy(buf[0:6], f.DstMAC[:])
	copy(buf[6:12], f.SrcMAC[:])
	putUint16(buf[12:14], EtherType)
	buf[14] = uint8(f.MessageType)
	buf[15] = f.DstNode
	buf[16] = f.SrcNode
	f.Body.encode(buf[HeaderLength:])
	return buf, nil
}

// Decode parses buf, tolerating trailing Ethernet padding. PReq, PRes
// and ASnd payloads are copied out of buf, so the returned Frame does
// not alias buf.
func Decode(buf []byte) (*Frame, error) {
	if len(buf) < HeaderLength {
		return nil, ErrTruncatedFrame
	}
	etherType := getUint16(buf[12:14])
	if etherType != EtherType {
		return nil, ErrInvalidEtherType
	}
	if buf[14]&0x80 != 0 {
		return nil, ErrFieldOutOfRange
	}
	msgType := MessageType(buf[14])
	f := &Frame{
		MessageType: msgType,
		DstNode:     buf[15],
		SrcNode:     buf[16],
	}
	copy(f.DstMAC[:], buf[0:6])
	copy(f.SrcMAC[:], buf[6:12])

	payload := buf[HeaderLength:]
	var body Body
	switch msgType {
	case TypeSoC:
		body = &SoC{}
	case TypePReq:
		body = &PReq{}
	case TypePRes:
		body = &PRes{}
	case TypeSoA:
		body = &SoA{}
	case TypeASnd:
		body = &ASnd{}
	default:
		return nil, ErrUnknownMessageType
	}
	if err := body.decode(payload); err != nil {
		return nil, err
	}
	f.Body = body
	return f, nil
}
