package frame

// Frame is a decoded POWERLINK Ethernet-II frame. Exactly one of the
// Body's concrete type corresponds to MessageType.
type Frame struct {
	DstMAC      [6]byte
	SrcMAC      [6]byte
	MessageType MessageType
	DstNode     uint8
	SrcNode     uint8
	Body        Body
}

// Body is implemented by SoC, PReq, PRes, SoA and ASnd.
type Body interface {
	messageType() MessageType
	encodedLen() int
	encode(buf []byte)
	decode(buf []byte) error
}

// SoC is the Start of Cycle message, DS 301 §4.6.1.1.3.
type SoC struct {
	MC           bool // multiplexed-cycle-completed
	PS           bool // prescaled-slot
	NetTime      uint64
	RelativeTime uint64
}

func (*SoC) messageType() MessageType { return TypeSoC }
func (*SoC) encodedLen() int          { return 2 + 8 + 8 }

func (s *SoC) encode(buf []byte) {
	var flags byte
	if s.MC {
		flags |= 0x80
	}
	if s.PS {
		flags |= 0x40
	}
	buf[0] = flags
	buf[1] = 0
	putUint64(buf[2:10], s.NetTime)
	putUint64(buf[10:18], s.RelativeTime)
}

func (s *SoC) decode(buf []byte) error {
	if len(buf) < s.encodedLen() {
		return ErrTruncatedFrame
	}
	s.MC = buf[0]&0x80 != 0
	s.PS = buf[0]&0x40 != 0
	s.NetTime = getUint64(buf[2:10])
	s.RelativeTime = getUint64(buf[10:18])
	return nil
}

// PReq is the Poll Request message, DS 301 §4.6.1.1.4. It is unicast
// from the MN to exactly one CN per isochronous slot.
type PReq struct {
	MS         bool // multiplexed-slot
	EN         bool // exception-new
	RD         bool // ready
	PDOVersion uint8
	Payload    []byte
}

func (*PReq) messageType() MessageType { return TypePReq }
func (p *PReq) encodedLen() int        { return 6 + len(p.Payload) }

func (p *PReq) encode(buf []byte) {
	var flags byte
	if p.MS {
		flags |= 0x80
	}
	if p.EN {
		flags |= 0x40
	}
	if p.RD {
		flags |= 0x01
	}
	buf[0] = flags
	buf[1] = p.PDOVersion
	buf[2] = 0
	buf[3] = 0
	putUint16(buf[4:6], uint16(len(p.Payload)))
	copy(buf[6:], p.Payload)
}

func (p *PReq) decode(buf []byte) error {
	if len(buf) < 6 {
		return ErrTruncatedFrame
	}
	p.MS = buf[0]&0x80 != 0
	p.EN = buf[0]&0x40 != 0
	p.RD = buf[0]&0x01 != 0
	p.PDOVersion = buf[1]
	size := getUint16(buf[4:6])
	if len(buf) < 6+int(size) {
		return ErrTruncatedFrame
	}
	p.Payload = append([]byte(nil), buf[6:6+int(size)]...)
	return nil
}

// PRes is the Poll Response message, DS 301 §4.6.1.1.5. It is
// multicast so that all nodes observe cross traffic.
type PRes struct {
	MS         bool
	EN         bool
	RD         bool
	RS         uint8 // request-to-send, 3 bits, [0,7]
	PR         uint8 // priority, 3 bits, [0,7]
	NMTStatus  uint8
	PDOVersion uint8
	Payload    []byte
}

func (*PRes) messageType() MessageType { return TypePRes }
func (p *PRes) encodedLen() int        { return 6 + len(p.Payload) }

func (p *PRes) encode(buf []byte) {
	var flags byte
	if p.MS {
		flags |= 0x80
	}
	if p.EN {
		flags |= 0x40
	}
	flags |= (p.PR & 0x07) << 3
	flags |= p.RS & 0x07
	buf[0] = flags
	buf[1] = p.NMTStatus
	buf[2] = p.PDOVersion
	buf[3] = 0
	putUint16(buf[4:6], uint16(len(p.Payload)))
	copy(buf[6:], p.Payload)
}

func (p *PRes) decode(buf []byte) error {
	if len(buf) < 6 {
		return ErrTruncatedFrame
	}
	p.MS = buf[0]&0x80 != 0
	p.EN = buf[0]&0x40 != 0
	p.PR = (buf[0] >> 3) & 0x07
	p.RS = buf[0] & 0x07
	p.NMTStatus = buf[1]
	p.PDOVersion = buf[2]
	size := getUint16(buf[4:6])
	if len(buf) < 6+int(size) {
		return ErrTruncatedFrame
	}
	p.Payload = append([]byte(nil), buf[6:6+int(size)]...)
	return nil
}

// SoA is the Start of Asynchronous message, DS 301 §4.6.1.1.6.
type SoA struct {
	NMTStatus              uint8
	RequestedServiceID     uint8
	RequestedServiceTarget uint8
	EPLVersion             uint8
}

func (*SoA) messageType() MessageType { return TypeSoA }
func (*SoA) encodedLen() int          { return 4 }

func (s *SoA) encode(buf []byte) {
	buf[0] = s.NMTStatus
	buf[1] = s.RequestedServiceID
	buf[2] = s.RequestedServiceTarget
	buf[3] = s.EPLVersion
}

func (s *SoA) decode(buf []byte) error {
	if len(buf) < 4 {
		return ErrTruncatedFrame
	}
	s.NMTStatus = buf[0]
	s.RequestedServiceID = buf[1]
	s.RequestedServiceTarget = buf[2]
	s.EPLVersion = buf[3]
	return nil
}

// ASnd is the Asynchronous Send message, DS 301 §4.6.1.1.7. ServiceID
// identifies which of IdentResponse/StatusResponse/NMTRequest/
// NMTCommand/SDO occupies Payload; those are decoded by the nmt/sdo/boot
// packages, not by this one.
type ASnd struct {
	ServiceID uint8
	Payload   []byte
}

func (*ASnd) messageType() MessageType { return TypeASnd }
func (a *ASnd) encodedLen() int        { return 3 + len(a.Payload) }

// encode carries an explicit 2-octet payload length so Decode can
// recover the exact payload even once the frame has been padded out to
// MinEthernetLength.
func (a *ASnd) encode(buf []byte) {
	buf[0] = a.ServiceID
	putUint16(buf[1:3], uint16(len(a.Payload)))
	copy(buf[3:], a.Payload)
}

func (a *ASnd) decode(buf []byte) error {
	if len(buf) < 3 {
		return ErrTruncatedFrame
	}
	a.ServiceID = buf[0]
	size := getUint16(buf[1:3])
	if len(buf) < 3+int(size) {
		return ErrTruncatedFrame
	}
	a.Payload = append([]byte(nil), buf[3:3+int(size)]...)
	return nil
}
