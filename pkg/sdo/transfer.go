package sdo

// MaxSegmentPayload is the largest number of data bytes one ASnd-borne
// command frame can carry, leaving room for the sequence and command
// headers within a single Ethernet frame.
const MaxSegmentPayload = 1490 - commandHeaderLength - 2

// Assembler accumulates the segments of an inbound segmented transfer
// (WriteByIndex split across SegmentInitiate/SegmentMiddle/
// SegmentComplete frames) into one contiguous buffer.
type Assembler struct {
	buf      []byte
	total    int
	started  bool
}

// Begin starts a new transfer expecting totalSize bytes in all.
func (a *Assembler) Begin(totalSize int) {
	a.buf = make([]byte, 0, totalSize)
	a.total = totalSize
	a.started = true
}

// Append adds one segment's payload.
func (a *Assembler) Append(segment []byte) {
	a.buf = append(a.buf, segment...)
}

// Done reports whether every expected byte has arrived.
func (a *Assembler) Done() bool {
	return a.started && len(a.buf) >= a.total
}

// Bytes returns the assembled payload once Done.
func (a *Assembler) Bytes() []byte {
	return a.buf
}

// Reset clears the assembler for reuse by a subsequent transfer.
func (a *Assembler) Reset() {
	a.buf = nil
	a.total = 0
	a.started = false
}

// Disassembler splits an outbound payload into segments no larger than
// MaxSegmentPayload, reporting the Segmentation tag each one should
// carry.
type Disassembler struct {
	data   []byte
	offset int
}

func NewDisassembler(data []byte) *Disassembler {
	return &Disassembler{data: data}
}

// Next returns the next segment and its Segmentation tag, or ok=false
// once every byte has been emitted. A payload that fits in one segment
// is reported as SegmentExpedited; otherwise the first chunk is
// SegmentInitiate, middle chunks SegmentMiddle, and the last
// SegmentComplete.
func (d *Disassembler) Next() (segment []byte, kind Segmentation, ok bool) {
	if d.offset >= len(d.data) {
		if d.offset == 0 && len(d.data) == 0 {
			d.offset++
			return nil, SegmentExpedited, true
		}
		return nil, 0, false
	}
	if len(d.data) <= MaxSegmentPayload {
		d.offset = len(d.data)
		return d.data, SegmentExpedited, true
	}
	start := d.offset
	end := start + MaxSegmentPayload
	if end > len(d.data) {
		end = len(d.data)
	}
	chunk := d.data[start:end]
	d.offset = end

	kind = SegmentMiddle
	if start == 0 {
		kind = SegmentInitiate
	}
	if end == len(d.data) {
		if start == 0 {
			kind = SegmentExpedited
		} else {
			kind = SegmentComplete
		}
	}
	return chunk, kind, true
}
