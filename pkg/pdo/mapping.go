package pdo

import (
	"fmt"

	"github.com/epsg-core/powerlink/pkg/od"
)

// MaxMappedEntries bounds how many descriptors a single PReq/PRes
// mapping list may hold.
const MaxMappedEntries = 254

// Entry is one bit-level mapping descriptor: it projects bitLength bits
// of an object dictionary variable to/from an offset within a PDO
// frame payload. Unlike a byte-granular mapping, BitOffset and
// BitLength need not be byte-aligned.
type Entry struct {
	Index      uint16
	SubIndex   uint8
	BitOffset  uint16
	BitLength  uint16
	IsTPDO     bool
	variable   *od.Variable
}

// Mapping is an ordered list of Entry descriptors together with the
// dictionary they were resolved against.
type Mapping struct {
	dict    *od.ObjectDictionary
	Entries []Entry
}

// NewMapping resolves each descriptor's Variable against dict,
// validating PDO-mapping eligibility and, for fixed-length data types,
// that the bit-length does not exceed the type's size; variable-length
// types are not length-checked.
func NewMapping(dict *od.ObjectDictionary, isTPDO bool, descriptors []Entry) (*Mapping, error) {
	if len(descriptors) > MaxMappedEntries {
		return nil, fmt.Errorf("pdo: %d mapped entries exceeds maximum %d", len(descriptors), MaxMappedEntries)
	}
	m := &Mapping{dict: dict}
	for _, d := range descriptors {
		v, err := dict.Find(d.Index, d.SubIndex)
		if err != nil {
			return nil, fmt.Errorf("pdo: resolving %04X:%02X: %w", d.Index, d.SubIndex, err)
		}
		if !v.PDOMap.Mappable(isTPDO) {
			return nil, od.ODRNoMap
		}
		if n, ok := v.DataType.FixedLength(); ok && int(d.BitLength) > n*8 {
			return nil, od.ODRMapLen
		}
		d.variable = v
		d.IsTPDO = isTPDO
		m.Entries = append(m.Entries, d)
	}
	return m, nil
}

// FrameLength returns the minimum payload length in bytes this mapping
// requires.
func (m *Mapping) FrameLength() int {
	var maxBit uint16
	for _, e := range m.Entries {
		end := e.BitOffset + e.BitLength
		if end > maxBit {
			maxBit = end
		}
	}
	return int((maxBit + 7) / 8)
}

// ProjectToFrame reads every mapped Variable's current value and packs
// it into payload at its configured bit offset, growing payload if
// needed to FrameLength.
func (m *Mapping) ProjectToFrame(payload []byte) ([]byte, error) {
	need := m.FrameLength()
	if len(payload) < need {
		grown := make([]byte, need)
		copy(grown, payload)
		payload = grown
	}
	for _, e := range m.Entries {
		raw := e.variable.Bytes()
		value := bytesToUint(raw)
		writeBits(payload, e.BitOffset, e.BitLength, value)
	}
	return payload, nil
}

// ApplyFromFrame unpacks each mapped bit field from payload and writes
// it back to its Variable.
func (m *Mapping) ApplyFromFrame(payload []byte) error {
	for _, e := range m.Entries {
		if int(e.BitOffset+e.BitLength+7)/8 > len(payload) {
			return od.ODRDataShort
		}
		value := readBits(payload, e.BitOffset, e.BitLength)
		raw := uint64ToBytes(value, e.variable.Length())
		if err := e.variable.SetBytes(raw); err != nil {
			return err
		}
	}
	return nil
}

func bytesToUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func uint64ToBytes(v uint64, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// writeBits stores the low bitLength bits of value into buf starting at
// bitOffset, least-significant bit first, matching the little-endian
// byte order the rest of the wire format uses.
func writeBits(buf []byte, bitOffset, bitLength uint16, value uint64) {
	for i := uint16(0); i < bitLength; i++ {
		bit := (value >> i) & 1
		pos := bitOffset + i
		byteIdx := pos / 8
		bitIdx := pos % 8
		if bit == 1 {
			buf[byteIdx] |= 1 << bitIdx
		} else {
			buf[byteIdx] &^= 1 << bitIdx
		}
	}
}

func readBits(buf []byte, bitOffset, bitLength uint16) uint64 {
	var value uint64
	for i := uint16(0); i < bitLength; i++ {
		pos := bitOffset + i
		byteIdx := pos / 8
		bitIdx := pos % 8
		bit := (buf[byteIdx] >> bitIdx) & 1
		value |= uint64(bit) << i
	}
	return value
}
