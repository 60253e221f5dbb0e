package od

import "encoding/binary"

// StreamReader intercepts a read of a Variable's value, e.g. to snapshot
// a live counter at the moment of access instead of serving a stale copy.
type StreamReader func(v *Variable, out []byte) (int, error)

// StreamWriter intercepts a write to a Variable's value, e.g. to reject
// an NMT command written outside the current state, or to trigger a
// side effect such as a configuration reload.
type StreamWriter func(v *Variable, in []byte) error

// Streamer bundles an optional read and write extension. A Variable with
// no Streamer installed uses the default in-memory store.
type Streamer struct {
	read  StreamReader
	write StreamWriter
}

// DefaultWriter validates in against the variable's declared length and
// limits, then commits it verbatim. It is the extension installed
// implicitly when AddExtension is never called; exposed so a custom
// StreamWriter can delegate to it after its own checks.
func DefaultWriter(v *Variable, in []byte) error {
	if n, ok := v.DataType.FixedLength(); ok && len(in) != n {
		return ODRDataLong
	}
	if len(v.LowLimit) > 0 || len(v.HighLimit) > 0 {
		val, ok := decodeLimit(v.DataType, in)
		if ok {
			if len(v.LowLimit) > 0 {
				if low, ok := decodeLimit(v.DataType, v.LowLimit); ok && val < low {
					return ODRValueLow
				}
			}
			if len(v.HighLimit) > 0 {
				if high, ok := decodeLimit(v.DataType, v.HighLimit); ok && val > high {
					return ODRValueHigh
				}
			}
		}
	}
	v.rawSetLocked(in)
	return nil
}

// decodeLimit interprets b as the value of dataType for LowLimit/HighLimit
// comparison, as a comparable int64: the signed integer types are
// sign-extended rather than read as raw unsigned magnitudes, so a
// negative LowLimit/value compares correctly against a positive one. It
// only applies to the fixed-width integer and boolean types; other types
// report ok=false and skip limit checks.
func decodeLimit(dataType DataType, b []byte) (int64, bool) {
	switch dataType {
	case Boolean, Unsigned8:
		if len(b) < 1 {
			return 0, false
		}
		return int64(b[0]), true
	case Integer8:
		if len(b) < 1 {
			return 0, false
		}
		return int64(int8(b[0])), true
	case Unsigned16:
		if len(b) < 2 {
			return 0, false
		}
		return int64(binary.LittleEndian.Uint16(b)), true
	case Integer16:
		if len(b) < 2 {
			return 0, false
		}
		return int64(int16(binary.LittleEndian.Uint16(b))), true
	case Unsigned32:
		if len(b) < 4 {
			return 0, false
		}
		return int64(binary.LittleEndian.Uint32(b)), true
	case Integer32:
		if len(b) < 4 {
			return 0, false
		}
		return int64(int32(binary.LittleEndian.Uint32(b))), true
	case Unsigned64, Integer64:
		if len(b) < 8 {
			return 0, false
		}
		return int64(binary.LittleEndian.Uint64(b)), true
	default:
		return 0, false
	}
}
