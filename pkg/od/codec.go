package od

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// EncodeFromString parses value according to dataType and returns its
// little-endian wire encoding. It is used by the Profile ini loader and
// by anything building a default value from a human-readable string.
func EncodeFromString(value string, dataType DataType) ([]byte, error) {
	if value == "" {
		value = "0"
	}
	switch dataType {
	case Boolean, Unsigned8:
		n, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return nil, err
		}
		return []byte{byte(n)}, nil
	case Integer8:
		n, err := strconv.ParseInt(value, 0, 8)
		if err != nil {
			return nil, err
		}
		return []byte{byte(n)}, nil
	case Unsigned16:
		n, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(n))
		return b, nil
	case Integer16:
		n, err := strconv.ParseInt(value, 0, 16)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(n))
		return b, nil
	case Unsigned32:
		n, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(n))
		return b, nil
	case Integer32:
		n, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(n))
		return b, nil
	case Unsigned64:
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, n)
		return b, nil
	case Integer64:
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(n))
		return b, nil
	case Real32:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
		return b, nil
	case Real64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(f))
		return b, nil
	case VisibleString, OctetString, UnicodeString, Domain:
		return []byte(value), nil
	default:
		return nil, fmt.Errorf("od: unknown data type %d", dataType)
	}
}

// DecodeToString renders raw as a human-readable value of the given
// type, base 10 for integers.
func DecodeToString(raw []byte, dataType DataType) (string, error) {
	switch dataType {
	case Boolean, Unsigned8:
		if len(raw) < 1 {
			return "", ODRDataShort
		}
		return strconv.FormatUint(uint64(raw[0]), 10), nil
	case Integer8:
		if len(raw) < 1 {
			return "", ODRDataShort
		}
		return strconv.FormatInt(int64(int8(raw[0])), 10), nil
	case Unsigned16:
		if len(raw) < 2 {
			return "", ODRDataShort
		}
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint16(raw)), 10), nil
	case Integer16:
		if len(raw) < 2 {
			return "", ODRDataShort
		}
		return strconv.FormatInt(int64(int16(binary.LittleEndian.Uint16(raw))), 10), nil
	case Unsigned32:
		if len(raw) < 4 {
			return "", ODRDataShort
		}
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(raw)), 10), nil
	case Integer32:
		if len(raw) < 4 {
			return "", ODRDataShort
		}
		return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(raw))), 10), nil
	case Unsigned64:
		if len(raw) < 8 {
			return "", ODRDataShort
		}
		return strconv.FormatUint(binary.LittleEndian.Uint64(raw), 10), nil
	case Integer64:
		if len(raw) < 8 {
			return "", ODRDataShort
		}
		return strconv.FormatInt(int64(binary.LittleEndian.Uint64(raw)), 10), nil
	case Real32:
		if len(raw) < 4 {
			return "", ODRDataShort
		}
		return strconv.FormatFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), 'f', -1, 32), nil
	case Real64:
		if len(raw) < 8 {
			return "", ODRDataShort
		}
		return strconv.FormatFloat(math.Float64frombits(binary.LittleEndian.Uint64(raw)), 'f', -1, 64), nil
	case VisibleString, OctetString, UnicodeString, Domain:
		return string(raw), nil
	default:
		return "", fmt.Errorf("od: unknown data type %d", dataType)
	}
}
