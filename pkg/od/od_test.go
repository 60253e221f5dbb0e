package od

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func i16bytes(v int16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

func TestVariableReadWriteRoundTrip(t *testing.T) {
	v := NewVariable("Test_U16", 0, Unsigned16, AccessReadWrite, MappingOptional, u16default(0))
	require.NoError(t, v.PutUint16(4242))
	got, err := v.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(4242), got)
}

func TestVariableRejectsWriteWhenReadOnly(t *testing.T) {
	v := NewVariable("RO_U8", 0, Unsigned8, AccessReadOnly, MappingNone, u8default(1))
	err := v.PutUint8(9)
	require.ErrorIs(t, err, ODRReadOnly)
}

func TestVariableEnforcesLimits(t *testing.T) {
	v := NewVariable("Limited_U8", 0, Unsigned8, AccessReadWrite, MappingNone, u8default(5))
	v.LowLimit = u8default(1)
	v.HighLimit = u8default(10)
	require.ErrorIs(t, v.PutUint8(20), ODRValueHigh)
	require.ErrorIs(t, v.PutUint8(0), ODRValueLow)
	require.NoError(t, v.PutUint8(7))
}

func TestVariableEnforcesSignedLimitsStraddlingZero(t *testing.T) {
	v := NewVariable("Limited_I16", 0, Integer16, AccessReadWrite, MappingNone, i16bytes(0))
	v.LowLimit = i16bytes(-50)
	v.HighLimit = i16bytes(1000)

	// A naive unsigned reinterpretation of -50 (0xFFCE = 65486) would
	// make 100 look smaller than LowLimit and fail spuriously.
	require.NoError(t, v.PutUint16(uint16(int16(100))))
	require.ErrorIs(t, v.PutUint16(uint16(int16(-60))), ODRValueLow)
	require.NoError(t, v.PutUint16(uint16(int16(-50))))
}

func TestExtensionInterceptsAccess(t *testing.T) {
	v := NewVariable("Computed_U32", 0, Unsigned32, AccessReadWrite, MappingNone, u32default(0))
	var lastWritten uint32
	v.AddExtension(
		func(v *Variable, out []byte) (int, error) {
			return copy(out, []byte{1, 2, 3, 4}), nil
		},
		func(v *Variable, in []byte) error {
			if len(in) != 4 {
				return ODRDataLong
			}
			lastWritten = uint32(in[0])
			return DefaultWriter(v, in)
		},
	)
	buf := make([]byte, 4)
	n, err := v.ReadInto(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, buf)

	require.NoError(t, v.PutUint32(99))
	require.Equal(t, uint32(99), lastWritten)
}

func TestObjectDictionaryIndexLookup(t *testing.T) {
	dict := New()
	dict.AddVariable(0x2000, NewVariable("App_U8", 0, Unsigned8, AccessReadWrite, MappingOptional, u8default(0)))

	v, err := dict.Find(0x2000, 0)
	require.NoError(t, err)
	require.Equal(t, "App_U8", v.Name)

	_, err = dict.Find(0x3000, 0)
	require.ErrorIs(t, err, ODRIdxNotExist)

	_, err = dict.Find(0x2000, 1)
	require.ErrorIs(t, err, ODRSubNotExist)
}

func TestBootstrapInstallsMandatoryObjects(t *testing.T) {
	dict := Bootstrap(KindCN, 5)
	for _, idx := range []uint16{IndexDeviceType, IndexErrorRegister, IndexIdentity, IndexCommCyclePeriod, IndexNMTNodeID} {
		_, err := dict.Index(idx)
		require.NoErrorf(t, err, "index %04X missing", idx)
	}
	nodeIDVar, err := dict.Find(IndexNMTNodeID, 0)
	require.NoError(t, err)
	got, err := nodeIDVar.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(5), got)
}

func TestBootstrapMNHasNodeAssignmentArray(t *testing.T) {
	dict := Bootstrap(KindMN, 240)
	entry, err := dict.Index(IndexCNNodeAssignment)
	require.NoError(t, err)
	require.Equal(t, 240, entry.SubCount())
}

func TestPDOMappingEligibility(t *testing.T) {
	require.True(t, MappingDefault.Mappable(true))
	require.True(t, MappingDefault.Mappable(false))
	require.True(t, MappingTPDOOnly.Mappable(true))
	require.False(t, MappingTPDOOnly.Mappable(false))
	require.True(t, MappingRPDOOnly.Mappable(false))
	require.False(t, MappingRPDOOnly.Mappable(true))
	require.False(t, MappingNone.Mappable(true))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		dataType DataType
		value    string
	}{
		{Unsigned8, "7"},
		{Integer16, "-42"},
		{Unsigned32, "123456"},
		{Real32, "3.5"},
	}
	for _, c := range cases {
		raw, err := EncodeFromString(c.value, c.dataType)
		require.NoError(t, err)
		back, err := DecodeToString(raw, c.dataType)
		require.NoError(t, err)
		require.Equal(t, c.value, back)
	}
}
