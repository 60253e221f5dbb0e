package pdo

import (
	"testing"

	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/stretchr/testify/require"
)

func newTestDict(t *testing.T) *od.ObjectDictionary {
	t.Helper()
	dict := od.New()
	dict.AddVariable(0x2000, od.NewVariable("Flag_BOOL", 0, od.Boolean, od.AccessReadWrite, od.MappingOptional, []byte{0}))
	dict.AddVariable(0x2001, od.NewVariable("Speed_U16", 0, od.Unsigned16, od.AccessReadWrite, od.MappingDefault, make([]byte, 2)))
	dict.AddVariable(0x2002, od.NewVariable("NotMappable_U8", 0, od.Unsigned8, od.AccessReadWrite, od.MappingNone, []byte{0}))
	return dict
}

func TestMappingProjectAndApplyBitLevel(t *testing.T) {
	dict := newTestDict(t)
	speed, err := dict.Find(0x2001, 0)
	require.NoError(t, err)
	require.NoError(t, speed.PutUint16(1000))

	flag, err := dict.Find(0x2000, 0)
	require.NoError(t, err)
	require.NoError(t, flag.SetBytes([]byte{1}))

	m, err := NewMapping(dict, true, []Entry{
		{Index: 0x2000, SubIndex: 0, BitOffset: 0, BitLength: 1},
		{Index: 0x2001, SubIndex: 0, BitOffset: 1, BitLength: 16},
	})
	require.NoError(t, err)

	payload, err := m.ProjectToFrame(nil)
	require.NoError(t, err)
	require.Equal(t, 3, len(payload))

	// Apply a frame that encodes values different from the ones just
	// projected (flag 0, speed 2500), to confirm ApplyFromFrame
	// actually overwrites rather than reading stale OD state.
	incoming := make([]byte, 3)
	writeBits(incoming, 0, 1, 0)
	writeBits(incoming, 1, 16, 2500)
	require.NoError(t, m.ApplyFromFrame(incoming))

	gotFlag := flag.Bytes()
	require.Equal(t, byte(0), gotFlag[0]&1)
	gotSpeed, err := speed.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(2500), gotSpeed)
}

func TestMappingRejectsUnmappableVariable(t *testing.T) {
	dict := newTestDict(t)
	_, err := NewMapping(dict, true, []Entry{{Index: 0x2002, SubIndex: 0, BitOffset: 0, BitLength: 8}})
	require.ErrorIs(t, err, od.ODRNoMap)
}

func TestMappingRejectsOversizeBitLength(t *testing.T) {
	dict := newTestDict(t)
	_, err := NewMapping(dict, true, []Entry{{Index: 0x2000, SubIndex: 0, BitOffset: 0, BitLength: 64}})
	require.ErrorIs(t, err, od.ODRMapLen)
}

func TestVersionCheck(t *testing.T) {
	dict := newTestDict(t)
	m, err := NewMapping(dict, true, []Entry{{Index: 0x2001, SubIndex: 0, BitOffset: 0, BitLength: 16}})
	require.NoError(t, err)
	vm := &VersionedMapping{Version: 3, Mapping: m}
	require.NoError(t, vm.CheckVersion(3))
	err = vm.CheckVersion(4)
	require.Error(t, err)
	var mismatch *ErrVersionMismatch
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, uint8(3), mismatch.Expected)
}
