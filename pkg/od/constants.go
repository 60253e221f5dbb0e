package od

// DataType is the CiA/DS301-style type tag carried by every Variable.
type DataType uint8

const (
	Boolean       DataType = 0x01
	Integer8      DataType = 0x02
	Integer16     DataType = 0x03
	Integer32     DataType = 0x04
	Unsigned8     DataType = 0x05
	Unsigned16    DataType = 0x06
	Unsigned32    DataType = 0x07
	Real32        DataType = 0x08
	VisibleString DataType = 0x09
	OctetString   DataType = 0x0A
	UnicodeString DataType = 0x0B
	Integer64     DataType = 0x15
	Unsigned64    DataType = 0x1B
	Real64        DataType = 0x11
	Domain        DataType = 0x0F
)

// FixedLength returns the encoded length in bytes for fixed-size types,
// and ok=false for the variable-length string/domain types.
func (d DataType) FixedLength() (n int, ok bool) {
	switch d {
	case Boolean, Integer8, Unsigned8:
		return 1, true
	case Integer16, Unsigned16:
		return 2, true
	case Integer32, Unsigned32, Real32:
		return 4, true
	case Integer64, Unsigned64, Real64:
		return 8, true
	default:
		return 0, false
	}
}

// AccessClass is the SDO-visible access restriction of an object, DS 301
// §6.1.2. It is independent of PDO-mapping eligibility.
type AccessClass uint8

const (
	AccessReadWrite AccessClass = iota
	AccessReadOnly
	AccessWriteOnly
	AccessConst
	AccessNone
)

// PDOMapping is the five-state mapping eligibility of an object: a plain
// read/write access class does not say whether an object may appear in a
// PDO mapping list, nor which direction.
type PDOMapping uint8

const (
	MappingNone PDOMapping = iota
	MappingDefault
	MappingOptional
	MappingTPDOOnly
	MappingRPDOOnly
)

// Mappable reports whether a variable with this mapping eligibility may
// be referenced from a TPDO (isTPDO true) or RPDO (isTPDO false) mapping
// list.
func (m PDOMapping) Mappable(isTPDO bool) bool {
	switch m {
	case MappingDefault, MappingOptional:
		return true
	case MappingTPDOOnly:
		return isTPDO
	case MappingRPDOOnly:
		return !isTPDO
	default:
		return false
	}
}

// ObjectType distinguishes a plain variable from a multi-subindex array
// or record.
type ObjectType uint8

const (
	ObjectVAR ObjectType = iota
	ObjectARRAY
	ObjectRECORD
)

// Mandatory object dictionary indices, DS 301 §6.
const (
	IndexDeviceType               uint16 = 0x1000
	IndexErrorRegister            uint16 = 0x1001
	IndexManufacturerStatus       uint16 = 0x1002
	IndexNMTStartUp               uint16 = 0x1F80
	IndexIdentity                 uint16 = 0x1018
	IndexCommCyclePeriod          uint16 = 0x1006
	IndexSyncWindowLength         uint16 = 0x1007
	IndexRPDOCommStart            uint16 = 0x1400
	IndexRPDOCommEnd              uint16 = 0x14FF
	IndexRPDOMappingStart         uint16 = 0x1600
	IndexRPDOMappingEnd           uint16 = 0x16FF
	IndexTPDOCommStart            uint16 = 0x1800
	IndexTPDOCommEnd              uint16 = 0x18FF
	IndexTPDOMappingStart         uint16 = 0x1A00
	IndexTPDOMappingEnd           uint16 = 0x1AFF
	IndexCNNodeAssignment         uint16 = 0x1F81
	IndexRequestCycleMultiplexed  uint16 = 0x1F82
	IndexDLLMNPResMaxLatency      uint16 = 0x1F8C
	IndexNMTCycleTiming           uint16 = 0x1F98
	IndexNMTNodeID                uint16 = 0x1F93
	IndexErrorStatisticsEntries   uint16 = 0x1C0A
	IndexMultiplexedCycleAssign   uint16 = 0x1F9A
	IndexEPLVersion               uint16 = 0x1F83
)
