package od

// NodeKind distinguishes the Managing Node from an ordinary Controlled
// Node for the purpose of which mandatory objects Bootstrap installs.
type NodeKind uint8

const (
	KindCN NodeKind = iota
	KindMN
)

func u32default(b uint32) []byte {
	v, _ := EncodeFromString(itoa(uint64(b)), Unsigned32)
	return v
}

func u16default(b uint16) []byte {
	v, _ := EncodeFromString(itoa(uint64(b)), Unsigned16)
	return v
}

func u8default(b uint8) []byte {
	v, _ := EncodeFromString(itoa(uint64(b)), Unsigned8)
	return v
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[i:])
}

// Bootstrap constructs an ObjectDictionary pre-populated with device
// type, error register, identity, cycle period, EPL version, start-up,
// node ID and cycle timing objects plus the RPDO/TPDO communication and
// mapping records; for KindMN it adds node assignment, multiplexed
// cycle assignment and count, and PRes max latency. Other DS 301 §6
// mandatory objects (e.g. 0x1020, 0x1300, 0x1C0A-0x1C0F) are not
// installed. Application- and profile-specific objects are added on
// top by the caller.
func Bootstrap(kind NodeKind, nodeID uint8) *ObjectDictionary {
	dict := New()

	dict.AddVariable(IndexDeviceType, NewVariable(
		"NMT_DeviceType_U32", 0, Unsigned32, AccessConst, MappingNone, u32default(0)))

	dict.AddVariable(IndexErrorRegister, NewVariable(
		"ERR_ErrorRegister_U8", 0, Unsigned8, AccessReadOnly, MappingDefault, u8default(0)))

	identity := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
		NewVariable("NMT_IdentityObject_REC.HighestSubIndex_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(4)),
		NewVariable("NMT_IdentityObject_REC.VendorId_U32", 1, Unsigned32, AccessConst, MappingNone, u32default(0)),
		NewVariable("NMT_IdentityObject_REC.ProductCode_U32", 2, Unsigned32, AccessConst, MappingNone, u32default(0)),
		NewVariable("NMT_IdentityObject_REC.RevisionNo_U32", 3, Unsigned32, AccessConst, MappingNone, u32default(0)),
		NewVariable("NMT_IdentityObject_REC.SerialNo_U32", 4, Unsigned32, AccessConst, MappingNone, u32default(0)),
	}}
	dict.AddList(IndexIdentity, "NMT_IdentityObject_REC", identity)

	dict.AddVariable(IndexCommCyclePeriod, NewVariable(
		"NMT_CycleLen_U32", 0, Unsigned32, AccessReadWrite, MappingNone, u32default(1000)))

	dict.AddVariable(IndexEPLVersion, NewVariable(
		"NMT_EPLVersion_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(0x20)))

	startup := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
		NewVariable("NMT_StartUp_U32", 0, Unsigned32, AccessReadWrite, MappingNone, u32default(0)),
	}}
	dict.AddList(IndexNMTStartUp, "NMT_StartUp_U32", startup)

	dict.AddVariable(IndexNMTNodeID, NewVariable(
		"NMT_NodeId_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(nodeID)))

	if kind == KindMN {
		assignment := &VariableList{Type: ObjectARRAY}
		for n := 0; n <= 239; n++ {
			assignment.Variables = append(assignment.Variables, NewVariable(
				"NMT_NodeAssignment_AU32", uint8(n), Unsigned32, AccessReadWrite, MappingNone, u32default(0)))
		}
		dict.AddList(IndexCNNodeAssignment, "NMT_NodeAssignment_AU32", assignment)

		multiplexed := &VariableList{Type: ObjectARRAY, Variables: []*Variable{
			NewVariable("NMT_MultiplCycleAssign_AU8.NumberOfEntries_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(239)),
		}}
		for n := 1; n <= 239; n++ {
			multiplexed.Variables = append(multiplexed.Variables, NewVariable(
				"NMT_MultiplCycleAssign_AU8", uint8(n), Unsigned8, AccessReadWrite, MappingNone, u8default(0)))
		}
		dict.AddList(IndexMultiplexedCycleAssign, "NMT_MultiplCycleAssign_AU8", multiplexed)

		dict.AddVariable(IndexRequestCycleMultiplexed, NewVariable(
			"NMT_CycleTiming_REC.MultiplCycleCnt_U8", 0, Unsigned8, AccessReadWrite, MappingNone, u8default(0)))

		latency := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
			NewVariable("DLL_MNPResMaxLatency_REC.HighestSubIndex_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(239)),
		}}
		for n := 1; n <= 239; n++ {
			latency.Variables = append(latency.Variables, NewVariable(
				"DLL_MNPResMaxLatency_REC", uint8(n), Unsigned32, AccessReadWrite, MappingNone, u32default(0)))
		}
		dict.AddList(IndexDLLMNPResMaxLatency, "DLL_MNPResMaxLatency_REC", latency)
	}

	cycleTiming := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
		NewVariable("NMT_CycleTiming_REC.HighestSubIndex_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(2)),
		NewVariable("NMT_CycleTiming_REC.IsochrTxMaxPayload_U16", 1, Unsigned16, AccessReadOnly, MappingNone, u16default(1490)),
		NewVariable("NMT_CycleTiming_REC.IsochrRxMaxPayload_U16", 2, Unsigned16, AccessReadOnly, MappingNone, u16default(1490)),
	}}
	dict.AddList(IndexNMTCycleTiming, "NMT_CycleTiming_REC", cycleTiming)

	for i := 0; i < 254; i++ {
		index := IndexRPDOCommStart + uint16(i)
		if index > IndexRPDOCommEnd {
			break
		}
		rec := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
			NewVariable("PDO_RxCommParam_REC.HighestSubIndex_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(2)),
			NewVariable("PDO_RxCommParam_REC.NodeID_U8", 1, Unsigned8, AccessReadWrite, MappingNone, u8default(0)),
			NewVariable("PDO_RxCommParam_REC.MappingVersion_U8", 2, Unsigned8, AccessReadWrite, MappingNone, u8default(0)),
		}}
		dict.AddList(index, "PDO_RxCommParam_REC", rec)

		mapIndex := IndexRPDOMappingStart + uint16(i)
		mapList := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
			NewVariable("PDO_RxMappParam_REC.NumberOfEntries_U8", 0, Unsigned8, AccessReadWrite, MappingNone, u8default(0)),
		}}
		for m := 1; m <= 8; m++ {
			mapList.Variables = append(mapList.Variables, NewVariable(
				"PDO_RxMappParam_REC", uint8(m), Unsigned64, AccessReadWrite, MappingNone, make([]byte, 8)))
		}
		dict.AddList(mapIndex, "PDO_RxMappParam_REC", mapList)
	}

	for i := 0; i < 254; i++ {
		index := IndexTPDOCommStart + uint16(i)
		if index > IndexTPDOCommEnd {
			break
		}
		rec := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
			NewVariable("PDO_TxCommParam_REC.HighestSubIndex_U8", 0, Unsigned8, AccessConst, MappingNone, u8default(2)),
			NewVariable("PDO_TxCommParam_REC.NodeID_U8", 1, Unsigned8, AccessReadWrite, MappingNone, u8default(0)),
			NewVariable("PDO_TxCommParam_REC.MappingVersion_U8", 2, Unsigned8, AccessReadWrite, MappingNone, u8default(0)),
		}}
		dict.AddList(index, "PDO_TxCommParam_REC", rec)

		mapIndex := IndexTPDOMappingStart + uint16(i)
		mapList := &VariableList{Type: ObjectRECORD, Variables: []*Variable{
			NewVariable("PDO_TxMappParam_REC.NumberOfEntries_U8", 0, Unsigned8, AccessReadWrite, MappingNone, u8default(0)),
		}}
		for m := 1; m <= 8; m++ {
			mapList.Variables = append(mapList.Variables, NewVariable(
				"PDO_TxMappParam_REC", uint8(m), Unsigned64, AccessReadWrite, MappingNone, make([]byte, 8)))
		}
		dict.AddList(mapIndex, "PDO_TxMappParam_REC", mapList)
	}

	return dict
}
