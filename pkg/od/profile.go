package od

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// LoadProfile builds an ObjectDictionary from an ini document shaped
// like:
//
//	[1000]
//	ParameterName=NMT_DeviceType_U32
//	ObjectType=0x7
//	DataType=0x7
//	AccessType=ro
//	PDOMapping=0
//	DefaultValue=0xF0001
//
//	[1018sub1]
//	ParameterName=NMT_IdentityObject_REC.VendorId_U32
//	...
//
// This is a deliberately smaller format than a full XDD/XML device
// description: one section per index, an optional "sub<N>" suffix per
// sub-index, values identical in spirit to a CANopen EDS but scoped to
// what the object dictionary needs to bootstrap.
func LoadProfile(path string) (*ObjectDictionary, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("od: loading profile: %w", err)
	}
	return buildFromIni(f)
}

func buildFromIni(f *ini.File) (*ObjectDictionary, error) {
	dict := New()
	lists := make(map[uint16]*VariableList)
	listNames := make(map[uint16]string)

	for _, section := range f.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}
		index, subIndex, hasSub, err := parseSectionName(name)
		if err != nil {
			continue
		}
		objectType := section.Key("ObjectType").MustString("0x7")
		if !hasSub && (objectType == "0x8" || objectType == "0x9") {
			kind := ObjectARRAY
			if objectType == "0x9" {
				kind = ObjectRECORD
			}
			lists[index] = &VariableList{Type: kind}
			listNames[index] = section.Key("ParameterName").MustString(fmt.Sprintf("index%04X", index))
			continue
		}
		v, err := variableFromSection(section, subIndex)
		if err != nil {
			return nil, fmt.Errorf("od: section %s: %w", name, err)
		}
		if hasSub {
			list, ok := lists[index]
			if !ok {
				list = &VariableList{Type: ObjectRECORD}
				lists[index] = list
				listNames[index] = fmt.Sprintf("index%04X", index)
			}
			list.Variables = append(list.Variables, v)
		} else {
			dict.AddVariable(index, v)
		}
	}
	for index, list := range lists {
		dict.AddList(index, listNames[index], list)
	}
	return dict, nil
}

func parseSectionName(name string) (index uint16, subIndex uint8, hasSub bool, err error) {
	lower := strings.ToLower(name)
	if pos := strings.Index(lower, "sub"); pos > 0 {
		idx, err := strconv.ParseUint(name[:pos], 16, 16)
		if err != nil {
			return 0, 0, false, err
		}
		sub, err := strconv.ParseUint(name[pos+3:], 10, 8)
		if err != nil {
			return 0, 0, false, err
		}
		return uint16(idx), uint8(sub), true, nil
	}
	idx, err := strconv.ParseUint(name, 16, 16)
	if err != nil {
		return 0, 0, false, err
	}
	return uint16(idx), 0, false, nil
}

func variableFromSection(section *ini.Section, subIndex uint8) (*Variable, error) {
	name := section.Key("ParameterName").MustString("")
	dataTypeRaw, err := strconv.ParseUint(section.Key("DataType").MustString("0x5"), 0, 8)
	if err != nil {
		return nil, fmt.Errorf("parsing DataType: %w", err)
	}
	dataType := DataType(dataTypeRaw)

	access := parseAccessType(section.Key("AccessType").MustString("rw"))
	mapping := MappingNone
	if section.Key("PDOMapping").MustBool(false) {
		mapping = MappingOptional
	}

	def, err := EncodeFromString(section.Key("DefaultValue").MustString(""), dataType)
	if err != nil {
		return nil, fmt.Errorf("parsing DefaultValue: %w", err)
	}
	v := NewVariable(name, subIndex, dataType, access, mapping, def)

	if raw := section.Key("LowLimit").MustString(""); raw != "" {
		if b, err := EncodeFromString(raw, dataType); err == nil {
			v.LowLimit = b
		}
	}
	if raw := section.Key("HighLimit").MustString(""); raw != "" {
		if b, err := EncodeFromString(raw, dataType); err == nil {
			v.HighLimit = b
		}
	}
	return v, nil
}

func parseAccessType(s string) AccessClass {
	switch strings.ToLower(s) {
	case "ro":
		return AccessReadOnly
	case "wo":
		return AccessWriteOnly
	case "const":
		return AccessConst
	default:
		return AccessReadWrite
	}
}
