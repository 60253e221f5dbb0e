package od

import "fmt"

// ODR is the object dictionary access result code, DS 301 Table 79's
// object-dictionary-local subset (the sdo package owns the mapping from
// ODR to the wire-level SDO abort code; this package has no knowledge
// of SDO).
type ODR int8

const (
	ODRPartial      ODR = -1
	ODRNone         ODR = 0
	ODROutOfMemory  ODR = 1
	ODRUnsuppAccess ODR = 2
	ODRWriteOnly    ODR = 3
	ODRReadOnly     ODR = 4
	ODRIdxNotExist  ODR = 5
	ODRNoMap        ODR = 6
	ODRMapLen       ODR = 7
	ODRParIncompat  ODR = 8
	ODRDevIncompat  ODR = 9
	ODRHardware     ODR = 10
	ODRTypeMismatch ODR = 11
	ODRDataLong     ODR = 12
	ODRDataShort    ODR = 13
	ODRSubNotExist  ODR = 14
	ODRInvalidValue ODR = 15
	ODRValueHigh    ODR = 16
	ODRValueLow     ODR = 17
	ODRMaxLessMin   ODR = 18
	ODRNoResource   ODR = 19
	ODRGeneral      ODR = 20
	ODRDataTransfer ODR = 21
	ODRDataLocCtrl  ODR = 22
	ODRDataDevState ODR = 23
	ODRMissing      ODR = 24
	ODRNoData       ODR = 25
)

var odrDescription = map[ODR]string{
	ODRPartial:      "incomplete transfer",
	ODRNone:         "no error",
	ODROutOfMemory:  "out of memory",
	ODRUnsuppAccess: "unsupported access",
	ODRWriteOnly:    "attempt to read a write-only object",
	ODRReadOnly:     "attempt to write a read-only object",
	ODRIdxNotExist:  "object does not exist",
	ODRNoMap:        "object cannot be mapped to a PDO",
	ODRMapLen:       "number and length of mapped objects exceeds PDO length",
	ODRParIncompat:  "general parameter incompatibility",
	ODRDevIncompat:  "general internal incompatibility",
	ODRHardware:     "access failed due to a hardware error",
	ODRTypeMismatch: "data type mismatch",
	ODRDataLong:     "data type mismatch: length too high",
	ODRDataShort:    "data type mismatch: length too short",
	ODRSubNotExist:  "sub-index does not exist",
	ODRInvalidValue: "invalid value for parameter",
	ODRValueHigh:    "value written too high",
	ODRValueLow:     "value written too low",
	ODRMaxLessMin:   "maximum value is less than minimum value",
	ODRNoResource:   "resource unavailable",
	ODRGeneral:      "general error",
	ODRDataTransfer: "data cannot be transferred or stored",
	ODRDataLocCtrl:  "data cannot be transferred because of local control",
	ODRDataDevState: "data cannot be transferred in the current device state",
	ODRMissing:      "object dictionary not present or dynamic generation failed",
	ODRNoData:       "no data available",
}

func (e ODR) Error() string {
	if d, ok := odrDescription[e]; ok {
		return fmt.Sprintf("od: %s", d)
	}
	return fmt.Sprintf("od: error %d", int8(e))
}
