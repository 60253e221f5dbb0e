package sdo

import (
	"errors"
	"fmt"

	"github.com/epsg-core/powerlink/pkg/od"
)

var (
	ErrWrongState       = errors.New("sdo: command received in wrong connection state")
	ErrSeqNumOutOfOrder = errors.New("sdo: sequence number out of order")
	ErrTransactionMismatch = errors.New("sdo: response transaction id does not match request")
	ErrTruncated        = errors.New("sdo: truncated frame")
)

// AbortCode is the wire-level SDO abort code, DS 301 Table 79.
type AbortCode uint32

const (
	AbortToggleBit         AbortCode = 0x05030000
	AbortTimeout           AbortCode = 0x05040000
	AbortCommandInvalid    AbortCode = 0x05040001
	AbortSeqNum            AbortCode = 0x05040003
	AbortOutOfMemory       AbortCode = 0x05040005
	AbortUnsupportedAccess AbortCode = 0x06010000
	AbortWriteOnly         AbortCode = 0x06010001
	AbortReadOnly          AbortCode = 0x06010002
	AbortNotExist          AbortCode = 0x06020000
	AbortNoMap             AbortCode = 0x06040041
	AbortMapLen            AbortCode = 0x06040042
	AbortParamIncompat     AbortCode = 0x06040043
	AbortDeviceIncompat    AbortCode = 0x06040047
	AbortHardware          AbortCode = 0x06060000
	AbortTypeMismatch      AbortCode = 0x06070010
	AbortDataLong          AbortCode = 0x06070012
	AbortDataShort         AbortCode = 0x06070013
	AbortSubUnknown        AbortCode = 0x06090011
	AbortInvalidValue      AbortCode = 0x06090030
	AbortValueHigh         AbortCode = 0x06090031
	AbortValueLow          AbortCode = 0x06090032
	AbortMaxLessMin        AbortCode = 0x06090036
	AbortNoResource        AbortCode = 0x060A0023
	AbortGeneral           AbortCode = 0x08000000
	AbortDataTransfer      AbortCode = 0x08000020
	AbortDataLocalControl  AbortCode = 0x08000021
	AbortDataDeviceState   AbortCode = 0x08000022
	AbortDataOD            AbortCode = 0x08000023
	AbortNoData            AbortCode = 0x08000024
)

var abortDescription = map[AbortCode]string{
	AbortToggleBit:         "toggle bit not altered",
	AbortTimeout:           "SDO protocol timed out",
	AbortCommandInvalid:    "command specifier not valid or unknown",
	AbortSeqNum:            "invalid sequence number",
	AbortUnsupportedAccess: "unsupported access to an object",
	AbortWriteOnly:         "attempt to read a write-only object",
	AbortReadOnly:          "attempt to write a read-only object",
	AbortNotExist:          "object does not exist in the object dictionary",
	AbortNoMap:             "object cannot be mapped to a PDO",
	AbortMapLen:            "number and length of mapped objects exceeds PDO length",
	AbortParamIncompat:     "general parameter incompatibility",
	AbortDeviceIncompat:    "general internal incompatibility in device",
	AbortHardware:          "access failed due to a hardware error",
	AbortTypeMismatch:      "data type does not match",
	AbortDataLong:          "data type mismatch: length too high",
	AbortDataShort:         "data type mismatch: length too short",
	AbortSubUnknown:        "sub-index does not exist",
	AbortInvalidValue:      "invalid value for parameter",
	AbortValueHigh:         "value written too high",
	AbortValueLow:          "value written too low",
	AbortMaxLessMin:        "maximum value is less than minimum value",
	AbortNoResource:        "resource not available: SDO connection",
	AbortGeneral:           "general error",
	AbortDataTransfer:      "data cannot be transferred or stored",
	AbortDataLocalControl:  "data cannot be transferred because of local control",
	AbortDataDeviceState:   "data cannot be transferred in the current device state",
	AbortDataOD:            "object dictionary not present or dynamic generation failed",
	AbortNoData:            "no data available",
}

func (a AbortCode) Error() string {
	if d, ok := abortDescription[a]; ok {
		return fmt.Sprintf("sdo abort 0x%08X: %s", uint32(a), d)
	}
	return fmt.Sprintf("sdo abort 0x%08X", uint32(a))
}

// odToAbort maps an object dictionary result code to the SDO abort
// code reported on the wire. Owned here, not in pkg/od, so pkg/od has
// no knowledge of the SDO wire format.
var odToAbort = map[od.ODR]AbortCode{
	od.ODROutOfMemory:  AbortOutOfMemory,
	od.ODRUnsuppAccess: AbortUnsupportedAccess,
	od.ODRWriteOnly:    AbortWriteOnly,
	od.ODRReadOnly:     AbortReadOnly,
	od.ODRIdxNotExist:  AbortNotExist,
	od.ODRNoMap:        AbortNoMap,
	od.ODRMapLen:       AbortMapLen,
	od.ODRParIncompat:  AbortParamIncompat,
	od.ODRDevIncompat:  AbortDeviceIncompat,
	od.ODRHardware:     AbortHardware,
	od.ODRTypeMismatch: AbortTypeMismatch,
	od.ODRDataLong:     AbortDataLong,
	od.ODRDataShort:    AbortDataShort,
	od.ODRSubNotExist:  AbortSubUnknown,
	od.ODRInvalidValue: AbortInvalidValue,
	od.ODRValueHigh:    AbortValueHigh,
	od.ODRValueLow:     AbortValueLow,
	od.ODRMaxLessMin:   AbortMaxLessMin,
	od.ODRNoResource:   AbortNoResource,
	od.ODRGeneral:      AbortGeneral,
	od.ODRDataTransfer: AbortDataTransfer,
	od.ODRDataLocCtrl:  AbortDataLocalControl,
	od.ODRDataDevState: AbortDataDeviceState,
	od.ODRMissing:      AbortDataOD,
	od.ODRNoData:       AbortNoData,
}

// ConvertODRToAbort returns the abort code associated with err, or
// AbortDeviceIncompat if err is not a recognized od.ODR.
func ConvertODRToAbort(err error) AbortCode {
	odr, ok := err.(od.ODR)
	if !ok {
		return AbortDeviceIncompat
	}
	if code, ok := odToAbort[odr]; ok {
		return code
	}
	return AbortDeviceIncompat
}
