// Package powerlink implements the deterministic real-time core of an
// Ethernet POWERLINK stack (EPSG DS 301 V1.5.1): the Data Link Layer
// cycle engine, the NMT state machines and boot coordinator, the Object
// Dictionary, the PDO mapping engine and the SDO sequence/command layer.
//
// The raw Ethernet driver, the UDP driver, XML device description
// parsing, CLI/config loading, logging export and the clock source are
// consumed through the narrow interfaces in interfaces.go; this module
// never dials a socket itself.
package powerlink

import "errors"

var (
	ErrIllegalArgument = errors.New("powerlink: illegal argument")
	ErrInvalidNodeID   = errors.New("powerlink: node id out of range [1,254]")
	ErrTimeout         = errors.New("powerlink: operation timed out")
	ErrNotConfigured   = errors.New("powerlink: component not configured")
	ErrWrongState      = errors.New("powerlink: operation not valid in current state")
	ErrBusy            = errors.New("powerlink: previous operation still in progress")
	ErrDriverIO        = errors.New("powerlink: driver I/O failure")
)
