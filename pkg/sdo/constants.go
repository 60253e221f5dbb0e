// Package sdo implements the SDO sequence and command layers: reliable,
// in-order, optionally segmented object-dictionary access carried over
// ASnd or UDP. It uses pkg/od for the dictionary a Server reads and
// writes and for ODR-to-abort-code translation; it has no knowledge of
// frame encoding, and reaches its carrier only through Transport.
package sdo

// ConnState is the sequence layer's connection state, DS 301 §4.6.4 —
// idle, initializing (handshake in flight), connected (normal data
// exchange), closing (local side requested shutdown).
type ConnState uint8

const (
	StateIdle ConnState = iota
	StateInitializing
	StateConnected
	StateClosing
)

// Con is the 2-bit connection-control field carried alongside each
// 6-bit sequence number.
type Con uint8

const (
	ConNoConnection     Con = 0
	ConInitialization    Con = 1
	ConConnectionValid   Con = 2
	ConErrorRetransmit   Con = 3
)

// CommandID identifies the command-layer operation, DS 301 §6.3.2.3.
type CommandID uint8

const (
	CommandNone              CommandID = 0x00
	CommandWriteByIndex      CommandID = 0x01
	CommandReadByIndex       CommandID = 0x02
	CommandWriteAllByIndex   CommandID = 0x03
	CommandReadAllByIndex    CommandID = 0x04
	CommandWriteMultiple     CommandID = 0x05
	CommandReadMultiple      CommandID = 0x06
	CommandMaxSegmentSize    CommandID = 0x07
)

// Segmentation identifies which part of a (possibly multi-frame)
// transfer this command frame carries.
type Segmentation uint8

const (
	SegmentExpedited Segmentation = iota
	SegmentInitiate
	SegmentMiddle
	SegmentComplete
)

const (
	// DefaultRetransmitTimeoutMs is a retransmission timeout in
	// milliseconds. Nothing in this package reads it: SequenceLayer
	// keeps no timer and never resends a frame on its own.
	DefaultRetransmitTimeoutMs = 500
	// MaxRetransmits is the retry count above which
	// SequenceLayer.NoteRetransmit reports shouldAbort; the layer does
	// not tear the connection down itself.
	MaxRetransmits = 5
	// SeqNumModulo is the wraparound point for the 6-bit sequence
	// number space.
	SeqNumModulo = 64
)
