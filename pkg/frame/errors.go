package frame

import "errors"

var (
	ErrInvalidEtherType   = errors.New("frame: not a POWERLINK EtherType")
	ErrUnknownMessageType = errors.New("frame: unknown message type")
	ErrTruncatedFrame     = errors.New("frame: truncated frame")
	ErrFieldOutOfRange    = errors.New("frame: field out of range")
)
