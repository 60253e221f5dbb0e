package dll

import "errors"

var (
	errUnknownNode  = errors.New("dll: unknown node id in isochronous slot list")
	errWrongPhase   = errors.New("dll: operation not valid in current cycle phase")
	errQueueUnknown = errors.New("dll: unknown async queue kind")
)
