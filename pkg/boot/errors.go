package boot

import "errors"

var (
	errUnknownNode       = errors.New("boot: unknown node id")
	errIdentityMismatch  = errors.New("boot: CN identity does not match expectation")
)
