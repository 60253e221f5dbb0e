package network

import "errors"

var errLossOfPRes = errors.New("network: CN's LossOfPRes counter crossed threshold")
