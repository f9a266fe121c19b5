package trading

import "errors"

var (
	errBadFieldCount = errors.New("wrong field count")
	errUnknownSide   = errors.New("unknown side")
	errUnknownBook   = errors.New("unknown book")
	errUnknownState  = errors.New("unknown inquiry state")
	errCyclicWiring  = errors.New("service wiring contains a cycle")
)
