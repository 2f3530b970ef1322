package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The timer layer and other
// platform packages return these (optionally wrapped) so services can
// translate them into domain errors or outcomes.
//
//   - ErrInvalidState: a component is in the wrong state for the requested operation
//   - ErrConflict: the operation would overlap with one already in flight
//   - ErrUnavailable: the component has stopped and no longer accepts work
var (
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
)
