package kinematic

import "errors"

var (
	ErrNoGeometry     = errors.New("kinematic: no geometry query attached")
	ErrInvalidExtents = errors.New("kinematic: half extents must be positive")
	ErrInvalidConfig  = errors.New("kinematic: invalid config")
	ErrReentrantTick  = errors.New("kinematic: tick re-entered while already ticking")
)
