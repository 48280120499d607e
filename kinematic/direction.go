package kinematic

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

// Direction is the incoming direction of a collision along one axis.
type Direction uint8

const (
	DirNone Direction = iota
	DirRight
	DirLeft
	DirUp
	DirDown
)

func (d Direction) Vector() cp.Vector {
	switch d {
	case DirRight:
		return common.Right
	case DirLeft:
		return common.Left
	case DirUp:
		return common.Up
	case DirDown:
		return common.Down
	default:
		return cp.Vector{}
	}
}

func (d Direction) Horizontal() bool {
	return d == DirRight || d == DirLeft
}

func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "+X"
	case DirLeft:
		return "-X"
	case DirUp:
		return "+Y"
	case DirDown:
		return "-Y"
	default:
		return "none"
	}
}

func horizontalDirection(vx float64) Direction {
	switch {
	case vx > 0:
		return DirRight
	case vx < 0:
		return DirLeft
	default:
		return DirNone
	}
}

func verticalDirection(vy float64) Direction {
	switch {
	case vy > 0:
		return DirUp
	case vy < 0:
		return DirDown
	default:
		return DirNone
	}
}
