package vm

import (
	"strconv"

	"github.com/mastercactapus/wpcnc/coord"
)

const mmPerInch = 25.4

// MotionMode is the last motion type sent to the controller.
type MotionMode byte

const (
	MotionNone MotionMode = iota
	MotionRapid
	MotionCoordinated
)

func (m MotionMode) String() string {
	switch m {
	case MotionRapid:
		return "rapid"
	case MotionCoordinated:
		return "coordinated"
	}
	return "none"
}

type Plane byte

const (
	PlaneXY Plane = iota // G17
	PlaneXZ              // G18
	PlaneYZ              // G19
)

func (p Plane) String() string {
	switch p {
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	}
	return "XY"
}

// Direction is the spindle rotation direction.
type Direction byte

const (
	CW Direction = iota
	CCW
)

type Spindle struct {
	Direction Direction
	Running   bool
}

type Coolant struct {
	Enabled bool
}

// relayCode encodes the combined spindle and coolant outputs.
//
// The prefix selects the direction, the digit carries the spindle
// (bit 0) and coolant (bit 1) outputs.
func relayCode(s Spindle, c Coolant) string {
	prefix := relayPrefixCW
	if s.Direction == CCW {
		prefix = relayPrefixCCW
	}
	var n int
	if s.Running {
		n |= 1
	}
	if c.Enabled {
		n |= 2
	}
	return prefix + strconv.Itoa(n)
}

// State is the modal state of an interpreter session.
type State struct {
	// Scale is 1 for millimeters and 25.4 for inches.
	Scale    float64
	Absolute bool
	Plane    Plane

	Position coord.Point

	// Offset is added to every emitted coordinate.
	Offset coord.Point

	Motion        MotionMode
	Feed          float64
	PathTolerance float64

	Spindle Spindle
	Coolant Coolant

	End bool
}

// DefaultOffset is the machine-origin offset applied when none is configured.
var DefaultOffset = coord.Point{X: 10, Y: 10, Z: 10}

func defaultState() State {
	return State{
		Scale:    1,
		Absolute: true,
		Plane:    PlaneXY,
		Offset:   DefaultOffset,
		Motion:   MotionNone,
		Spindle:  Spindle{Direction: CW, Running: true},
	}
}
