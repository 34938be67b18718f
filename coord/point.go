package coord

import (
	"math"
)

// Axis identifies one of the three linear axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists every axis in emission order.
var Axes = [...]Axis{X, Y, Z}

// Letter returns the word letter used for the axis.
func (a Axis) Letter() byte { return "XYZ"[a] }

// AxisFor returns the axis addressed by a word letter.
func AxisFor(letter byte) (Axis, bool) {
	switch letter {
	case 'X':
		return X, true
	case 'Y':
		return Y, true
	case 'Z':
		return Z, true
	}
	return 0, false
}

type Point struct{ X, Y, Z float64 }

// Axis returns the coordinate for a.
func (p Point) Axis(a Axis) float64 {
	switch a {
	case X:
		return p.X
	case Y:
		return p.Y
	}
	return p.Z
}

// SetAxis returns p with the coordinate for a replaced by val.
func (p Point) SetAxis(a Axis, val float64) Point {
	switch a {
	case X:
		p.X = val
	case Y:
		p.Y = val
	default:
		p.Z = val
	}
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}
