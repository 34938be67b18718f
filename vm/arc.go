package vm

import (
	"fmt"
	"math"

	"github.com/mastercactapus/wpcnc/coord"
	"github.com/mastercactapus/wpcnc/gcode"
)

const (
	// arcTolerance is how far a chord may exceed the diameter before
	// a radius arc is rejected.
	arcTolerance = 1e-6

	// sweeps smaller than half a microradian are full turns
	fullTurnEpsilon = 5e-7
)

// AngleCW returns the clockwise angle of (dx,dy) from the positive X axis,
// in [0, 2π).
func AngleCW(dx, dy float64) float64 {
	a := -math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleCCW returns the counterclockwise angle of (dx,dy) from the positive
// X axis, in [0, 2π).
func AngleCCW(dx, dy float64) float64 {
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// radiusCenter finds the center of the circle of the given radius through
// cur and end. A positive radius selects the short arc in the requested
// direction, a negative one the long arc.
func radiusCenter(cur, end coord.Point, radius float64, clockwise bool) (coord.Point, error) {
	if cur.X == end.X && cur.Y == end.Y {
		return coord.Point{}, fmt.Errorf("%w: endpoint equals current position with radius", ErrArcGeometry)
	}
	if radius == 0 {
		return coord.Point{}, fmt.Errorf("%w: zero radius", ErrArcGeometry)
	}

	dist := cur.DistanceXY(end.X, end.Y)
	delta := dist - math.Abs(radius)*2
	if delta > arcTolerance {
		return coord.Point{}, fmt.Errorf("%w: radius %g too small for chord %g", ErrArcGeometry, radius, dist)
	} else if delta > 0 {
		dist = math.Abs(radius) * 2
	}

	theta := math.Atan2(end.Y-cur.Y, end.X-cur.X)
	if (clockwise && radius > 0) || (!clockwise && radius < 0) {
		theta -= math.Pi / 2
	} else {
		theta += math.Pi / 2
	}

	half := dist / 2
	offset := math.Sqrt(math.Max(radius*radius-half*half, 0))
	return coord.Point{
		X: (cur.X+end.X)/2 + offset*math.Cos(theta),
		Y: (cur.Y+end.Y)/2 + offset*math.Sin(theta),
		Z: cur.Z,
	}, nil
}

// sweepAngle returns the signed angle travelled from start to end around
// center; negative for clockwise.
func sweepAngle(start, end, center coord.Point, clockwise bool) float64 {
	angle := AngleCCW
	if clockwise {
		angle = AngleCW
	}

	sweep := angle(end.X-center.X, end.Y-center.Y) - angle(start.X-center.X, start.Y-center.Y)
	if sweep < fullTurnEpsilon {
		sweep += 2 * math.Pi
	}
	if clockwise {
		return -sweep
	}
	return sweep
}

func (in *Interpreter) arc(clockwise bool, args gcode.Block) ([]string, error) {
	start := in.start()
	end, _ := in.target(start, args)
	if end.Z != start.Z {
		return nil, fmt.Errorf("%w: helical arcs are not supported", ErrArcGeometry)
	}

	hasR, r := args.Arg('R')
	hasI, i := args.Arg('I')
	hasJ, j := args.Arg('J')

	// the controller only reaches points on its micrometer grid
	from, to := in.snapXY(start), in.snapXY(end)

	var center coord.Point
	switch {
	case hasR && (hasI || hasJ):
		return nil, fmt.Errorf("%w: both center point and radius specified", ErrArcGeometry)
	case hasR:
		var err error
		center, err = radiusCenter(from, to, r, clockwise)
		if err != nil {
			return nil, err
		}
	case (hasI || hasJ) && (i != 0 || j != 0):
		center = from.Add(coord.Point{X: i, Y: j})
	default:
		return nil, fmt.Errorf("%w: expected center point or radius", ErrArcGeometry)
	}

	sweep := sweepAngle(from, to, center, clockwise)
	tok := fmt.Sprintf("%s,x%d,y%d,p%d",
		headerArc,
		in.machineUnits(center.X-from.X),
		in.machineUnits(center.Y-from.Y),
		int64(math.Ceil(sweep*1e6)),
	)

	out := append([]string{tokenAck}, in.handshake(MotionCoordinated)...)
	out = append(out, tok)

	in.st.Motion = MotionCoordinated
	in.st.Position = end
	in.synced = true
	return out, nil
}
