package vm

import (
	"strconv"
	"strings"

	"github.com/mastercactapus/wpcnc/coord"
	"github.com/mastercactapus/wpcnc/gcode"
)

// start returns the point motion is measured from.
//
// Until the first motion is sent, incremental moves have no absolute
// reference and are taken from the origin.
func (in *Interpreter) start() coord.Point {
	if !in.synced && !in.st.Absolute {
		return coord.Point{}
	}
	return in.st.Position
}

// target applies the axis words in args to start.
func (in *Interpreter) target(start coord.Point, args gcode.Block) (p coord.Point, mentioned [3]bool) {
	p = start
	for _, w := range args {
		a, ok := coord.AxisFor(w.W)
		if !ok {
			continue
		}
		mentioned[a] = true
		if in.st.Absolute {
			p = p.SetAxis(a, w.Arg)
		} else {
			p = p.SetAxis(a, start.Axis(a)+w.Arg)
		}
	}
	return p, mentioned
}

// handshake returns the tokens switching the controller into mode.
func (in *Interpreter) handshake(mode MotionMode) []string {
	if mode == in.st.Motion {
		return nil
	}
	switch mode {
	case MotionCoordinated:
		if in.st.Motion == MotionRapid {
			return []string{tokenAck, tokenCoordinatedMode, tokenDelayShort}
		}
		return []string{tokenCoordinatedMode, tokenDelayShort}
	case MotionRapid:
		if in.st.Motion == MotionCoordinated {
			return []string{
				tokenRapidMode, tokenDelayShort,
				tokenAck, tokenRapidMode, tokenDelayShort,
			}
		}
	}
	return nil
}

func (in *Interpreter) move(mode MotionMode, args gcode.Block) []string {
	start := in.start()
	target, mentioned := in.target(start, args)

	var changed [3]bool
	var moved bool
	for _, a := range coord.Axes {
		switch {
		case !in.synced && in.st.Absolute:
			changed[a] = mentioned[a]
		case !in.synced:
			changed[a] = true
		default:
			changed[a] = target.Axis(a) != in.st.Position.Axis(a)
		}
		moved = moved || changed[a]
	}
	if !moved {
		return nil
	}

	header := headerCoordinated
	if mode == MotionRapid {
		switch {
		case changed[coord.Z]:
			header = headerRapidZ
		case changed[coord.X]:
			header = headerRapidX
		default:
			header = headerRapidY
		}
	}

	var sb strings.Builder
	sb.WriteString(header)
	for _, a := range coord.Axes {
		if !changed[a] {
			continue
		}
		sb.WriteByte(',')
		sb.WriteByte(a.Letter())
		sb.WriteString(strconv.FormatInt(in.machineUnits(target.Axis(a)+in.st.Offset.Axis(a)), 10))
	}

	out := append([]string{tokenAck}, in.handshake(mode)...)
	out = append(out, sb.String())

	in.st.Motion = mode
	in.st.Position = target
	in.synced = true
	return out
}
