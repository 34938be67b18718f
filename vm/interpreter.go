package vm

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mastercactapus/wpcnc/coord"
	"github.com/mastercactapus/wpcnc/gcode"
)

// Interpreter tracks modal state and translates instruction groups into
// controller tokens.
//
// An Interpreter is not safe for concurrent use; run one per session.
type Interpreter struct {
	st     State
	params *gcode.Params
	buf    []string

	// synced is set once a motion has told the controller where it is.
	synced bool
}

// NewInterpreter constructs a new Interpreter with default state.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		st:     defaultState(),
		params: gcode.NewParams(),
	}
}

func (in *Interpreter) State() State          { return in.st }
func (in *Interpreter) Params() *gcode.Params { return in.params }
func (in *Interpreter) Ended() bool           { return in.st.End }

// SetPosition seeds the believed machine position, in program units.
func (in *Interpreter) SetPosition(p coord.Point) { in.st.Position = p }

// SetOffset sets the translation added to every emitted coordinate.
func (in *Interpreter) SetOffset(p coord.Point) { in.st.Offset = p }

// SetCoolant seeds the coolant output state.
func (in *Interpreter) SetCoolant(enabled bool) { in.st.Coolant.Enabled = enabled }

// Buffer returns a copy of the tokens emitted so far.
func (in *Interpreter) Buffer() []string {
	res := make([]string, len(in.buf))
	copy(res, in.buf)
	return res
}

// Drain returns the emitted tokens and empties the buffer.
func (in *Interpreter) Drain() []string {
	res := in.buf
	in.buf = nil
	return res
}

func (in *Interpreter) ResetBuffer() { in.buf = nil }

// Run interprets one program line.
//
// Parameter assignments are stored and produce no tokens. Other lines have
// their parameter references substituted and every instruction group is
// processed in order. Groups processed before a failing one stay applied.
func (in *Interpreter) Run(line string) error {
	ok, err := in.params.ReadAssignment(line)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	line, err = in.params.Substitute(line)
	if err != nil {
		return err
	}

	groups, err := gcode.Split(line)
	if err != nil {
		return err
	}
	for _, g := range groups {
		err = in.Process(g)
		if err != nil {
			return err
		}
	}

	return nil
}

// Process interprets a single instruction group.
//
// On error no tokens are emitted and the state is left untouched.
func (in *Interpreter) Process(g gcode.Group) error {
	ins, err := gcode.ParseInstruction(g)
	if errors.Is(err, gcode.ErrUnsupportedCode) {
		return fmt.Errorf("%w: %s", ErrUnknownInstruction, g[0])
	}
	if err != nil {
		return err
	}

	tokens, err := in.exec(ins)
	if err != nil {
		return fmt.Errorf("%s: %w", ins.Word, err)
	}
	in.buf = append(in.buf, tokens...)
	return nil
}

func (in *Interpreter) exec(ins gcode.Instruction) ([]string, error) {
	switch ins.Code {
	case gcode.Rapid:
		return in.move(MotionRapid, ins.Args), nil
	case gcode.Linear:
		return in.move(MotionCoordinated, ins.Args), nil
	case gcode.ArcCW:
		return in.arc(true, ins.Args)
	case gcode.ArcCCW:
		return in.arc(false, ins.Args)

	case gcode.SpindleCW:
		return in.spindleOn(CW, ins.Args), nil
	case gcode.SpindleCCW:
		return in.spindleOn(CCW, ins.Args), nil
	case gcode.SpindleStop:
		return in.spindleStop(), nil
	case gcode.MistOn, gcode.FloodOn:
		return in.coolant(true), nil
	case gcode.CoolantOff:
		return in.coolant(false), nil

	case gcode.Feed:
		in.st.Feed = ins.Word.Arg
		feed := strconv.FormatInt(int64(math.Round(ins.Word.Arg*1000)), 10)
		return []string{tokenAck, headerFeedMetric + "," + feed, headerFeedImperial + "," + feed}, nil

	case gcode.PlaneXY:
		in.st.Plane = PlaneXY
	case gcode.PlaneXZ:
		in.st.Plane = PlaneXZ
	case gcode.PlaneYZ:
		in.st.Plane = PlaneYZ
	case gcode.UnitsInch:
		in.st.Scale = mmPerInch
	case gcode.UnitsMM:
		in.st.Scale = 1
	case gcode.Absolute:
		in.st.Absolute = true
	case gcode.Incremental:
		in.st.Absolute = false
	case gcode.PathBlending:
		if ok, p := ins.Args.Arg('P'); ok {
			in.st.PathTolerance = p
		}
	case gcode.Pause, gcode.OptionalPause:
	case gcode.EndProgram, gcode.EndRewind:
		in.st.End = true

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, ins.Code)
	}

	return []string{tokenAck}, nil
}

// snapXY rounds the X and Y coordinates of p to the controller resolution.
func (in *Interpreter) snapXY(p coord.Point) coord.Point {
	res := in.st.Scale * 1000
	p.X = float64(in.machineUnits(p.X)) / res
	p.Y = float64(in.machineUnits(p.Y)) / res
	return p
}

// machineUnits converts a program coordinate to controller micrometers.
func (in *Interpreter) machineUnits(v float64) int64 {
	return int64(math.Round(v * in.st.Scale * 1000))
}
