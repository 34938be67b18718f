package vm

import (
	"strconv"

	"github.com/mastercactapus/wpcnc/gcode"
)

func (in *Interpreter) spindleOn(dir Direction, args gcode.Block) []string {
	out := []string{tokenAck}

	// starting a stopped spindle folds the speed step's ACK into the relay code
	speedAck := in.st.Spindle.Running

	next := Spindle{Direction: dir, Running: true}
	if in.st.Spindle != next {
		in.st.Spindle = next
		out = append(out, relayCode(in.st.Spindle, in.st.Coolant))
	}

	ok, speed := args.Arg('S')
	if !ok {
		return append(out, tokenAck)
	}
	return append(out, setSpeed(speed, speedAck)...)
}

func setSpeed(speed float64, ack bool) []string {
	var out []string
	if ack {
		out = append(out, tokenAck)
	}
	out = append(out, tokenDelaySpeed)
	if speed <= 0 {
		return out
	}

	out = append(out, tokenAck)
	if code, ok := DutyCode(speed); ok {
		out = append(out, dutyPrefix+strconv.Itoa(code), tokenDelaySpeed)
	}
	return out
}

func (in *Interpreter) spindleStop() []string {
	out := []string{tokenAck}
	if in.st.Spindle.Running {
		in.st.Spindle.Running = false
		out = append(out, relayCode(in.st.Spindle, in.st.Coolant))
	}
	return append(out, tokenAck)
}

func (in *Interpreter) coolant(enabled bool) []string {
	out := []string{tokenAck}
	if in.st.Coolant.Enabled != enabled {
		in.st.Coolant.Enabled = enabled
		out = append(out, relayCode(in.st.Spindle, in.st.Coolant))
	}
	return out
}
