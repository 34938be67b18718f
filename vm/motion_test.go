package vm

import (
	"testing"

	"github.com/mastercactapus/wpcnc/coord"
	"github.com/mastercactapus/wpcnc/gcode"
	"github.com/stretchr/testify/assert"
)

func TestRapidMotion(t *testing.T) {
	cases := []struct {
		name   string
		pos    coord.Point
		groups []gcode.Group
		expect []string
	}{
		{"X0", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X0"}},
			[]string{"E", "V1,X10000"}},
		{"X10", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X10"}},
			[]string{"E", "V1,X20000"}},
		{"X10 X20", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X10"}, {"G0", "X20"}},
			[]string{"E", "V1,X20000", "E", "V1,X30000"}},
		{"Y10", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "Y10"}},
			[]string{"E", "V2,Y20000"}},
		{"Y10 Y20", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "Y10"}, {"G0", "Y20"}},
			[]string{"E", "V2,Y20000", "E", "V2,Y30000"}},
		{"XY0", coord.Point{X: 5, Y: 9.5, Z: 2},
			[]gcode.Group{{"G0", "X0", "Y0"}},
			[]string{"E", "V1,X10000,Y10000"}},
		{"X0 repeat", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X0"}, {"G0", "X0"}},
			[]string{"E", "V1,X10000"}},
		{"Y10 repeat", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "Y10"}, {"G0", "Y10"}},
			[]string{"E", "V2,Y20000"}},
		{"XY0 repeat", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X0", "Y0"}, {"G0", "X0", "Y0"}},
			[]string{"E", "V1,X10000,Y10000"}},
		{"Z0", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "Z0"}},
			[]string{"E", "V3,Z10000"}},
		{"Z0 Z10", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "Z0"}, {"G0", "Z10"}},
			[]string{"E", "V3,Z10000", "E", "V3,Z20000"}},
		{"XZ", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X0"}, {"G0", "X1", "Z1"}},
			[]string{"E", "V1,X10000", "E", "V3,X11000,Z11000"}},
		{"incremental", coord.Point{X: 5, Z: 2},
			[]gcode.Group{{"G0", "X0"}, {"G91"}, {"G0", "X5"}, {"G0", "X5"}},
			[]string{"E", "V1,X10000", "E", "E", "V1,X15000", "E", "V1,X20000"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := newTestInterpreter(c.pos)
			process(t, in, c.groups...)
			assert.Equal(t, c.expect, in.Buffer())
			assert.Equal(t, MotionRapid, in.State().Motion)
		})
	}
}

func TestRapidMotion_FirstMove(t *testing.T) {
	t.Run("incremental", func(t *testing.T) {
		in := newTestInterpreter(coord.Point{X: 9, Y: 9})
		process(t, in, gcode.Group{"G91"})
		in.ResetBuffer()
		process(t, in, gcode.Group{"G0", "X0", "Y0"})
		assert.Equal(t, []string{"E", "V3,X10000,Y10000,Z10000"}, in.Buffer())
		assert.Equal(t, coord.Point{}, in.State().Position)
	})

	t.Run("absolute then incremental", func(t *testing.T) {
		in := newTestInterpreter(coord.Point{X: 9, Y: 9})
		process(t, in, gcode.Group{"G0", "X0", "Y0"}, gcode.Group{"G91"})
		in.ResetBuffer()
		process(t, in, gcode.Group{"G0", "X1", "Y1"})
		assert.Equal(t, []string{"E", "V1,X11000,Y11000"}, in.Buffer())
	})

	t.Run("unchanged axes are sent once", func(t *testing.T) {
		in := newTestInterpreter(coord.Point{})
		process(t, in, gcode.Group{"G0", "X0", "Y0"}, gcode.Group{"G0", "X0", "Y0"})
		assert.Equal(t, []string{"E", "V1,X10000,Y10000"}, in.Buffer())
	})
}

func TestRapidMotion_Inches(t *testing.T) {
	in := newTestInterpreter(coord.Point{})
	in.SetOffset(coord.Point{})
	process(t, in, gcode.Group{"G20"}, gcode.Group{"G0", "X1", "Y-0.5"})
	assert.Equal(t, []string{"E", "E", "V1,X25400,Y-12700"}, in.Buffer())
	assert.Equal(t, coord.Point{X: 1, Y: -0.5}, in.State().Position)
}

func TestCoordinatedMotion(t *testing.T) {
	cases := []struct {
		name   string
		groups []gcode.Group
		expect []string
	}{
		{"X0",
			[]gcode.Group{{"G1", "X0"}},
			[]string{"E", "C08", "W10", "V21,X10000"}},
		{"Z0",
			[]gcode.Group{{"G1", "Z0"}},
			[]string{"E", "C08", "W10", "V21,Z10000"}},
		{"XYZ1",
			[]gcode.Group{{"G1", "X1"}, {"G1", "Y1"}, {"G1", "Z1"}},
			[]string{"E", "C08", "W10", "V21,X11000", "E", "V21,Y11000", "E", "V21,Z11000"}},
		{"XYZ1 incremental",
			[]gcode.Group{{"G91"}, {"G1", "X1"}, {"G1", "Y1"}, {"G1", "Z1"}},
			[]string{"E", "E", "C08", "W10", "V21,X11000,Y10000,Z10000", "E", "V21,Y11000", "E", "V21,Z11000"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := newTestInterpreter(coord.Point{X: 5, Z: 2})
			process(t, in, c.groups...)
			assert.Equal(t, c.expect, in.Buffer())
			assert.Equal(t, MotionCoordinated, in.State().Motion)
		})
	}
}

func TestMotionSwitching(t *testing.T) {
	t.Run("G0 G1 G0", func(t *testing.T) {
		in := newTestInterpreter(coord.Point{X: 9, Y: 9})
		process(t, in,
			gcode.Group{"G0", "X0", "Y0"},
			gcode.Group{"G1", "X5", "Y5"},
			gcode.Group{"G0", "X0", "Y0"},
		)
		assert.Equal(t, []string{
			"E", "V1,X10000,Y10000",
			"E", "E", "C08", "W10", "V21,X15000,Y15000",
			"E", "C10", "W10", "E", "C10", "W10", "V1,X10000,Y10000",
		}, in.Buffer())
	})

	t.Run("G1 G0 G1 G0", func(t *testing.T) {
		in := newTestInterpreter(coord.Point{X: 9, Y: 9})
		process(t, in,
			gcode.Group{"G1", "X0", "Y0"},
			gcode.Group{"G1", "X1", "Y0"},
			gcode.Group{"G0", "X1", "Y2"},
			gcode.Group{"G0", "X3", "Y3"},
			gcode.Group{"G1", "X4", "Y5"},
			gcode.Group{"G1", "X6", "Y6"},
			gcode.Group{"G0", "X1", "Y1"},
			gcode.Group{"G0", "X0", "Y0"},
		)
		assert.Equal(t, []string{
			"E", "C08", "W10", "V21,X10000,Y10000",
			"E", "V21,X11000",
			"E", "C10", "W10",
			"E", "C10", "W10", "V2,Y12000",
			"E", "V1,X13000,Y13000",
			"E", "E", "C08", "W10", "V21,X14000,Y15000",
			"E", "V21,X16000,Y16000",
			"E", "C10", "W10", "E", "C10", "W10", "V1,X11000,Y11000",
			"E", "V1,X10000,Y10000",
		}, in.Buffer())
		assert.Equal(t, coord.Point{}, in.State().Position)
	})

	t.Run("no-op move keeps mode", func(t *testing.T) {
		in := newTestInterpreter(coord.Point{})
		process(t, in, gcode.Group{"G1", "X1"})
		in.ResetBuffer()
		process(t, in, gcode.Group{"G0", "X1"})
		assert.Empty(t, in.Buffer())
		assert.Equal(t, MotionCoordinated, in.State().Motion)
	})
}
