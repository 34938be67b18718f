package gcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInstruction(t *testing.T) {
	ins, err := ParseInstruction(Group{"G01", "X1.5", "y-2"})
	assert.NoError(t, err)
	assert.Equal(t, Linear, ins.Code)
	assert.Equal(t, Block{{W: 'X', Arg: 1.5}, {W: 'Y', Arg: -2}}, ins.Args)

	ok, val := ins.Args.Arg('Y')
	assert.True(t, ok)
	assert.Equal(t, -2.0, val)

	ins, err = ParseInstruction(Group{"g2", "r5"})
	assert.NoError(t, err)
	assert.Equal(t, ArcCW, ins.Code)
	assert.Equal(t, Block{{W: 'R', Arg: 5}}, ins.Args)

	ins, err = ParseInstruction(Group{"F1500"})
	assert.NoError(t, err)
	assert.Equal(t, Feed, ins.Code)
	assert.Equal(t, 1500.0, ins.Word.Arg)

	ins, err = ParseInstruction(Group{"M30"})
	assert.NoError(t, err)
	assert.Equal(t, EndRewind, ins.Code)
	assert.Equal(t, "M30", ins.Code.String())
}

func TestParseInstruction_Errors(t *testing.T) {
	_, err := ParseInstruction(Group{"G28"})
	assert.True(t, errors.Is(err, ErrUnsupportedCode))

	_, err = ParseInstruction(Group{"M6"})
	assert.True(t, errors.Is(err, ErrUnsupportedCode))

	_, err = ParseInstruction(Group{"G0", "X1", "X2"})
	assert.True(t, errors.Is(err, ErrMalformedLine))

	_, err = ParseInstruction(Group{"G0", "Xabc"})
	assert.True(t, errors.Is(err, ErrMalformedLine))

	_, err = ParseInstruction(Group{})
	assert.True(t, errors.Is(err, ErrMalformedLine))
}
