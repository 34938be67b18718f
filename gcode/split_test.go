package gcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		line   string
		expect []Group
	}{
		{"M30", []Group{{"M30"}}},
		{"G0 X0", []Group{{"G0", "X0"}}},
		{"M0 M1", []Group{{"M0"}, {"M1"}}},
		{"M3 S3000", []Group{{"M3", "S3000"}}},
		{"G17 G20 G90 G64 P0.003 M3 S3000 M7 F1", []Group{
			{"G17"},
			{"G20"},
			{"G90"},
			{"G64", "P0.003"},
			{"M3", "S3000"},
			{"M7"},
			{"F1"},
		}},
		{"G2  X1\tY2 R3 ", []Group{{"G2", "X1", "Y2", "R3"}}},
		{"g0 x1 m3 s100 f5", []Group{{"g0", "x1"}, {"m3", "s100"}, {"f5"}}},
	}

	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			res, err := Split(c.line)
			assert.NoError(t, err)
			assert.Equal(t, c.expect, res)
		})
	}
}

func TestSplit_Empty(t *testing.T) {
	res, err := Split("   ")
	assert.NoError(t, err)
	assert.Empty(t, res)
}

func TestSplit_OrphanParameter(t *testing.T) {
	_, err := Split("X1 G0")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))

	_, err = Split("x1 g0")
	assert.True(t, errors.Is(err, ErrMalformedLine))
}
