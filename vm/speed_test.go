package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDutyCode(t *testing.T) {
	cases := []struct {
		speed float64
		code  int
		ok    bool
	}{
		{0, 0, false},
		{1000, 14, true},
		{2000, 28, true},
		{3000, 42, true},
		{4000, 56, true},
		{5000, 71, true},
		{6000, 85, true},
		{7000, 99, true},
		{8000, 113, true},
		{10000, 141, true},
		{15000, 212, true},
		{20000, 255, true},
		{24000, 255, true},
		{24001, 0, false},
		{30000, 0, false},
		{40000, 0, false},
		{-100, 0, false},
	}

	for _, c := range cases {
		code, ok := DutyCode(c.speed)
		assert.Equal(t, c.ok, ok, "S%g", c.speed)
		if c.ok {
			assert.Equal(t, c.code, code, "S%g", c.speed)
		}
	}
}
