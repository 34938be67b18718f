package vm

import "math"

const (
	// MaxSpindleSpeed is the highest speed that still resolves to a duty code.
	MaxSpindleSpeed = 24000

	maxDutyCode = 255
)

// DutyCode maps a spindle speed to the controller's duty code.
//
// Speeds above the table clamp to 255 up to MaxSpindleSpeed; beyond that,
// and for non-positive speeds, no code is sent.
func DutyCode(speed float64) (int, bool) {
	if speed <= 0 || speed > MaxSpindleSpeed {
		return 0, false
	}
	code := int(math.Floor(speed*141/10000 + 0.5))
	if code > maxDutyCode {
		code = maxDutyCode
	}
	return code, true
}
