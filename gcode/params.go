package gcode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	rxAssign = regexp.MustCompile(`^#([0-9]+)\s*=\s*([+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))$`)
	rxRef    = regexp.MustCompile(`#([0-9]+)`)
)

// Params holds numbered macro parameters (#n).
type Params struct {
	vals map[int]float64
}

func NewParams() *Params {
	return &Params{vals: make(map[int]float64)}
}

func (p *Params) Set(n int, val float64) { p.vals[n] = val }

func (p *Params) Get(n int) (float64, bool) {
	val, ok := p.vals[n]
	return val, ok
}

// ReadAssignment stores the value if line is a `#n=value` assignment.
//
// It returns false for lines that are not assignments, and
// ErrMalformedLine for lines starting with '#' that do not parse.
func (p *Params) ReadAssignment(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#") {
		return false, nil
	}

	m := rxAssign.FindStringSubmatch(line)
	if m == nil {
		return false, fmt.Errorf("%w: invalid assignment '%s'", ErrMalformedLine, line)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false, fmt.Errorf("%w: invalid parameter number '%s'", ErrMalformedLine, m[1])
	}
	val, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return false, fmt.Errorf("%w: invalid value '%s'", ErrMalformedLine, m[2])
	}

	p.Set(n, val)
	return true, nil
}

// Substitute replaces every #n reference in line with its value.
func (p *Params) Substitute(line string) (string, error) {
	var err error
	res := rxRef.ReplaceAllStringFunc(line, func(ref string) string {
		if err != nil {
			return ref
		}
		n, _ := strconv.Atoi(ref[1:])
		val, ok := p.Get(n)
		if !ok {
			err = fmt.Errorf("%w: #%d", ErrUndefinedParameter, n)
			return ref
		}
		return formatParam(val)
	})
	if err != nil {
		return "", err
	}
	return res, nil
}

func formatParam(val float64) string {
	if val == 0 {
		return "0"
	}
	if val == math.Trunc(val) && math.Abs(val) < 1e15 {
		return strconv.FormatFloat(val, 'f', 0, 64)
	}
	return strconv.FormatFloat(val, 'f', 6, 64)
}
