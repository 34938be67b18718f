package gcode

import "io"

// Reader supplies program lines one at a time.
type Reader interface {
	Read() (string, error)
}

type LinesReader struct {
	Lines []string
	n     int
}

func (r *LinesReader) Read() (string, error) {
	if r.n == len(r.Lines) {
		return "", io.EOF
	}

	r.n++
	return r.Lines[r.n-1], nil
}
