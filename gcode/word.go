package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

type Word struct {
	W   byte
	Arg float64
}

// ParseWord parses a single token like "X-1.5" or "G01".
func ParseWord(tok string) (Word, error) {
	if len(tok) < 2 {
		return Word{}, fmt.Errorf("%w: word '%s'", ErrMalformedLine, tok)
	}
	w := Word{W: upperLetter(tok[0])}
	if !w.IsValid() {
		return Word{}, fmt.Errorf("%w: word '%s'", ErrMalformedLine, tok)
	}
	var err error
	w.Arg, err = strconv.ParseFloat(tok[1:], 64)
	if err != nil {
		return Word{}, fmt.Errorf("%w: word '%s'", ErrMalformedLine, tok)
	}
	return w, nil
}

// IsCommand reports whether the word opens a new instruction group.
func (w Word) IsCommand() bool { return isCommandLetter(w.W) }

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func upperLetter(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isCommandLetter(c byte) bool {
	switch upperLetter(c) {
	case 'G', 'M', 'F':
		return true
	}
	return false
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg, 3)
}
