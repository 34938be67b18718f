package gcode

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Parser reads program lines, dropping comments, line numbers
// and blank lines.
type Parser struct {
	br   *bufio.Reader
	line int
}

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

var (
	rxComment    = regexp.MustCompile(`\([^)]*\)`)
	rxLineNumber = regexp.MustCompile(`^N[0-9]+\s*`)
)

// Line returns the 1-based source line of the last value returned by Read.
func (p *Parser) Line() int { return p.line }

func (p *Parser) Read() (string, error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return "", err
		}
		p.line++

		s = strings.SplitN(s, ";", 2)[0]
		s = rxComment.ReplaceAllString(s, " ")
		s = strings.TrimSpace(s)
		s = strings.ToUpper(s)
		s = rxLineNumber.ReplaceAllString(s, "")

		if s == "" || s == "%" {
			continue
		}

		return s, nil
	}
}

// ReadAll returns every remaining line.
func ReadAll(r Reader) ([]string, error) {
	var lines []string
	for {
		s, err := r.Read()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, s)
	}
}
