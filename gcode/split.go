package gcode

import (
	"fmt"
	"strings"
)

// Group is one command token followed by its parameter tokens.
type Group []string

// Split partitions a line of whitespace separated words into instruction
// groups. G, M and F words open a new group; every other word is attached
// to the group opened before it.
func Split(line string) ([]Group, error) {
	var res []Group
	for _, tok := range strings.Fields(line) {
		if isCommandLetter(tok[0]) {
			res = append(res, Group{tok})
			continue
		}
		if len(res) == 0 {
			return nil, fmt.Errorf("%w: parameter '%s' before any command", ErrMalformedLine, tok)
		}
		res[len(res)-1] = append(res[len(res)-1], tok)
	}

	return res, nil
}
