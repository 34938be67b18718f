package gcode

import "fmt"

// Block is the parsed parameter words of one instruction group.
type Block []Word

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

// Validate rejects repeated words.
func (b Block) Validate() error {
	var checkWord [256]bool
	for _, g := range b {
		if !g.IsValid() {
			return fmt.Errorf("%w: invalid word in block", ErrMalformedLine)
		}
		if checkWord[g.W] {
			return fmt.Errorf("%w: word %c was repeated in a block", ErrMalformedLine, g.W)
		}
		checkWord[g.W] = true
	}

	return nil
}
