package vm

import "errors"

var (
	// ErrUnknownInstruction is returned for command words the interpreter does not handle.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrArcGeometry is returned when no valid arc can be built from the arguments.
	ErrArcGeometry = errors.New("unsupported arc geometry")
)
