package gcode

import "errors"

var (
	// ErrMalformedLine is returned for lines or words that cannot be parsed.
	ErrMalformedLine = errors.New("malformed line")

	// ErrUndefinedParameter is returned when a #n reference has no value.
	ErrUndefinedParameter = errors.New("undefined parameter")

	// ErrUnsupportedCode is returned for command words outside the supported set.
	ErrUnsupportedCode = errors.New("unsupported code")
)
