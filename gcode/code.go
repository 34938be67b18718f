package gcode

import (
	"fmt"
)

// Code identifies a supported command word.
type Code byte

const (
	_ Code = iota

	Rapid        // G0
	Linear       // G1
	ArcCW        // G2
	ArcCCW       // G3
	PlaneXY      // G17
	PlaneXZ      // G18
	PlaneYZ      // G19
	UnitsInch    // G20
	UnitsMM      // G21
	PathBlending // G64
	Absolute     // G90
	Incremental  // G91

	Pause         // M0
	OptionalPause // M1
	EndProgram    // M2
	SpindleCW     // M3
	SpindleCCW    // M4
	SpindleStop   // M5
	MistOn        // M7
	FloodOn       // M8
	CoolantOff    // M9
	EndRewind     // M30

	Feed // F
)

var codeWords = map[Word]Code{
	{W: 'G', Arg: 0}:  Rapid,
	{W: 'G', Arg: 1}:  Linear,
	{W: 'G', Arg: 2}:  ArcCW,
	{W: 'G', Arg: 3}:  ArcCCW,
	{W: 'G', Arg: 17}: PlaneXY,
	{W: 'G', Arg: 18}: PlaneXZ,
	{W: 'G', Arg: 19}: PlaneYZ,
	{W: 'G', Arg: 20}: UnitsInch,
	{W: 'G', Arg: 21}: UnitsMM,
	{W: 'G', Arg: 64}: PathBlending,
	{W: 'G', Arg: 90}: Absolute,
	{W: 'G', Arg: 91}: Incremental,

	{W: 'M', Arg: 0}:  Pause,
	{W: 'M', Arg: 1}:  OptionalPause,
	{W: 'M', Arg: 2}:  EndProgram,
	{W: 'M', Arg: 3}:  SpindleCW,
	{W: 'M', Arg: 4}:  SpindleCCW,
	{W: 'M', Arg: 5}:  SpindleStop,
	{W: 'M', Arg: 7}:  MistOn,
	{W: 'M', Arg: 8}:  FloodOn,
	{W: 'M', Arg: 9}:  CoolantOff,
	{W: 'M', Arg: 30}: EndRewind,
}

var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(codeWords)+1)
	for w, c := range codeWords {
		m[c] = w.String()
	}
	m[Feed] = "F"
	return m
}()

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", byte(c))
}

// Instruction is a parsed instruction group.
type Instruction struct {
	Code Code

	// Word is the command word as written, e.g. F1500.
	Word Word
	Args Block
}

// ParseInstruction parses an instruction group produced by Split.
func ParseInstruction(g Group) (Instruction, error) {
	if len(g) == 0 {
		return Instruction{}, fmt.Errorf("%w: empty instruction group", ErrMalformedLine)
	}

	head, err := ParseWord(g[0])
	if err != nil {
		return Instruction{}, err
	}

	var ins Instruction
	ins.Word = head
	switch {
	case head.W == 'F':
		ins.Code = Feed
	case head.IsCommand():
		c, ok := codeWords[head]
		if !ok {
			return Instruction{}, fmt.Errorf("%w: %s", ErrUnsupportedCode, g[0])
		}
		ins.Code = c
	default:
		return Instruction{}, fmt.Errorf("%w: %s", ErrUnsupportedCode, g[0])
	}

	ins.Args = make(Block, 0, len(g)-1)
	for _, tok := range g[1:] {
		w, err := ParseWord(tok)
		if err != nil {
			return Instruction{}, err
		}
		ins.Args = append(ins.Args, w)
	}

	err = ins.Args.Validate()
	if err != nil {
		return Instruction{}, err
	}

	return ins, nil
}
