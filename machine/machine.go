package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/mastercactapus/wpcnc/coord"
	"github.com/mastercactapus/wpcnc/gcode"
	"github.com/mastercactapus/wpcnc/vm"
)

// ErrEnded is returned when a line is fed after the program ended.
var ErrEnded = errors.New("program ended")

type Options struct {
	// Offset overrides vm.DefaultOffset when set.
	Offset *coord.Point

	// Position seeds the believed machine position.
	Position *coord.Point

	// KeepGoing logs and records failing lines instead of aborting the run.
	KeepGoing bool

	// Progress, if set, is called after every line.
	Progress func(Progress)
}

type Progress struct {
	Line   int
	Tokens int
}

// LineError is a failure of a single program line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d '%s': %v", e.Line, e.Text, e.Err)
}
func (e *LineError) Unwrap() error { return e.Err }

type Result struct {
	Lines  int
	Tokens int
	Ended  bool
	Errors []*LineError
}

// Machine feeds programs through an interpreter to an Adapter.
type Machine struct {
	Adapter

	opt Options
	mx  sync.Mutex
}

func New(a Adapter, opt Options) *Machine {
	return &Machine{
		Adapter: a,
		opt:     opt,
	}
}

// NewSession starts a fresh interpreter session using the machine options.
func (m *Machine) NewSession() *Session {
	in := vm.NewInterpreter()
	if m.opt.Offset != nil {
		in.SetOffset(*m.opt.Offset)
	}
	if m.opt.Position != nil {
		in.SetPosition(*m.opt.Position)
	}
	return &Session{in: in, a: m.Adapter}
}

type lineReader interface {
	Line() int
}

// RunProgram interprets every line from r and writes the resulting tokens
// to the adapter, line by line. It stops at program end or EOF.
//
// Only one program runs at a time; concurrent calls wait their turn.
func (m *Machine) RunProgram(ctx context.Context, r gcode.Reader) (Result, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	var res Result
	s := m.NewSession()
	lr, _ := r.(lineReader)
	for !s.Ended() {
		err := ctx.Err()
		if err != nil {
			return res, err
		}

		line, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}

		res.Lines++
		n := res.Lines
		if lr != nil {
			n = lr.Line()
		}

		count, err := s.Feed(line)
		res.Tokens += count
		if m.opt.Progress != nil {
			m.opt.Progress(Progress{Line: n, Tokens: res.Tokens})
		}
		if err == nil {
			continue
		}

		lerr := &LineError{Line: n, Text: line, Err: err}
		var werr *writeError
		if !m.opt.KeepGoing || errors.As(err, &werr) {
			return res, lerr
		}
		log.Println("ERROR:", lerr)
		res.Errors = append(res.Errors, lerr)
	}
	res.Ended = s.Ended()

	return res, nil
}

type writeError struct{ err error }

func (e *writeError) Error() string { return "write tokens: " + e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

// Session is a single interpreter run bound to an adapter.
type Session struct {
	in *vm.Interpreter
	a  Adapter
}

func (s *Session) Ended() bool { return s.in.Ended() }

// Feed interprets one program line and writes the emitted tokens.
//
// Tokens of groups that succeeded before a failing one are still written.
func (s *Session) Feed(line string) (int, error) {
	if s.in.Ended() {
		return 0, ErrEnded
	}

	runErr := s.in.Run(line)
	tokens := s.in.Drain()
	if len(tokens) > 0 {
		err := s.a.WriteTokens(tokens)
		if err != nil {
			return 0, &writeError{err: err}
		}
	}

	return len(tokens), runErr
}
