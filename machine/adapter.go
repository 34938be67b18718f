package machine

import (
	"bufio"
	"io"
	"sync"
)

// An Adapter delivers controller tokens to a machine.
type Adapter interface {
	// WriteTokens sends tokens in order, returning once all of them were
	// handed to the transport.
	WriteTokens([]string) error
	Close() error
}

// WriterAdapter writes each token on its own line to an io.Writer.
type WriterAdapter struct {
	mx sync.Mutex
	w  io.Writer

	// Delim terminates every token, "\n" if empty.
	Delim string
}

var _ Adapter = &WriterAdapter{}

func NewWriterAdapter(w io.Writer) *WriterAdapter {
	return &WriterAdapter{w: w}
}

func (a *WriterAdapter) WriteTokens(tokens []string) error {
	a.mx.Lock()
	defer a.mx.Unlock()

	delim := a.Delim
	if delim == "" {
		delim = "\n"
	}

	bw := bufio.NewWriter(a.w)
	for _, tok := range tokens {
		_, err := bw.WriteString(tok + delim)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Close closes the underlying writer, if it implements io.Closer.
func (a *WriterAdapter) Close() error {
	if closer, ok := a.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// BufferAdapter collects tokens in memory.
type BufferAdapter struct {
	mx     sync.Mutex
	tokens []string
}

var _ Adapter = &BufferAdapter{}

func (a *BufferAdapter) WriteTokens(tokens []string) error {
	a.mx.Lock()
	a.tokens = append(a.tokens, tokens...)
	a.mx.Unlock()
	return nil
}

// Tokens returns a copy of everything written so far.
func (a *BufferAdapter) Tokens() []string {
	a.mx.Lock()
	defer a.mx.Unlock()
	res := make([]string, len(a.tokens))
	copy(res, a.tokens)
	return res
}

func (a *BufferAdapter) Close() error { return nil }
