// Package serial sends controller tokens over a serial port.
package serial

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	tarm "github.com/tarm/serial"

	"github.com/mastercactapus/wpcnc/machine"
)

// Config selects the serial device.
type Config struct {
	Device string
	Baud   int

	// ReadTimeout in milliseconds; zero blocks.
	ReadTimeout int
}

// Conn writes CRLF-terminated tokens to a controller.
type Conn struct {
	rw io.ReadWriter

	mx      sync.Mutex
	closeCh chan struct{}
	once    sync.Once
}

var _ machine.Adapter = &Conn{}

// Open opens the configured serial device.
func Open(cfg Config) (*Conn, error) {
	port, err := tarm.OpenPort(&tarm.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}

	return NewConn(port), nil
}

// NewConn creates a new Conn using the provided ReadWriter for data.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{
		rw:      rw,
		closeCh: make(chan struct{}),
	}
}

// WriteTokens writes all tokens as a single batch.
func (c *Conn) WriteTokens(tokens []string) error {
	select {
	case <-c.closeCh:
		return io.ErrClosedPipe
	default:
	}
	if len(tokens) == 0 {
		return nil
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	bw := bufio.NewWriter(c.rw)
	for _, tok := range tokens {
		_, err := bw.WriteString(tok + "\r\n")
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Close will abort any further writes and close the
// underlying ReadWriter, if it implements io.Closer.
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closeCh)
		if closer, ok := c.rw.(io.Closer); ok {
			err = closer.Close()
		}
	})
	return err
}
