package spjs

import (
	"errors"
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/mastercactapus/wpcnc/machine"
)

// ErrWipedQueue is returned when the server drops queued tokens.
var ErrWipedQueue = errors.New("spjs: wiped queue")

const batchSize = 100

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "tok_" + strconv.FormatInt(id, 36)
}

// Adapter sends controller tokens to one serial port of the server.
type Adapter struct {
	c    *Client
	port string
	baud int

	cmds    chan command
	waiting map[string]chan error

	closeCh chan struct{}
	once    sync.Once
}

var _ machine.Adapter = &Adapter{}

type command struct {
	JSON
	wait chan error
}

// NewAdapter uses c to drive port, opening it at baud if the server
// reports it closed.
func NewAdapter(c *Client, port string, baud int) *Adapter {
	a := &Adapter{
		c:       c,
		port:    port,
		baud:    baud,
		cmds:    make(chan command, 1000),
		waiting: make(map[string]chan error, 100),
		closeCh: make(chan struct{}),
	}
	go a.loop()

	return a
}

func (a *Adapter) loop() {
	for {
		select {
		case <-a.closeCh:
			for id, ch := range a.waiting {
				ch <- ErrClosed
				delete(a.waiting, id)
			}
			return
		case resp := <-a.c.Messages():
			switch msg := resp.(type) {
			case *ErrorMessage:
				log.Println("ERROR: spjs:", msg.Error)
			case *CmdStatus:
				switch msg.Cmd {
				case "WipedQueue":
					for id, ch := range a.waiting {
						ch <- ErrWipedQueue
						delete(a.waiting, id)
					}
				case "Complete":
					if ch := a.waiting[msg.ID]; ch != nil {
						ch <- nil
						delete(a.waiting, msg.ID)
					}
				}
			case *SerialPortList:
				for _, port := range msg.SerialPorts {
					if port.Name != a.port || port.IsOpen {
						continue
					}
					go a.c.WriteString("open " + a.port + " " + strconv.Itoa(a.baud))
				}
			}
		case cmd := <-a.cmds:
			id := cmd.Data[len(cmd.Data)-1].ID
			if cmd.wait != nil {
				a.waiting[id] = cmd.wait
			}
			err := a.c.SendJSON(cmd.JSON)
			if err != nil && cmd.wait != nil {
				cmd.wait <- err
				delete(a.waiting, id)
			}
		}
	}
}

// WriteTokens queues tokens in batches and waits until the controller
// port reports the last one complete.
func (a *Adapter) WriteTokens(tokens []string) error {
	var wait chan error
	for len(tokens) > 0 {
		n := len(tokens)
		if n > batchSize {
			n = batchSize
		}

		cmd := command{JSON: JSON{Port: a.port}}
		for _, tok := range tokens[:n] {
			cmd.Data = append(cmd.Data, Data{Data: tok + "\n", ID: nextID()})
		}
		tokens = tokens[n:]
		if len(tokens) == 0 {
			wait = make(chan error, 1)
			cmd.wait = wait
		}

		select {
		case a.cmds <- cmd:
		case <-a.closeCh:
			return ErrClosed
		}
	}

	if wait == nil {
		return nil
	}

	select {
	case err := <-wait:
		return err
	case <-a.closeCh:
		return ErrClosed
	}
}

// Close stops the adapter and its client.
func (a *Adapter) Close() error {
	a.once.Do(func() { close(a.closeCh) })
	return a.c.Close()
}
