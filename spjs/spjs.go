// Package spjs talks to a serial-port-json-server over a websocket.
package spjs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned by operations on a closed Client or Adapter.
var ErrClosed = errors.New("spjs: closed")

// Client keeps a websocket connection to the server open, reconnecting
// as needed. Outgoing messages queue up while disconnected.
type Client struct {
	url   string
	retry time.Duration

	outgoing chan message
	incoming chan interface{}

	closeCh chan struct{}
	once    sync.Once
}

type message struct {
	done    chan struct{}
	payload []byte
}

func NewClient(url string) *Client {
	c := &Client{
		url:      url,
		retry:    3 * time.Second,
		outgoing: make(chan message, 1000),
		incoming: make(chan interface{}, 1000),
		closeCh:  make(chan struct{}),
	}

	go c.loop()

	return c
}

// Messages returns parsed messages from the server.
func (c *Client) Messages() <-chan interface{} { return c.incoming }

func (c *Client) Close() error {
	c.once.Do(func() { close(c.closeCh) })
	return nil
}

func (c *Client) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			select {
			case <-c.closeCh:
			default:
				log.Println("ERROR: read:", err)
			}
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// ignore echo messages
			continue
		}
		val, err := parseMessage(data)
		if err != nil {
			log.Println("ERROR: parse:", err)
			continue
		}
		select {
		case c.incoming <- val:
		case <-c.closeCh:
			return
		}
	}
}

func (c *Client) loop() {
	var nextUp message

reconnect:
	for {
		select {
		case <-c.closeCh:
			return
		default:
		}

		log.Println("Connecting to", c.url)
		ws, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			log.Println("ERROR: connect:", err)
			select {
			case <-c.closeCh:
				return
			case <-time.After(c.retry):
			}
			continue
		}
		log.Println("Connected.")
		ch := make(chan struct{})
		go c.readLoop(ws, ch)
		go c.WriteString("list") // refresh port list on reconnect

		for {
			if nextUp.done != nil {
				err = ws.WriteMessage(websocket.TextMessage, nextUp.payload)
				if err != nil {
					log.Println("ERROR: send:", err)
					ws.Close()
					continue reconnect
				}
				close(nextUp.done)
				nextUp.done = nil
			}

			select {
			case <-c.closeCh:
				ws.Close()
				return
			case <-ch:
				ws.Close()
				continue reconnect
			case nextUp = <-c.outgoing:
			}
		}
	}
}

func (c *Client) send(payload []byte) error {
	msg := message{done: make(chan struct{}), payload: payload}
	select {
	case c.outgoing <- msg:
	case <-c.closeCh:
		return ErrClosed
	}
	select {
	case <-msg.done:
		return nil
	case <-c.closeCh:
		return ErrClosed
	}
}

// SendJSON queues v with the sendjson command and returns once it was written.
func (c *Client) SendJSON(v JSON) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.send(append([]byte("sendjson "), data...))
}

// WriteString sends a raw server command.
func (c *Client) WriteString(data string) error {
	return c.send([]byte(data))
}
