// Package channel wraps the single WebSocket connection to the chat server.
//
// The wire contract is a raw text pipe: every inbound and outbound message is
// an opaque string with no framing or schema.
package channel

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Channel owns one outbound WebSocket connection. It is constructed
// explicitly and handed to whatever consumes it; there is no package-level
// instance.
type Channel struct {
	url    string
	logger zerolog.Logger

	mu       sync.RWMutex
	conn     *websocket.Conn
	subs     []subscriber
	nextSub  int
	shutdown bool

	done     chan struct{}
	doneOnce sync.Once
	wg       sync.WaitGroup
}

type subscriber struct {
	id int
	fn func(payload string)
}

// New creates a Channel for the given ws:// or wss:// URL. The connection is
// not opened until Connect is called.
func New(url string, logger zerolog.Logger) *Channel {
	return &Channel{
		url:    url,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Connect dials the server and starts the read loop. There is no
// reconnection: a Channel connects at most once and a failed or dropped
// connection stays down until the process exits.
func (c *Channel) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.logger.Info().Str("url", c.url).Msg("connection open")

	c.wg.Add(1)
	go c.readLoop(conn)

	return nil
}

// IsConnected returns whether the channel has an open connection.
func (c *Channel) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Send transmits one text payload. It returns an error when the connection
// is not open or the write fails; nothing is queued or retried. The channel
// supports one logical writer at a time.
func (c *Channel) Send(payload string) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected to server")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// Subscribe registers fn for every inbound payload. Registrations are
// additive: the same function registered twice fires twice per payload.
// Callbacks run on the read goroutine in registration order, so every
// subscriber observes payloads in exact arrival order.
//
// The returned function removes the registration; calling it more than once
// is harmless.
func (c *Channel) Subscribe(fn func(payload string)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Close stops the read loop and closes the connection. It is idempotent and
// safe to call on a channel that never connected.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		return nil
	}
	c.shutdown = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.doneOnce.Do(func() {
		close(c.done)
	})

	var err error
	if conn != nil {
		err = conn.Close()
		c.logger.Info().Msg("connection closed")
	}
	c.wg.Wait()
	return err
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	defer c.wg.Done()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					c.logger.Error().Err(err).Msg("read failed")
				}
			}
			c.logger.Debug().Msg("read loop exit")
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		c.dispatch(string(data))
	}
}

// dispatch snapshots the subscriber list under the read lock, then invokes
// callbacks without holding it so a callback may subscribe or unsubscribe.
func (c *Channel) dispatch(payload string) {
	c.mu.RLock()
	fns := make([]func(string), len(c.subs))
	for i, s := range c.subs {
		fns[i] = s.fn
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}
