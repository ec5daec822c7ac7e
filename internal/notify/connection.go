package notify

import (
	"errors"
	"sync"
	"time"
)

// Enqueue failures. Either way the dispatcher treats the connection as dead.
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

// Connection is one live notification channel to one authenticated client.
// The session goroutine that created it owns the transport; the dispatcher
// only ever touches the bounded outbound channel, which is the explicit
// cross-goroutine handoff point.
type Connection struct {
	subjectID int
	openedAt  time.Time
	send      chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

// NewConnection creates a connection with a bounded outbound buffer.
func NewConnection(subjectID, buffer int) *Connection {
	if buffer <= 0 {
		buffer = 32
	}
	return &Connection{
		subjectID: subjectID,
		openedAt:  time.Now(),
		send:      make(chan []byte, buffer),
		closed:    make(chan struct{}),
	}
}

// SubjectID returns the authenticated owner of this connection.
func (c *Connection) SubjectID() int {
	return c.subjectID
}

// OpenedAt reports when the connection was established.
func (c *Connection) OpenedAt() time.Time {
	return c.openedAt
}

// Outbound is consumed by the session's write pump; single consumer,
// so frames reach the transport in enqueue order.
func (c *Connection) Outbound() <-chan []byte {
	return c.send
}

// Done is closed when the connection is closed.
func (c *Connection) Done() <-chan struct{} {
	return c.closed
}

// Enqueue hands a frame to the connection without blocking. A full buffer
// counts as a delivery failure: a slow client must not stall the dispatcher.
func (c *Connection) Enqueue(frame []byte) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}
	select {
	case c.send <- frame:
		return nil
	case <-c.closed:
		return ErrConnectionClosed
	default:
		return ErrSendBufferFull
	}
}

// Close marks the connection dead. Idempotent; safe from any goroutine.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}
