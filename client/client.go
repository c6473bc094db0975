package client

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one connected presentation terminal. It renders a single match
// and forwards the keys for both paddles.
type Client struct {
	Conn      *websocket.Conn
	SendQueue chan []byte
	ID        string
	SessionID string

	mu     sync.Mutex
	closed bool
}

func New(conn *websocket.Conn, queueSize int) *Client {
	return &Client{
		Conn:      conn,
		SendQueue: make(chan []byte, queueSize),
		ID:        uuid.New().String(),
	}
}

// Send queues a message without blocking, dropping it when the queue is full
func (c *Client) Send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendQueue <- message:
		return true
	default:
		log.Printf("Dropping message, send queue full for client %s", c.ID)
		return false
	}
}

// WritePump writes queued messages until the queue is closed or a write
// fails. Run it in its own goroutine.
func (c *Client) WritePump() error {
	for msg := range c.SendQueue {
		if err := c.Conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return err
		}
	}
	return c.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close stops the write pump, safe to call more than once
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.SendQueue)
	}
}
