package chat

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const sendBufferSize = 64

// Client wraps one websocket connection. A reader goroutine turns incoming
// frames into hub calls; a writer goroutine drains the buffered send channel
// so broadcasts never block on a slow socket.
type Client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	send   chan *ServerEvent
	done   chan struct{}
	once   sync.Once
	logger *logrus.Entry
}

// NewClient creates a client for an upgraded connection.
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		send:   make(chan *ServerEvent, sendBufferSize),
		done:   make(chan struct{}),
		logger: logrus.WithField("client_id", id),
	}
}

// Start launches the read and write loops.
func (c *Client) Start() {
	go c.writeLoop()
	go c.readLoop()
}

// Deliver enqueues an event for the client. If the buffer is full the client
// is disconnected rather than allowed to stall the broadcast.
func (c *Client) Deliver(ev *ServerEvent) error {
	select {
	case <-c.done:
		return errors.New("client closed")
	case c.send <- ev:
		return nil
	default:
		// Deliver runs under the hub lock during broadcasts and Close takes
		// it again via Leave, so the teardown must happen off this goroutine
		c.logger.Warn("Send buffer full, dropping client")
		go c.Close()
		return errors.New("client send buffer full")
	}
}

// Close terminates the connection and removes the client from all rooms.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
		c.hub.Leave(c.id)
	})
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Error("Websocket read error")
			}
			return
		}
		c.handleEvent(data)
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			if err := c.conn.WriteJSON(ev); err != nil {
				c.logger.WithError(err).Error("Failed to write event to client")
				c.Close()
				return
			}
		}
	}
}

// handleEvent parses and dispatches one incoming frame. A malformed event is
// answered with an error event to this client only; nothing is broadcast.
func (c *Client) handleEvent(data []byte) {
	ev, err := ParseClientEvent(data)
	if err != nil {
		_ = c.Deliver(NewErrorEvent(err))
		return
	}
	if err := ev.Validate(); err != nil {
		_ = c.Deliver(NewErrorEvent(err))
		return
	}
	switch ev.Type {
	case EventTypeJoin:
		c.hub.Join(ev.Room, ev.Username, c.id, c)
	case EventTypeMessage:
		c.hub.Send(ev.Room, ev.Username, ev.Msg)
	}
}
