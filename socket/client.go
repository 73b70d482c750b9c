package socket

import (
	"encoding/json"
	"sync"
	"time"

	"helpmate_server/utils"

	"github.com/gorilla/websocket"
)

// Config carries the websocket timing knobs shared by every connection.
type Config struct {
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// DefaultConfig is used when a zero Config is passed in.
var DefaultConfig = Config{
	PingInterval:   30 * time.Second,
	PongWait:       60 * time.Second,
	WriteWait:      10 * time.Second,
	MaxMessageSize: 4096,
}

func (c Config) orDefault() Config {
	if c.PingInterval <= 0 {
		c.PingInterval = DefaultConfig.PingInterval
	}
	if c.PongWait <= 0 {
		c.PongWait = DefaultConfig.PongWait
	}
	if c.WriteWait <= 0 {
		c.WriteWait = DefaultConfig.WriteWait
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = DefaultConfig.MaxMessageSize
	}
	return c
}

// Client is one live bidirectional connection, owned by exactly one registry
// channel. It is serviced by a read pump and a write pump; all outbound
// traffic goes through the buffered send channel so a stalled peer never
// blocks a broadcast.
type Client struct {
	ID      string
	UserID  string
	Channel string

	registry *Registry
	conn     *websocket.Conn
	send     chan []byte
	cfg      Config

	mu     sync.Mutex
	closed bool
}

func NewClient(id, channel, userID string, registry *Registry, conn *websocket.Conn, cfg Config) *Client {
	return &Client{
		ID:       id,
		UserID:   userID,
		Channel:  channel,
		registry: registry,
		conn:     conn,
		send:     make(chan []byte, 64),
		cfg:      cfg.orDefault(),
	}
}

// ReadPump blocks reading inbound frames and hands each one to handler.
// On exit the client is unregistered from its channel and closed, so a
// disconnect never leaves a dangling registry entry.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.registry.Unregister(c.Channel, c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				utils.L().Debug().Err(err).Str("client_id", c.ID).Msg("websocket read error")
			}
			return
		}
		handler(c, message)
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send marshals payload and queues it for this connection only.
func (c *Client) Send(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if !c.enqueue(data) {
		utils.L().Warn().Str("client_id", c.ID).Msg("send buffer full, dropping frame")
	}
	return nil
}

// enqueue offers data to the send channel without blocking. It reports false
// when the buffer is full or the client is already closed.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
	}
}
