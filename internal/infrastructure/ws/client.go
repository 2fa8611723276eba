package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is one connected session: an admin dashboard, a resident's mobile
// session, or the API server's producer connection.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan *Envelope

	// rooms this session has joined; guarded by the owning Registry's mutex.
	rooms map[string]struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.NewString(),
		conn:  conn,
		send:  make(chan *Envelope, 64), // buffered so a slow peer never blocks the router
		rooms: make(map[string]struct{}),
	}
}

// ReadMessages parses inbound frames and hands them to the core. Malformed
// frames are logged and discarded; the session stays connected.
func (c *Client) ReadMessages(core *Core) {
	defer func() {
		select {
		case core.unregister <- c:
		case <-core.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				core.logger.Debugw("session read error", "session", c.ID, "error", err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			core.logger.Warnw("malformed frame, dropping", "session", c.ID, "error", err)
			continue
		}

		select {
		case core.inbound <- inboundFrame{client: c, frame: &frame}:
		case <-core.done:
			return
		}
	}
}

// WriteMessages pumps envelopes to the peer and keeps the connection alive
// with pings.
func (c *Client) WriteMessages(logger *zap.SugaredLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(env); err != nil {
				logger.Debugw("session write error", "session", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
