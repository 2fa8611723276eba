package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type inboundFrame struct {
	client *Client
	frame  *Frame
}

// Core owns the registry and serializes all membership and routing work on a
// single dispatch goroutine, so join/leave/publish arriving concurrently
// from independent connections never race.
type Core struct {
	registry   *Registry
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame
	done       chan struct{} // closed when Run returns; unblocks pending sends
	logger     *zap.SugaredLogger
	upgrader   websocket.Upgrader
}

func NewCore(logger *zap.SugaredLogger) *Core {
	return &Core{
		registry:   NewRegistry(logger),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 256),
		done:       make(chan struct{}),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Development posture: restrict origins in a hardened deployment.
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *Core) Registry() *Registry {
	return c.registry
}

// Run dispatches until the context is cancelled. Shutdown tears connections
// down without draining in-flight envelopes.
func (c *Core) Run(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			c.logger.Infow("broker core shutting down")
			return

		case cl := <-c.register:
			sessionsConnected.Inc()
			c.logger.Infow("session connected", "session", cl.ID)

		case cl := <-c.unregister:
			c.registry.Leave(cl)
			close(cl.send)
			sessionsConnected.Dec()
			c.logger.Infow("session disconnected", "session", cl.ID)

		case in := <-c.inbound:
			c.dispatch(in.client, in.frame)
		}
	}
}

// dispatch applies a single frame. Errors never propagate to the transport:
// a bad frame is logged and dropped so the session and the router stay up.
func (c *Core) dispatch(cl *Client, frame *Frame) {
	switch frame.Type {
	case FrameJoin:
		if frame.Room == "" {
			c.logger.Warnw("join without room, dropping", "session", cl.ID)
			return
		}
		c.registry.Join(cl, frame.Room)
		c.logger.Debugw("session joined room", "session", cl.ID, "room", frame.Room)

	case FramePublish:
		if frame.Room == "" || frame.Event == "" {
			c.logger.Warnw("publish missing room or event, dropping", "session", cl.ID)
			return
		}
		env := &Envelope{
			Room:      frame.Room,
			Event:     frame.Event,
			Data:      frame.Data,
			Timestamp: time.Now().UTC(),
		}
		c.registry.Publish(env)

	default:
		c.logger.Warnw("unknown frame type, dropping", "session", cl.ID, "type", frame.Type)
	}
}

// ServeWS upgrades the request and starts the session pumps.
func (c *Core) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	cl := NewClient(conn)
	select {
	case c.register <- cl:
	case <-c.done:
		// Dispatcher already gone; refuse the session.
		_ = conn.Close()
		return
	}

	go cl.WriteMessages(c.logger)
	go cl.ReadMessages(c)
}
