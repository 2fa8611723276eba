package notifier

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/ws"
)

// Publisher is what domain handlers see: a publish that is always callable
// and never fails the request path.
type Publisher interface {
	Publish(room, event string, data any)
}

// State of the broker connection.
type State int

const (
	Uninitialized State = iota
	Connecting
	Connected
	Disconnected
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

const (
	maxConnectAttempts = 5
	connectRetryDelay  = 1000 * time.Millisecond
	handshakeTimeout   = 10 * time.Second
	writeWait          = 10 * time.Second
)

// Notifier owns the API server's single outbound connection to the broker.
// Publish checks liveness on every call and lazily (re)connects in the
// background; the calling request never waits on the dial loop. A lost
// notification never affects the outcome of the mutation that triggered it.
type Notifier struct {
	url    string
	logger *zap.SugaredLogger

	mu     sync.Mutex
	conn   *websocket.Conn
	state  State
	closed bool

	// dial and retryDelay are fields so tests can count attempts and speed
	// up the loop.
	dial       func(url string) (*websocket.Conn, error)
	retryDelay time.Duration
}

var _ Publisher = (*Notifier)(nil)

func New(url string, logger *zap.SugaredLogger) *Notifier {
	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	return &Notifier{
		url:    url,
		logger: logger,
		state:  Uninitialized,
		dial: func(url string) (*websocket.Conn, error) {
			conn, _, err := dialer.Dial(url, nil)
			return conn, err
		},
		retryDelay: connectRetryDelay,
	}
}

// Publish hands the event to the broker if connected. If not, it kicks off a
// background connect (unless one is already in flight) and drops the event.
// It never returns an error and never blocks on connection establishment.
func (n *Notifier) Publish(room, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		n.logger.Warnw("unencodable notification payload, dropping",
			"room", room, "event", event, "error", err)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}

	if n.state != Connected {
		if n.state != Connecting {
			n.state = Connecting
			go n.connect()
		}
		n.logger.Debugw("broker not connected, dropping event", "room", room, "event", event)
		return
	}

	frame := &ws.Frame{Type: ws.FramePublish, Room: room, Event: event, Data: payload}
	_ = n.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := n.conn.WriteJSON(frame); err != nil {
		n.logger.Warnw("broker write failed, dropping event",
			"room", room, "event", event, "error", err)
		_ = n.conn.Close()
		n.conn = nil
		n.state = Disconnected
	}
}

// connect runs the bounded dial loop off the request path. After the final
// failed attempt the notifier stays Disconnected until the next Publish
// re-triggers the lazy-connect path.
func (n *Notifier) connect() {
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		n.mu.Lock()
		if n.closed {
			n.mu.Unlock()
			return
		}
		n.mu.Unlock()

		conn, err := n.dial(n.url)
		if err == nil {
			n.mu.Lock()
			if n.closed {
				n.mu.Unlock()
				_ = conn.Close()
				return
			}
			n.conn = conn
			n.state = Connected
			n.mu.Unlock()

			n.logger.Infow("connected to broker", "url", n.url, "attempt", attempt)
			go n.readLoop(conn)
			return
		}

		n.logger.Warnw("broker dial failed", "url", n.url, "attempt", attempt, "error", err)
		if attempt < maxConnectAttempts {
			time.Sleep(n.retryDelay)
		}
	}

	n.mu.Lock()
	n.state = Disconnected
	n.mu.Unlock()

	n.logger.Errorw("broker unreachable, giving up until next publish",
		"url", n.url, "attempts", maxConnectAttempts)
}

// readLoop drains the connection so a mid-stream disconnect is noticed. The
// broker sends nothing to producers besides control frames.
func (n *Notifier) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	n.mu.Lock()
	if n.conn == conn {
		n.conn = nil
		n.state = Disconnected
		n.logger.Warnw("broker connection lost", "url", n.url)
	}
	n.mu.Unlock()

	_ = conn.Close()
}

func (n *Notifier) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Close tears down the connection without drain. The notifier is terminal
// after Close; further publishes are silently dropped.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	n.state = Disconnected
	if n.conn != nil {
		err := n.conn.Close()
		n.conn = nil
		return err
	}
	return nil
}
