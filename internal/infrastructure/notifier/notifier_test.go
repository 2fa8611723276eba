package notifier

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/ws"
)

func newTestNotifier(t *testing.T, url string) *Notifier {
	n := New(url, zaptest.NewLogger(t).Sugar())
	n.retryDelay = 5 * time.Millisecond
	t.Cleanup(func() { n.Close() })
	return n
}

// unusedAddr returns an address nothing is listening on.
func unusedAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func Test_Publish_Returns_Quickly_When_Broker_Unreachable(t *testing.T) {
	req := require.New(t)
	n := newTestNotifier(t, "ws://"+unusedAddr(t)+"/ws")

	start := time.Now()
	n.Publish(ws.BroadcastRoom, ws.EventNewRequest, map[string]string{"id": "r-1"})
	req.Less(time.Since(start), 500*time.Millisecond, "publish must not wait on the dial loop")

	req.Eventually(func() bool {
		return n.State() == Disconnected
	}, 2*time.Second, 10*time.Millisecond)
}

func Test_Reconnect_Attempts_Are_Bounded(t *testing.T) {
	req := require.New(t)
	n := newTestNotifier(t, "ws://broker.invalid/ws")

	var dials atomic.Int32
	n.dial = func(url string) (*websocket.Conn, error) {
		dials.Add(1)
		return nil, errors.New("connection refused")
	}

	n.Publish(ws.BroadcastRoom, "x", nil)

	req.Eventually(func() bool {
		return n.State() == Disconnected
	}, 2*time.Second, 5*time.Millisecond)
	req.EqualValues(5, dials.Load())

	// No self-retry after exhaustion.
	time.Sleep(100 * time.Millisecond)
	req.EqualValues(5, dials.Load())

	// The next publish re-triggers the lazy-connect path.
	n.Publish(ws.BroadcastRoom, "x", nil)
	req.Eventually(func() bool {
		return dials.Load() == 10
	}, 2*time.Second, 5*time.Millisecond)
}

func Test_Close_During_Retry_Stops_The_Dial_Loop(t *testing.T) {
	req := require.New(t)
	n := newTestNotifier(t, "ws://broker.invalid/ws")
	n.retryDelay = 50 * time.Millisecond

	var dials atomic.Int32
	firstDial := make(chan struct{})
	n.dial = func(url string) (*websocket.Conn, error) {
		if dials.Add(1) == 1 {
			close(firstDial)
		}
		return nil, errors.New("connection refused")
	}

	n.Publish(ws.BroadcastRoom, "x", nil)

	<-firstDial
	req.NoError(n.Close())

	// The loop bails on the next iteration instead of burning through the
	// remaining attempts.
	time.Sleep(150 * time.Millisecond)
	req.EqualValues(1, dials.Load())
	req.Equal(Disconnected, n.State())
}

func Test_Publish_Hands_Frame_To_The_Broker_When_Connected(t *testing.T) {
	req := require.New(t)

	frames := make(chan ws.Frame, 8)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var frame ws.Frame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			frames <- frame
		}
	}))
	defer srv.Close()

	n := newTestNotifier(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")

	// First publish finds no connection: it kicks off the dial and drops.
	n.Publish(ws.BroadcastRoom, ws.EventNewRequest, map[string]string{"id": "r-1"})
	req.Eventually(func() bool {
		return n.State() == Connected
	}, 2*time.Second, 10*time.Millisecond)

	n.Publish(ws.BroadcastRoom, ws.EventNewRequest, map[string]string{"id": "r-1"})

	select {
	case frame := <-frames:
		req.Equal(ws.FramePublish, frame.Type)
		req.Equal(ws.BroadcastRoom, frame.Room)
		req.Equal(ws.EventNewRequest, frame.Event)
		req.JSONEq(`{"id":"r-1"}`, string(frame.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("broker received no frame")
	}
}

func Test_Publish_Drops_Unencodable_Payload(t *testing.T) {
	req := require.New(t)
	n := newTestNotifier(t, "ws://"+unusedAddr(t)+"/ws")

	req.NotPanics(func() {
		n.Publish(ws.BroadcastRoom, "x", make(chan int))
	})
	req.Equal(Uninitialized, n.State(), "marshal failure must not even trigger a dial")
}

func Test_Concurrent_First_Publish_Opens_One_Dial_Loop(t *testing.T) {
	req := require.New(t)
	n := newTestNotifier(t, "ws://broker.invalid/ws")

	var dials atomic.Int32
	n.dial = func(url string) (*websocket.Conn, error) {
		dials.Add(1)
		time.Sleep(5 * time.Millisecond)
		return nil, errors.New("connection refused")
	}

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			n.Publish(ws.BroadcastRoom, "x", nil)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	req.Eventually(func() bool {
		return n.State() == Disconnected
	}, 2*time.Second, 5*time.Millisecond)
	req.EqualValues(5, dials.Load(), "racing publishes must share one connect loop")
}
