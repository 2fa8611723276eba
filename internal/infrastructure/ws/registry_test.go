package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRegistry(t *testing.T) *Registry {
	return NewRegistry(zaptest.NewLogger(t).Sugar())
}

// tryReceive pulls one envelope off the client's buffer without blocking.
func tryReceive(cl *Client) *Envelope {
	select {
	case env := <-cl.send:
		return env
	default:
		return nil
	}
}

func Test_Publish_To_Empty_Room_Is_A_NoOp(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)

	delivered := rg.Publish(&Envelope{Room: UserRoom("99"), Event: "x"})

	req.Zero(delivered)
	req.Empty(rg.Rooms())
}

func Test_Join_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)
	cl := NewClient(nil)

	rg.Join(cl, BroadcastRoom)
	rg.Join(cl, BroadcastRoom)

	req.Equal(1, rg.Members(BroadcastRoom))
	req.ElementsMatch([]string{BroadcastRoom}, rg.Rooms())
}

func Test_Targeted_Publish_Reaches_Only_Room_Members(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)

	a := NewClient(nil)
	b := NewClient(nil)
	rg.Join(a, UserRoom("42"))
	rg.Join(b, BroadcastRoom)

	payload := json.RawMessage(`{"status":"approved"}`)
	delivered := rg.Publish(&Envelope{
		Room:  UserRoom("42"),
		Event: EventRequestStatusChanged,
		Data:  payload,
	})

	req.Equal(1, delivered)

	env := tryReceive(a)
	req.NotNil(env)
	req.Equal(UserRoom("42"), env.Room)
	req.Equal(EventRequestStatusChanged, env.Event)
	req.JSONEq(string(payload), string(env.Data))

	req.Nil(tryReceive(a), "at-most-once per subscriber")
	req.Nil(tryReceive(b), "broadcast-only session must not see targeted events")
}

func Test_Broadcast_Publish_Skips_Targeted_Rooms(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)

	a := NewClient(nil)
	b := NewClient(nil)
	rg.Join(a, UserRoom("42"))
	rg.Join(b, BroadcastRoom)

	delivered := rg.Publish(&Envelope{
		Room:  BroadcastRoom,
		Event: EventNewRequest,
		Data:  json.RawMessage(`{"user":"A"}`),
	})

	req.Equal(1, delivered)
	req.NotNil(tryReceive(b))
	req.Nil(tryReceive(a))
}

func Test_Late_Joiners_Get_No_Replay(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)

	early := NewClient(nil)
	rg.Join(early, UserRoom("7"))
	rg.Publish(&Envelope{Room: UserRoom("7"), Event: "statusChanged"})

	late := NewClient(nil)
	rg.Join(late, UserRoom("7"))

	req.NotNil(tryReceive(early))
	req.Nil(tryReceive(late))
}

func Test_Leave_Removes_Session_Everywhere_And_Drops_Empty_Rooms(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)

	a := NewClient(nil)
	b := NewClient(nil)
	rg.Join(a, UserRoom("42"))
	rg.Join(a, BroadcastRoom)
	rg.Join(b, BroadcastRoom)

	rg.Leave(a)

	req.Zero(rg.Members(UserRoom("42")))
	req.Equal(1, rg.Members(BroadcastRoom))
	req.ElementsMatch([]string{BroadcastRoom}, rg.Rooms(), "emptied room must disappear")

	rg.Leave(b)
	req.Empty(rg.Rooms())
}

func Test_Slow_Consumer_Has_Envelope_Dropped(t *testing.T) {
	req := require.New(t)
	rg := newTestRegistry(t)

	cl := NewClient(nil)
	rg.Join(cl, BroadcastRoom)

	// Fill the session buffer so the next fan-out cannot be accepted.
	for i := 0; i < cap(cl.send); i++ {
		cl.send <- &Envelope{Room: BroadcastRoom, Event: "filler"}
	}

	delivered := rg.Publish(&Envelope{Room: BroadcastRoom, Event: EventNewRequest})
	req.Zero(delivered)
}
