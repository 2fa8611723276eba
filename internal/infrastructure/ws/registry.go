package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Registry tracks live sessions and their room memberships. Rooms are
// created lazily on first join and removed when their last member leaves, so
// the map never grows past the set of rooms with subscribers.
//
// All state is ephemeral: nothing survives a disconnect or restart.
type Registry struct {
	rooms  map[string]map[string]*Client // room key → session ID → client
	mu     sync.RWMutex
	logger *zap.SugaredLogger
}

func NewRegistry(logger *zap.SugaredLogger) *Registry {
	return &Registry{
		rooms:  make(map[string]map[string]*Client),
		logger: logger,
	}
}

// Join adds the session to a room. Repeated joins are no-ops.
func (rg *Registry) Join(cl *Client, room string) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	members, ok := rg.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		rg.rooms[room] = members
	}

	if _, exists := members[cl.ID]; !exists {
		members[cl.ID] = cl
		cl.rooms[room] = struct{}{}
	}
}

// Leave removes the session from every room it had joined. Rooms left with
// zero members are dropped from the registry.
func (rg *Registry) Leave(cl *Client) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	for room := range cl.rooms {
		members, ok := rg.rooms[room]
		if !ok {
			continue
		}

		delete(members, cl.ID)
		if len(members) == 0 {
			delete(rg.rooms, room)
		}
	}

	cl.rooms = make(map[string]struct{})
}

// Publish delivers the envelope to every session currently a member of its
// room and reports how many received it. An empty room is a no-op: the
// envelope is dropped, never queued or retried.
func (rg *Registry) Publish(env *Envelope) int {
	rg.mu.RLock()
	members := rg.rooms[env.Room]
	clients := make([]*Client, 0, len(members))
	for _, cl := range members {
		clients = append(clients, cl)
	}
	rg.mu.RUnlock()

	if len(clients) == 0 {
		rg.logger.Debugw("no subscribers, dropping envelope", "room", env.Room, "event", env.Event)
		return 0
	}

	delivered := 0
	for _, cl := range clients {
		select {
		case cl.send <- env:
			delivered++
		default:
			// Consumer too slow: drop rather than block the router.
			envelopesDropped.Inc()
			rg.logger.Warnw("client buffer full, dropping envelope",
				"session", cl.ID, "room", env.Room, "event", env.Event)
		}
	}

	envelopesRouted.Add(float64(delivered))
	return delivered
}

// Rooms returns the keys of rooms that currently have members.
func (rg *Registry) Rooms() []string {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	keys := make([]string, 0, len(rg.rooms))
	for room := range rg.rooms {
		keys = append(keys, room)
	}
	return keys
}

// Members returns the number of sessions joined to room.
func (rg *Registry) Members(room string) int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	return len(rg.rooms[room])
}
