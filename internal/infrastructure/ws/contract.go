package ws

import (
	"encoding/json"
	"time"
)

// Frame types accepted by the broker.
const (
	FrameJoin    = "join"
	FramePublish = "publish"
)

// BroadcastRoom is the reserved room key the admin dashboards subscribe to.
// Targeted rooms are keyed per application user via UserRoom, so a user id
// can never collide with the broadcast key.
const BroadcastRoom = "broadcast"

// UserRoom returns the targeted room key for an application user. Every
// session that user opens joins the same room.
func UserRoom(userID string) string {
	return "user-" + userID
}

// Domain event names carried by envelopes.
const (
	EventNewResident           = "new-resident"
	EventNewRequest            = "new-request"
	EventRequestStatusChanged  = "request-status-changed"
	EventNewIncident           = "new-incident"
	EventIncidentStatusChanged = "incident-status-changed"
	EventNewAnnouncement       = "new-announcement"
	EventNewOrdinance          = "new-ordinance"
)

// Frame is a single client→broker message: a consumer join or a producer
// publish.
type Frame struct {
	Type  string          `json:"type"`
	Room  string          `json:"room,omitempty"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Envelope is the unit of delivery. It is constructed at publish time,
// fanned out to the room's current members, and then discarded; there is no
// queueing or replay.
type Envelope struct {
	Room      string          `json:"room"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Notification is the payload shape domain handlers put in Envelope.Data.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
