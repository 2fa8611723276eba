package domain

import "time"

type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "open"
	IncidentInProgress IncidentStatus = "in-progress"
	IncidentResolved   IncidentStatus = "resolved"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentOpen, IncidentInProgress, IncidentResolved:
		return true
	}
	return false
}

// Incident is a blotter entry reported by a resident.
type Incident struct {
	ID         string         `bson:"_id" json:"id"`
	ResidentID string         `bson:"resident_id" json:"residentId"`
	Title      string         `bson:"title" json:"title"`
	Details    string         `bson:"details" json:"details"`
	Location   string         `bson:"location" json:"location"`
	Status     IncidentStatus `bson:"status" json:"status"`
	ReportedAt time.Time      `bson:"reported_at" json:"reportedAt"`
	UpdatedAt  time.Time      `bson:"updated_at" json:"updatedAt"`
}
