package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
	RequestReleased RequestStatus = "released"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestReleased:
		return true
	}
	return false
}

// ServiceRequest is a resident's request for a barangay document
// (clearance, certificate of residency, indigency and the like).
type ServiceRequest struct {
	ID           string        `bson:"_id" json:"id"`
	ResidentID   string        `bson:"resident_id" json:"residentId"`
	DocumentType string        `bson:"document_type" json:"documentType"`
	Purpose      string        `bson:"purpose" json:"purpose"`
	Status       RequestStatus `bson:"status" json:"status"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}
