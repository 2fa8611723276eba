package domain

import "time"

// Ordinance is a legislative record of the barangay council.
type Ordinance struct {
	ID        string    `bson:"_id" json:"id"`
	Number    string    `bson:"number" json:"number"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	EnactedAt time.Time `bson:"enacted_at" json:"enactedAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
