package ordinances

import "time"

type createOrdinanceRequest struct {
	Number    string    `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	EnactedAt time.Time `json:"enactedAt"`
}

type updateOrdinanceRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
