package incidents

type createIncidentRequest struct {
	ResidentID string `json:"residentId"`
	Title      string `json:"title"`
	Details    string `json:"details"`
	Location   string `json:"location"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}
