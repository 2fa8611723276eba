package requests

type createRequestRequest struct {
	ResidentID   string `json:"residentId"`
	DocumentType string `json:"documentType"`
	Purpose      string `json:"purpose"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}
