package health

import (
	"net/http"
	"time"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/json"
)

type Handler struct {
	startedAt time.Time
}

func NewHandler() *Handler {
	return &Handler{
		startedAt: time.Now().UTC(),
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	})
}
