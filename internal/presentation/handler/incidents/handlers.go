package incidents

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JoshVilla/brgy-admin-sub001/internal/domain"
	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/json"
	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/notifier"
	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/ws"
)

type Handler struct {
	incidents domain.IncidentRepository
	publisher notifier.Publisher
}

func NewHandler(incidents domain.IncidentRepository, publisher notifier.Publisher) *Handler {
	return &Handler{
		incidents: incidents,
		publisher: publisher,
	}
}

func (h *Handler) CreateIncidentHandler(w http.ResponseWriter, r *http.Request) {
	var req createIncidentRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Title == "" || req.Details == "" {
		json.WriteBadRequestError(w, "title and details are required")
		return
	}

	now := time.Now().UTC()
	incident := &domain.Incident{
		ID:         uuid.NewString(),
		ResidentID: req.ResidentID,
		Title:      req.Title,
		Details:    req.Details,
		Location:   req.Location,
		Status:     domain.IncidentOpen,
		ReportedAt: now,
		UpdatedAt:  now,
	}

	if err := h.incidents.Create(r.Context(), incident); err != nil {
		log.Printf("Failed to create incident: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.publisher.Publish(ws.BroadcastRoom, ws.EventNewIncident, ws.Notification{
		Type:    ws.EventNewIncident,
		Message: fmt.Sprintf("Incident reported: %s", incident.Title),
		Data:    incident,
	})

	json.Write(w, http.StatusCreated, incident)
}

func (h *Handler) ListIncidentsHandler(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.incidents.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, incidents)
}

func (h *Handler) GetIncidentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "incidentId")

	incident, err := h.incidents.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Incident not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, incident)
}

func (h *Handler) UpdateIncidentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "incidentId")

	var req updateStatusRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	status := domain.IncidentStatus(req.Status)
	if !status.Valid() {
		json.WriteBadRequestError(w, "status must be one of: open, in-progress, resolved")
		return
	}

	incident, err := h.incidents.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Incident not found")
			return
		}
		log.Printf("Failed to update incident %s: %v", id, err)
		json.WriteInternalError(w, err)
		return
	}

	if incident.ResidentID != "" {
		h.publisher.Publish(ws.UserRoom(incident.ResidentID), ws.EventIncidentStatusChanged, ws.Notification{
			Type:    ws.EventIncidentStatusChanged,
			Message: fmt.Sprintf("Your incident report is now %s", incident.Status),
			Data:    incident,
		})
	}

	json.Write(w, http.StatusOK, incident)
}
