package ordinances

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
	ordinances domain.OrdinanceRepository
	publisher  notifier.Publisher
}

func NewHandler(ordinances domain.OrdinanceRepository, publisher notifier.Publisher) *Handler {
	return &Handler{
		ordinances: ordinances,
		publisher:  publisher,
	}
}

func (h *Handler) CreateOrdinanceHandler(w http.ResponseWriter, r *http.Request) {
	var req createOrdinanceRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Number == "" || req.Title == "" {
		json.WriteBadRequestError(w, "number and title are required")
		return
	}

	now := time.Now().UTC()
	enactedAt := req.EnactedAt
	if enactedAt.IsZero() {
		enactedAt = now
	}

	ordinance := &domain.Ordinance{
		ID:        uuid.NewString(),
		Number:    req.Number,
		Title:     req.Title,
		Body:      req.Body,
		EnactedAt: enactedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.ordinances.Create(r.Context(), ordinance); err != nil {
		log.Printf("Failed to create ordinance: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.publisher.Publish(ws.BroadcastRoom, ws.EventNewOrdinance, ws.Notification{
		Type:    ws.EventNewOrdinance,
		Message: fmt.Sprintf("Ordinance %s enacted", ordinance.Number),
		Data:    ordinance,
	})

	json.Write(w, http.StatusCreated, ordinance)
}

func (h *Handler) ListOrdinancesHandler(w http.ResponseWriter, r *http.Request) {
	ordinances, err := h.ordinances.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, ordinances)
}

func (h *Handler) GetOrdinanceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ordinanceId")

	ordinance, err := h.ordinances.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Ordinance not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, ordinance)
}

func (h *Handler) UpdateOrdinanceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ordinanceId")

	var req updateOrdinanceRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	ordinance, err := h.ordinances.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Ordinance not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if req.Title != "" {
		ordinance.Title = req.Title
	}
	if req.Body != "" {
		ordinance.Body = req.Body
	}

	if err := h.ordinances.Update(ctx, ordinance); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Ordinance not found")
			return
		}
		log.Printf("Failed to update ordinance %s: %v", id, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, ordinance)
}

func (h *Handler) DeleteOrdinanceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ordinanceId")

	if err := h.ordinances.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Ordinance not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
