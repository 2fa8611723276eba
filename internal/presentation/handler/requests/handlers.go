package requests

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
	requests  domain.ServiceRequestRepository
	residents domain.ResidentRepository
	publisher notifier.Publisher
}

func NewHandler(
	requests domain.ServiceRequestRepository,
	residents domain.ResidentRepository,
	publisher notifier.Publisher,
) *Handler {
	return &Handler{
		requests:  requests,
		residents: residents,
		publisher: publisher,
	}
}

func (h *Handler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.ResidentID == "" || req.DocumentType == "" {
		json.WriteBadRequestError(w, "residentId and documentType are required")
		return
	}

	ctx := r.Context()
	if _, err := h.residents.GetByID(ctx, req.ResidentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Resident not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	now := time.Now().UTC()
	request := &domain.ServiceRequest{
		ID:           uuid.NewString(),
		ResidentID:   req.ResidentID,
		DocumentType: req.DocumentType,
		Purpose:      req.Purpose,
		Status:       domain.RequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.requests.Create(ctx, request); err != nil {
		log.Printf("Failed to create service request: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.publisher.Publish(ws.BroadcastRoom, ws.EventNewRequest, ws.Notification{
		Type:    ws.EventNewRequest,
		Message: fmt.Sprintf("New %s request filed", request.DocumentType),
		Data:    request,
	})

	json.Write(w, http.StatusCreated, request)
}

func (h *Handler) ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	residentID := r.URL.Query().Get("residentId")

	var (
		requests []domain.ServiceRequest
		err      error
	)
	if residentID != "" {
		requests, err = h.requests.ListByResident(r.Context(), residentID)
	} else {
		requests, err = h.requests.List(r.Context())
	}
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, requests)
}

func (h *Handler) GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestId")

	request, err := h.requests.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Request not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, request)
}

func (h *Handler) UpdateRequestStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestId")

	var req updateStatusRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	status := domain.RequestStatus(req.Status)
	if !status.Valid() {
		json.WriteBadRequestError(w, "status must be one of: pending, approved, rejected, released")
		return
	}

	request, err := h.requests.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Request not found")
			return
		}
		log.Printf("Failed to update request %s: %v", id, err)
		json.WriteInternalError(w, err)
		return
	}

	// Targeted delivery: only the owning resident's sessions care.
	h.publisher.Publish(ws.UserRoom(request.ResidentID), ws.EventRequestStatusChanged, ws.Notification{
		Type:    ws.EventRequestStatusChanged,
		Message: fmt.Sprintf("Your %s request is now %s", request.DocumentType, request.Status),
		Data:    request,
	})

	json.Write(w, http.StatusOK, request)
}

func (h *Handler) DeleteRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestId")

	if err := h.requests.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Request not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
