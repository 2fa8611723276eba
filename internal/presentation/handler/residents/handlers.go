package residents

import (
	"errors"
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
	residents domain.ResidentRepository
	publisher notifier.Publisher
}

func NewHandler(residents domain.ResidentRepository, publisher notifier.Publisher) *Handler {
	return &Handler{
		residents: residents,
		publisher: publisher,
	}
}

func (h *Handler) CreateResidentHandler(w http.ResponseWriter, r *http.Request) {
	var req createResidentRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		json.WriteBadRequestError(w, "firstName and lastName are required")
		return
	}

	now := time.Now().UTC()
	resident := &domain.Resident{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.residents.Create(r.Context(), resident); err != nil {
		log.Printf("Failed to create resident: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	// Best-effort feed update for the admin dashboards; the insert above is
	// already committed and stands regardless of delivery.
	h.publisher.Publish(ws.BroadcastRoom, ws.EventNewResident, ws.Notification{
		Type:    ws.EventNewResident,
		Message: "A new resident was registered",
		Data:    resident,
	})

	json.Write(w, http.StatusCreated, resident)
}

func (h *Handler) ListResidentsHandler(w http.ResponseWriter, r *http.Request) {
	residents, err := h.residents.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, residents)
}

func (h *Handler) GetResidentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "residentId")

	resident, err := h.residents.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Resident not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, resident)
}

func (h *Handler) UpdateResidentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "residentId")

	var req updateResidentRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	resident, err := h.residents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Resident not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if req.FirstName != "" {
		resident.FirstName = req.FirstName
	}
	if req.LastName != "" {
		resident.LastName = req.LastName
	}
	if req.Email != "" {
		resident.Email = req.Email
	}
	if req.Phone != "" {
		resident.Phone = req.Phone
	}
	if req.Address != "" {
		resident.Address = req.Address
	}
	if req.BirthDate != "" {
		resident.BirthDate = req.BirthDate
	}

	if err := h.residents.Update(ctx, resident); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Resident not found")
			return
		}
		log.Printf("Failed to update resident %s: %v", id, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, resident)
}

func (h *Handler) DeleteResidentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "residentId")

	if err := h.residents.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Resident not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
