package announcements

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
	announcements domain.AnnouncementRepository
	publisher     notifier.Publisher
}

func NewHandler(announcements domain.AnnouncementRepository, publisher notifier.Publisher) *Handler {
	return &Handler{
		announcements: announcements,
		publisher:     publisher,
	}
}

func (h *Handler) CreateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Title == "" || req.Body == "" {
		json.WriteBadRequestError(w, "title and body are required")
		return
	}

	now := time.Now().UTC()
	announcement := &domain.Announcement{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Body:      req.Body,
		PostedBy:  req.PostedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.announcements.Create(r.Context(), announcement); err != nil {
		log.Printf("Failed to create announcement: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.publisher.Publish(ws.BroadcastRoom, ws.EventNewAnnouncement, ws.Notification{
		Type:    ws.EventNewAnnouncement,
		Message: announcement.Title,
		Data:    announcement,
	})

	json.Write(w, http.StatusCreated, announcement)
}

func (h *Handler) ListAnnouncementsHandler(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcements.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, announcements)
}

func (h *Handler) GetAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "announcementId")

	announcement, err := h.announcements.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Announcement not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, announcement)
}

func (h *Handler) UpdateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "announcementId")

	var req updateAnnouncementRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	announcement, err := h.announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Announcement not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if req.Title != "" {
		announcement.Title = req.Title
	}
	if req.Body != "" {
		announcement.Body = req.Body
	}

	if err := h.announcements.Update(ctx, announcement); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Announcement not found")
			return
		}
		log.Printf("Failed to update announcement %s: %v", id, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, announcement)
}

func (h *Handler) DeleteAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "announcementId")

	if err := h.announcements.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			json.WriteNotFoundError(w, err, "Announcement not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
