package requests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/JoshVilla/brgy-admin-sub001/internal/domain"
	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/ws"
)

type stubRequestRepo struct {
	created *domain.ServiceRequest
	stored  map[string]*domain.ServiceRequest
}

func (s *stubRequestRepo) Create(_ context.Context, request *domain.ServiceRequest) error {
	s.created = request
	return nil
}

func (s *stubRequestRepo) GetByID(_ context.Context, id string) (*domain.ServiceRequest, error) {
	if request, ok := s.stored[id]; ok {
		return request, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubRequestRepo) List(context.Context) ([]domain.ServiceRequest, error) {
	return nil, nil
}

func (s *stubRequestRepo) ListByResident(context.Context, string) ([]domain.ServiceRequest, error) {
	return nil, nil
}

func (s *stubRequestRepo) UpdateStatus(_ context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	request, ok := s.stored[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	request.Status = status
	return request, nil
}

func (s *stubRequestRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.stored[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.stored, id)
	return nil
}

func (s *stubRequestRepo) EnsureIndexes(context.Context) error { return nil }

type stubResidentRepo struct {
	residents map[string]*domain.Resident
}

func (s *stubResidentRepo) Create(context.Context, *domain.Resident) error { return nil }

func (s *stubResidentRepo) GetByID(_ context.Context, id string) (*domain.Resident, error) {
	if resident, ok := s.residents[id]; ok {
		return resident, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubResidentRepo) List(context.Context) ([]domain.Resident, error) { return nil, nil }
func (s *stubResidentRepo) Update(context.Context, *domain.Resident) error  { return nil }
func (s *stubResidentRepo) Delete(context.Context, string) error            { return nil }

type publishedEvent struct {
	room  string
	event string
	data  any
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(room, event string, data any) {
	p.events = append(p.events, publishedEvent{room: room, event: event, data: data})
}

func newTestRouter(h *Handler) *chi.Mux {
	mux := chi.NewRouter()
	mux.Post("/api/requests", h.CreateRequestHandler)
	mux.Patch("/api/requests/{requestId}/status", h.UpdateRequestStatusHandler)
	return mux
}

func Test_CreateRequest_Broadcasts_To_All_Sessions(t *testing.T) {
	req := require.New(t)

	residents := &stubResidentRepo{residents: map[string]*domain.Resident{
		"res-1": {ID: "res-1", FirstName: "Maria"},
	}}
	requests := &stubRequestRepo{stored: map[string]*domain.ServiceRequest{}}
	pub := &recordingPublisher{}
	mux := newTestRouter(NewHandler(requests, residents, pub))

	body := `{"residentId":"res-1","documentType":"barangay-clearance","purpose":"employment"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body)))

	req.Equal(http.StatusCreated, rec.Code)
	req.NotNil(requests.created)
	req.Equal(domain.RequestPending, requests.created.Status)

	req.Len(pub.events, 1)
	req.Equal(ws.BroadcastRoom, pub.events[0].room)
	req.Equal(ws.EventNewRequest, pub.events[0].event)
}

func Test_CreateRequest_For_Unknown_Resident_Is_Rejected(t *testing.T) {
	req := require.New(t)

	residents := &stubResidentRepo{residents: map[string]*domain.Resident{}}
	requests := &stubRequestRepo{stored: map[string]*domain.ServiceRequest{}}
	pub := &recordingPublisher{}
	mux := newTestRouter(NewHandler(requests, residents, pub))

	body := `{"residentId":"ghost","documentType":"barangay-clearance"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body)))

	req.Equal(http.StatusNotFound, rec.Code)
	req.Nil(requests.created)
	req.Empty(pub.events)
}

func Test_CreateRequest_Requires_Resident_And_DocumentType(t *testing.T) {
	req := require.New(t)

	requests := &stubRequestRepo{stored: map[string]*domain.ServiceRequest{}}
	pub := &recordingPublisher{}
	mux := newTestRouter(NewHandler(requests, &stubResidentRepo{}, pub))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(`{"purpose":"x"}`)))

	req.Equal(http.StatusBadRequest, rec.Code)
	req.Empty(pub.events)
}

func Test_UpdateStatus_Targets_The_Owning_Resident(t *testing.T) {
	req := require.New(t)

	requests := &stubRequestRepo{stored: map[string]*domain.ServiceRequest{
		"req-1": {ID: "req-1", ResidentID: "res-1", DocumentType: "indigency", Status: domain.RequestPending},
	}}
	pub := &recordingPublisher{}
	mux := newTestRouter(NewHandler(requests, &stubResidentRepo{}, pub))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/requests/req-1/status", strings.NewReader(`{"status":"approved"}`)))

	req.Equal(http.StatusOK, rec.Code)
	req.Equal(domain.RequestApproved, requests.stored["req-1"].Status)

	req.Len(pub.events, 1)
	req.Equal(ws.UserRoom("res-1"), pub.events[0].room)
	req.Equal(ws.EventRequestStatusChanged, pub.events[0].event)

	notification, ok := pub.events[0].data.(ws.Notification)
	req.True(ok)
	req.Equal(ws.EventRequestStatusChanged, notification.Type)
}

func Test_UpdateStatus_Rejects_Unknown_Status(t *testing.T) {
	req := require.New(t)

	requests := &stubRequestRepo{stored: map[string]*domain.ServiceRequest{
		"req-1": {ID: "req-1", ResidentID: "res-1", Status: domain.RequestPending},
	}}
	pub := &recordingPublisher{}
	mux := newTestRouter(NewHandler(requests, &stubResidentRepo{}, pub))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/requests/req-1/status", strings.NewReader(`{"status":"maybe"}`)))

	req.Equal(http.StatusBadRequest, rec.Code)
	req.Equal(domain.RequestPending, requests.stored["req-1"].Status)
	req.Empty(pub.events)
}

func Test_UpdateStatus_For_Missing_Request_Is_NotFound(t *testing.T) {
	req := require.New(t)

	requests := &stubRequestRepo{stored: map[string]*domain.ServiceRequest{}}
	pub := &recordingPublisher{}
	mux := newTestRouter(NewHandler(requests, &stubResidentRepo{}, pub))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/requests/req-404/status", strings.NewReader(`{"status":"approved"}`)))

	req.Equal(http.StatusNotFound, rec.Code)
	req.Empty(pub.events)
}
