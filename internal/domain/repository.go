package domain

import "context"

type ResidentRepository interface {
	Create(ctx context.Context, resident *Resident) error
	GetByID(ctx context.Context, id string) (*Resident, error)
	List(ctx context.Context) ([]Resident, error)
	Update(ctx context.Context, resident *Resident) error
	Delete(ctx context.Context, id string) error
}

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *ServiceRequest) error
	GetByID(ctx context.Context, id string) (*ServiceRequest, error)
	List(ctx context.Context) ([]ServiceRequest, error)
	ListByResident(ctx context.Context, residentID string) ([]ServiceRequest, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus) (*ServiceRequest, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context) ([]Announcement, error)
	Update(ctx context.Context, announcement *Announcement) error
	Delete(ctx context.Context, id string) error
}

type IncidentRepository interface {
	Create(ctx context.Context, incident *Incident) error
	GetByID(ctx context.Context, id string) (*Incident, error)
	List(ctx context.Context) ([]Incident, error)
	UpdateStatus(ctx context.Context, id string, status IncidentStatus) (*Incident, error)
}

type OrdinanceRepository interface {
	Create(ctx context.Context, ordinance *Ordinance) error
	GetByID(ctx context.Context, id string) (*Ordinance, error)
	List(ctx context.Context) ([]Ordinance, error)
	Update(ctx context.Context, ordinance *Ordinance) error
	Delete(ctx context.Context, id string) error
}
