package service

import (
	"context"
	"sosAlert/internal/domain"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	AppendLiveLocation(ctx context.Context, id uuid.UUID, sample domain.LiveLocation) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

type ContactCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User, ttl time.Duration) error
}

type ContactResolver interface {
	Resolve(ctx context.Context, userID string) domain.UserProfile
}

type Notifier interface {
	Dispatch(ctx context.Context, alert domain.Alert) []domain.AttemptResult
}

// Use-cases behind the public SOS endpoints.
type SOSService interface {
	Trigger(ctx context.Context, req domain.CreateSOSRequest) (uuid.UUID, error)
	AppendLiveLocation(ctx context.Context, req domain.LiveLocationRequest) error
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
}

type Service struct {
	SOSService SOSService
}

func NewService(sosService SOSService) *Service {
	return &Service{SOSService: sosService}
}
