package postgres

import (
	"context"
	"sosAlert/internal/domain"

	"github.com/google/uuid"
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	AppendLiveLocation(ctx context.Context, id uuid.UUID, sample domain.LiveLocation) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

func (p *Postgres) Incidents() IncidentRepository { return p.Incident }
func (p *Postgres) Users() UserRepository         { return p.User }
