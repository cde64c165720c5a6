package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sosAlert/internal/domain"
	"sosAlert/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentStore(pool *pgxpool.Pool, logger *slog.Logger) *IncidentStore {
	return &IncidentStore{pool: pool, logger: logger}
}

// Create inserts the incident and fills in the store-assigned ID and CreatedAt.
func (p *IncidentStore) Create(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Create"

	if incident == nil || incident.UserID == "" {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if incident.Status == "" {
		incident.Status = domain.IncidentActive
	}
	if incident.LiveLocations == nil {
		incident.LiveLocations = []domain.LiveLocation{}
	}
	if incident.Escalation == nil {
		incident.Escalation = []map[string]any{}
	}
	if incident.Extra == nil {
		incident.Extra = map[string]any{}
	}

	location, err := json.Marshal(incident.Location)
	if err != nil {
		return fmt.Errorf("%s: marshal location: %w", op, e.ErrInvalidInput)
	}
	live, err := json.Marshal(incident.LiveLocations)
	if err != nil {
		return fmt.Errorf("%s: marshal live locations: %w", op, e.ErrInvalidInput)
	}
	escalation, err := json.Marshal(incident.Escalation)
	if err != nil {
		return fmt.Errorf("%s: marshal escalation: %w", op, e.ErrInvalidInput)
	}
	extra, err := json.Marshal(incident.Extra)
	if err != nil {
		return fmt.Errorf("%s: marshal extra: %w", op, e.ErrInvalidInput)
	}

	const query = `
		INSERT INTO incidents (user_id, status, location, live_locations, escalation, extra)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5::jsonb, $6::jsonb)
		RETURNING id, created_at
	`

	err = p.pool.QueryRow(ctx, query,
		incident.UserID,
		incident.Status,
		location,
		live,
		escalation,
		extra,
	).Scan(&incident.ID, &incident.CreatedAt)
	if err != nil {
		p.logger.Error("db insert failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("user_id", incident.UserID),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// AppendLiveLocation adds the sample to the end of live_locations in a single
// UPDATE, so concurrent appends to the same incident serialize on the row lock.
// A sample equal to one already stored is not added twice.
func (p *IncidentStore) AppendLiveLocation(ctx context.Context, id uuid.UUID, sample domain.LiveLocation) error {
	const op = "postgres.Incident.AppendLiveLocation"

	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("%s: marshal sample: %w", op, e.ErrInvalidInput)
	}

	const query = `
		UPDATE incidents
		SET live_locations = CASE
			WHEN live_locations @> jsonb_build_array($2::jsonb) THEN live_locations
			ELSE live_locations || jsonb_build_array($2::jsonb)
		END
		WHERE id = $1
	`

	cmd, err := p.pool.Exec(ctx, query, id, raw)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: incident %s: %w", op, id, e.ErrNotFound)
	}

	return nil
}

func (p *IncidentStore) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	const query = `
		SELECT id, user_id, created_at, status, location, live_locations, escalation, extra
		FROM incidents
		WHERE id = $1
	`

	var (
		inc                               domain.Incident
		location, live, escalation, extra []byte
	)
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&inc.ID,
		&inc.UserID,
		&inc.CreatedAt,
		&inc.Status,
		&location,
		&live,
		&escalation,
		&extra,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := json.Unmarshal(location, &inc.Location); err != nil {
		return nil, fmt.Errorf("%s: decode location: %w", op, e.ErrInternal)
	}
	if err := json.Unmarshal(live, &inc.LiveLocations); err != nil {
		return nil, fmt.Errorf("%s: decode live locations: %w", op, e.ErrInternal)
	}
	if err := json.Unmarshal(escalation, &inc.Escalation); err != nil {
		return nil, fmt.Errorf("%s: decode escalation: %w", op, e.ErrInternal)
	}
	if err := json.Unmarshal(extra, &inc.Extra); err != nil {
		return nil, fmt.Errorf("%s: decode extra: %w", op, e.ErrInternal)
	}

	return &inc, nil
}
