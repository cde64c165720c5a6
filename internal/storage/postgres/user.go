package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sosAlert/internal/domain"
	"sosAlert/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserStore(pool *pgxpool.Pool, logger *slog.Logger) *UserStore {
	return &UserStore{pool: pool, logger: logger}
}

func (p *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	const op = "postgres.User.Get"

	const query = `
		SELECT id, name, emergency_contacts
		FROM users
		WHERE id = $1
	`

	var (
		user     domain.User
		name     *string
		contacts []byte
	)
	err := p.pool.QueryRow(ctx, query, id).Scan(&user.ID, &name, &contacts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id))
		return nil, e.WrapError(ctx, op, err)
	}
	if name != nil {
		user.Name = *name
	}

	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &user.EmergencyContacts); err != nil {
			return nil, fmt.Errorf("%s: decode emergency contacts: %w", op, e.ErrInvalidInput)
		}
	}
	if user.EmergencyContacts == nil {
		user.EmergencyContacts = []domain.Contact{}
	}

	return &user, nil
}
