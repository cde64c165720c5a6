package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sosAlert/internal/domain"
	"sosAlert/pkg/e"
)

type contactResolver struct {
	users  UserRepository
	cache  ContactCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewContactResolver returns a resolver that never fails: a missing or
// unreadable user resolves to the "Unknown" profile with no contacts.
// cache may be nil.
func NewContactResolver(users UserRepository, cache ContactCache, ttl time.Duration, logger *slog.Logger) ContactResolver {
	return &contactResolver{
		users:  users,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *contactResolver) Resolve(ctx context.Context, userID string) domain.UserProfile {
	if r.cache != nil {
		user, err := r.cache.Get(ctx, userID)
		switch {
		case err == nil:
			r.logger.Debug("contacts served from cache", slog.String("user_id", userID))
			return profileOf(user)
		case !errors.Is(err, e.ErrCacheMiss):
			r.logger.Warn("contact cache read failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}

	user, err := r.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			r.logger.Info("user not found, using default profile", slog.String("user_id", userID))
		} else {
			r.logger.Warn("user lookup failed, using default profile", slog.String("user_id", userID), slog.Any("error", err))
		}
		return domain.UnknownProfile()
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, user, r.ttl); err != nil {
			r.logger.Warn("contact cache write failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}

	return profileOf(user)
}

func profileOf(user *domain.User) domain.UserProfile {
	if user == nil {
		return domain.UnknownProfile()
	}
	contacts := make([]domain.Contact, len(user.EmergencyContacts))
	copy(contacts, user.EmergencyContacts)
	return domain.UserProfile{Name: user.Name, Contacts: contacts}
}
