package service

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"sosAlert/internal/domain"
	"sosAlert/pkg/e"
	"sosAlert/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrMissingSOSFields  = fmt.Errorf("%w: userId, lat, lon", e.ErrMissingFields)
	ErrMissingLiveFields = fmt.Errorf("%w: incidentId, lat, lon", e.ErrMissingFields)
)

type sosService struct {
	incidents IncidentRepository
	contacts  ContactResolver
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// NewSOSService wires the incident pipeline. now defaults to time.Now.
func NewSOSService(
	incidents IncidentRepository,
	contacts ContactResolver,
	notifier Notifier,
	logger *slog.Logger,
	now func() time.Time,
) SOSService {
	if now == nil {
		now = time.Now
	}
	return &sosService{
		incidents: incidents,
		contacts:  contacts,
		notifier:  notifier,
		logger:    logger,
		now:       now,
	}
}

// Trigger records the incident and then notifies the user's contacts.
// Notification outcomes never change the returned result.
func (s *sosService) Trigger(ctx context.Context, req domain.CreateSOSRequest) (uuid.UUID, error) {
	const op = "service.SOS.Trigger"

	if err := checkRequest(req, ErrMissingSOSFields); err != nil {
		s.logger.Warn("sos rejected", slog.String("user_id", req.UserID), slog.Any("error", err))
		return uuid.Nil, err
	}

	// a client hanging up must not abort an SOS half way
	ctx = context.WithoutCancel(ctx)

	s.logger.Info("sos START",
		slog.String("user_id", req.UserID),
		slog.Float64("lat", req.Lat),
		slog.Float64("lon", req.Lon),
	)

	profile := s.contacts.Resolve(ctx, req.UserID)

	extra := req.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	inc := &domain.Incident{
		UserID: req.UserID,
		Status: domain.IncidentActive,
		Location: domain.Location{
			Lat:      req.Lat,
			Lon:      req.Lon,
			Accuracy: req.Accuracy,
		},
		LiveLocations: []domain.LiveLocation{},
		Escalation:    []map[string]any{},
		Extra:         extra,
	}

	if err := s.incidents.Create(ctx, inc); err != nil {
		s.logger.Error("incident create failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		return uuid.Nil, e.Wrap(op, err)
	}
	s.logger.Info("incident created",
		slog.String("incident_id", inc.ID.String()),
		slog.Int("contacts", len(profile.Contacts)),
	)

	results := s.notifier.Dispatch(ctx, domain.Alert{
		IncidentID: inc.ID,
		UserName:   profile.Name,
		Lat:        req.Lat,
		Lon:        req.Lon,
		Contacts:   profile.Contacts,
	})

	s.logger.Info("sos END",
		slog.String("incident_id", inc.ID.String()),
		slog.Int("attempts", len(results)),
	)
	return inc.ID, nil
}

// AppendLiveLocation does not check that the incident exists or is still
// active; an unknown id fails in the store.
func (s *sosService) AppendLiveLocation(ctx context.Context, req domain.LiveLocationRequest) error {
	const op = "service.SOS.AppendLiveLocation"

	receivedAt := s.now()

	if err := checkRequest(req, ErrMissingLiveFields); err != nil {
		s.logger.Warn("live location rejected", slog.String("incident_id", req.IncidentID), slog.Any("error", err))
		return err
	}

	ctx = context.WithoutCancel(ctx)

	id, err := uuid.Parse(req.IncidentID)
	if err != nil {
		return fmt.Errorf("%s: incident %q: %w", op, req.IncidentID, e.ErrNotFound)
	}

	sample := domain.LiveLocation{Lat: req.Lat, Lon: req.Lon, Ts: receivedAt.UnixMilli()}
	if req.Ts != nil {
		sample.Ts = *req.Ts
	}

	if err := s.incidents.AppendLiveLocation(ctx, id, sample); err != nil {
		s.logger.Error("live location append failed", slog.String("incident_id", req.IncidentID), slog.Any("error", err))
		return e.Wrap(op, err)
	}

	s.logger.Debug("live location appended",
		slog.String("incident_id", req.IncidentID),
		slog.Int64("ts", sample.Ts),
	)
	return nil
}

func (s *sosService) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	const op = "service.SOS.GetIncident"

	incidentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: incident %q: %w", op, id, e.ErrNotFound)
	}

	inc, err := s.incidents.Get(ctx, incidentID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return inc, nil
}

// checkRequest maps a failed "required" tag to missing, anything else to
// out-of-range coordinates.
func checkRequest(req any, missing error) error {
	err := validator.ValidateStruct(req)
	if err == nil {
		return nil
	}
	if len(validator.MissingFields(err)) > 0 {
		return missing
	}
	return e.ErrInvalidCoordinates
}
