package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"sosAlert/internal/domain"
)

const (
	defaultWorkers        = 4
	defaultAttemptTimeout = 10 * time.Second
)

// Dispatcher fans an alert out to a user's emergency contacts. Each contact
// gets at most one channel attempt: push when the contact has a token,
// otherwise SMS when the gateway is configured and the contact has a phone.
type Dispatcher struct {
	push    PushSender
	sms     SMSSender
	logger  *slog.Logger
	workers int
	timeout time.Duration
}

type Option func(*Dispatcher)

func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

func WithAttemptTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher accepts nil senders. A nil sms disables the SMS channel.
func NewDispatcher(logger *slog.Logger, push PushSender, sms SMSSender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		push:    push,
		sms:     sms,
		logger:  logger,
		workers: defaultWorkers,
		timeout: defaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch returns once every attempt has finished or hit its timeout.
// Results are in contact order. Failures are logged and never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, alert domain.Alert) []domain.AttemptResult {
	results := make([]domain.AttemptResult, len(alert.Contacts))
	if len(alert.Contacts) == 0 {
		d.logger.Info("no emergency contacts to notify", slog.String("incident_id", alert.IncidentID.String()))
		return results
	}

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, c := range alert.Contacts {
		g.Go(func() error {
			results[i] = d.attempt(ctx, alert, i, c)
			return nil
		})
	}
	_ = g.Wait()

	d.logSummary(alert, results)
	return results
}

func (d *Dispatcher) attempt(ctx context.Context, alert domain.Alert, idx int, c domain.Contact) domain.AttemptResult {
	start := time.Now()
	res := domain.AttemptResult{ContactIndex: idx}

	l := d.logger.With(
		slog.String("incident_id", alert.IncidentID.String()),
		slog.Int("contact_index", idx),
	)

	var err error
	switch {
	case c.PushToken != "":
		res.Channel = domain.ChannelPush
		l = l.With(slog.String("channel", string(res.Channel)), slog.String("push_token", maskToken(c.PushToken)))
		if d.push == nil {
			err = ErrPushNotConfigured
			break
		}
		msg := pushMessage(alert)
		err = d.withTimeout(ctx, func(ctx context.Context) error {
			return d.push.Send(ctx, c.PushToken, msg)
		})

	case d.sms != nil && c.Phone != "":
		res.Channel = domain.ChannelSMS
		l = l.With(slog.String("channel", string(res.Channel)), slog.String("phone", maskPhone(c.Phone)))
		body := smsBody(alert)
		err = d.withTimeout(ctx, func(ctx context.Context) error {
			return d.sms.Send(ctx, c.Phone, body)
		})

	default:
		res.Channel = domain.ChannelNone
		res.Outcome = domain.OutcomeChannelUnavailable
		res.Error = ErrChannelUnavailable.Error()
		res.Duration = time.Since(start)
		l.Info("no contact channel, skipping",
			slog.Bool("has_phone", c.Phone != ""),
			slog.Bool("sms_enabled", d.sms != nil),
		)
		return res
	}

	res.Duration = time.Since(start)
	if err != nil {
		res.Outcome = domain.OutcomeDeliveryFailed
		res.Error = err.Error()
		l.Error("notify contact failed", slog.Any("error", err), slog.Duration("latency", res.Duration))
		return res
	}

	res.Outcome = domain.OutcomeSent
	l.Info("contact notified", slog.Duration("latency", res.Duration))
	return res
}

// withTimeout bounds fn by the attempt timeout even when fn ignores its
// context. A panic in fn is reported as an error.
func (d *Dispatcher) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("channel client panic: %v", r)
			}
		}()
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("attempt aborted after %s: %w", d.timeout, ctx.Err())
	}
}

func (d *Dispatcher) logSummary(alert domain.Alert, results []domain.AttemptResult) {
	var sent, skipped, failed int
	for _, r := range results {
		switch r.Outcome {
		case domain.OutcomeSent:
			sent++
		case domain.OutcomeChannelUnavailable:
			skipped++
		case domain.OutcomeDeliveryFailed:
			failed++
		}
	}
	d.logger.Info("dispatch finished",
		slog.String("incident_id", alert.IncidentID.String()),
		slog.Int("contacts", len(results)),
		slog.Int("sent", sent),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
	)
}
