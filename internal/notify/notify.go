package notify

import (
	"context"
	"errors"
	"fmt"

	"sosAlert/internal/domain"
)

var (
	ErrChannelUnavailable = errors.New("no contact channel available")
	ErrPushNotConfigured  = errors.New("push service not configured")
)

//go:generate mockgen -source=notify.go -destination=mocks/mock.go
type PushSender interface {
	Send(ctx context.Context, token string, msg domain.PushMessage) error
}

// SMSSender sends from the deployment's configured sender number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// DeliveryError is returned by the channel clients when the upstream
// service rejects a message.
type DeliveryError struct {
	Channel    domain.Channel
	StatusCode int
	Code       string
	Message    string
}

func (e *DeliveryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s delivery failed: status %d: %s (%s)", e.Channel, e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("%s delivery failed: status %d: %s", e.Channel, e.StatusCode, e.Message)
}
