package domain

import (
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelPush Channel = "push"
	ChannelSMS  Channel = "sms"
	ChannelNone Channel = "none"
)

type AttemptOutcome string

const (
	OutcomeSent               AttemptOutcome = "sent"
	OutcomeChannelUnavailable AttemptOutcome = "channel_unavailable"
	OutcomeDeliveryFailed     AttemptOutcome = "delivery_failed"
)

// Alert is everything the dispatcher needs to notify a user's contacts.
type Alert struct {
	IncidentID uuid.UUID
	UserName   string
	Lat        float64
	Lon        float64
	Contacts   []Contact
}

type AttemptResult struct {
	ContactIndex int            `json:"contactIndex"`
	Channel      Channel        `json:"channel"`
	Outcome      AttemptOutcome `json:"outcome"`
	Error        string         `json:"error,omitempty"`
	Duration     time.Duration  `json:"duration"`
}

type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}
