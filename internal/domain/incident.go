package domain

import (
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentActive IncidentStatus = "active"
	// resolved and cancelled are set by collaborating systems, never by this service.
	IncidentResolved  IncidentStatus = "resolved"
	IncidentCancelled IncidentStatus = "cancelled"
)

type Location struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Accuracy *float64 `json:"accuracy"`
}

// LiveLocation is a single sample of the live trail. Ts is epoch milliseconds.
type LiveLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ts  int64   `json:"ts"`
}

type Incident struct {
	ID            uuid.UUID        `json:"id"`
	UserID        string           `json:"userId"`
	CreatedAt     time.Time        `json:"createdAt"`
	Status        IncidentStatus   `json:"status"`
	Location      Location         `json:"location"`
	LiveLocations []LiveLocation   `json:"liveLocations"`
	Escalation    []map[string]any `json:"escalation"`
	Extra         map[string]any   `json:"extra"`
}
