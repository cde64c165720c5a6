package domain

// Zero coordinates fail the "required" tag, same as the mobile backend this replaces.
type CreateSOSRequest struct {
	UserID   string         `json:"userId" validate:"required"`
	Lat      float64        `json:"lat" validate:"required,lat"`
	Lon      float64        `json:"lon" validate:"required,lng"`
	Accuracy *float64       `json:"accuracy"`
	Extra    map[string]any `json:"extra"`
}

type LiveLocationRequest struct {
	IncidentID string  `json:"incidentId" validate:"required"`
	Lat        float64 `json:"lat" validate:"required,lat"`
	Lon        float64 `json:"lon" validate:"required,lng"`
	Ts         *int64  `json:"ts"`
}

type CreateSOSResponse struct {
	OK         bool   `json:"ok"`
	IncidentID string `json:"incidentId"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type IncidentResponse struct {
	OK       bool      `json:"ok"`
	Incident *Incident `json:"incident"`
}

type HealthResponse struct {
	OK   bool  `json:"ok"`
	Time int64 `json:"time"`
}
