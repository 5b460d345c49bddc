package kafka

import "time"

const (
	EventBusinessCreated    = "business.created"
	EventBusinessUpdated    = "business.updated"
	EventBusinessOnboarded  = "business.onboarded"
	EventBusinessArchived   = "business.archived"
	EventBusinessDeleted    = "business.deleted"
	EventGeofenceEvaluated  = "geofence.evaluated"
)

// BusinessEvent is the JSON payload published for directory lifecycle
// changes, keyed by business id so per-business ordering is preserved.
type BusinessEvent struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"business_id"`
	Email      string    `json:"email,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GeofenceEvent records one geofence evaluation for downstream
// notification ranking.
type GeofenceEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	RadiusMiles float64   `json:"radius_miles"`
	Matches     int       `json:"matches"`
	OccurredAt  time.Time `json:"occurred_at"`
}
