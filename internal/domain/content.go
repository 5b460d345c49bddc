package domain

import "time"

type ContentStatus string

const (
	ContentActive   ContentStatus = "active"
	ContentDraft    ContentStatus = "draft"
	ContentExpired  ContentStatus = "expired"
	ContentArchived ContentStatus = "archived"
)

// Promotion and Event are owned content records consulted by the
// free-text search and the geofencing engagement score.
type Promotion struct {
	ID          string
	BusinessID  string
	Title       string
	Description string
	Terms       string
	Status      ContentStatus
	StartsAt    *time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Event struct {
	ID          string
	BusinessID  string
	Title       string
	Description string
	Terms       string
	Status      ContentStatus
	StartsAt    *time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Follower struct {
	ID         string
	BusinessID string
	UserID     string
	CreatedAt  time.Time
}

type PromotionRepository interface {
	GetActivePromotions(businessID string) ([]*Promotion, error)
	CountActivePromotions(businessID string) (int64, error)
}

type EventRepository interface {
	GetActiveEvents(businessID string) ([]*Event, error)
	CountActiveEvents(businessID string) (int64, error)
}

type FollowerRepository interface {
	CountFollowers(businessID string) (int64, error)
	IsFollowing(businessID, userID string) (bool, error)
}
