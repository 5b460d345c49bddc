package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionTrialing SubscriptionStatus = "TRIALING"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

// Business is the identity/billing half of the dual-table profile.
// Profile and geo fields live on BusinessLocation.
type Business struct {
	ID                    string
	Email                 string
	Name                  string
	AuthSubject           string
	SubscriptionPlan      string
	SubscriptionTier      string
	SubscriptionStatus    SubscriptionStatus
	CustomersDoNotVisit   bool
	OnboardingCompletedAt *time.Time
	IsActive              bool
	DeletedAt             *time.Time
	DeletionReason        string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type BusinessRepository interface {
	CreateBusiness(business *Business) error
	PatchBusiness(id string, fields map[string]interface{}) error
	GetBusinessByID(id string) (*Business, error)
	GetBusinessByEmail(email string) (*Business, error)
	GetBusinessByAuthSubject(subject string) (*Business, error)
	GetBusinesses(page, limit int32) ([]*Business, error)
	SetOnboardingCompleted(id string, completedAt time.Time) error
	ArchiveBusiness(id, reason string, deletedAt time.Time) error
	GetExpiredBusinesses(deletedBefore time.Time) ([]*Business, error)
	DeleteBusiness(id string) error
}
