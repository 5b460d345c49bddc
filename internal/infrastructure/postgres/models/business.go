package models

import "time"

// Soft deletion is modeled with explicit is_active/deleted_at columns
// instead of gorm.DeletedAt: the retention sweep has to query expired
// rows, which gorm's soft-delete scope would hide.
type BusinessModel struct {
	ID                    string     `gorm:"primaryKey;type:uuid"`
	Email                 string     `gorm:"uniqueIndex:idx_businesses_email;not null"`
	Name                  string
	AuthSubject           string     `gorm:"uniqueIndex:idx_businesses_auth_subject"`
	SubscriptionPlan      string
	SubscriptionTier      string
	SubscriptionStatus    string
	CustomersDoNotVisit   bool       `gorm:"default:false"`
	OnboardingCompletedAt *time.Time
	IsActive              bool       `gorm:"default:true;index:idx_businesses_active"`
	DeletedAt             *time.Time `gorm:"index:idx_businesses_deleted"`
	DeletionReason        string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (BusinessModel) TableName() string {
	return "businesses"
}
