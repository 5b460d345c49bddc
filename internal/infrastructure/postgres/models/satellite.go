package models

import "time"

// Satellite tables touched only by the cascade engine (full delete,
// archive, retention sweep). They carry the minimum columns the
// cascades need; their own services own the rest of the schema.

type BusinessPhotoModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	URL        string
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (BusinessPhotoModel) TableName() string { return "business_photos" }

type MenuCategoryModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	Name       string
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (MenuCategoryModel) TableName() string { return "menu_categories" }

type MenuItemModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	CategoryID string     `gorm:"index"`
	Name       string
	Price      float64
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (MenuItemModel) TableName() string { return "menu_items" }

type PaymentModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	Amount     float64
	Status     string
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (PaymentModel) TableName() string { return "payments" }

type SubscriptionModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	Plan       string
	Status     string
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

type NewsletterSubscriptionModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	Email      string
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (NewsletterSubscriptionModel) TableName() string { return "newsletter_subscriptions" }

type BoostModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	BusinessID string     `gorm:"index;not null"`
	Status     string
	ExpiresAt  *time.Time
	IsActive   bool       `gorm:"default:true"`
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func (BoostModel) TableName() string { return "boosts" }

type EmailChangeRequestModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	BusinessID string    `gorm:"index;not null"`
	NewEmail   string
	Status     string
	CreatedAt  time.Time
}

func (EmailChangeRequestModel) TableName() string { return "email_change_requests" }

type PasswordChangeRequestModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	BusinessID string    `gorm:"index;not null"`
	Status     string
	CreatedAt  time.Time
}

func (PasswordChangeRequestModel) TableName() string { return "password_change_requests" }

type GiveawayEntryModel struct {
	ID                string     `gorm:"primaryKey;type:uuid"`
	PartnerBusinessID string     `gorm:"index;not null"`
	GiveawayID        string     `gorm:"index"`
	IsActive          bool       `gorm:"default:true"`
	DeletedAt         *time.Time
	CreatedAt         time.Time
}

func (GiveawayEntryModel) TableName() string { return "giveaway_entries" }
