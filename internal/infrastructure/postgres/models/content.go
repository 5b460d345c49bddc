package models

import "time"

type PromotionModel struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	BusinessID  string     `gorm:"index:idx_promotions_business_status,priority:1;not null"`
	Title       string     `gorm:"not null"`
	Description string
	Terms       string
	Status      string     `gorm:"index:idx_promotions_business_status,priority:2"`
	StartsAt    *time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PromotionModel) TableName() string {
	return "promotions"
}

type EventModel struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	BusinessID  string     `gorm:"index:idx_events_business_status,priority:1;not null"`
	Title       string     `gorm:"not null"`
	Description string
	Terms       string
	Status      string     `gorm:"index:idx_events_business_status,priority:2"`
	StartsAt    *time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (EventModel) TableName() string {
	return "events"
}

type FollowerModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	BusinessID string    `gorm:"index:idx_followers_business;uniqueIndex:idx_followers_business_user,priority:1;not null"`
	UserID     string    `gorm:"index:idx_followers_user;uniqueIndex:idx_followers_business_user,priority:2;not null"`
	CreatedAt  time.Time
}

func (FollowerModel) TableName() string {
	return "followers"
}
