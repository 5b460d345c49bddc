package models

import (
	"time"

	"github.com/lib/pq"
)

type BusinessLocationModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	// The partial unique index is the schema guard for the
	// one-primary-per-business invariant: a second is_primary row for
	// the same business is rejected by the database itself.
	BusinessID      string `gorm:"index:idx_locations_business;uniqueIndex:idx_locations_primary_unique,where:is_primary;not null"`
	IsPrimary       bool   `gorm:"index:idx_locations_primary_active,priority:1;default:false"`
	Name            string `gorm:"not null"`
	ProfileName     string
	Description     string
	Email           string
	Phone           string
	Website         string
	Address         string
	City            string `gorm:"index:idx_locations_city_state,priority:1"`
	State           string `gorm:"index:idx_locations_city_state,priority:2"`
	Zip             string
	ServiceZip      string
	ServiceRadius   *float64
	Category        string         `gorm:"index:idx_locations_category"`
	Categories      pq.StringArray `gorm:"type:text[]"`
	Latitude        *float64       `gorm:"type:decimal(10,8)"`
	Longitude       *float64       `gorm:"type:decimal(11,8)"`
	GeocodedAddress string
	GeocodedAt      *time.Time
	FacebookURL     string
	InstagramURL    string
	TwitterURL      string
	LinkedinURL     string
	TiktokURL       string
	YoutubeURL      string
	Hours           string `gorm:"type:jsonb;default:'{}'"`
	IsActive        bool   `gorm:"index:idx_locations_primary_active,priority:2;default:true"`
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BusinessLocationModel) TableName() string {
	return "business_locations"
}
