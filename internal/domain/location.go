package domain

import "time"

// BusinessLocation is the profile/contact/geo half of the dual-table
// profile. Name is the internal operational label, ProfileName the
// customer-facing one. At most one location per business is primary.
type BusinessLocation struct {
	ID              string
	BusinessID      string
	IsPrimary       bool
	Name            string
	ProfileName     string
	Description     string
	Email           string
	Phone           string
	Website         string
	Address         string
	City            string
	State           string
	Zip             string
	ServiceZip      string
	ServiceRadius   *float64
	Category        string
	Categories      []string
	Latitude        *float64
	Longitude       *float64
	GeocodedAddress string
	GeocodedAt      *time.Time
	FacebookURL     string
	InstagramURL    string
	TwitterURL      string
	LinkedinURL     string
	TiktokURL       string
	YoutubeURL      string
	Hours           string
	IsActive        bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCoordinates reports whether the location has been geocoded.
func (l *BusinessLocation) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// EffectiveCategories returns the categories array, consulting the
// legacy single-category field only when the array is empty.
func (l *BusinessLocation) EffectiveCategories() []string {
	if len(l.Categories) > 0 {
		return l.Categories
	}
	if l.Category != "" {
		return []string{l.Category}
	}
	return nil
}

type LocationRepository interface {
	CreateLocation(location *BusinessLocation) error
	GetLocationByID(id string) (*BusinessLocation, error)
	GetPrimaryLocation(businessID string) (*BusinessLocation, error)
	GetFirstLocation(businessID string) (*BusinessLocation, error)
	GetLocationsByBusinessID(businessID string) ([]*BusinessLocation, error)
	CountLocations(businessID string) (int64, error)
	GetPrimaryActiveLocations() ([]*BusinessLocation, error)
	GetPrimaryActiveLocationsByCity(city, state string) ([]*BusinessLocation, error)
	// UpsertPrimaryLocation patches the primary location with the given
	// fields, creating it (seeded with seedName in both name columns)
	// when none exists. Implementations must serialize the
	// find-or-create so two concurrent writers cannot both insert a
	// primary for the same business.
	UpsertPrimaryLocation(businessID, seedName string, fields map[string]interface{}) (*BusinessLocation, error)
	PatchLocation(id string, fields map[string]interface{}) error
	GetLocationsMissingCoordinates(limit int) ([]*BusinessLocation, error)
	ArchiveLocations(businessID string, deletedAt time.Time) (int64, error)
	DeleteLocations(businessID string) (int64, error)
}
