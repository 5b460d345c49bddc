package domain

import "time"

// MergedBusinessView is the denormalized external-facing shape: the
// union of Business auth/subscription fields and the primary
// BusinessLocation's profile fields. It is derived at read time and
// never persisted. Every field is always present — strings default to
// "", pointers to nil, slices to an empty non-nil slice — so consumers
// never have to probe for missing keys.
type MergedBusinessView struct {
	ID                    string             `json:"id"`
	Email                 string             `json:"email"`
	Name                  string             `json:"name"`
	AuthSubject           string             `json:"auth_subject"`
	SubscriptionPlan      string             `json:"subscription_plan"`
	SubscriptionTier      string             `json:"subscription_tier"`
	SubscriptionStatus    SubscriptionStatus `json:"subscription_status"`
	CustomersDoNotVisit   bool               `json:"customers_do_not_visit"`
	OnboardingCompletedAt *time.Time         `json:"onboarding_completed_at"`
	IsActive              bool               `json:"is_active"`

	// Named aliases for forms that must tell the two labels apart.
	InternalName string `json:"internal_name"`
	ProfileName  string `json:"profile_name"`

	Description     string     `json:"description"`
	Phone           string     `json:"phone"`
	Website         string     `json:"website"`
	Address         string     `json:"address"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Zip             string     `json:"zip"`
	ServiceZip      string     `json:"service_zip"`
	ServiceRadius   *float64   `json:"service_radius"`
	Category        string     `json:"category"`
	Categories      []string   `json:"categories"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	GeocodedAddress string     `json:"geocoded_address"`
	GeocodedAt      *time.Time `json:"geocoded_at"`
	FacebookURL     string     `json:"facebook_url"`
	InstagramURL    string     `json:"instagram_url"`
	TwitterURL      string     `json:"twitter_url"`
	LinkedinURL     string     `json:"linkedin_url"`
	TiktokURL       string     `json:"tiktok_url"`
	YoutubeURL      string     `json:"youtube_url"`
	Hours           string     `json:"hours"`

	PromotionsCount       int64 `json:"promotions_count,omitempty"`
	ActivePromotionsCount int64 `json:"active_promotions_count,omitempty"`
	EventsCount           int64 `json:"events_count,omitempty"`
	ActiveEventsCount     int64 `json:"active_events_count,omitempty"`

	// Raw record for consumers that need unmergeable per-location data.
	PrimaryLocation *BusinessLocation `json:"primary_location"`
}

// MergeBusinessView combines a business with zero-or-one location into
// the external view. business must be non-nil; callers short-circuit to
// nil upstream when the business record itself is missing. Total and
// pure: no input combination errors.
//
// Precedence: location profile fields win over same-named business
// fields, and the business is a fallback only for Name — ProfileName,
// then the location's internal Name, then Business.Name.
func MergeBusinessView(business *Business, location *BusinessLocation) *MergedBusinessView {
	view := &MergedBusinessView{
		ID:                    business.ID,
		Email:                 business.Email,
		Name:                  business.Name,
		AuthSubject:           business.AuthSubject,
		SubscriptionPlan:      business.SubscriptionPlan,
		SubscriptionTier:      business.SubscriptionTier,
		SubscriptionStatus:    business.SubscriptionStatus,
		CustomersDoNotVisit:   business.CustomersDoNotVisit,
		OnboardingCompletedAt: business.OnboardingCompletedAt,
		IsActive:              business.IsActive,
		Categories:            []string{},
	}

	if location == nil {
		return view
	}

	view.Email = location.Email
	view.InternalName = location.Name
	view.ProfileName = location.ProfileName
	view.Description = location.Description
	view.Phone = location.Phone
	view.Website = location.Website
	view.Address = location.Address
	view.City = location.City
	view.State = location.State
	view.Zip = location.Zip
	view.ServiceZip = location.ServiceZip
	view.ServiceRadius = location.ServiceRadius
	view.Category = location.Category
	view.Latitude = location.Latitude
	view.Longitude = location.Longitude
	view.GeocodedAddress = location.GeocodedAddress
	view.GeocodedAt = location.GeocodedAt
	view.FacebookURL = location.FacebookURL
	view.InstagramURL = location.InstagramURL
	view.TwitterURL = location.TwitterURL
	view.LinkedinURL = location.LinkedinURL
	view.TiktokURL = location.TiktokURL
	view.YoutubeURL = location.YoutubeURL
	view.Hours = location.Hours
	view.PrimaryLocation = location

	if len(location.Categories) > 0 {
		view.Categories = append([]string{}, location.Categories...)
	}

	switch {
	case location.ProfileName != "":
		view.Name = location.ProfileName
	case location.Name != "":
		view.Name = location.Name
	}

	return view
}
