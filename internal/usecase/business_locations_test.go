package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelocal/directory-service/internal/domain"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
	"github.com/lovelocal/directory-service/internal/usecase/validation"
)

func TestLocationLimitByTier(t *testing.T) {
	tests := []struct {
		tier string
		want int64
	}{
		{"", 1},
		{"free", 1},
		{"pro", 5},
		{"PRO", 5},
		{"premium", 25},
		{"enterprise", 25},
		{"unknown-tier", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, locationLimit(tt.tier), "tier %q", tt.tier)
	}
}

func TestAddBusinessLocationEnforcesTierLimit(t *testing.T) {
	f := newFixture()

	// baseline tier: the seeded primary already fills the quota
	basic := f.seedBusiness(t, "basic@acme.test", "Basic Shop")
	_, err := f.uc.AddBusinessLocation(&businessdto.AddLocationInput{BusinessID: basic.ID})
	assert.ErrorIs(t, err, domain.ErrLocationLimitReached)

	pro, err := f.uc.CreateBusiness(&businessdto.CreateBusinessInput{
		Email:            "pro@acme.test",
		Name:             "Pro Shop",
		SubscriptionTier: "pro",
	})
	require.NoError(t, err)

	// primary plus four secondaries fills the pro quota of five
	for i := 0; i < 4; i++ {
		_, err := f.uc.AddBusinessLocation(&businessdto.AddLocationInput{
			BusinessID: pro.ID,
			Fields:     map[string]interface{}{"city": fmt.Sprintf("City %d", i)},
		})
		require.NoError(t, err)
	}
	_, err = f.uc.AddBusinessLocation(&businessdto.AddLocationInput{BusinessID: pro.ID})
	assert.ErrorIs(t, err, domain.ErrLocationLimitReached)

	locations, err := f.uc.GetBusinessLocations(pro.ID)
	require.NoError(t, err)
	assert.Len(t, locations, 5)
}

func TestAddBusinessLocationSeedsAndAppliesFields(t *testing.T) {
	f := newFixture()
	f.geocoder.point = &domain.GeoPoint{Latitude: 30.2860, Longitude: -81.3960}
	pro, err := f.uc.CreateBusiness(&businessdto.CreateBusinessInput{
		Email:            "pro@acme.test",
		Name:             "Pro Shop",
		SubscriptionTier: "pro",
	})
	require.NoError(t, err)

	location, err := f.uc.AddBusinessLocation(&businessdto.AddLocationInput{
		BusinessID: pro.ID,
		Fields: map[string]interface{}{
			"profile_name": "Pro Shop Beaches",
			"address":      "500 Ocean Blvd",
			"city":         "Jacksonville Beach",
			"state":        "FL",
			"phone":        "9045559999",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.False(t, location.IsPrimary)
	assert.Equal(t, pro.ID, location.BusinessID)
	assert.Equal(t, "Pro Shop", location.Name)
	assert.Equal(t, "Pro Shop Beaches", location.ProfileName)
	assert.Equal(t, "Jacksonville Beach", location.City)
	assert.Equal(t, "9045559999", location.Phone)
	require.NotNil(t, location.Latitude)
	assert.InDelta(t, 30.2860, *location.Latitude, 1e-9)

	// the primary is untouched
	primary, err := f.locations.GetPrimaryLocation(pro.ID)
	require.NoError(t, err)
	assert.Equal(t, "", primary.City)
}

func TestAddBusinessLocationUnknownBusiness(t *testing.T) {
	f := newFixture()

	_, err := f.uc.AddBusinessLocation(&businessdto.AddLocationInput{BusinessID: "missing"})
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestUpdateBusinessLocation(t *testing.T) {
	f := newFixture()
	created := f.seedBusiness(t, "owner@acme.test", "Acme Hardware")
	primary, err := f.locations.GetPrimaryLocation(created.ID)
	require.NoError(t, err)

	updated, err := f.uc.UpdateBusinessLocation(&businessdto.UpdateLocationInput{
		LocationID: primary.ID,
		Fields:     map[string]interface{}{"phone": "9045551234", "website": "https://acme.test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "9045551234", updated.Phone)
	assert.Equal(t, "https://acme.test", updated.Website)
}

func TestUpdateBusinessLocationNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UpdateBusinessLocation(&businessdto.UpdateLocationInput{
		LocationID: "missing",
		Fields:     map[string]interface{}{"phone": "x"},
	})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestUpdateBusinessLocationSocialValidation(t *testing.T) {
	f := newFixture()
	created := f.seedBusiness(t, "owner@acme.test", "Acme Hardware")
	primary, err := f.locations.GetPrimaryLocation(created.ID)
	require.NoError(t, err)

	_, err = f.uc.UpdateBusinessLocation(&businessdto.UpdateLocationInput{
		LocationID: primary.ID,
		Fields:     map[string]interface{}{"instagram_url": "https://facebook.com/acme"},
	})
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "instagram_url")
}

func TestGetBusinessLocationsUnknownBusiness(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetBusinessLocations("missing")
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestListBusinessesSkipsInactive(t *testing.T) {
	f := newFixture()
	active := f.seedBusiness(t, "active@acme.test", "Active Shop")
	archived := f.seedBusiness(t, "archived@acme.test", "Archived Shop")
	require.NoError(t, f.businesses.ArchiveBusiness(archived.ID, "test", time.Now()))

	views, err := f.uc.ListBusinesses(1, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, active.ID, views[0].ID)
}
