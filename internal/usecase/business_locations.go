package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lovelocal/directory-service/internal/domain"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
	"github.com/lovelocal/directory-service/internal/usecase/validation"
)

// locationLimit maps a subscription tier to the number of locations a
// business may hold. Unknown and empty tiers get the single-location
// baseline.
func locationLimit(tier string) int64 {
	switch strings.ToLower(tier) {
	case "pro":
		return 5
	case "premium", "enterprise":
		return 25
	default:
		return 1
	}
}

func (uc *DefaultBusinessUsecase) GetBusinessLocations(businessID string) ([]*domain.BusinessLocation, error) {
	business, err := uc.BusinessRepo.GetBusinessByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	return uc.LocationRepo.GetLocationsByBusinessID(businessID)
}

// AddBusinessLocation creates a secondary (non-primary) location. The
// primary is managed by the profile write path; this one is gated by
// the subscription tier's location limit.
func (uc *DefaultBusinessUsecase) AddBusinessLocation(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error) {
	business, err := uc.BusinessRepo.GetBusinessByID(input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	count, err := uc.LocationRepo.CountLocations(business.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count locations: %w", err)
	}
	if count >= locationLimit(business.SubscriptionTier) {
		return nil, domain.ErrLocationLimitReached
	}

	fields, err := uc.validatedLocationFields(business.ID, input.Fields)
	if err != nil {
		return nil, err
	}

	location := &domain.BusinessLocation{
		ID:          uuid.New().String(),
		BusinessID:  business.ID,
		IsPrimary:   false,
		Name:        business.Name,
		ProfileName: business.Name,
		Hours:       "{}",
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uc.LocationRepo.CreateLocation(location); err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordMutation("add_location", err)
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	if len(fields) > 0 {
		if err := uc.LocationRepo.PatchLocation(location.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to apply location fields: %w", err)
		}
	}

	created, err := uc.LocationRepo.GetLocationByID(location.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload location: %w", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordMutation("add_location", nil)
	}
	return created, nil
}

func (uc *DefaultBusinessUsecase) UpdateBusinessLocation(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error) {
	location, err := uc.LocationRepo.GetLocationByID(input.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}

	fields, err := uc.validatedLocationFields(location.BusinessID, input.Fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := uc.LocationRepo.PatchLocation(location.ID, fields); err != nil {
			if uc.Metrics != nil {
				uc.Metrics.RecordMutation("update_location", err)
			}
			return nil, fmt.Errorf("failed to update location: %w", err)
		}
	}

	updated, err := uc.LocationRepo.GetLocationByID(location.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload location: %w", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordMutation("update_location", nil)
	}
	return updated, nil
}

// validatedLocationFields runs social validation and the field split
// over a location payload and returns the location half, geocoded when
// the payload carries a full address. Identity and billing columns have
// no meaning on a location row and are dropped.
func (uc *DefaultBusinessUsecase) validatedLocationFields(businessID string, raw map[string]interface{}) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	for k, v := range raw {
		updates[k] = v
	}

	socialResult := validation.ValidateBusinessSocialMedia(updates)
	if len(socialResult.Errors) > 0 {
		if uc.Metrics != nil {
			for field := range socialResult.Errors {
				uc.Metrics.RecordValidationFailure(field)
			}
		}
		return nil, &validation.ValidationError{
			Type:   "social_media_validation",
			Errors: socialResult.Errors,
		}
	}
	for field, value := range socialResult.ValidatedUpdates {
		updates[field] = value
	}

	_, locationFields := SplitBusinessUpdates(updates)

	if err := uc.maybeGeocode(locationFields, businessID); err != nil {
		uc.Logger.Warn("geocoding skipped", zap.String("business_id", businessID), zap.Error(err))
	}

	return locationFields, nil
}

// ListBusinesses pages through the raw business table and merges each
// active row. Inactive rows are skipped, not errored.
func (uc *DefaultBusinessUsecase) ListBusinesses(page, limit int32) ([]*domain.MergedBusinessView, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	businesses, err := uc.BusinessRepo.GetBusinesses(page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	views := []*domain.MergedBusinessView{}
	for _, business := range businesses {
		if !business.IsActive {
			continue
		}
		view, err := uc.mergedView(business)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
