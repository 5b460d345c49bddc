package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/infrastructure/kafka"
	"github.com/lovelocal/directory-service/internal/usecase/cascade"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
	"github.com/lovelocal/directory-service/internal/usecase/validation"
)

func (uc *DefaultBusinessUsecase) CreateBusinessAfterAuth(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error) {
	if input.AuthSubject == "" {
		return nil, fmt.Errorf("auth subject is required")
	}
	return uc.createBusiness(input)
}

func (uc *DefaultBusinessUsecase) CreateBusiness(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error) {
	return uc.createBusiness(input)
}

func (uc *DefaultBusinessUsecase) createBusiness(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("invalid email %q", input.Email)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("business name is required")
	}

	business := &domain.Business{
		ID:                 uuid.New().String(),
		Email:              input.Email,
		Name:               input.Name,
		AuthSubject:        input.AuthSubject,
		SubscriptionPlan:   input.SubscriptionPlan,
		SubscriptionTier:   input.SubscriptionTier,
		SubscriptionStatus: domain.SubscriptionTrialing,
		IsActive:           true,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := uc.BusinessRepo.CreateBusiness(business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	// Primary location seeded with the display name in both labels and
	// empty-string address fields, created in the same upsert path the
	// profile writes use.
	location, err := uc.LocationRepo.UpsertPrimaryLocation(business.ID, business.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary location: %w", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordMutation("create", nil)
	}
	uc.publishBusinessEvent(kafka.EventBusinessCreated, business, location)

	return domain.MergeBusinessView(business, location), nil
}

func (uc *DefaultBusinessUsecase) UpdateBusiness(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error) {
	business, err := uc.BusinessRepo.GetBusinessByID(input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	updates := input.Updates
	if updates == nil {
		updates = map[string]interface{}{}
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
	for field, warning := range socialResult.Warnings {
		uc.Logger.Info("social media url auto-corrected",
			zap.String("business_id", business.ID),
			zap.String("field", field),
			zap.String("warning", warning))
	}
	for field, value := range socialResult.ValidatedUpdates {
		updates[field] = value
	}

	businessFields, locationFields := SplitBusinessUpdates(updates)

	if err := uc.maybeGeocode(locationFields, input.BusinessID); err != nil {
		uc.Logger.Warn("geocoding skipped", zap.String("business_id", business.ID), zap.Error(err))
	}

	if len(businessFields) > 0 {
		if err := uc.BusinessRepo.PatchBusiness(business.ID, businessFields); err != nil {
			if uc.Metrics != nil {
				uc.Metrics.RecordMutation("update", err)
			}
			return nil, fmt.Errorf("failed to update business: %w", err)
		}
	}

	// Seed with the incoming name, not the stale pre-patch one, in case
	// this write both renames the business and creates the primary.
	seedName := business.Name
	if renamed, ok := businessFields["name"].(string); ok && renamed != "" {
		seedName = renamed
	}

	location, err := uc.LocationRepo.UpsertPrimaryLocation(business.ID, seedName, locationFields)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordMutation("update", err)
		}
		return nil, fmt.Errorf("failed to update primary location: %w", err)
	}

	business, err = uc.BusinessRepo.GetBusinessByID(business.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	view := domain.MergeBusinessView(business, location)

	output := &businessdto.UpdateBusinessOutput{
		Business: view,
		Warnings: socialResult.Warnings,
	}

	// One-way transition: the timestamp is set once and never cleared.
	if business.OnboardingCompletedAt == nil && onboardingComplete(view) {
		completedAt := time.Now()
		if err := uc.BusinessRepo.SetOnboardingCompleted(business.ID, completedAt); err != nil {
			return nil, fmt.Errorf("failed to set onboarding completion: %w", err)
		}
		view.OnboardingCompletedAt = &completedAt
		output.OnboardingCompleted = true
		if uc.Metrics != nil {
			uc.Metrics.RecordOnboardingCompleted()
		}
		uc.publishBusinessEvent(kafka.EventBusinessOnboarded, business, location)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordMutation("update", nil)
	}
	uc.publishBusinessEvent(kafka.EventBusinessUpdated, business, location)

	return output, nil
}

// maybeGeocode stamps coordinates and provenance onto the location
// fields when the payload changes the address and a geocoder is wired.
// Geocoding failures never block the write.
func (uc *DefaultBusinessUsecase) maybeGeocode(locationFields map[string]interface{}, businessID string) error {
	if uc.Geocoder == nil {
		return nil
	}
	address, _ := locationFields["address"].(string)
	city, _ := locationFields["city"].(string)
	state, _ := locationFields["state"].(string)
	if address == "" || city == "" || state == "" {
		return nil
	}

	full := fmt.Sprintf("%s, %s, %s", address, city, state)
	if zip, _ := locationFields["zip"].(string); zip != "" {
		full = fmt.Sprintf("%s %s", full, zip)
	}

	point, err := uc.Geocoder.Geocode(full)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordGeocode("error")
		}
		return err
	}
	if point == nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordGeocode("not_found")
		}
		return nil
	}

	locationFields["latitude"] = point.Latitude
	locationFields["longitude"] = point.Longitude
	locationFields["geocoded_address"] = full
	locationFields["geocoded_at"] = time.Now()
	if uc.Metrics != nil {
		uc.Metrics.RecordGeocode("ok")
	}
	return nil
}

func (uc *DefaultBusinessUsecase) DeleteBusinessCompletely(input *businessdto.DeleteBusinessInput) (*businessdto.DeletionReport, error) {
	if !input.ConfirmDeletion {
		return nil, domain.ErrConfirmationRequired
	}

	business, err := uc.BusinessRepo.GetBusinessByID(input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	return uc.deleteCompletely(business, cascade.FullDeleteRelations)
}

func (uc *DefaultBusinessUsecase) DeleteBusinessByAuthSubject(subject string, confirmDeletion bool) (*businessdto.DeletionReport, error) {
	if !confirmDeletion {
		return nil, domain.ErrConfirmationRequired
	}

	business, err := uc.BusinessRepo.GetBusinessByAuthSubject(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	return uc.deleteCompletely(business, cascade.FullDeleteRelations)
}

// deleteCompletely runs the hard-delete fan-out. No transaction spans
// the cascade: on partial failure the report carries what was removed
// and the caller re-runs to completion.
func (uc *DefaultBusinessUsecase) deleteCompletely(business *domain.Business, relations []cascade.Relation) (*businessdto.DeletionReport, error) {
	report := &businessdto.DeletionReport{
		BusinessID:  business.ID,
		Collections: map[string]int64{},
	}

	cascadeReport, err := uc.Cascade.Run(business.ID, relations, cascade.ModeDelete)
	for name, count := range cascadeReport {
		report.Collections[name] = count
		if uc.Metrics != nil {
			uc.Metrics.RecordCascade(name, "delete", count)
		}
	}
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordMutation("delete", err)
		}
		return report, fmt.Errorf("cascade delete failed: %w", err)
	}

	locationCount, err := uc.LocationRepo.DeleteLocations(business.ID)
	report.BusinessLocations = locationCount
	if err != nil {
		return report, fmt.Errorf("failed to delete locations: %w", err)
	}

	if err := uc.BusinessRepo.DeleteBusiness(business.ID); err != nil {
		return report, fmt.Errorf("failed to delete business: %w", err)
	}
	report.BusinessDeleted = true

	if uc.Metrics != nil {
		uc.Metrics.RecordMutation("delete", nil)
	}
	uc.publishBusinessEvent(kafka.EventBusinessDeleted, business, nil)

	return report, nil
}

func (uc *DefaultBusinessUsecase) ArchiveBusinessForDeletedUser(authSubject string) (*businessdto.ArchiveReport, error) {
	business, err := uc.BusinessRepo.GetBusinessByAuthSubject(authSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	report := &businessdto.ArchiveReport{
		BusinessID:  business.ID,
		Collections: map[string]int64{},
	}

	cascadeReport, err := uc.Cascade.Run(business.ID, cascade.ArchiveRelations, cascade.ModeArchive)
	for name, count := range cascadeReport {
		report.Collections[name] = count
		if uc.Metrics != nil {
			uc.Metrics.RecordCascade(name, "archive", count)
		}
	}
	if err != nil {
		return report, fmt.Errorf("cascade archive failed: %w", err)
	}

	deletedAt := time.Now()
	locationCount, err := uc.LocationRepo.ArchiveLocations(business.ID, deletedAt)
	report.BusinessLocations = locationCount
	if err != nil {
		return report, fmt.Errorf("failed to archive locations: %w", err)
	}

	if err := uc.BusinessRepo.ArchiveBusiness(business.ID, "auth provider account deleted", deletedAt); err != nil {
		return report, fmt.Errorf("failed to archive business: %w", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordMutation("archive", nil)
	}
	uc.publishBusinessEvent(kafka.EventBusinessArchived, business, nil)

	return report, nil
}

// HardDeleteExpiredBusinesses sweeps businesses archived more than the
// retention window ago. Per-business failures are collected and the
// sweep continues with the remaining rows.
func (uc *DefaultBusinessUsecase) HardDeleteExpiredBusinesses() (*businessdto.SweepReport, error) {
	cutoff := time.Now().AddDate(0, 0, -uc.RetentionDays)
	expired, err := uc.BusinessRepo.GetExpiredBusinesses(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired businesses: %w", err)
	}

	report := &businessdto.SweepReport{BatchID: newBatchID()}
	for i, business := range expired {
		deletionReport, err := uc.deleteCompletely(business, cascade.SweepRelations)
		if err != nil {
			report.Errors = append(report.Errors, businessdto.ItemError{
				Index: i,
				Key:   business.ID,
				Error: err.Error(),
			})
			continue
		}
		report.Swept++
		report.Reports = append(report.Reports, deletionReport)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSweep(report.Swept)
	}
	uc.Logger.Info("retention sweep finished",
		zap.String("batch_id", report.BatchID),
		zap.Int("expired", len(expired)),
		zap.Int("swept", report.Swept),
		zap.Int("errors", len(report.Errors)))

	return report, nil
}

func (uc *DefaultBusinessUsecase) BulkCreateBusinesses(input *businessdto.BulkCreateInput) (*businessdto.BulkCreateReport, error) {
	report := &businessdto.BulkCreateReport{BatchID: newBatchID()}

	for i, item := range input.Items {
		item := item
		if _, err := uc.CreateBusiness(&item); err != nil {
			report.Errors = append(report.Errors, businessdto.ItemError{
				Index: i,
				Key:   item.Email,
				Error: err.Error(),
			})
			continue
		}
		report.Created++
	}

	return report, nil
}

func (uc *DefaultBusinessUsecase) BulkGeocodeBusinesses(limit int) (*businessdto.GeocodeReport, error) {
	if uc.Geocoder == nil {
		return nil, fmt.Errorf("no geocoder configured")
	}

	locations, err := uc.LocationRepo.GetLocationsMissingCoordinates(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ungeocoded locations: %w", err)
	}

	report := &businessdto.GeocodeReport{BatchID: newBatchID()}
	for i, location := range locations {
		if location.Address == "" || location.City == "" || location.State == "" {
			report.Skipped++
			continue
		}

		full := fmt.Sprintf("%s, %s, %s %s", location.Address, location.City, location.State, location.Zip)
		point, err := uc.Geocoder.Geocode(full)
		if err != nil {
			if uc.Metrics != nil {
				uc.Metrics.RecordGeocode("error")
			}
			report.Errors = append(report.Errors, businessdto.ItemError{
				Index: i,
				Key:   location.ID,
				Error: err.Error(),
			})
			continue
		}
		if point == nil {
			if uc.Metrics != nil {
				uc.Metrics.RecordGeocode("not_found")
			}
			report.Skipped++
			continue
		}

		err = uc.LocationRepo.PatchLocation(location.ID, map[string]interface{}{
			"latitude":         point.Latitude,
			"longitude":        point.Longitude,
			"geocoded_address": full,
			"geocoded_at":      time.Now(),
		})
		if err != nil {
			report.Errors = append(report.Errors, businessdto.ItemError{
				Index: i,
				Key:   location.ID,
				Error: err.Error(),
			})
			continue
		}
		if uc.Metrics != nil {
			uc.Metrics.RecordGeocode("ok")
		}
		report.Geocoded++
	}

	return report, nil
}

func (uc *DefaultBusinessUsecase) publishBusinessEvent(eventType string, business *domain.Business, location *domain.BusinessLocation) {
	if uc.Publisher == nil {
		return
	}
	event := kafka.BusinessEvent{
		Type:       eventType,
		BusinessID: business.ID,
		Email:      business.Email,
		OccurredAt: time.Now(),
	}
	if location != nil {
		event.City = location.City
		event.State = location.State
	}
	if err := uc.Publisher.PublishBusinessEvent(event); err != nil {
		uc.Logger.Warn("failed to publish business event",
			zap.String("type", eventType),
			zap.String("business_id", business.ID),
			zap.Error(err))
	}
}

func newBatchID() string {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return uuid.New().String()
	}
	return idGenerator()
}
