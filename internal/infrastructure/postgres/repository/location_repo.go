package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/infrastructure/postgres/models"
)

type DefaultLocationRepository struct {
	db *gorm.DB
}

func NewDefaultLocationRepository(db *gorm.DB) *DefaultLocationRepository {
	return &DefaultLocationRepository{db: db}
}

func (r *DefaultLocationRepository) CreateLocation(location *domain.BusinessLocation) error {
	return r.db.Create(r.toModel(location)).Error
}

func (r *DefaultLocationRepository) GetLocationByID(id string) (*domain.BusinessLocation, error) {
	var model models.BusinessLocationModel
	if err := r.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultLocationRepository) GetPrimaryLocation(businessID string) (*domain.BusinessLocation, error) {
	var model models.BusinessLocationModel
	if err := r.db.First(&model, "business_id = ? AND is_primary = ?", businessID, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultLocationRepository) GetFirstLocation(businessID string) (*domain.BusinessLocation, error) {
	var model models.BusinessLocationModel
	if err := r.db.Order("created_at asc").First(&model, "business_id = ?", businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultLocationRepository) GetLocationsByBusinessID(businessID string) ([]*domain.BusinessLocation, error) {
	var locationModels []*models.BusinessLocationModel

	if err := r.db.Where("business_id = ?", businessID).Find(&locationModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(locationModels), nil
}

func (r *DefaultLocationRepository) CountLocations(businessID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.BusinessLocationModel{}).
		Where("business_id = ?", businessID).Count(&count).Error
	return count, err
}

func (r *DefaultLocationRepository) GetPrimaryActiveLocations() ([]*domain.BusinessLocation, error) {
	var locationModels []*models.BusinessLocationModel

	if err := r.db.Where("is_primary = ? AND is_active = ?", true, true).
		Find(&locationModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(locationModels), nil
}

func (r *DefaultLocationRepository) GetPrimaryActiveLocationsByCity(city, state string) ([]*domain.BusinessLocation, error) {
	var locationModels []*models.BusinessLocationModel

	if err := r.db.Where(
		"is_primary = ? AND is_active = ? AND LOWER(city) = LOWER(?) AND LOWER(state) = LOWER(?)",
		true, true, city, state,
	).Find(&locationModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(locationModels), nil
}

// UpsertPrimaryLocation runs the find-or-create inside one transaction.
// A SELECT ... FOR UPDATE that matches zero rows takes no lock in
// Postgres, so the create path is serialized per business with a
// transaction-scoped advisory lock instead; the partial unique index
// on (business_id) WHERE is_primary backstops the invariant at the
// schema level.
func (r *DefaultLocationRepository) UpsertPrimaryLocation(businessID, seedName string, fields map[string]interface{}) (*domain.BusinessLocation, error) {
	var result *domain.BusinessLocation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", businessID).Error; err != nil {
			return err
		}

		var model models.BusinessLocationModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "business_id = ? AND is_primary = ?", businessID, true).Error

		if err == gorm.ErrRecordNotFound {
			model = models.BusinessLocationModel{
				ID:          uuid.New().String(),
				BusinessID:  businessID,
				IsPrimary:   true,
				Name:        seedName,
				ProfileName: seedName,
				Address:     "",
				City:        "",
				State:       "",
				Zip:         "",
				Hours:       "{}",
				IsActive:    true,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if len(fields) > 0 {
			fields["updated_at"] = time.Now()
			if err := tx.Model(&models.BusinessLocationModel{}).
				Where("id = ?", model.ID).Updates(fields).Error; err != nil {
				return err
			}
		}

		if err := tx.First(&model, "id = ?", model.ID).Error; err != nil {
			return err
		}

		result = r.toDomain(&model)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *DefaultLocationRepository) PatchLocation(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&models.BusinessLocationModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *DefaultLocationRepository) GetLocationsMissingCoordinates(limit int) ([]*domain.BusinessLocation, error) {
	var locationModels []*models.BusinessLocationModel

	query := r.db.Where("is_active = ? AND latitude IS NULL AND address <> ''", true)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&locationModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(locationModels), nil
}

func (r *DefaultLocationRepository) ArchiveLocations(businessID string, deletedAt time.Time) (int64, error) {
	tx := r.db.Model(&models.BusinessLocationModel{}).
		Where("business_id = ?", businessID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_at": deletedAt,
			"updated_at": time.Now(),
		})
	return tx.RowsAffected, tx.Error
}

func (r *DefaultLocationRepository) DeleteLocations(businessID string) (int64, error) {
	tx := r.db.Delete(&models.BusinessLocationModel{}, "business_id = ?", businessID)
	return tx.RowsAffected, tx.Error
}

func (r *DefaultLocationRepository) toModel(location *domain.BusinessLocation) *models.BusinessLocationModel {
	return &models.BusinessLocationModel{
		ID:              location.ID,
		BusinessID:      location.BusinessID,
		IsPrimary:       location.IsPrimary,
		Name:            location.Name,
		ProfileName:     location.ProfileName,
		Description:     location.Description,
		Email:           location.Email,
		Phone:           location.Phone,
		Website:         location.Website,
		Address:         location.Address,
		City:            location.City,
		State:           location.State,
		Zip:             location.Zip,
		ServiceZip:      location.ServiceZip,
		ServiceRadius:   location.ServiceRadius,
		Category:        location.Category,
		Categories:      pq.StringArray(location.Categories),
		Latitude:        location.Latitude,
		Longitude:       location.Longitude,
		GeocodedAddress: location.GeocodedAddress,
		GeocodedAt:      location.GeocodedAt,
		FacebookURL:     location.FacebookURL,
		InstagramURL:    location.InstagramURL,
		TwitterURL:      location.TwitterURL,
		LinkedinURL:     location.LinkedinURL,
		TiktokURL:       location.TiktokURL,
		YoutubeURL:      location.YoutubeURL,
		Hours:           location.Hours,
		IsActive:        location.IsActive,
		DeletedAt:       location.DeletedAt,
		CreatedAt:       location.CreatedAt,
		UpdatedAt:       location.UpdatedAt,
	}
}

func (r *DefaultLocationRepository) toDomain(model *models.BusinessLocationModel) *domain.BusinessLocation {
	return &domain.BusinessLocation{
		ID:              model.ID,
		BusinessID:      model.BusinessID,
		IsPrimary:       model.IsPrimary,
		Name:            model.Name,
		ProfileName:     model.ProfileName,
		Description:     model.Description,
		Email:           model.Email,
		Phone:           model.Phone,
		Website:         model.Website,
		Address:         model.Address,
		City:            model.City,
		State:           model.State,
		Zip:             model.Zip,
		ServiceZip:      model.ServiceZip,
		ServiceRadius:   model.ServiceRadius,
		Category:        model.Category,
		Categories:      []string(model.Categories),
		Latitude:        model.Latitude,
		Longitude:       model.Longitude,
		GeocodedAddress: model.GeocodedAddress,
		GeocodedAt:      model.GeocodedAt,
		FacebookURL:     model.FacebookURL,
		InstagramURL:    model.InstagramURL,
		TwitterURL:      model.TwitterURL,
		LinkedinURL:     model.LinkedinURL,
		TiktokURL:       model.TiktokURL,
		YoutubeURL:      model.YoutubeURL,
		Hours:           model.Hours,
		IsActive:        model.IsActive,
		DeletedAt:       model.DeletedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func (r *DefaultLocationRepository) toDomainList(locationModels []*models.BusinessLocationModel) []*domain.BusinessLocation {
	locations := make([]*domain.BusinessLocation, len(locationModels))
	for i, model := range locationModels {
		locations[i] = r.toDomain(model)
	}
	return locations
}
