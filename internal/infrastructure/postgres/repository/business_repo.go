package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/infrastructure/postgres/models"
)

type DefaultBusinessRepository struct {
	db *gorm.DB
}

func NewDefaultBusinessRepository(db *gorm.DB) *DefaultBusinessRepository {
	return &DefaultBusinessRepository{db: db}
}

func (r *DefaultBusinessRepository) CreateBusiness(business *domain.Business) error {
	return r.db.Create(r.toModel(business)).Error
}

func (r *DefaultBusinessRepository) PatchBusiness(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&models.BusinessModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *DefaultBusinessRepository) GetBusinessByID(id string) (*domain.Business, error) {
	var model models.BusinessModel
	if err := r.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultBusinessRepository) GetBusinessByEmail(email string) (*domain.Business, error) {
	var model models.BusinessModel
	if err := r.db.First(&model, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultBusinessRepository) GetBusinessByAuthSubject(subject string) (*domain.Business, error) {
	var model models.BusinessModel
	if err := r.db.First(&model, "auth_subject = ?", subject).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.toDomain(&model), nil
}

func (r *DefaultBusinessRepository) GetBusinesses(page, limit int32) ([]*domain.Business, error) {
	var businessModels []*models.BusinessModel

	offset := (page - 1) * limit
	query := r.db.Model(&models.BusinessModel{})

	if err := query.Offset(int(offset)).Limit(int(limit)).Find(&businessModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(businessModels), nil
}

func (r *DefaultBusinessRepository) SetOnboardingCompleted(id string, completedAt time.Time) error {
	return r.db.Model(&models.BusinessModel{}).
		Where("id = ? AND onboarding_completed_at IS NULL", id).
		Update("onboarding_completed_at", completedAt).Error
}

func (r *DefaultBusinessRepository) ArchiveBusiness(id, reason string, deletedAt time.Time) error {
	return r.db.Model(&models.BusinessModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":       false,
		"deleted_at":      deletedAt,
		"deletion_reason": reason,
		"updated_at":      time.Now(),
	}).Error
}

func (r *DefaultBusinessRepository) GetExpiredBusinesses(deletedBefore time.Time) ([]*domain.Business, error) {
	var businessModels []*models.BusinessModel

	if err := r.db.Where("deleted_at IS NOT NULL AND deleted_at < ?", deletedBefore).
		Find(&businessModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(businessModels), nil
}

func (r *DefaultBusinessRepository) DeleteBusiness(id string) error {
	return r.db.Delete(&models.BusinessModel{}, "id = ?", id).Error
}

func (r *DefaultBusinessRepository) toModel(business *domain.Business) *models.BusinessModel {
	return &models.BusinessModel{
		ID:                    business.ID,
		Email:                 business.Email,
		Name:                  business.Name,
		AuthSubject:           business.AuthSubject,
		SubscriptionPlan:      business.SubscriptionPlan,
		SubscriptionTier:      business.SubscriptionTier,
		SubscriptionStatus:    string(business.SubscriptionStatus),
		CustomersDoNotVisit:   business.CustomersDoNotVisit,
		OnboardingCompletedAt: business.OnboardingCompletedAt,
		IsActive:              business.IsActive,
		DeletedAt:             business.DeletedAt,
		DeletionReason:        business.DeletionReason,
		CreatedAt:             business.CreatedAt,
		UpdatedAt:             business.UpdatedAt,
	}
}

func (r *DefaultBusinessRepository) toDomain(model *models.BusinessModel) *domain.Business {
	return &domain.Business{
		ID:                    model.ID,
		Email:                 model.Email,
		Name:                  model.Name,
		AuthSubject:           model.AuthSubject,
		SubscriptionPlan:      model.SubscriptionPlan,
		SubscriptionTier:      model.SubscriptionTier,
		SubscriptionStatus:    domain.SubscriptionStatus(model.SubscriptionStatus),
		CustomersDoNotVisit:   model.CustomersDoNotVisit,
		OnboardingCompletedAt: model.OnboardingCompletedAt,
		IsActive:              model.IsActive,
		DeletedAt:             model.DeletedAt,
		DeletionReason:        model.DeletionReason,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	}
}

func (r *DefaultBusinessRepository) toDomainList(businessModels []*models.BusinessModel) []*domain.Business {
	businesses := make([]*domain.Business, len(businessModels))
	for i, model := range businessModels {
		businesses[i] = r.toDomain(model)
	}
	return businesses
}
