package repository

import (
	"gorm.io/gorm"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/infrastructure/postgres/models"
)

type DefaultPromotionRepository struct {
	db *gorm.DB
}

func NewDefaultPromotionRepository(db *gorm.DB) *DefaultPromotionRepository {
	return &DefaultPromotionRepository{db: db}
}

func (r *DefaultPromotionRepository) GetActivePromotions(businessID string) ([]*domain.Promotion, error) {
	var promotionModels []*models.PromotionModel

	if err := r.db.Where("business_id = ? AND status = ?", businessID, string(domain.ContentActive)).
		Find(&promotionModels).Error; err != nil {
		return nil, err
	}

	promotions := make([]*domain.Promotion, len(promotionModels))
	for i, model := range promotionModels {
		promotions[i] = &domain.Promotion{
			ID:          model.ID,
			BusinessID:  model.BusinessID,
			Title:       model.Title,
			Description: model.Description,
			Terms:       model.Terms,
			Status:      domain.ContentStatus(model.Status),
			StartsAt:    model.StartsAt,
			EndsAt:      model.EndsAt,
			CreatedAt:   model.CreatedAt,
			UpdatedAt:   model.UpdatedAt,
		}
	}
	return promotions, nil
}

func (r *DefaultPromotionRepository) CountActivePromotions(businessID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PromotionModel{}).
		Where("business_id = ? AND status = ?", businessID, string(domain.ContentActive)).
		Count(&count).Error
	return count, err
}

type DefaultEventRepository struct {
	db *gorm.DB
}

func NewDefaultEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{db: db}
}

func (r *DefaultEventRepository) GetActiveEvents(businessID string) ([]*domain.Event, error) {
	var eventModels []*models.EventModel

	if err := r.db.Where("business_id = ? AND status = ?", businessID, string(domain.ContentActive)).
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*domain.Event, len(eventModels))
	for i, model := range eventModels {
		events[i] = &domain.Event{
			ID:          model.ID,
			BusinessID:  model.BusinessID,
			Title:       model.Title,
			Description: model.Description,
			Terms:       model.Terms,
			Status:      domain.ContentStatus(model.Status),
			StartsAt:    model.StartsAt,
			EndsAt:      model.EndsAt,
			CreatedAt:   model.CreatedAt,
			UpdatedAt:   model.UpdatedAt,
		}
	}
	return events, nil
}

func (r *DefaultEventRepository) CountActiveEvents(businessID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventModel{}).
		Where("business_id = ? AND status = ?", businessID, string(domain.ContentActive)).
		Count(&count).Error
	return count, err
}

type DefaultFollowerRepository struct {
	db *gorm.DB
}

func NewDefaultFollowerRepository(db *gorm.DB) *DefaultFollowerRepository {
	return &DefaultFollowerRepository{db: db}
}

func (r *DefaultFollowerRepository) CountFollowers(businessID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.FollowerModel{}).
		Where("business_id = ?", businessID).
		Count(&count).Error
	return count, err
}

func (r *DefaultFollowerRepository) IsFollowing(businessID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.FollowerModel{}).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		Count(&count).Error
	return count > 0, err
}
