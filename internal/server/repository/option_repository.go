package repository

import (
	"context"
	"errors"

	"community-service/internal/ports/models"

	"gorm.io/gorm"
)

type OptionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

// FindByID returns the option, or (nil, nil) if absent
func (r *OptionRepository) FindByID(ctx context.Context, id uint) (*models.PollOption, error) {
	var option models.PollOption
	err := r.db.WithContext(ctx).First(&option, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// FindByPoll retrieves all options for a poll in insertion order
func (r *OptionRepository) FindByPoll(ctx context.Context, pollID uint) ([]models.PollOption, error) {
	var options []models.PollOption
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("id ASC").
		Find(&options).Error
	return options, err
}
