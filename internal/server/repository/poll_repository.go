package repository

import (
	"context"
	"errors"
	"time"

	"community-service/internal/ports/models"

	"gorm.io/gorm"
)

type PollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) *PollRepository {
	return &PollRepository{db: db}
}

// Create persists the poll together with its options in one transaction
func (r *PollRepository) Create(ctx context.Context, poll *models.Poll) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(poll).Error
	})
}

// FindByID loads the poll with its options, or (nil, nil) if absent
func (r *PollRepository) FindByID(ctx context.Context, id uint) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).Preload("Options").First(&poll, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// List returns a page of polls on a board plus the total count for the same
// scope, newest first
func (r *PollRepository) List(ctx context.Context, filter PollListFilter) ([]models.Poll, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Poll{}).Where("board_id = ?", filter.BoardID)
	if filter.RestrictBuilding {
		// building permissions encode the building number in the low two
		// digits; 0 means open to the whole apartment
		query = query.Where("building_permission = 0 OR MOD(building_permission, 100) = ?", filter.BuildingNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var polls []models.Poll
	err := query.Preload("Options").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&polls).Error
	if err != nil {
		return nil, 0, err
	}
	return polls, total, nil
}

// Update saves the poll's own columns and, when options is non-nil, replaces
// the full option set inside the same transaction. Replacement resets all
// counts to zero; the pre-start immutability guard upstream keeps this from
// destroying live votes.
func (r *PollRepository) Update(ctx context.Context, poll *models.Poll, options []models.PollOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Options").Save(poll).Error; err != nil {
			return err
		}
		if options == nil {
			return nil
		}
		if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].PollID = poll.ID
			options[i].VoteCount = 0
		}
		return tx.Create(&options).Error
	})
}

// Delete removes the poll and cascades to its options
func (r *PollRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&models.PollOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Poll{}, id).Error
	})
}

// FindExpired returns polls whose window has ended but whose persisted status
// has not been flipped to CLOSED yet, options preloaded for tallying
func (r *PollRepository) FindExpired(ctx context.Context, now time.Time) ([]models.Poll, error) {
	var polls []models.Poll
	err := r.db.WithContext(ctx).
		Preload("Options").
		Where("end_date <= ? AND status <> ?", now, models.PollStatusClosed).
		Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// UpdateStatus flips the persisted status field
func (r *PollRepository) UpdateStatus(ctx context.Context, id uint, status models.PollStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Poll{}).
		Where("id = ?", id).
		Update("status", status).Error
}
