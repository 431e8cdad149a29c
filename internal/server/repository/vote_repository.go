package repository

import (
	"context"
	"errors"

	"community-service/internal/ports/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// FindByUserAndPoll returns the user's live ballot for the poll, or
// (nil, nil) when none exists
func (r *VoteRepository) FindByUserAndPoll(ctx context.Context, userID, pollID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND poll_id = ?", userID, pollID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// FindByUserPollOption returns the user's ballot for the exact option, or
// (nil, nil) when none exists
func (r *VoteRepository) FindByUserPollOption(ctx context.Context, userID, pollID, optionID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND poll_id = ? AND option_id = ?", userID, pollID, optionID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Cast inserts the ballot and increments the option count in one transaction.
// The option row is locked first so concurrent casts against the same option
// serialize, and the (user_id, poll_id) unique index turns a racing duplicate
// insert into ErrDuplicateVote instead of a double ballot.
func (r *VoteRepository) Cast(ctx context.Context, vote *models.Vote) (*models.PollOption, error) {
	var option models.PollOption
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&option, vote.OptionID).Error; err != nil {
			return err
		}
		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return err
		}
		option.VoteCount++
		return tx.Model(&option).Update("vote_count", option.VoteCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// Retract deletes the ballot and decrements the option count in one
// transaction. The decrement floors at zero in case a racing retraction
// already consumed the count.
func (r *VoteRepository) Retract(ctx context.Context, vote *models.Vote) (*models.PollOption, error) {
	var option models.PollOption
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&option, vote.OptionID).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(vote).Error; err != nil {
			return err
		}
		if option.VoteCount > 0 {
			option.VoteCount--
		}
		return tx.Model(&option).Update("vote_count", option.VoteCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &option, nil
}
