package repository

import (
	"context"
	"errors"
	"time"

	"community-service/internal/ports/models"
)

// ErrDuplicateVote is returned by Cast when the (user_id, poll_id) unique
// index rejects a second live ballot
var ErrDuplicateVote = errors.New("duplicate vote for poll")

// PollListFilter scopes a poll listing query
type PollListFilter struct {
	BoardID uint
	// RestrictBuilding limits results to polls open to the whole apartment
	// or targeted at BuildingNo; admins list with RestrictBuilding false
	RestrictBuilding bool
	BuildingNo       int
	Offset           int
	Limit            int
}

// PollStore persists the poll aggregate. Find methods return (nil, nil) when
// no row exists.
type PollStore interface {
	Create(ctx context.Context, poll *models.Poll) error
	FindByID(ctx context.Context, id uint) (*models.Poll, error)
	List(ctx context.Context, filter PollListFilter) ([]models.Poll, int64, error)
	// Update persists poll fields; a non-nil options slice replaces the
	// full option set in the same transaction
	Update(ctx context.Context, poll *models.Poll, options []models.PollOption) error
	Delete(ctx context.Context, id uint) error
	FindExpired(ctx context.Context, now time.Time) ([]models.Poll, error)
	UpdateStatus(ctx context.Context, id uint, status models.PollStatus) error
}

// OptionStore reads poll options
type OptionStore interface {
	FindByID(ctx context.Context, id uint) (*models.PollOption, error)
	FindByPoll(ctx context.Context, pollID uint) ([]models.PollOption, error)
}

// VoteStore persists ballots and keeps option counts numerically consistent
// with the live vote rows
type VoteStore interface {
	FindByUserAndPoll(ctx context.Context, userID, pollID uint) (*models.Vote, error)
	FindByUserPollOption(ctx context.Context, userID, pollID, optionID uint) (*models.Vote, error)
	// Cast inserts the ballot and increments the option count in one
	// transaction; returns ErrDuplicateVote if the user already holds a
	// ballot for the poll
	Cast(ctx context.Context, vote *models.Vote) (*models.PollOption, error)
	// Retract deletes the ballot and decrements the option count, floored
	// at zero, in one transaction
	Retract(ctx context.Context, vote *models.Vote) (*models.PollOption, error)
}

// UserStore looks up directory users
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// ApartmentStore looks up apartments and their boards
type ApartmentStore interface {
	FindByID(ctx context.Context, id uint) (*models.Apartment, error)
	FindBoardByID(ctx context.Context, boardID uint) (*models.Board, error)
	FindBoard(ctx context.Context, apartmentID uint, boardType models.BoardType) (*models.Board, error)
}

// NoticeStore is the write-only notice collaborator surface
type NoticeStore interface {
	Create(ctx context.Context, notice *models.Notice) error
}
