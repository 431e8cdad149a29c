package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"
	"community-service/pkg/apperr"
)

// EventPublisher emits domain events for downstream consumers. Implementations
// may be absent; callers treat a nil publisher as a no-op.
type EventPublisher interface {
	PublishVoteCast(ctx context.Context, msg models.VoteMessage) error
	PublishPollClosed(ctx context.Context, pollID uint, winnerOptionID uint, totalVotes uint) error
}

// VoteService is the voting engine: cast and retract ballots inside the poll
// window while keeping option counts consistent
type VoteService struct {
	votes   repository.VoteStore
	options repository.OptionStore
	polls   repository.PollStore
	users   repository.UserStore
	events  EventPublisher
	logger  *slog.Logger
	now     func() time.Time
}

func NewVoteService(
	votes repository.VoteStore,
	options repository.OptionStore,
	polls repository.PollStore,
	users repository.UserStore,
	events EventPublisher,
	logger *slog.Logger,
) *VoteService {
	return &VoteService{
		votes:   votes,
		options: options,
		polls:   polls,
		users:   users,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

// Cast records the user's ballot for the option. At most one live ballot per
// (user, poll) exists; a second cast yields Conflict.
func (s *VoteService) Cast(ctx context.Context, optionID, userID uint) (*models.VoteResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NewInternal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NewNotFound("user not found")
	}

	option, poll, err := s.resolveOptionPoll(ctx, optionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Before(poll.StartDate) {
		return nil, apperr.NewBadRequest("poll has not started")
	}
	if now.After(poll.EndDate) {
		return nil, apperr.NewBadRequest("poll has already ended")
	}

	if !models.IsAdminRole(user.Role) && poll.BuildingPermission != 0 {
		no, ok := BuildingNumber(user)
		if !ok || no != poll.BuildingPermission%100 {
			return nil, apperr.NewForbidden("poll restricted to another building")
		}
	}

	existing, err := s.votes.FindByUserAndPoll(ctx, userID, poll.ID)
	if err != nil {
		return nil, apperr.NewInternal("failed to check existing vote", err)
	}
	if existing != nil {
		return nil, apperr.NewConflict("already voted for this poll")
	}

	vote := &models.Vote{UserID: userID, PollID: poll.ID, OptionID: option.ID}
	updated, err := s.votes.Cast(ctx, vote)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return nil, apperr.NewConflict("already voted for this poll")
		}
		return nil, apperr.NewInternal("failed to cast vote", err)
	}

	if s.events != nil {
		msg := models.VoteMessage{UserID: userID, PollID: poll.ID, OptionID: option.ID}
		if err := s.events.PublishVoteCast(ctx, msg); err != nil {
			s.logger.Error("vote event publication failed", "poll_id", poll.ID, "error", err)
		}
	}

	options, err := s.options.FindByPoll(ctx, poll.ID)
	if err != nil {
		return nil, apperr.NewInternal("failed to load options", err)
	}
	leading := models.LeadingOption(options)

	return &models.VoteResult{
		Option:  *updated,
		Leading: *leading,
		Options: options,
	}, nil
}

// Retract cancels the user's ballot for the option. Allowed up to and
// including the end instant; a ballot cannot exist before the window opens so
// there is no pre-start guard.
func (s *VoteService) Retract(ctx context.Context, optionID, userID uint) (*models.VoteDeleteResult, error) {
	_, poll, err := s.resolveOptionPoll(ctx, optionID)
	if err != nil {
		return nil, err
	}

	if s.now().After(poll.EndDate) {
		return nil, apperr.NewBadRequest("poll has ended, cannot cancel vote")
	}

	vote, err := s.votes.FindByUserPollOption(ctx, userID, poll.ID, optionID)
	if err != nil {
		return nil, apperr.NewInternal("failed to look up vote", err)
	}
	if vote == nil {
		return nil, apperr.NewNotFound("no vote record")
	}

	updated, err := s.votes.Retract(ctx, vote)
	if err != nil {
		return nil, apperr.NewInternal("failed to cancel vote", err)
	}

	return &models.VoteDeleteResult{Option: *updated}, nil
}

func (s *VoteService) resolveOptionPoll(ctx context.Context, optionID uint) (*models.PollOption, *models.Poll, error) {
	option, err := s.options.FindByID(ctx, optionID)
	if err != nil {
		return nil, nil, apperr.NewInternal("failed to load option", err)
	}
	if option == nil {
		return nil, nil, apperr.NewNotFound("option not found")
	}
	poll, err := s.polls.FindByID(ctx, option.PollID)
	if err != nil {
		return nil, nil, apperr.NewInternal("failed to load poll", err)
	}
	if poll == nil {
		return nil, nil, apperr.NewNotFound("poll not found")
	}
	return option, poll, nil
}
