package service

import (
	"context"
	"log/slog"
	"time"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"
	"community-service/pkg/apperr"
)

const (
	defaultPageLimit = 11
	maxPageLimit     = 100
)

// PollService owns the poll lifecycle: creation, listing, detail, update and
// deletion, with apartment/building scoping and pre-start immutability
type PollService struct {
	polls      repository.PollStore
	users      repository.UserStore
	apartments repository.ApartmentStore
	scope      *ScopeService
	logger     *slog.Logger
	now        func() time.Time
}

func NewPollService(
	polls repository.PollStore,
	users repository.UserStore,
	apartments repository.ApartmentStore,
	scope *ScopeService,
	logger *slog.Logger,
) *PollService {
	return &PollService{
		polls:      polls,
		users:      users,
		apartments: apartments,
		scope:      scope,
		logger:     logger,
		now:        time.Now,
	}
}

// Create persists a new poll with at least two options on the caller's
// apartment poll board
func (s *PollService) Create(ctx context.Context, userID uint, req models.CreatePollRequest) (*models.PollResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NewInternal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NewNotFound("user not found")
	}
	if user.ApartmentID == nil {
		return nil, apperr.NewForbidden("user has no apartment")
	}

	board, err := s.apartments.FindBoard(ctx, *user.ApartmentID, models.BoardTypePoll)
	if err != nil {
		return nil, apperr.NewInternal("failed to load poll board", err)
	}
	if board == nil {
		return nil, apperr.NewInternal("apartment has no poll board configured", nil)
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, apperr.NewBadRequest("end date must be after start date")
	}

	if req.BuildingPermission != 0 {
		if err := s.validateBuildingPermission(ctx, *user.ApartmentID, req.BuildingPermission); err != nil {
			return nil, err
		}
	}

	options := make([]models.PollOption, len(req.Options))
	for i, title := range req.Options {
		options[i] = models.PollOption{Title: title}
	}

	poll := &models.Poll{
		BoardID:            board.ID,
		AuthorID:           user.ID,
		AuthorName:         user.Name,
		Title:              req.Title,
		Content:            req.Content,
		BuildingPermission: req.BuildingPermission,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             models.PollStatusPending,
		Options:            options,
	}

	if err := s.polls.Create(ctx, poll); err != nil {
		s.logger.Error("poll creation failed", "user_id", userID, "error", err)
		return nil, apperr.NewInternal("failed to create poll", err)
	}

	resp := models.NewPollResponse(poll, s.now())
	return &resp, nil
}

// List returns the page of polls visible to the caller on their apartment's
// poll board. Admin roles see every poll; residents see apartment-wide polls
// plus polls targeted at their own building.
func (s *PollService) List(ctx context.Context, principal models.Principal, page, limit int) (*models.PollListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	apartmentID, err := s.scope.ResolveApartment(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	board, err := s.apartments.FindBoard(ctx, apartmentID, models.BoardTypePoll)
	if err != nil {
		return nil, apperr.NewInternal("failed to load poll board", err)
	}
	if board == nil {
		return nil, apperr.NewInternal("apartment has no poll board configured", nil)
	}

	filter := repository.PollListFilter{
		BoardID: board.ID,
		Offset:  (page - 1) * limit,
		Limit:   limit,
	}
	if !models.IsAdminRole(principal.Role) {
		filter.RestrictBuilding = true
		no, ok, err := s.scope.ResolveBuildingNumber(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			filter.BuildingNo = no
		} else {
			filter.BuildingNo = -1
		}
	}

	polls, total, err := s.polls.List(ctx, filter)
	if err != nil {
		return nil, apperr.NewInternal("failed to list polls", err)
	}

	now := s.now()
	resp := &models.PollListResponse{
		Polls:      make([]models.PollResponse, len(polls)),
		TotalCount: total,
	}
	for i := range polls {
		resp.Polls[i] = models.NewPollResponse(&polls[i], now)
	}
	return resp, nil
}

// Detail returns one poll with its options, subject to the same visibility
// rules as List
func (s *PollService) Detail(ctx context.Context, pollID uint, principal models.Principal) (*models.PollResponse, error) {
	poll, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		return nil, apperr.NewInternal("failed to load poll", err)
	}
	if poll == nil {
		return nil, apperr.NewNotFound("poll not found")
	}

	if !models.IsAdminRole(principal.Role) {
		if err := s.authorizeResident(ctx, poll, principal.ID); err != nil {
			return nil, err
		}
	}

	resp := models.NewPollResponse(poll, s.now())
	return &resp, nil
}

// Update modifies a poll that has not started yet. A supplied options slice
// replaces the full option set with counts reset to zero.
func (s *PollService) Update(ctx context.Context, pollID uint, principal models.Principal, req models.UpdatePollRequest) error {
	poll, err := s.authorizeAdminMutation(ctx, pollID, principal)
	if err != nil {
		return err
	}

	if !req.EndDate.After(req.StartDate) {
		return apperr.NewBadRequest("end date must be after start date")
	}

	board, err := s.apartments.FindBoardByID(ctx, poll.BoardID)
	if err != nil {
		return apperr.NewInternal("failed to load poll board", err)
	}
	if board == nil {
		return apperr.NewInternal("poll board missing", nil)
	}
	if req.BuildingPermission != 0 {
		if err := s.validateBuildingPermission(ctx, board.ApartmentID, req.BuildingPermission); err != nil {
			return err
		}
	}

	poll.Title = req.Title
	poll.Content = req.Content
	poll.BuildingPermission = req.BuildingPermission
	poll.StartDate = req.StartDate
	poll.EndDate = req.EndDate

	var options []models.PollOption
	if req.Options != nil {
		options = make([]models.PollOption, len(req.Options))
		for i, title := range req.Options {
			options[i] = models.PollOption{Title: title}
		}
	}

	if err := s.polls.Update(ctx, poll, options); err != nil {
		s.logger.Error("poll update failed", "poll_id", pollID, "error", err)
		return apperr.NewInternal("failed to update poll", err)
	}
	return nil
}

// Delete removes a poll that has not started yet, cascading to its options
func (s *PollService) Delete(ctx context.Context, pollID uint, principal models.Principal) error {
	if _, err := s.authorizeAdminMutation(ctx, pollID, principal); err != nil {
		return err
	}
	if err := s.polls.Delete(ctx, pollID); err != nil {
		s.logger.Error("poll deletion failed", "poll_id", pollID, "error", err)
		return apperr.NewInternal("failed to delete poll", err)
	}
	return nil
}

// authorizeAdminMutation runs the shared Update/Delete guards: admin role,
// apartment isolation for non-super admins, and pre-start immutability
func (s *PollService) authorizeAdminMutation(ctx context.Context, pollID uint, principal models.Principal) (*models.Poll, error) {
	if !models.IsAdminRole(principal.Role) {
		return nil, apperr.NewForbidden("admin role required")
	}

	poll, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		return nil, apperr.NewInternal("failed to load poll", err)
	}
	if poll == nil {
		return nil, apperr.NewNotFound("poll not found")
	}

	if principal.Role != models.RoleSuperAdmin {
		apartmentID, err := s.scope.ResolveApartment(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		board, err := s.apartments.FindBoardByID(ctx, poll.BoardID)
		if err != nil {
			return nil, apperr.NewInternal("failed to load poll board", err)
		}
		if board == nil || board.ApartmentID != apartmentID {
			return nil, apperr.NewForbidden("poll belongs to another apartment")
		}
	}

	if poll.Started(s.now()) {
		return nil, apperr.NewBadRequest("poll already started, cannot modify")
	}
	return poll, nil
}

// authorizeResident verifies a non-admin caller may see the poll: same
// apartment, and a building-scoped poll only for residents of that building
func (s *PollService) authorizeResident(ctx context.Context, poll *models.Poll, userID uint) error {
	apartmentID, err := s.scope.ResolveApartment(ctx, userID)
	if err != nil {
		return err
	}
	board, err := s.apartments.FindBoardByID(ctx, poll.BoardID)
	if err != nil {
		return apperr.NewInternal("failed to load poll board", err)
	}
	if board == nil || board.ApartmentID != apartmentID {
		return apperr.NewForbidden("poll belongs to another apartment")
	}

	if poll.BuildingPermission == 0 {
		return nil
	}
	no, ok, err := s.scope.ResolveBuildingNumber(ctx, userID)
	if err != nil {
		return err
	}
	if !ok || no != poll.BuildingPermission%100 {
		return apperr.NewForbidden("poll restricted to another building")
	}
	return nil
}

// validateBuildingPermission checks that a non-zero permission targets a
// building inside the apartment's configured range. Permission values encode
// the building number in the low two digits.
func (s *PollService) validateBuildingPermission(ctx context.Context, apartmentID uint, permission int) error {
	apartment, err := s.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		return apperr.NewInternal("failed to load apartment", err)
	}
	if apartment == nil {
		return apperr.NewNotFound("apartment not found")
	}
	if !apartment.InBuildingRange(permission % 100) {
		return apperr.NewBadRequest("building permission out of apartment range")
	}
	return nil
}
