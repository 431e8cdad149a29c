package service

import (
	"context"
	"strconv"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"
	"community-service/pkg/apperr"
)

// ScopeService resolves which apartment and building a user belongs to; every
// poll and vote operation uses it to scope queries and authorize actions
type ScopeService struct {
	users repository.UserStore
}

func NewScopeService(users repository.UserStore) *ScopeService {
	return &ScopeService{users: users}
}

// ResolveApartment returns the user's apartment id
func (s *ScopeService) ResolveApartment(ctx context.Context, userID uint) (uint, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, apperr.NewInternal("failed to load user", err)
	}
	if user == nil {
		return 0, apperr.NewNotFound("user not found")
	}
	if user.ApartmentID == nil {
		return 0, apperr.NewForbidden("user has no apartment")
	}
	return *user.ApartmentID, nil
}

// ResolveBuildingNumber returns the user's building number derived from the
// resident building identifier; ok is false when the user has none
func (s *ScopeService) ResolveBuildingNumber(ctx context.Context, userID uint) (int, bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, false, apperr.NewInternal("failed to load user", err)
	}
	if user == nil {
		return 0, false, apperr.NewNotFound("user not found")
	}
	no, ok := BuildingNumber(user)
	return no, ok, nil
}

// BuildingNumber derives a numeric building number from the user's resident
// building identifier ("101" -> 101); non-numeric identifiers yield none
func BuildingNumber(user *models.User) (int, bool) {
	if user.ResidentBuilding == nil {
		return 0, false
	}
	no, err := strconv.Atoi(*user.ResidentBuilding)
	if err != nil {
		return 0, false
	}
	return no, true
}
