package repository

import (
	"context"
	"errors"

	"community-service/internal/ports/models"

	"gorm.io/gorm"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

// FindByID returns the apartment, or (nil, nil) if absent
func (r *ApartmentRepository) FindByID(ctx context.Context, id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	err := r.db.WithContext(ctx).First(&apartment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

// FindBoardByID returns the board, or (nil, nil) if absent
func (r *ApartmentRepository) FindBoardByID(ctx context.Context, boardID uint) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).First(&board, boardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// FindBoard returns the apartment's board of the given type, or (nil, nil)
// when the apartment has no such board configured
func (r *ApartmentRepository) FindBoard(ctx context.Context, apartmentID uint, boardType models.BoardType) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND type = ?", apartmentID, boardType).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}
