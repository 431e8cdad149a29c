package repository

import (
	"context"

	"community-service/internal/ports/models"

	"gorm.io/gorm"
)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create persists a notice on its board
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}
