package service

import (
	"context"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"
	"community-service/pkg/apperr"
)

// NoticeService is the narrow create-only surface the poll subsystem uses to
// publish result notices
type NoticeService struct {
	notices repository.NoticeStore
}

func NewNoticeService(notices repository.NoticeStore) *NoticeService {
	return &NoticeService{notices: notices}
}

// CreateNotice persists a notice on its board
func (s *NoticeService) CreateNotice(ctx context.Context, req models.CreateNoticeRequest) error {
	notice := &models.Notice{
		BoardID:  req.BoardID,
		AuthorID: req.AuthorID,
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		return apperr.NewInternal("failed to create notice", err)
	}
	return nil
}
