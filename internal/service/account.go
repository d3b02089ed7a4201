package service

import (
	"context"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type accountService struct {
	noteRepo     repository.NotificationRepository
	activityRepo repository.ActivityLogRepository
}

func NewAccountService(noteRepo repository.NotificationRepository, activityRepo repository.ActivityLogRepository) AccountService {
	return &accountService{
		noteRepo:     noteRepo,
		activityRepo: activityRepo,
	}
}

func (s *accountService) Notifications(ctx context.Context, userID, limit, offset int32) ([]domain.Notification, int32, error) {
	limit, offset = clampPage(limit, offset)
	return s.noteRepo.List(ctx, userID, limit, offset)
}

func (s *accountService) MarkNotificationRead(ctx context.Context, id, userID int32) error {
	return s.noteRepo.MarkAsRead(ctx, id, userID)
}

func (s *accountService) Activity(ctx context.Context, userID, limit, offset int32) ([]domain.ActivityLogEntry, int32, error) {
	limit, offset = clampPage(limit, offset)
	return s.activityRepo.ListByUser(ctx, userID, limit, offset)
}

func clampPage(limit, offset int32) (int32, int32) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
