package service

import (
	"context"
	"fmt"
	"time"

	coreEntity "gestimmo-api/core/entity"
	"gestimmo-api/core/errors"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/params"
	"gestimmo-api/core/tasks"
	"gestimmo-api/modules/notification/entity"
	"gestimmo-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

// NotificationServiceInterface defines the service contract.
type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
	HandleMatchNotification(ctx context.Context, p tasks.MatchNotificationPayload) error
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError) {
	result, err := s.repo.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Impossible de récupérer les notifications", err)
	}
	return result, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Impossible de marquer les notifications comme lues", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Impossible de marquer les notifications comme lues", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Impossible de compter les notifications", err)
	}
	return count, nil
}

// HandleMatchNotification consumes a match notification task and fans out one
// notification row per participant. A failure on one recipient does not stop
// delivery to the others; the first error is returned so asynq can retry.
func (s *NotificationService) HandleMatchNotification(ctx context.Context, p tasks.MatchNotificationPayload) error {
	message := fmt.Sprintf(
		"Votre intervention a été planifiée le %s de %s à %s.",
		p.Date, p.StartTime, p.EndTime,
	)

	var firstErr error
	for _, userID := range p.UserIDs {
		notif := &entity.Notification{
			UserID:  userID,
			Title:   "Intervention planifiée",
			Message: message,
			Type:    entity.NotificationTypeMatch,
			Data: entity.JSONB{
				"intervention_id": p.InterventionID.String(),
				"date":            p.Date,
				"start_time":      p.StartTime,
				"end_time":        p.EndTime,
			},
			IsRead: false,
			BaseEntity: coreEntity.BaseEntity{
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}
		if err := s.repo.Create(ctx, notif); err != nil {
			logger.Error("NotificationService:HandleMatchNotification",
				"intervention_id", p.InterventionID,
				"user_id", userID,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
