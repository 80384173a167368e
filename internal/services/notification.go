package services

import (
	"context"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/types"

	"go.uber.org/zap"
)

// NotificationService — уведомления пользователя.
type NotificationService struct {
	notificationRepository repositories.NotificationRepositoryInterface
	logger                 *zap.Logger
}

func NewNotificationService(
	notificationRepository repositories.NotificationRepositoryInterface,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepository: notificationRepository,
		logger:                 logger,
	}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	return s.notificationRepository.GetByUser(ctx, userID, filter)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	count, err := s.notificationRepository.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{Count: count}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	return s.notificationRepository.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}

// Notify создаёт уведомление вне транзакций бизнес-операций.
// Используется слушателями событий и административной рассылкой.
func (s *NotificationService) Notify(ctx context.Context, payload dto.CreateNotificationDTO) error {
	notification := &entities.Notification{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
	}
	_, err := s.notificationRepository.Create(ctx, nil, notification)
	return err
}
