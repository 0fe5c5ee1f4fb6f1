package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// NotifyAll creates one notification per active user from the template
func (s *NotificationService) NotifyAll(ctx context.Context, template domain.Notification) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		if user.IsActive {
			userIDs = append(userIDs, user.ID)
		}
	}

	if err := s.notificationRepo.CreateForUsers(ctx, userIDs, template); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	s.logger.Debug("notification fanned out",
		zap.String("type", template.Type),
		zap.Int("recipients", len(userIDs)),
	)
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, page, pageSize int, unreadOnly bool, notificationType string) (*domain.PaginatedResponse, error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, page, pageSize, unreadOnly, notificationType)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		dtos = append(dtos, mapper.ToNotificationDTO(&notifications[i]))
	}

	return paginate(dtos, total, page, pageSize), nil
}

// MarkAsRead marks a single notification read. Users can only touch their own.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notification.UserID != userID {
		return ErrNotFound
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
