package services

import (
	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"

	"github.com/rs/zerolog/log"
)

type NotificationService interface {
	// Notify records a notification for userID. Failures are logged and
	// swallowed: a notification never fails the request that caused it.
	Notify(userID uint, message, link string)
	List(actor *models.Actor, params models.NotificationListParams) ([]models.Notification, int64, error)
	MarkRead(actor *models.Actor, id uint) (*models.Notification, error)
	MarkAllRead(actor *models.Actor) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	policy           *policy.Policy
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, p *policy.Policy) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, policy: p}
}

func (s *notificationService) Notify(userID uint, message, link string) {
	notification := &models.Notification{UserID: userID, Message: message, Link: link}
	if err := s.notificationRepo.Create(notification); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to create notification")
	}
}

func (s *notificationService) List(actor *models.Actor, params models.NotificationListParams) ([]models.Notification, int64, error) {
	if err := requireAuth(actor); err != nil {
		return nil, 0, err
	}
	if err := s.policy.Authorize(actor, policy.ResourceNotification, policy.ActionRead, actor.ID); err != nil {
		return nil, 0, err
	}
	params.Normalize(models.NotificationPageSize)
	return s.notificationRepo.ListForUser(actor.ID, params)
}

// MarkRead only sees the caller's own notifications; anything else is 404.
func (s *notificationService) MarkRead(actor *models.Actor, id uint) (*models.Notification, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}

	notification, err := s.notificationRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Notification")
	}
	if notification.UserID != actor.ID {
		return nil, models.ErrorNotFound{Message: "Notification not found"}
	}

	if err := s.notificationRepo.MarkRead(id); err != nil {
		return nil, err
	}
	notification.IsRead = true
	return notification, nil
}

func (s *notificationService) MarkAllRead(actor *models.Actor) (int64, error) {
	if err := requireAuth(actor); err != nil {
		return 0, err
	}
	if err := s.policy.Authorize(actor, policy.ResourceNotification, policy.ActionUpdate, actor.ID); err != nil {
		return 0, err
	}
	return s.notificationRepo.MarkAllRead(actor.ID)
}
