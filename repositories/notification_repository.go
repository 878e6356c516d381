package repositories

import (
	"blog-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ListForUser(userID uint, params models.NotificationListParams) ([]models.Notification, int64, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Omit("User").Create(notification).Error
}

func (r *notificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, id).Error
	return &notification, err
}

func (r *notificationRepository) ListForUser(userID uint, params models.NotificationListParams) ([]models.Notification, int64, error) {
	var (
		notifications []models.Notification
		total         int64
	)

	q := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if params.Unread != nil {
		q = q.Where("is_read = ?", !*params.Unread)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc, id desc").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
