package repositories

import (
	"blog-api/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	List(params models.PageParams) ([]models.ContactMessage, int64, error)
	MarkRead(id uint) error
	Delete(id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

func (r *contactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.First(&message, id).Error
	return &message, err
}

func (r *contactRepository) List(params models.PageParams) ([]models.ContactMessage, int64, error) {
	var (
		messages []models.ContactMessage
		total    int64
	)

	q := r.db.Model(&models.ContactMessage{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("sent_at desc, id desc").Limit(params.PageSize).Offset(params.Offset()).Find(&messages).Error
	return messages, total, err
}

func (r *contactRepository) MarkRead(id uint) error {
	return r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *contactRepository) Delete(id uint) error {
	res := r.db.Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
