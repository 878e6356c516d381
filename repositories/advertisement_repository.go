package repositories

import (
	"time"

	"blog-api/models"

	"gorm.io/gorm"
)

type AdvertisementRepository interface {
	Create(ad *models.Advertisement, slugBase string) error
	GetByID(id uint) (*models.Advertisement, error)
	ListRunning(at time.Time) ([]models.Advertisement, error)
	List(params models.PageParams) ([]models.Advertisement, int64, error)
	Update(ad *models.Advertisement) error
	Delete(id uint) error
}

type advertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ad *models.Advertisement, slugBase string) error {
	return saveWithSlug(r.db, "advertisements", slugBase, advertisementSlugSize, 0,
		func(s string) { ad.Slug = s },
		func(tx *gorm.DB) error {
			ad.ID = 0
			return tx.Create(ad).Error
		})
}

func (r *advertisementRepository) GetByID(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := r.db.First(&ad, id).Error
	return &ad, err
}

func (r *advertisementRepository) ListRunning(at time.Time) ([]models.Advertisement, error) {
	var ads []models.Advertisement
	err := r.db.Where("is_active = ? AND start_date <= ? AND end_date > ?", true, at, at).
		Order("start_date desc, id desc").
		Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) List(params models.PageParams) ([]models.Advertisement, int64, error) {
	var (
		ads   []models.Advertisement
		total int64
	)

	q := r.db.Model(&models.Advertisement{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("start_date desc, id desc").Limit(params.PageSize).Offset(params.Offset()).Find(&ads).Error
	return ads, total, err
}

func (r *advertisementRepository) Update(ad *models.Advertisement) error {
	return r.db.Save(ad).Error
}

func (r *advertisementRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Advertisement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
