package repositories

import (
	"strings"

	"blog-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *models.Tag, slugBase string) error
	GetByID(id uint) (*models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
	ExistsByName(name string, excludeID uint) (bool, error)
	List(params models.TaxonomyListParams) ([]models.Tag, int64, error)
	ListActive() ([]models.Tag, error)
	Update(tag *models.Tag) error
	Delete(id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *models.Tag, slugBase string) error {
	return saveWithSlug(r.db, "tags", slugBase, tagSlugSize, 0,
		func(s string) { tag.Slug = s },
		func(tx *gorm.DB) error {
			tag.ID = 0
			return tx.Create(tag).Error
		})
}

func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	return &tag, err
}

func (r *tagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("id IN ?", ids).Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Tag{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *tagRepository) List(params models.TaxonomyListParams) ([]models.Tag, int64, error) {
	var (
		tags  []models.Tag
		total int64
	)

	q := r.db.Model(&models.Tag{})
	if params.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name asc").Limit(params.PageSize).Offset(params.Offset()).Find(&tags).Error
	return tags, total, err
}

func (r *tagRepository) ListActive() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("is_active = ?", true).Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

func (r *tagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM blog_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
