package repositories

import (
	"strings"

	"blog-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category, slugBase string) error
	GetByID(id uint) (*models.Category, error)
	ExistsByName(name string, excludeID uint) (bool, error)
	List(params models.TaxonomyListParams) ([]models.Category, int64, error)
	ListActive() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category, slugBase string) error {
	return saveWithSlug(r.db, "categories", slugBase, categorySlugSize, 0,
		func(s string) { category.Slug = s },
		func(tx *gorm.DB) error {
			category.ID = 0
			return tx.Create(category).Error
		})
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return &category, err
}

func (r *categoryRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Category{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) List(params models.TaxonomyListParams) ([]models.Category, int64, error) {
	var (
		categories []models.Category
		total      int64
	)

	q := r.db.Model(&models.Category{})
	if params.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name asc").Limit(params.PageSize).Offset(params.Offset()).Find(&categories).Error
	return categories, total, err
}

func (r *categoryRepository) ListActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("is_active = ?", true).Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete detaches the category from its blogs before removing it.
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Blog{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
