package repositories

import (
	"blog-api/models"

	"gorm.io/gorm"
)

type ViewCountRepository interface {
	Record(blogID uint, ip string, userID *uint) (created bool, err error)
	CountByBlog(blogID uint) (int64, error)
}

type viewCountRepository struct {
	db *gorm.DB
}

func NewViewCountRepository(db *gorm.DB) ViewCountRepository {
	return &viewCountRepository{db: db}
}

// Record stores one view per (blog, ip). A repeat view only attaches the
// viewer's user id, and only when one is known.
func (r *viewCountRepository) Record(blogID uint, ip string, userID *uint) (bool, error) {
	view := models.ViewCount{BlogID: blogID, IPAddress: ip, UserID: userID}
	err := r.db.Omit("Blog", "User").Create(&view).Error
	if err == nil {
		return true, nil
	}
	if !IsUniqueViolation(err) {
		return false, err
	}

	if userID == nil {
		return false, nil
	}
	return false, r.db.Model(&models.ViewCount{}).
		Where("blog_id = ? AND ip_address = ?", blogID, ip).
		Update("user_id", *userID).Error
}

func (r *viewCountRepository) CountByBlog(blogID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ViewCount{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}
