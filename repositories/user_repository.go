package repositories

import (
	"strings"
	"time"

	"blog-api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByUsername(username string, excludeID uint) (bool, error)
	ExistsByEmail(email string, excludeID uint) (bool, error)
	List(params models.UserListParams) ([]models.User, int64, error)
	Update(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	return &user, err
}

func (r *userRepository) ExistsByUsername(username string, excludeID uint) (bool, error) {
	return r.exists("username = ?", username, excludeID)
}

func (r *userRepository) ExistsByEmail(email string, excludeID uint) (bool, error) {
	return r.exists("LOWER(email) = ?", strings.ToLower(email), excludeID)
}

func (r *userRepository) exists(cond string, value interface{}, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.User{}).Where(cond, value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) List(params models.UserListParams) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)

	q := r.db.Model(&models.User{})
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where("(LOWER(username) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}
	if params.Role != "" {
		q = q.Where("role = ?", strings.ToUpper(params.Role))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("id asc").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}

// Delete removes the user and everything they own. Views they recorded are
// kept anonymously.
func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var blogIDs []uint
		if err := tx.Model(&models.Blog{}).Where("author_id = ?", id).Pluck("id", &blogIDs).Error; err != nil {
			return err
		}
		if err := deleteBlogs(tx, blogIDs); err != nil {
			return err
		}

		if err := tx.Model(&models.ViewCount{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("parent_id IN ? OR id IN ?", commentIDs, commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
