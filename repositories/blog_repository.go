package repositories

import (
	"strings"
	"time"

	"blog-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const blogOrder = "blogs.published_at DESC NULLS LAST, blogs.created_at DESC, blogs.id DESC"

type BlogRepository interface {
	Create(blog *models.Blog, slugBase string, tagIDs []uint) error
	GetByID(id uint) (*models.Blog, error)
	GetBySlug(slug string) (*models.Blog, error)
	ExistsByTitle(title string, excludeID uint) (bool, error)
	List(filter models.BlogFilter, page models.PageParams) ([]models.Blog, int64, error)
	Featured(limit int) ([]models.Blog, error)
	Update(blog *models.Blog, tagIDs *[]uint) error
	Delete(id uint) error
	Engagement(ids []uint) (map[uint]*models.BlogEngagement, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("Author").
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name asc") })
}

func (r *blogRepository) Create(blog *models.Blog, slugBase string, tagIDs []uint) error {
	return saveWithSlug(r.db, "blogs", slugBase, blogSlugSize, 0,
		func(s string) { blog.Slug = s },
		func(db *gorm.DB) error {
			blog.ID = 0
			return db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Omit(clause.Associations).Create(blog).Error; err != nil {
					return err
				}
				return replaceBlogTags(tx, blog.ID, tagIDs)
			})
		})
}

func (r *blogRepository) GetByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.preload(r.db).First(&blog, id).Error
	return &blog, err
}

func (r *blogRepository) GetBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.preload(r.db).Where("slug = ?", slug).First(&blog).Error
	return &blog, err
}

func (r *blogRepository) ExistsByTitle(title string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Blog{}).Where("title = ?", title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func applyBlogFilter(q *gorm.DB, f models.BlogFilter) *gorm.DB {
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(LOWER(blogs.title) LIKE ? OR LOWER(blogs.content) LIKE ?)", like, like)
	}
	if f.CategoryID != 0 {
		q = q.Where("blogs.category_id = ?", f.CategoryID)
	}
	if f.TagID != 0 {
		q = q.Where("blogs.id IN (SELECT blog_id FROM blog_tags WHERE tag_id = ?)", f.TagID)
	}
	if f.AuthorID != 0 {
		q = q.Where("blogs.author_id = ?", f.AuthorID)
	}
	if f.IsPublished != nil {
		q = q.Where("blogs.is_published = ?", *f.IsPublished)
	}
	if f.Featured {
		q = q.Where("blogs.is_featured = ?", true)
	}

	switch {
	case f.OnlyVisible:
		q = q.Where("blogs.is_published = ? AND blogs.is_active = ?", true, true)
	case f.VisibleOrOwns != 0:
		q = q.Where("((blogs.is_published = ? AND blogs.is_active = ?) OR blogs.author_id = ?)", true, true, f.VisibleOrOwns)
	}
	return q
}

func (r *blogRepository) List(filter models.BlogFilter, page models.PageParams) ([]models.Blog, int64, error) {
	var (
		blogs []models.Blog
		total int64
	)

	q := applyBlogFilter(r.db.Model(&models.Blog{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.preload(q).
		Order(blogOrder).
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&blogs).Error
	return blogs, total, err
}

func (r *blogRepository) Featured(limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	q := applyBlogFilter(r.db.Model(&models.Blog{}), models.BlogFilter{OnlyVisible: true, Featured: true})
	err := r.preload(q).Order(blogOrder).Limit(limit).Find(&blogs).Error
	return blogs, err
}

// Update saves the blog's own columns. Tags are replaced only when tagIDs is
// non-nil.
func (r *blogRepository) Update(blog *models.Blog, tagIDs *[]uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		blog.UpdatedAt = time.Now()
		if err := tx.Omit(clause.Associations).Save(blog).Error; err != nil {
			return err
		}
		if tagIDs == nil {
			return nil
		}
		return replaceBlogTags(tx, blog.ID, *tagIDs)
	})
}

func (r *blogRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Blog{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteBlogs(tx, []uint{id})
	})
}

type countRow struct {
	BlogID uint
	Total  int64
}

type reactionCountRow struct {
	BlogID uint
	Type   models.ReactionType
	Total  int64
}

// Engagement aggregates views, comments and reactions for a page of blogs in
// three grouped queries.
func (r *blogRepository) Engagement(ids []uint) (map[uint]*models.BlogEngagement, error) {
	out := make(map[uint]*models.BlogEngagement, len(ids))
	for _, id := range ids {
		out[id] = &models.BlogEngagement{ReactionCounts: models.NewReactionCounts()}
	}
	if len(ids) == 0 {
		return out, nil
	}

	var views []countRow
	if err := r.db.Model(&models.ViewCount{}).
		Select("blog_id, COUNT(*) AS total").
		Where("blog_id IN ?", ids).
		Group("blog_id").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	for _, row := range views {
		out[row.BlogID].ViewsCount = row.Total
	}

	var comments []countRow
	if err := r.db.Model(&models.Comment{}).
		Select("blog_id, COUNT(*) AS total").
		Where("blog_id IN ?", ids).
		Group("blog_id").
		Scan(&comments).Error; err != nil {
		return nil, err
	}
	for _, row := range comments {
		out[row.BlogID].CommentsCount = row.Total
	}

	var reactions []reactionCountRow
	if err := r.db.Model(&models.Reaction{}).
		Select("blog_id, type, COUNT(*) AS total").
		Where("blog_id IN ?", ids).
		Group("blog_id, type").
		Scan(&reactions).Error; err != nil {
		return nil, err
	}
	for _, row := range reactions {
		e := out[row.BlogID]
		e.ReactionCounts[row.Type] = row.Total
		e.TotalReactions += row.Total
	}

	return out, nil
}

// replaceBlogTags rewrites the blog_tags rows for blogID.
func replaceBlogTags(tx *gorm.DB, blogID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM blog_tags WHERE blog_id = ?", blogID).Error; err != nil {
		return err
	}

	seen := make(map[uint]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, dup := seen[tagID]; dup {
			continue
		}
		seen[tagID] = struct{}{}
		if err := tx.Exec("INSERT INTO blog_tags (blog_id, tag_id) VALUES (?, ?)", blogID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteBlogs removes blogs together with their tag links, views, reactions
// and comments.
func deleteBlogs(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM blog_tags WHERE blog_id IN ?", ids).Error; err != nil {
		return err
	}
	if err := tx.Where("blog_id IN ?", ids).Delete(&models.ViewCount{}).Error; err != nil {
		return err
	}
	if err := tx.Where("blog_id IN ?", ids).Delete(&models.Reaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("blog_id IN ? AND parent_id IS NOT NULL", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("blog_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Blog{}).Error
}
