package repositories

import (
	"time"

	"blog-api/models"

	"gorm.io/gorm"
)

type StatsRepository interface {
	Collect(since time.Time) (*models.SiteStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Collect counts site-wide totals. new_posts_last_7_days counts visible posts
// created after since.
func (r *statsRepository) Collect(since time.Time) (*models.SiteStats, error) {
	var stats models.SiteStats

	visible := func() *gorm.DB {
		return r.db.Model(&models.Blog{}).Where("is_published = ? AND is_active = ?", true, true)
	}

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{visible(), &stats.TotalPublishedPosts},
		{r.db.Model(&models.User{}).Where("is_active = ?", true), &stats.ActiveUsers},
		{visible().Where("created_at >= ?", since), &stats.NewPostsLast7Days},
		{r.db.Model(&models.ViewCount{}), &stats.TotalViews},
		{r.db.Model(&models.Comment{}), &stats.TotalComments},
		{r.db.Model(&models.Reaction{}), &stats.TotalReactions},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
