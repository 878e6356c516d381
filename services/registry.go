package services

import (
	"fmt"

	"blog-api/cache"
	"blog-api/config"
	"blog-api/policy"
	"blog-api/repositories"

	"gorm.io/gorm"
)

// Services bundles every service the HTTP layer needs.
type Services struct {
	Policy        *policy.Policy
	Tokens        TokenService
	Auth          AuthService
	Users         UserService
	Categories    CategoryService
	Tags          TagService
	Blogs         BlogService
	Comments      CommentService
	Reactions     ReactionService
	Views         ViewService
	Posts         PostService
	Stats         StatsService
	Notifications NotificationService
	Contacts      ContactService
	Ads           AdvertisementService
}

// New wires repositories and services over db. A nil clock means time.Now.
func New(db *gorm.DB, c cache.Cache, cfg *config.Config, clock Clock) (*Services, error) {
	p, err := policy.New(policy.PublishPolicy(cfg.Policy.Publish))
	if err != nil {
		return nil, fmt.Errorf("build policy: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	reactionRepo := repositories.NewReactionRepository(db)

	s := &Services{Policy: p}
	s.Tokens = NewTokenService(cfg.JWT, nil)
	s.Auth = NewAuthService(userRepo, s.Tokens, clock)
	s.Users = NewUserService(userRepo, p)
	s.Categories = NewCategoryService(categoryRepo, p)
	s.Tags = NewTagService(tagRepo, p)
	s.Blogs = NewBlogService(blogRepo, categoryRepo, tagRepo, p, clock)
	s.Notifications = NewNotificationService(repositories.NewNotificationRepository(db), p)
	s.Comments = NewCommentService(commentRepo, blogRepo, s.Notifications, p)
	s.Reactions = NewReactionService(reactionRepo, blogRepo, s.Notifications, p)
	s.Views = NewViewService(repositories.NewViewCountRepository(db))
	s.Posts = NewPostService(blogRepo, commentRepo, reactionRepo, s.Views, clock)
	s.Stats = NewStatsService(repositories.NewStatsRepository(db), c, cfg.Stats.CacheTTL, clock)
	s.Contacts = NewContactService(repositories.NewContactRepository(db), p)
	s.Ads = NewAdvertisementService(repositories.NewAdvertisementRepository(db), p, clock)
	return s, nil
}
