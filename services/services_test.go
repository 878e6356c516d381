package services

import (
	"testing"
	"time"

	"blog-api/cache"
	"blog-api/config"
	"blog-api/models"
	"blog-api/policy"
	"blog-api/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock is a settable Clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type env struct {
	db    *gorm.DB
	clock *fakeClock

	tokens        TokenService
	auth          AuthService
	users         UserService
	categories    CategoryService
	tags          TagService
	blogs         BlogService
	comments      CommentService
	reactions     ReactionService
	views         ViewService
	posts         PostService
	stats         StatsService
	notifications NotificationService
	contacts      ContactService
	ads           AdvertisementService
}

func newEnv(t *testing.T, publish policy.PublishPolicy) *env {
	t.Helper()

	db := testutil.NewDB(t)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	cfg.Policy.Publish = string(publish)

	svc, err := New(db, cache.Noop{}, cfg, clock.Now)
	require.NoError(t, err)

	e := &env{
		db:            db,
		clock:         clock,
		tokens:        svc.Tokens,
		auth:          svc.Auth,
		users:         svc.Users,
		categories:    svc.Categories,
		tags:          svc.Tags,
		blogs:         svc.Blogs,
		comments:      svc.Comments,
		reactions:     svc.Reactions,
		views:         svc.Views,
		posts:         svc.Posts,
		stats:         svc.Stats,
		notifications: svc.Notifications,
		contacts:      svc.Contacts,
		ads:           svc.Ads,
	}
	return e
}

func (e *env) actor(t *testing.T, username string, role models.UserRole) *models.Actor {
	t.Helper()
	return testutil.Actor(testutil.CreateUser(t, e.db, username, role))
}

func (e *env) createBlog(t *testing.T, actor *models.Actor, title string) *models.BlogResponse {
	t.Helper()
	blog, err := e.blogs.Create(actor, models.CreateBlogRequest{Title: title, Content: "Body of " + title})
	require.NoError(t, err)
	return blog
}

// publish flips a blog to published as an admin.
func (e *env) publish(t *testing.T, admin *models.Actor, id uint) *models.BlogResponse {
	t.Helper()
	published := true
	blog, err := e.blogs.SetPublished(admin, id, models.PublishRequest{IsPublished: &published})
	require.NoError(t, err)
	return blog
}

func ptr[T any](v T) *T {
	return &v
}
