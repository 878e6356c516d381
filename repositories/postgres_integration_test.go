//go:build integration

package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"blog-api/migration"
	"blog-api/models"
	"blog-api/testutil"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresSuite runs the repositories against a real PostgreSQL so row
// locking and unique violations behave as in production.
type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("blog_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	s.Require().NoError(migration.Run(s.db))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		"TRUNCATE notifications, reactions, view_counts, comments, blog_tags, blogs, tags, categories, users RESTART IDENTITY CASCADE",
	).Error)
}

func (s *PostgresSuite) TestMigrationIsIdempotent() {
	s.NoError(migration.Run(s.db))
}

func (s *PostgresSuite) TestUniqueViolationIsDetected() {
	testutil.CreateUser(s.T(), s.db, "alice", models.RoleAuthor)

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "x", Role: models.RoleUser, IsActive: true}
	err := s.db.Create(dup).Error
	s.Error(err)
	s.True(IsUniqueViolation(err))
}

func (s *PostgresSuite) TestConcurrentViewsCountOnce() {
	author := testutil.CreateUser(s.T(), s.db, "author", models.RoleAuthor)
	blog := testutil.CreateBlog(s.T(), s.db, author, "busy-post", true)
	repo := NewViewCountRepository(s.db)

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Record(blog.ID, "10.0.0.1", nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	s.Empty(errs)
	s.Equal(1, created)

	count, err := repo.CountByBlog(blog.ID)
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *PostgresSuite) TestConcurrentReactionsFromManyUsers() {
	author := testutil.CreateUser(s.T(), s.db, "author", models.RoleAuthor)
	blog := testutil.CreateBlog(s.T(), s.db, author, "liked-post", true)
	repo := NewReactionRepository(s.db)

	const readers = 8
	users := make([]*models.User, readers)
	for i := range users {
		users[i] = testutil.CreateUser(s.T(), s.db, fmt.Sprintf("reader%d", i), models.RoleUser)
	}

	var wg sync.WaitGroup
	errs := make(chan error, readers)
	for _, u := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			if _, err := repo.Toggle(blog.ID, userID, models.ReactionLike); err != nil {
				errs <- err
			}
		}(u.ID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	counts, err := repo.Counts(blog.ID)
	s.NoError(err)
	s.Equal(int64(readers), counts[models.ReactionLike])
}

func (s *PostgresSuite) TestConcurrentTogglesKeepOneReactionPerUser() {
	author := testutil.CreateUser(s.T(), s.db, "author", models.RoleAuthor)
	reader := testutil.CreateUser(s.T(), s.db, "reader", models.RoleUser)
	blog := testutil.CreateBlog(s.T(), s.db, author, "contested-post", true)
	repo := NewReactionRepository(s.db)

	types := []models.ReactionType{models.ReactionLike, models.ReactionLove, models.ReactionLike, models.ReactionWow}

	var wg sync.WaitGroup
	errs := make(chan error, len(types))
	for _, rt := range types {
		wg.Add(1)
		go func(rt models.ReactionType) {
			defer wg.Done()
			if _, err := repo.Toggle(blog.ID, reader.ID, rt); err != nil {
				errs <- err
			}
		}(rt)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	var rows int64
	s.NoError(s.db.Model(&models.Reaction{}).
		Where("blog_id = ? AND user_id = ?", blog.ID, reader.ID).
		Count(&rows).Error)
	s.LessOrEqual(rows, int64(1))
}

func (s *PostgresSuite) TestConcurrentCategorySlugsStayUnique() {
	repo := NewCategoryRepository(s.db)

	const workers = 4
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		slugs = map[string]struct{}{}
		errs  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			category := &models.Category{Name: fmt.Sprintf("Tech %d", i), IsActive: true}
			err := repo.Create(category, "tech")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			slugs[category.Slug] = struct{}{}
		}(i)
	}
	wg.Wait()

	s.Empty(errs)
	s.Len(slugs, workers)
	s.Contains(slugs, "tech")
}
