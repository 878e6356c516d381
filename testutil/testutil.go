// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"
	"time"

	"blog-api/migration"
	"blog-api/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database. A single connection
// keeps the database alive for the lifetime of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.Run(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateUser inserts an active user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateBlog inserts a blog owned by author.
func CreateBlog(t *testing.T, db *gorm.DB, author *models.User, title string, published bool) *models.Blog {
	t.Helper()

	blog := &models.Blog{
		Title:    title,
		Slug:     title,
		AuthorID: author.ID,
		Content:  "content of " + title,
		IsActive: true,
	}
	blog.SetPublished(published, time.Now())
	require.NoError(t, db.Create(blog).Error)
	return blog
}

func Actor(u *models.User) *models.Actor {
	return &models.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}
