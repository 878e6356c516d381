package services

import (
	"testing"
	"time"

	"blog-api/config"
	"blog-api/models"
	"blog-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)

	res, err := e.auth.Register(models.RegisterRequest{
		Username:        "newbie",
		Email:           "newbie@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.True(t, res.User.IsActive)
	assert.NotEmpty(t, res.Access)
	assert.NotEmpty(t, res.Refresh)

	claims, err := e.tokens.Parse(res.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	author, err := e.auth.Register(models.RegisterRequest{
		Username:        "writer",
		Email:           "writer@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            models.RoleAuthor,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAuthor, author.User.Role)
}

func TestRegister_Rejections(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	e.actor(t, "taken", models.RoleUser)

	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{
			name:  "password mismatch",
			req:   models.RegisterRequest{Username: "a1b2c3", Email: "a@example.com", Password: "password123", ConfirmPassword: "password124"},
			field: "confirm_password",
		},
		{
			name:  "admin self-registration",
			req:   models.RegisterRequest{Username: "boss", Email: "boss@example.com", Password: "password123", ConfirmPassword: "password123", Role: models.RoleAdmin},
			field: "role",
		},
		{
			name:  "duplicate username",
			req:   models.RegisterRequest{Username: "taken", Email: "other@example.com", Password: "password123", ConfirmPassword: "password123"},
			field: "username",
		},
		{
			name:  "duplicate email",
			req:   models.RegisterRequest{Username: "fresh", Email: "TAKEN@example.com", Password: "password123", ConfirmPassword: "password123"},
			field: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.auth.Register(tt.req)
			var verr models.ErrorValidation
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestLogin(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	e.actor(t, "alice", models.RoleAuthor)

	res, err := e.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, res.User.LastLogin)
	assert.True(t, res.User.LastLogin.Equal(e.clock.t))

	_, err = e.auth.Login(models.LoginRequest{Username: "alice", Password: "wrong-password"})
	require.IsType(t, models.ErrorUnauthorized{}, err)
	assert.Equal(t, invalidCredentials, err.Error())

	_, err = e.auth.Login(models.LoginRequest{Username: "nobody", Password: "password123"})
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	require.NoError(t, e.db.Model(&models.User{}).Where("username = ?", "alice").Update("is_active", false).Error)
	_, err = e.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestRefresh(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	e.actor(t, "alice", models.RoleUser)

	pair, err := e.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	res, err := e.auth.Refresh(models.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	claims, err := e.tokens.Parse(res.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	_, err = e.auth.Refresh(models.RefreshRequest{Refresh: pair.Access})
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	_, err = e.auth.Refresh(models.RefreshRequest{Refresh: "garbage"})
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	alice := e.actor(t, "alice", models.RoleUser)

	assert.IsType(t, models.ErrorUnauthorized{}, e.auth.ChangePassword(nil, models.ChangePasswordRequest{}))

	err := e.auth.ChangePassword(alice, models.ChangePasswordRequest{
		OldPassword: "not-it", NewPassword: "newpassword1", ConfirmPassword: "different1",
	})
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "old_password")
	assert.Contains(t, verr.Fields, "confirm_password")

	require.NoError(t, e.auth.ChangePassword(alice, models.ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "newpassword1", ConfirmPassword: "newpassword1",
	}))

	_, err = e.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	assert.IsType(t, models.ErrorUnauthorized{}, err)
	_, err = e.auth.Login(models.LoginRequest{Username: "alice", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestTokenParse(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	cfg := config.JWTConfig{Secret: "s3cret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleAuthor}

	old := NewTokenService(cfg, clock.Now)
	expired, err := old.Issue(user, AccessToken)
	require.NoError(t, err)

	tokens := NewTokenService(cfg, nil)
	access, refresh, err := tokens.IssuePair(user)
	require.NoError(t, err)

	claims, err := tokens.Parse(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, &models.Actor{ID: 7, Username: "alice", Role: models.RoleAuthor}, claims.Actor())
	assert.NotEmpty(t, claims.ID)

	_, err = tokens.Parse(refresh, AccessToken)
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	_, err = tokens.Parse(expired, AccessToken)
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	other := NewTokenService(config.JWTConfig{Secret: "other", AccessTTL: time.Hour, RefreshTTL: time.Hour}, nil)
	_, err = other.Parse(access, AccessToken)
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}
