package services

import (
	"testing"
	"time"

	"blog-api/models"
	"blog-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactMessages(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	reader := e.actor(t, "reader", models.RoleUser)

	_, err := e.contacts.Submit(models.CreateContactMessageRequest{Name: "Visitor", Email: "v@example.com", Message: "   "})
	assert.IsType(t, models.ErrorValidation{}, err)

	msg, err := e.contacts.Submit(models.CreateContactMessageRequest{Name: " Visitor ", Email: "v@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "Visitor", msg.Name)
	assert.False(t, msg.IsRead)

	_, _, err = e.contacts.List(reader, models.PageParams{})
	assert.IsType(t, models.ErrorForbidden{}, err)
	_, _, err = e.contacts.List(nil, models.PageParams{})
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	list, total, err := e.contacts.List(admin, models.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	read, err := e.contacts.MarkRead(admin, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	require.NoError(t, e.contacts.Delete(admin, msg.ID))
	assert.IsType(t, models.ErrorNotFound{}, e.contacts.Delete(admin, msg.ID))
}

func TestAdvertisements(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)

	now := e.clock.t
	_, err := e.ads.Create(author, models.CreateAdvertisementRequest{Title: "Nope", URL: "https://example.com", EndDate: now.Add(time.Hour)})
	assert.IsType(t, models.ErrorForbidden{}, err)

	_, err = e.ads.Create(admin, models.CreateAdvertisementRequest{Title: "Backwards", URL: "https://example.com", EndDate: now.Add(-time.Hour)})
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")

	running, err := e.ads.Create(admin, models.CreateAdvertisementRequest{Title: "Spring Sale", URL: "https://example.com/sale", EndDate: now.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "spring-sale", running.Slug)
	assert.True(t, running.IsActive)

	later := now.Add(48 * time.Hour)
	_, err = e.ads.Create(admin, models.CreateAdvertisementRequest{Title: "Spring Sale", URL: "https://example.com/later", StartDate: &later, EndDate: later.Add(time.Hour)})
	require.NoError(t, err)

	ads, err := e.ads.Running()
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, running.ID, ads[0].ID)

	off := false
	_, err = e.ads.Update(admin, running.ID, models.UpdateAdvertisementRequest{IsActive: &off})
	require.NoError(t, err)
	ads, err = e.ads.Running()
	require.NoError(t, err)
	assert.Empty(t, ads)

	_, total, err := e.ads.List(admin, models.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	require.NoError(t, e.ads.Delete(admin, running.ID))
	assert.IsType(t, models.ErrorNotFound{}, e.ads.Delete(admin, running.ID))
}
