package services

import (
	"testing"
	"time"

	"blog-api/models"
	"blog-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogCreate_RoleGate(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	reader := e.actor(t, "reader", models.RoleUser)

	_, err := e.blogs.Create(nil, models.CreateBlogRequest{Title: "x", Content: "y"})
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	_, err = e.blogs.Create(reader, models.CreateBlogRequest{Title: "x", Content: "y"})
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestBlogCreate_DefaultsAndSlug(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	author := e.actor(t, "author", models.RoleAuthor)

	blog := e.createBlog(t, author, "Tech")
	assert.Equal(t, "tech", blog.Slug)
	assert.True(t, blog.IsActive)
	assert.False(t, blog.IsPublished)
	assert.Nil(t, blog.PublishedAt)
	assert.Equal(t, "author", blog.Author.Username)

	second := e.createBlog(t, author, "Tech ")
	assert.Equal(t, "tech-1", second.Slug)

	_, err := e.blogs.Create(author, models.CreateBlogRequest{Title: "Tech", Content: "dup"})
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
}

func TestBlogCreate_ValidatesReferences(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	author := e.actor(t, "author", models.RoleAuthor)

	_, err := e.blogs.Create(author, models.CreateBlogRequest{
		Title:      "Refs",
		Content:    "body",
		CategoryID: ptr(uint(99)),
		TagIDs:     []uint{42},
	})

	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")
	assert.Contains(t, verr.Fields, "tag_ids")
}

func TestBlogPublish_StateMachine(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)
	blog := e.createBlog(t, author, "Lifecycle")

	first := e.publish(t, admin, blog.ID)
	require.True(t, first.IsPublished)
	require.NotNil(t, first.PublishedAt)
	stamp := *first.PublishedAt
	assert.True(t, stamp.Equal(e.clock.t))

	e.clock.Advance(time.Hour)
	again := e.publish(t, admin, blog.ID)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, stamp.Equal(*again.PublishedAt), "re-publishing keeps the first timestamp")

	// Omitting is_published toggles back to draft and clears the timestamp.
	draft, err := e.blogs.SetPublished(admin, blog.ID, models.PublishRequest{})
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)
	assert.Nil(t, draft.PublishedAt)

	e.clock.Advance(time.Hour)
	republished, err := e.blogs.SetPublished(admin, blog.ID, models.PublishRequest{})
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, republished.PublishedAt.Equal(e.clock.t))
}

func TestBlogPublish_Policy(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		e := newEnv(t, policy.PublishAdminOnly)
		author := e.actor(t, "author", models.RoleAuthor)
		blog := e.createBlog(t, author, "Mine")

		_, err := e.blogs.SetPublished(author, blog.ID, models.PublishRequest{})
		assert.IsType(t, models.ErrorForbidden{}, err)

		_, err = e.blogs.Update(author, blog.ID, models.UpdateBlogRequest{IsPublished: ptr(true)})
		assert.IsType(t, models.ErrorForbidden{}, err)
	})

	t.Run("owner or admin", func(t *testing.T) {
		e := newEnv(t, policy.PublishOwnerOrAdmin)
		author := e.actor(t, "author", models.RoleAuthor)
		other := e.actor(t, "other", models.RoleAuthor)
		blog := e.createBlog(t, author, "Mine")

		_, err := e.blogs.SetPublished(other, blog.ID, models.PublishRequest{})
		assert.IsType(t, models.ErrorForbidden{}, err)

		res, err := e.blogs.SetPublished(author, blog.ID, models.PublishRequest{})
		require.NoError(t, err)
		assert.True(t, res.IsPublished)
	})
}

func TestBlogUpdate_Ownership(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	owner := e.actor(t, "owner", models.RoleAuthor)
	other := e.actor(t, "other", models.RoleAuthor)
	blog := e.createBlog(t, owner, "Owned")

	_, err := e.blogs.Update(other, blog.ID, models.UpdateBlogRequest{Title: ptr("Hijacked")})
	assert.IsType(t, models.ErrorForbidden{}, err)

	updated, err := e.blogs.Update(owner, blog.ID, models.UpdateBlogRequest{Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "owned", updated.Slug, "slug is stable across renames")

	_, err = e.blogs.Update(admin, blog.ID, models.UpdateBlogRequest{Content: ptr("admin edit")})
	require.NoError(t, err)

	assert.IsType(t, models.ErrorForbidden{}, e.blogs.Delete(other, blog.ID))
	require.NoError(t, e.blogs.Delete(owner, blog.ID))

	_, err = e.blogs.Get(admin, blog.ID)
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestBlogUpdate_CategoryAndTags(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)

	category, err := e.categories.Create(admin, models.CreateCategoryRequest{Name: "News"})
	require.NoError(t, err)
	tag, err := e.tags.Create(admin, models.CreateTagRequest{Name: "Go"})
	require.NoError(t, err)

	blog := e.createBlog(t, author, "Tagged")
	updated, err := e.blogs.Update(author, blog.ID, models.UpdateBlogRequest{
		CategoryID: ptr(category.ID),
		TagIDs:     &[]uint{tag.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "news", updated.Category.Slug)
	require.Len(t, updated.Tags, 1)

	cleared, err := e.blogs.Update(author, blog.ID, models.UpdateBlogRequest{CategoryID: ptr(uint(0)), TagIDs: &[]uint{}})
	require.NoError(t, err)
	assert.Nil(t, cleared.Category)
	assert.Empty(t, cleared.Tags)
}

func TestBlogVisibility(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	alice := e.actor(t, "alice", models.RoleAuthor)
	bob := e.actor(t, "bob", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)

	published := e.createBlog(t, alice, "Alice live")
	e.publish(t, admin, published.ID)
	draft := e.createBlog(t, alice, "Alice draft")
	e.createBlog(t, bob, "Bob draft")

	count := func(actor *models.Actor) int64 {
		_, total, err := e.blogs.List(actor, models.BlogListParams{})
		require.NoError(t, err)
		return total
	}
	assert.Equal(t, int64(1), count(nil))
	assert.Equal(t, int64(1), count(reader))
	assert.Equal(t, int64(2), count(alice))
	assert.Equal(t, int64(3), count(admin))

	_, err := e.blogs.Get(nil, draft.ID)
	assert.IsType(t, models.ErrorNotFound{}, err)
	_, err = e.blogs.Get(bob, draft.ID)
	assert.IsType(t, models.ErrorNotFound{}, err)
	_, err = e.blogs.Get(alice, draft.ID)
	assert.NoError(t, err)
}

func TestBlogFeatured(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)

	for _, title := range []string{"One", "Two", "Three", "Four"} {
		blog, err := e.blogs.Create(admin, models.CreateBlogRequest{Title: title, Content: "x", IsFeatured: true, IsPublished: true})
		require.NoError(t, err)
		require.True(t, blog.IsPublished)
		e.clock.Advance(time.Minute)
	}

	featured, err := e.blogs.Featured()
	require.NoError(t, err)
	require.Len(t, featured, 3)
	assert.Equal(t, "Four", featured[0].Title)
}
