package services

import (
	"testing"
	"time"

	"blog-api/models"
	"blog-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommentTree(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	parent := func(id uint) *uint { return &id }

	rows := []models.Comment{
		{ID: 1, Content: "c1", CreatedAt: base},
		{ID: 2, Content: "c2", CreatedAt: base.Add(time.Minute)},
		{ID: 3, Content: "c1-r1", ParentID: parent(1), CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, Content: "c2-r1", ParentID: parent(2), CreatedAt: base.Add(3 * time.Minute)},
		{ID: 5, Content: "c1-r2", ParentID: parent(1), CreatedAt: base.Add(4 * time.Minute)},
		{ID: 6, Content: "orphan", ParentID: parent(99), CreatedAt: base.Add(5 * time.Minute)},
	}

	tree := BuildCommentTree(rows)
	require.Len(t, tree, 2)
	assert.Equal(t, "c1", tree[0].Content)
	assert.Equal(t, "c2", tree[1].Content)

	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, "c1-r1", tree[0].Replies[0].Content)
	assert.Equal(t, "c1-r2", tree[0].Replies[1].Content)
	require.Len(t, tree[1].Replies, 1)
	assert.Empty(t, tree[0].Replies[0].Replies)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestCommentCreate_ThreadRules(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)

	blog := e.createBlog(t, author, "Threads")
	e.publish(t, admin, blog.ID)
	other := e.createBlog(t, author, "Elsewhere")
	e.publish(t, admin, other.ID)

	_, err := e.comments.Create(nil, blog.ID, models.CreateCommentRequest{Content: "anon"})
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	top, err := e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, "reader", top.User.Username)

	reply, err := e.comments.Create(author, blog.ID, models.CreateCommentRequest{Content: "thanks", Parent: &top.ID})
	require.NoError(t, err)
	assert.Equal(t, top.ID, *reply.Parent)

	var verr models.ErrorValidation
	_, err = e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "deep", Parent: &reply.ID})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent")

	_, err = e.comments.Create(reader, other.ID, models.CreateCommentRequest{Content: "cross", Parent: &top.ID})
	require.ErrorAs(t, err, &verr)

	_, err = e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "ghost", Parent: ptr(uint(999))})
	require.ErrorAs(t, err, &verr)

	tree, err := e.comments.ListForBlog(nil, blog.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "thanks", tree[0].Replies[0].Content)
}

func TestCommentCreate_Notifications(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)

	blog := e.createBlog(t, author, "Notify")
	e.publish(t, admin, blog.ID)

	top, err := e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "hello"})
	require.NoError(t, err)
	_, err = e.comments.Create(author, blog.ID, models.CreateCommentRequest{Content: "own post"})
	require.NoError(t, err)
	_, err = e.comments.Create(author, blog.ID, models.CreateCommentRequest{Content: "reply", Parent: &top.ID})
	require.NoError(t, err)
	_, err = e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "self reply", Parent: &top.ID})
	require.NoError(t, err)

	authorInbox, total, err := e.notifications.List(author, models.NotificationListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Contains(t, authorInbox[0].Message, "reader commented")

	readerInbox, total, err := e.notifications.List(reader, models.NotificationListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Contains(t, readerInbox[0].Message, "author replied")

	marked, err := e.notifications.MarkRead(reader, readerInbox[0].ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	_, err = e.notifications.MarkRead(author, readerInbox[0].ID)
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestCommentUpdateDelete_Ownership(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)
	stranger := e.actor(t, "stranger", models.RoleUser)

	blog := e.createBlog(t, author, "Edits")
	e.publish(t, admin, blog.ID)

	comment, err := e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "typo"})
	require.NoError(t, err)
	_, err = e.comments.Create(stranger, blog.ID, models.CreateCommentRequest{Content: "reply", Parent: &comment.ID})
	require.NoError(t, err)

	_, err = e.comments.Update(stranger, comment.ID, models.UpdateCommentRequest{Content: "hacked"})
	assert.IsType(t, models.ErrorForbidden{}, err)

	updated, err := e.comments.Update(reader, comment.ID, models.UpdateCommentRequest{Content: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", updated.Content)

	assert.IsType(t, models.ErrorForbidden{}, e.comments.Delete(stranger, comment.ID))
	require.NoError(t, e.comments.Delete(admin, comment.ID))

	tree, err := e.comments.ListForBlog(nil, blog.ID)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestCommentOnDraft_Hidden(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	author := e.actor(t, "author", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)
	draft := e.createBlog(t, author, "Draft")

	_, err := e.comments.Create(reader, draft.ID, models.CreateCommentRequest{Content: "peek"})
	assert.IsType(t, models.ErrorNotFound{}, err)

	_, err = e.comments.ListForBlog(nil, draft.ID)
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestCommentGet_HiddenWithItsBlog(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)
	blog := e.createBlog(t, author, "Soon Hidden")
	e.publish(t, admin, blog.ID)

	comment, err := e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)

	got, err := e.comments.Get(nil, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)

	unpublished := false
	_, err = e.blogs.SetPublished(admin, blog.ID, models.PublishRequest{IsPublished: &unpublished})
	require.NoError(t, err)

	_, err = e.comments.Get(nil, comment.ID)
	assert.Equal(t, models.ErrorNotFound{Message: "Comment not found"}, err)
	_, err = e.comments.Get(reader, comment.ID)
	assert.IsType(t, models.ErrorNotFound{}, err)

	_, err = e.comments.Get(author, comment.ID)
	assert.NoError(t, err)
	_, err = e.comments.Get(admin, comment.ID)
	assert.NoError(t, err)
}
