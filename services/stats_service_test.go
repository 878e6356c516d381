package services

import (
	"context"
	"testing"
	"time"

	"blog-api/cache"
	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Counts(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)
	reader := e.actor(t, "reader", models.RoleUser)

	blog := e.createBlog(t, author, "Counted")
	e.publish(t, admin, blog.ID)
	e.createBlog(t, author, "Uncounted Draft")

	_, err := e.comments.Create(reader, blog.ID, models.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)
	_, err = e.reactions.Toggle(reader, blog.ID, models.ReactionRequest{Type: models.ReactionLove})
	require.NoError(t, err)
	e.views.Record(nil, blog.ID, "192.168.1.1")
	e.views.Record(nil, blog.ID, "192.168.1.2")

	stats, err := e.stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPublishedPosts)
	assert.Equal(t, int64(3), stats.ActiveUsers)
	assert.Equal(t, int64(2), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalComments)
	assert.Equal(t, int64(1), stats.TotalReactions)
}

func TestStats_CachedInRedis(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	admin := e.actor(t, "admin", models.RoleAdmin)
	author := e.actor(t, "author", models.RoleAuthor)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	stats := NewStatsService(repositories.NewStatsRepository(e.db), cache.NewRedis(client), time.Minute, e.clock.Now)
	ctx := context.Background()

	first, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.TotalPublishedPosts)
	assert.True(t, mr.Exists("blog-api:"+statsCacheKey))

	blog := e.createBlog(t, author, "After Cache")
	e.publish(t, admin, blog.ID)

	cached, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cached.TotalPublishedPosts)

	mr.FastForward(2 * time.Minute)

	fresh, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.TotalPublishedPosts)
}

func TestStats_CacheDownFallsBack(t *testing.T) {
	e := newEnv(t, policy.PublishAdminOnly)
	e.actor(t, "reader", models.RoleUser)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	stats := NewStatsService(repositories.NewStatsRepository(e.db), cache.NewRedis(client), time.Minute, e.clock.Now)
	got, err := stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ActiveUsers)
}
