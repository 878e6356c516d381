package handlers

import (
	"net/http"

	"blog-api/config"
	"blog-api/middleware"
	"blog-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// NewRouter builds the gin engine with every route mounted under /api/v1.
func NewRouter(cfg *config.Config, svc *services.Services) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORSOrigins),
	)

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	categoryHandler := NewCategoryHandler(svc.Categories)
	tagHandler := NewTagHandler(svc.Tags)
	blogHandler := NewBlogHandler(svc.Blogs)
	commentHandler := NewCommentHandler(svc.Comments)
	reactionHandler := NewReactionHandler(svc.Reactions)
	postHandler := NewPostHandler(svc.Posts, svc.Stats)
	notificationHandler := NewNotificationHandler(svc.Notifications)
	contactHandler := NewContactHandler(svc.Contacts)
	adHandler := NewAdvertisementHandler(svc.Ads)

	requireAuth := middleware.AuthMiddleware(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)
	throttle := middleware.NewIPRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst).Middleware()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Auth
		v1.POST("/register/", throttle, authHandler.Register)
		v1.POST("/login/", throttle, authHandler.Login)
		v1.POST("/refresh/", throttle, authHandler.Refresh)
		v1.GET("/protected/", requireAuth, authHandler.GetProfile)
		v1.GET("/me/", requireAuth, authHandler.GetProfile)
		v1.PUT("/change-password/", requireAuth, authHandler.ChangePassword)

		users := v1.Group("/users", requireAuth)
		{
			users.GET("/", userHandler.GetUsers)
			users.GET("/:id/", userHandler.GetUser)
			users.PUT("/:id/", userHandler.UpdateUser)
			users.PATCH("/:id/", userHandler.UpdateUser)
			users.DELETE("/:id/", userHandler.DeleteUser)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("/", categoryHandler.GetCategories)
			categories.GET("/all/", categoryHandler.GetAllCategories)
			categories.POST("/", requireAuth, categoryHandler.CreateCategory)
			categories.GET("/:id/", categoryHandler.GetCategory)
			categories.PUT("/:id/", requireAuth, categoryHandler.UpdateCategory)
			categories.PATCH("/:id/", requireAuth, categoryHandler.UpdateCategory)
			categories.DELETE("/:id/", requireAuth, categoryHandler.DeleteCategory)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("/", tagHandler.GetTags)
			tags.GET("/all/", tagHandler.GetAllTags)
			tags.POST("/", requireAuth, tagHandler.CreateTag)
			tags.GET("/:id/", tagHandler.GetTag)
			tags.PUT("/:id/", requireAuth, tagHandler.UpdateTag)
			tags.PATCH("/:id/", requireAuth, tagHandler.UpdateTag)
			tags.DELETE("/:id/", requireAuth, tagHandler.DeleteTag)
		}

		blogs := v1.Group("/blogs")
		{
			blogs.GET("/", optionalAuth, blogHandler.GetBlogs)
			blogs.POST("/", requireAuth, blogHandler.CreateBlog)
			blogs.GET("/featured/", blogHandler.GetFeatured)
			blogs.GET("/:id/", optionalAuth, blogHandler.GetBlog)
			blogs.PUT("/:id/", requireAuth, blogHandler.UpdateBlog)
			blogs.PATCH("/:id/", requireAuth, blogHandler.UpdateBlog)
			blogs.DELETE("/:id/", requireAuth, blogHandler.DeleteBlog)
			blogs.PUT("/:id/publish/", requireAuth, blogHandler.PublishBlog)
			blogs.PATCH("/:id/publish/", requireAuth, blogHandler.PublishBlog)

			blogs.GET("/:id/comments/", optionalAuth, commentHandler.GetBlogComments)
			blogs.POST("/:id/comments/", requireAuth, commentHandler.CreateComment)
			blogs.GET("/:id/reactions/", optionalAuth, reactionHandler.GetReactions)
			blogs.POST("/:id/reactions/", requireAuth, reactionHandler.ToggleReaction)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("/:id/", optionalAuth, commentHandler.GetComment)
			comments.PUT("/:id/", requireAuth, commentHandler.UpdateComment)
			comments.PATCH("/:id/", requireAuth, commentHandler.UpdateComment)
			comments.DELETE("/:id/", requireAuth, commentHandler.DeleteComment)
		}

		v1.DELETE("/reactions/:id/", requireAuth, reactionHandler.DeleteReaction)

		// Public feed
		v1.GET("/posts/", postHandler.GetPosts)
		v1.GET("/posts/:slug/", optionalAuth, postHandler.GetPost)
		v1.GET("/stats/", postHandler.GetStats)

		notifications := v1.Group("/notifications", requireAuth)
		{
			notifications.GET("/", notificationHandler.GetNotifications)
			notifications.POST("/read-all/", notificationHandler.MarkAllRead)
			notifications.PATCH("/:id/read/", notificationHandler.MarkRead)
		}

		contact := v1.Group("/contact")
		{
			contact.POST("/", contactHandler.SubmitMessage)
			contact.GET("/", requireAuth, contactHandler.GetMessages)
			contact.PATCH("/:id/read/", requireAuth, contactHandler.MarkRead)
			contact.DELETE("/:id/", requireAuth, contactHandler.DeleteMessage)
		}

		ads := v1.Group("/advertisements")
		{
			ads.GET("/", adHandler.GetRunning)
			ads.GET("/all/", requireAuth, adHandler.GetAll)
			ads.POST("/", requireAuth, adHandler.CreateAdvertisement)
			ads.PUT("/:id/", requireAuth, adHandler.UpdateAdvertisement)
			ads.PATCH("/:id/", requireAuth, adHandler.UpdateAdvertisement)
			ads.DELETE("/:id/", requireAuth, adHandler.DeleteAdvertisement)
		}
	}

	return router
}
