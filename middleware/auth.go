package middleware

import (
	"strings"

	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = helper.NewHTTPHelper()

const actorKey = "actor"

// CurrentActor returns the authenticated caller, or nil for anonymous requests.
func CurrentActor(c *gin.Context) *models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(*models.Actor); ok {
			return actor
		}
	}
	return nil
}

// bearerToken extracts the token from the Authorization header. present is
// false when no header was sent at all.
func bearerToken(c *gin.Context) (token string, present bool, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
		return "", true, false
	}
	return strings.TrimSpace(tokenString), true, true
}

// authenticate resolves the bearer token against the user table on every
// request, so role changes and deactivation apply immediately.
func authenticate(c *gin.Context, auth services.AuthService, required bool) {
	tokenString, present, ok := bearerToken(c)
	if !present {
		if required {
			HTTPHelper.SendUnauthorizedError(c, "Authentication credentials were not provided.", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
		return
	}
	if !ok {
		HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
		c.Abort()
		return
	}

	actor, err := auth.Authenticate(tokenString)
	if err != nil {
		HTTPHelper.SendServiceError(c, err)
		c.Abort()
		return
	}

	c.Set(actorKey, actor)
	c.Set("user_id", actor.ID)
	c.Next()
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, auth, true)
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token.
func OptionalAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, auth, false)
	}
}
