package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery turns a panic into a 500 envelope and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		HTTPHelper.SendError(c, "Internal server error", HTTPHelper.EmptyJsonMap(), http.StatusInternalServerError, `internalServerError`)
		c.Abort()
	})
}
