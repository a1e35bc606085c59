package middleware

import (
	"net/http"
	"strings"

	"github.com/Gabo-araya/connect4-IA-agent/internal/config"
	"github.com/Gabo-araya/connect4-IA-agent/pkg/auth"
	"github.com/gin-gonic/gin"
)

// GameAuthMiddleware requires a valid game token whose game_id claim
// matches the :id route parameter. The validated game ID lands in the
// context under "game_id".
func GameAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing game token"})
			return
		}

		claims, err := auth.ValidateGameToken(strings.TrimPrefix(header, "Bearer "), config.AppConfig.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired game token"})
			return
		}

		if id := c.Param("id"); id != "" && id != claims.GameID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not match this game"})
			return
		}

		c.Set("game_id", claims.GameID)
		c.Next()
	}
}
