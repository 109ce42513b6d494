package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

// OptionalAuthMiddleware identifie le lecteur quand c'est possible et laisse
// toujours passer la requête : un token absent ou invalide donne un lecteur anonyme
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := tokenFrom(c); tokenStr != "" {
			if userID, ok := identify(c, tokenStr); ok {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}

// identify valide le token ; s'il a seulement expiré et qu'un X-Refresh-Token
// accompagne la requête, le nouveau token est renvoyé dans X-New-Access-Token
func identify(c *gin.Context, tokenStr string) (string, bool) {
	if userID, err := parseToken(tokenStr); err == nil {
		return userID, true
	}

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" || !isExpired(tokenStr, time.Now()) {
		return "", false
	}

	fresh, err := refreshAccessToken(refreshToken)
	if err != nil {
		logs.LogJSON("WARN", "Token refresh failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return "", false
	}

	userID, err := parseToken(fresh)
	if err != nil {
		return "", false
	}
	c.Header("X-New-Access-Token", fresh)
	return userID, true
}
