package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/admin"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

// AdminOnlyMiddleware réserve la route aux membres d'admin_users et expose
// leur rôle sous "admin_role". À chaîner après AuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		role, err := admin.RoleOf(userID)
		switch {
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify admin"})
			logs.LogJSON("ERROR", "Admin role lookup failed", map[string]interface{}{
				"error":  err.Error(),
				"route":  c.FullPath(),
				"userID": userID,
			})
		case role == "":
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admins only"})
			logs.LogJSON("WARN", "Admin route denied", map[string]interface{}{
				"route":  c.FullPath(),
				"userID": userID,
			})
		default:
			c.Set("admin_role", role)
			c.Next()
		}
	}
}
