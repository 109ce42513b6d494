package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// GetPostsByUsername GET /api/profiles/:username/posts
func GetPostsByUsername(c *gin.Context) {
	username := c.Param("username")

	var p profile.Profile
	if err := database.DB.Where("username = ?", username).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		}
		return
	}

	views, err := LoadViews(Query(c.GetString("user_id")).
		Where("posts.user_id = ?", p.ID).
		Order("posts.created_at DESC"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		logs.LogJSON("ERROR", "Error retrieving posts by username", map[string]interface{}{
			"error":    err.Error(),
			"route":    c.FullPath(),
			"username": username,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}
