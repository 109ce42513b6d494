package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/utils"
)

// GetProfileByUsername GET /api/profiles/:username
func GetProfileByUsername(c *gin.Context) {
	route := c.FullPath()
	username := c.Param("username")
	currentUserID := c.GetString("user_id")

	var p Profile
	if err := database.DB.Where("username = ?", username).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			logs.LogJSON("WARN", "User not found", map[string]interface{}{
				"route":    route,
				"username": username,
				"userID":   currentUserID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	followers, following, err := utils.FollowCounts(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		logs.LogJSON("ERROR", "Error counting follows", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"username": username,
		})
		return
	}

	isOwn := currentUserID != "" && currentUserID == p.ID
	isFollowing := false
	if currentUserID != "" && !isOwn {
		isFollowing, err = utils.IsFollowing(currentUserID, p.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			logs.LogJSON("ERROR", "Error during follow-up verification", map[string]interface{}{
				"error":    err.Error(),
				"route":    route,
				"username": username,
				"userID":   currentUserID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": p,
		"stats": gin.H{
			"followers_count": followers,
			"following_count": following,
		},
		"is_following":   isFollowing,
		"is_own_profile": isOwn,
	})
}
