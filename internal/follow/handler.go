package follow

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
	"github.com/ArthurDelaporte/Loopz-Back/internal/utils"
)

// Toggle suit ou ne suit plus followingID. Suivre insère la notification
// "follow" dans la même transaction ; ne plus suivre la conserve.
func Toggle(db *gorm.DB, followerID, followingID string) (FollowResponse, *notification.Notification, error) {
	if followerID == followingID {
		return FollowResponse{}, nil, ErrSelfFollow
	}

	response := FollowResponse{FollowingID: followingID}
	var notif *notification.Notification

	err := db.Transaction(func(tx *gorm.DB) error {
		var targets int64
		if err := tx.Model(&profile.Profile{}).Where("id = ?", followingID).Count(&targets).Error; err != nil {
			return err
		}
		if targets == 0 {
			return ErrUserNotFound
		}

		following, err := utils.IsFollowingTx(tx, followerID, followingID)
		if err != nil {
			return err
		}

		if following {
			if err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
				Delete(&utils.Follower{}).Error; err != nil {
				return err
			}
		} else {
			edge := utils.Follower{
				ID:          uuid.New().String(),
				CreatedAt:   time.Now(),
				FollowerID:  followerID,
				FollowingID: followingID,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
			n := notification.New(notification.TypeFollow, followingID, followerID, nil)
			if err := notification.Insert(tx, &n); err != nil {
				return err
			}
			notif = &n
		}
		response.IsFollowing = !following

		return tx.Model(&utils.Follower{}).Where("following_id = ?", followingID).Count(&response.FollowerCount).Error
	})
	if err != nil {
		return FollowResponse{}, nil, err
	}
	return response, notif, nil
}

// ToggleFollow POST /api/follow/:id
func ToggleFollow(c *gin.Context) {
	route := c.FullPath()
	followerID := c.GetString("user_id")
	followingID := c.Param("id")

	response, notif, err := Toggle(database.DB, followerID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
			logs.LogJSON("WARN", "Impossible to follow yourself", map[string]interface{}{
				"route":  route,
				"userID": followerID,
			})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow"})
			logs.LogJSON("ERROR", "Error toggling follow", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": followerID,
				"extra":  fmt.Sprintf("followingID : %s", followingID),
			})
		}
		return
	}

	if notif != nil {
		notification.Publish(*notif)
	}

	c.JSON(http.StatusOK, response)
	logs.LogJSON("INFO", "Follow toggled", map[string]interface{}{
		"route":       route,
		"userID":      followerID,
		"isFollowing": response.IsFollowing,
		"extra":       fmt.Sprintf("followingID : %s", followingID),
	})
}

// GetFollowers GET /api/profiles/:username/followers
func GetFollowers(c *gin.Context) {
	listEdges(c, "following_id", "follower_id", "followers")
}

// GetFollowing GET /api/profiles/:username/following
func GetFollowing(c *gin.Context) {
	listEdges(c, "follower_id", "following_id", "following")
}

// listEdges liste les profils à l'autre bout des arêtes du profil demandé,
// du plus récent au plus ancien
func listEdges(c *gin.Context, ownColumn, otherColumn, key string) {
	route := c.FullPath()
	username := c.Param("username")

	var p profile.Profile
	if err := database.DB.Where("username = ?", username).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	var ids []string
	if err := database.DB.Model(&utils.Follower{}).
		Where(ownColumn+" = ?", p.ID).
		Order("created_at DESC").
		Pluck(otherColumn, &ids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + key})
		logs.LogJSON("ERROR", "Error retrieving follow edges", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": p.ID,
		})
		return
	}

	authors, err := profile.AuthorsByID(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + key})
		logs.LogJSON("ERROR", "Error retrieving follow profiles", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": p.ID,
		})
		return
	}

	users := make([]profile.Author, 0, len(ids))
	for _, id := range ids {
		if a, ok := authors[id]; ok {
			users = append(users, a)
		}
	}

	c.JSON(http.StatusOK, gin.H{key: users})
}
