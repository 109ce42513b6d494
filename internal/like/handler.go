package like

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
)

// Toggle inverse l'état du like de userID sur postID. La création d'un like
// sur le post d'un autre insère la notification dans la même transaction ;
// retirer un like ne supprime jamais la notification.
func Toggle(db *gorm.DB, postID, userID string) (State, *notification.Notification, error) {
	var response State
	var notif *notification.Notification

	err := db.Transaction(func(tx *gorm.DB) error {
		authorID, err := post.AuthorOf(tx, postID)
		if err != nil {
			return err
		}

		var existing Like
		err = tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			response.IsLiked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			l := newLike(postID, userID, time.Now())
			// Un like concurrent du même utilisateur a pu passer entre la lecture
			// et l'insertion : l'état voulu est déjà atteint, sans nouvelle notification
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(&l)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 && authorID != userID {
				n := notification.New(notification.TypeLike, authorID, userID, &postID)
				if err := notification.Insert(tx, &n); err != nil {
					return err
				}
				notif = &n
			}
			response.IsLiked = true
		default:
			return err
		}

		response.PostID = postID
		return tx.Model(&Like{}).Where("post_id = ?", postID).Count(&response.LikeCount).Error
	})
	if err != nil {
		return State{}, nil, err
	}
	return response, notif, nil
}

// ToggleLike POST /api/posts/:id/like
func ToggleLike(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	response, notif, err := Toggle(database.DB, postID, userID)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			logs.LogJSON("WARN", "Post not found", map[string]interface{}{
				"route":  route,
				"userID": userID,
				"postID": postID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		logs.LogJSON("ERROR", "Error toggling like", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if notif != nil {
		notification.Publish(*notif)
	}

	c.JSON(http.StatusOK, response)
}
