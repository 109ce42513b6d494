package remix

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// CreateRemix POST /api/posts/:id/remixes
func CreateRemix(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	r, n, err := Create(database.DB, postID, userID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyRemix):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Remix text is required"})
		case errors.Is(err, post.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create remix"})
			logs.LogJSON("ERROR", "Error creating remix", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
				"postID": postID,
			})
		}
		return
	}

	notification.Publish(n)

	authors, _ := profile.AuthorsByID([]string{userID})
	c.JSON(http.StatusCreated, gin.H{"remix": View{Remix: r, Profiles: authors[userID]}})
}

// GetRemixes GET /api/posts/:id/remixes
func GetRemixes(c *gin.Context) {
	postID := c.Param("id")

	remixes, err := ListLive(database.DB, postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load remixes"})
		logs.LogJSON("ERROR", "Error retrieving remixes", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"postID": postID,
		})
		return
	}

	ids := make([]string, 0, len(remixes))
	for _, r := range remixes {
		ids = append(ids, r.UserID)
	}
	authors, err := profile.AuthorsByID(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load remixes"})
		return
	}

	views := make([]View, 0, len(remixes))
	for _, r := range remixes {
		views = append(views, View{Remix: r, Profiles: authors[r.UserID]})
	}
	c.JSON(http.StatusOK, gin.H{"remixes": views})
}
