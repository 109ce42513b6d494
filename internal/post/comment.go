package post

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

var ErrEmptyComment = errors.New("comment text is required")

// AddComment insère le commentaire et, si le post appartient à quelqu'un
// d'autre, la notification "comment" dans la même transaction
func AddComment(db *gorm.DB, postID, userID, text string) (Comment, *notification.Notification, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, nil, ErrEmptyComment
	}

	comment := Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   text,
		CreatedAt: now(),
	}

	var notif *notification.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		authorID, err := AuthorOf(tx, postID)
		if err != nil {
			return err
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if authorID != userID {
			n := notification.New(notification.TypeComment, authorID, userID, &postID)
			if err := notification.Insert(tx, &n); err != nil {
				return err
			}
			notif = &n
		}
		return nil
	})
	if err != nil {
		return Comment{}, nil, err
	}
	return comment, notif, nil
}

// CreateComment POST /api/posts/:id/comments
func CreateComment(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comment, notif, err := AddComment(database.DB, postID, userID, input.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
			logs.LogJSON("ERROR", "Error creating comment", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
				"postID": postID,
			})
		}
		return
	}

	if notif != nil {
		notification.Publish(*notif)
	}

	authors, _ := profile.AuthorsByID([]string{userID})
	c.JSON(http.StatusCreated, gin.H{"comment": CommentView{Comment: comment, Profiles: authors[userID]}})
}

// GetComments GET /api/posts/:id/comments
func GetComments(c *gin.Context) {
	postID := c.Param("id")

	if _, err := AuthorOf(database.DB, postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	var comments []Comment
	if err := database.DB.Where("post_id = ?", postID).Order("created_at DESC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		logs.LogJSON("ERROR", "Error retrieving comments", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"postID": postID,
		})
		return
	}

	ids := make([]string, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.UserID)
	}
	authors, err := profile.AuthorsByID(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, CommentView{Comment: cm, Profiles: authors[cm.UserID]})
	}
	c.JSON(http.StatusOK, gin.H{"comments": views})
}

// DeleteComment DELETE /api/comments/:id
func DeleteComment(c *gin.Context) {
	commentID := c.Param("id")
	userID := c.GetString("user_id")

	result := database.DB.Where("id = ? AND user_id = ?", commentID, userID).Delete(&Comment{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
