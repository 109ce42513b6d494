package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
	"github.com/ArthurDelaporte/Loopz-Back/internal/realtime"
	"github.com/ArthurDelaporte/Loopz-Back/internal/storage"
)

type createInput struct {
	Content   string `json:"content" form:"content"`
	Mood      string `json:"mood" form:"mood"`
	MediaType string `json:"media_type" form:"media_type"`
}

// CreatePost POST /api/posts
// Accepte du JSON (texte seul) ou un multipart avec un champ "media"
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input createInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	file, header, fileErr := c.Request.FormFile("media")
	hasMedia := fileErr == nil
	if hasMedia {
		defer file.Close()
	}

	// Validation avant upload pour ne pas stocker un média orphelin
	if _, err := New(Input{AuthorID: userID, Content: input.Content, Mood: input.Mood, MediaURL: placeholder(hasMedia), MediaKind: storage.MediaKind(input.MediaType)}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	var mediaURL, mediaKey string
	if hasMedia {
		kind := storage.MediaKind(input.MediaType)
		if err := storage.ValidateMedia(kind, header.Filename, header.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
			return
		}

		mediaKey = storage.PostMediaKey(userID, header.Filename, now())
		url, err := storage.Upload(c.Request.Context(), file, mediaKey, header.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload media"})
			logs.LogJSON("ERROR", "Media upload failed", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}
		mediaURL = url
	}

	p, err := New(Input{
		AuthorID:  userID,
		Content:   input.Content,
		Mood:      input.Mood,
		MediaURL:  mediaURL,
		MediaKind: storage.MediaKind(input.MediaType),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	if err := database.DB.Create(&p).Error; err != nil {
		// Si l'insertion échoue, on supprime le média déjà uploadé
		if mediaKey != "" {
			_ = storage.Delete(c.Request.Context(), mediaKey)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	authors, _ := profile.AuthorsByID([]string{userID})
	view := View{
		Post:      p,
		ExpiresIn: int64(p.Remaining(now()).Seconds()),
		Profiles:  authors[userID],
	}
	PublishCreated(view)

	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": p.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"post": view})
}

// PublishCreated diffuse un nouveau post sur le canal "posts"
func PublishCreated(v View) {
	columns := map[string]string{"user_id": v.UserID}
	if v.Mood != nil {
		columns["mood"] = *v.Mood
	}
	realtime.Publish(realtime.Event{Table: "posts", Record: v, Columns: columns})
}

// GetPostByID GET /api/posts/:id
func GetPostByID(c *gin.Context) {
	view, err := GetLive(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		logs.LogJSON("ERROR", "Error retrieving post", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"postID": c.Param("id"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": view})
}

// DeletePost DELETE /api/posts/:id
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var p Post
	if err := database.DB.First(&p, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	if err := database.DB.Delete(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		logs.LogJSON("ERROR", "Error deleting post", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"postID": postID,
		})
		return
	}

	RemoveMedia(c, p)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// RemoveMedia supprime le média associé ; une erreur est seulement journalisée
func RemoveMedia(c *gin.Context, p Post) {
	if p.MediaURL == nil {
		return
	}
	if err := storage.Delete(c.Request.Context(), storage.KeyFromURL(*p.MediaURL)); err != nil {
		logs.LogJSON("WARN", "Error deleting post media", map[string]interface{}{
			"error":  err.Error(),
			"postID": p.ID,
		})
	}
}

func placeholder(hasMedia bool) string {
	if hasMedia {
		return "pending"
	}
	return ""
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyPost):
		return "Post must have text or media"
	case errors.Is(err, mood.ErrInvalidMood):
		return "Invalid mood"
	case errors.Is(err, storage.ErrInvalidMediaKind):
		return "Invalid media type"
	case errors.Is(err, storage.ErrInvalidExtension):
		return "Invalid file extension"
	case errors.Is(err, storage.ErrFileTooLarge):
		return "File too large"
	default:
		return "Invalid post"
	}
}
