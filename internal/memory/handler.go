package memory

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// Create calcule l'animation une seule fois et la persiste avec le souvenir
func Create(db *gorm.DB, postID, userID string) (Memory, error) {
	p, err := post.FindLive(db, postID)
	if err != nil {
		return Memory{}, err
	}

	m := Memory{
		ID:            uuid.New().String(),
		PostID:        p.ID,
		UserID:        userID,
		AnimationData: Generate(p.Content, p.Mood),
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&m).Error; err != nil {
		return Memory{}, err
	}
	return m, nil
}

// CreateMemory POST /api/posts/:id/memories
func CreateMemory(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	m, err := Create(database.DB, postID, userID)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create memory"})
		logs.LogJSON("ERROR", "Error creating memory", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": userID,
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"memory": m})
}

// GetMemoriesByUsername GET /api/profiles/:username/memories
func GetMemoriesByUsername(c *gin.Context) {
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

	var memories []Memory
	if err := database.DB.Where("user_id = ?", p.ID).Order("created_at DESC").Find(&memories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load memories"})
		logs.LogJSON("ERROR", "Error retrieving memories", map[string]interface{}{
			"error":    err.Error(),
			"route":    c.FullPath(),
			"username": username,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"memories": memories})
}
