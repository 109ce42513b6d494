package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

const (
	PageSize    = 20
	ExploreSize = 50
)

// latest renvoie les n loops vivantes les plus récentes
func latest(viewerID string, n int) *gorm.DB {
	return post.Query(viewerID).
		Order("posts.created_at DESC").
		Limit(n)
}

func Chronological(viewerID string) ([]post.View, error) {
	return post.LoadViews(latest(viewerID, PageSize))
}

// ByMood renvoie les loops partageant l'humeur m
func ByMood(viewerID string, m mood.Mood) ([]post.View, error) {
	return post.LoadViews(post.Query(viewerID).
		Where("posts.mood = ?", string(m)).
		Order("posts.created_at DESC").
		Limit(PageSize))
}

func Explore(viewerID, moodFilter, query string) ([]post.View, error) {
	recent, err := post.LoadViews(latest(viewerID, ExploreSize))
	if err != nil {
		return nil, err
	}
	return FilterAndRank(recent, moodFilter, query), nil
}

// GetFeed GET /api/feed
func GetFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	posts, err := Chronological(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		logs.LogJSON("ERROR", "Error retrieving feed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": viewerID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetMoodFeed GET /api/feed/mood
func GetMoodFeed(c *gin.Context) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")

	m, err := profile.MoodOf(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		logs.LogJSON("ERROR", "Error retrieving viewer mood", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	posts, err := ByMood(viewerID, m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		logs.LogJSON("ERROR", "Error retrieving mood feed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
			"mood":   string(m),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mood": m, "posts": posts})
}

// GetExplore GET /api/explore?mood=&q=
func GetExplore(c *gin.Context) {
	viewerID := c.GetString("user_id")

	posts, err := Explore(viewerID, c.Query("mood"), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load explore"})
		logs.LogJSON("ERROR", "Error retrieving explore", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": viewerID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
