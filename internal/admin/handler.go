package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/memory"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
)

const recentPostsLimit = 10

const dateLayout = "2006-01-02"

// parseRange lit start_date / end_date (YYYY-MM-DD), 30 derniers jours par défaut.
// La fin renvoyée est exclusive : end_date couvre toute sa journée.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	startDate := now.AddDate(0, 0, -30)
	endDate := now

	if s := c.Query("start_date"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return startDate, endDate, err
		}
		startDate = d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return startDate, endDate, err
		}
		endDate = d.AddDate(0, 0, 1)
	}
	return startDate, endDate, nil
}

// lastDay formate la fin exclusive comme le dernier jour couvert
func lastDay(end time.Time) string {
	return end.Add(-time.Nanosecond).Format(dateLayout)
}

// GetDashboardStats GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	startDate, endDate, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	var totalUsers, totalPosts, livePosts, totalLikes, totalMessages, totalMemories, totalRemixes int64
	var newUsers, newPosts int64

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{database.DB.Table("profiles"), &totalUsers},
		{database.DB.Table("posts"), &totalPosts},
		{database.DB.Table("posts").Where("expires_at > ?", time.Now()), &livePosts},
		{database.DB.Table("likes"), &totalLikes},
		{database.DB.Table("messages"), &totalMessages},
		{database.DB.Table("memories"), &totalMemories},
		{database.DB.Table("remixes"), &totalRemixes},
		{database.DB.Table("profiles").Where("created_at >= ? AND created_at < ?", startDate, endDate), &newUsers},
		{database.DB.Table("posts").Where("created_at >= ? AND created_at < ?", startDate, endDate), &newPosts},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			logs.LogJSON("ERROR", "Error computing admin stats", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}
	}

	stats := gin.H{
		"total_users":    totalUsers,
		"total_posts":    totalPosts,
		"live_posts":     livePosts,
		"total_likes":    totalLikes,
		"total_messages": totalMessages,
		"total_memories": totalMemories,
		"total_remixes":  totalRemixes,
		"new_users":      newUsers,
		"new_posts":      newPosts,
		"date_range": gin.H{
			"start": startDate.Format(dateLayout),
			"end":   lastDay(endDate),
		},
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
	logs.LogJSON("INFO", "Admin stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// GetChartData GET /api/admin/charts/:type
func GetChartData(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	chartType := c.Param("type")

	startDate, endDate, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	switch chartType {
	case "evolution":
		c.JSON(http.StatusOK, gin.H{"data": getEvolutionData(startDate, endDate)})
	case "moods":
		c.JSON(http.StatusOK, gin.H{"data": getMoodDistribution(startDate, endDate)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported chart type"})
		return
	}

	logs.LogJSON("INFO", "Chart data retrieved successfully", map[string]interface{}{
		"route":     route,
		"userID":    userID,
		"chartType": chartType,
		"startDate": startDate.Format(dateLayout),
		"endDate":   lastDay(endDate),
	})
}

func getEvolutionData(startDate, endDate time.Time) []gin.H {
	var results []gin.H

	// Données jour par jour
	for d := startDate; d.Before(endDate); d = d.AddDate(0, 0, 1) {
		dayStart := d
		dayEnd := d.AddDate(0, 0, 1)

		var usersCount, postsCount, likesCount, messagesCount int64
		database.DB.Table("profiles").Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&usersCount)
		database.DB.Table("posts").Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&postsCount)
		database.DB.Table("likes").Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&likesCount)
		database.DB.Table("messages").Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&messagesCount)

		results = append(results, gin.H{
			"date":     d.Format(dateLayout),
			"users":    usersCount,
			"posts":    postsCount,
			"likes":    likesCount,
			"messages": messagesCount,
		})
	}

	return results
}

// getMoodDistribution répartit les posts de la période par humeur
func getMoodDistribution(startDate, endDate time.Time) []gin.H {
	var rows []struct {
		Mood  string
		Total int64
	}
	database.DB.Table("posts").
		Select("COALESCE(mood, ?) AS mood, COUNT(*) AS total", string(mood.Default)).
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Group("1").
		Scan(&rows)

	totals := make(map[string]int64, len(rows))
	for _, r := range rows {
		totals[r.Mood] = r.Total
	}

	results := make([]gin.H, 0, len(mood.All))
	for _, m := range mood.All {
		results = append(results, gin.H{
			"name":  string(m),
			"value": totals[string(m)],
			"color": memory.ColorFor(string(m)),
		})
	}
	return results
}

// GetRecentPosts GET /api/admin/posts
func GetRecentPosts(c *gin.Context) {
	posts, err := post.LoadViews(post.Query("").
		Order("posts.created_at DESC").
		Limit(recentPostsLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		logs.LogJSON("ERROR", "Error retrieving recent posts", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DeletePost DELETE /api/admin/posts/:id
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var p post.Post
	if err := database.DB.First(&p, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := database.DB.Delete(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		logs.LogJSON("ERROR", "Admin post deletion failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	post.RemoveMedia(c, p)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
	logs.LogJSON("INFO", "Post deleted by admin", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}

// GetTopUsers GET /api/admin/top-users
func GetTopUsers(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	// Top utilisateurs par nombre de posts
	var topByPosts []struct {
		UserID    string `json:"user_id"`
		Username  string `json:"username"`
		PostCount int64  `json:"post_count"`
	}
	if err := database.DB.Table("posts").
		Select("posts.user_id, profiles.username, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN profiles ON posts.user_id = profiles.id").
		Group("posts.user_id, profiles.username").
		Order("post_count DESC").
		Limit(limit).
		Scan(&topByPosts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load top users"})
		logs.LogJSON("ERROR", "Error retrieving top users by posts", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	// Top utilisateurs par nombre de likes reçus
	var topByLikes []struct {
		UserID     string `json:"user_id"`
		Username   string `json:"username"`
		LikesCount int64  `json:"likes_count"`
	}
	if err := database.DB.Table("likes").
		Select("posts.user_id, profiles.username, COUNT(likes.id) AS likes_count").
		Joins("JOIN posts ON likes.post_id = posts.id").
		Joins("LEFT JOIN profiles ON posts.user_id = profiles.id").
		Group("posts.user_id, profiles.username").
		Order("likes_count DESC").
		Limit(limit).
		Scan(&topByLikes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load top users"})
		logs.LogJSON("ERROR", "Error retrieving top users by likes", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_by_posts": topByPosts,
		"top_by_likes": topByLikes,
	})

	logs.LogJSON("INFO", "Top users retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"limit":  limit,
	})
}
