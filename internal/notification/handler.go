package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// GetNotifications GET /api/notifications
func GetNotifications(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var notifications []Notification
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		logs.LogJSON("ERROR", "Error retrieving notifications", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.RelatedUserID)
	}
	authors, err := profile.AuthorsByID(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		logs.LogJSON("ERROR", "Error retrieving notification authors", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	response := make([]View, 0, len(notifications))
	for _, n := range notifications {
		author := authors[n.RelatedUserID]
		response = append(response, View{
			Notification: n,
			Profiles:     author,
			Text:         Text(n.Type, author.Username),
		})
	}

	c.JSON(http.StatusOK, gin.H{"notifications": response})
}

// GetUnreadCount GET /api/notifications/unread-count
func GetUnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	var count int64
	if err := database.DB.Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		logs.LogJSON("ERROR", "Error counting unread notifications", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkAsRead PATCH /api/notifications/:id/read
// Idempotent : read_at n'est posé qu'une fois.
func MarkAsRead(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	result := database.DB.Model(&Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", now())
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		logs.LogJSON("ERROR", "Error marking notification as read", map[string]interface{}{
			"error":          result.Error.Error(),
			"route":          route,
			"userID":         userID,
			"notificationID": notificationID,
		})
		return
	}

	if result.RowsAffected == 0 {
		var count int64
		database.DB.Model(&Notification{}).Where("id = ? AND user_id = ?", notificationID, userID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead PATCH /api/notifications/read-all
func MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	result := database.DB.Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now())
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		logs.LogJSON("ERROR", "Error marking all notifications as read", map[string]interface{}{
			"error":  result.Error.Error(),
			"route":  c.FullPath(),
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
}

// DeleteNotification DELETE /api/notifications/:id
// Suppression définitive, sans annulation possible.
func DeleteNotification(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	result := database.DB.
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&Notification{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		logs.LogJSON("ERROR", "Error deleting notification", map[string]interface{}{
			"error":          result.Error.Error(),
			"route":          route,
			"userID":         userID,
			"notificationID": notificationID,
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
