package realtime

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

const heartbeatInterval = 25 * time.Second

// stream pousse les événements d'un abonnement en Server-Sent Events
func stream(c *gin.Context, sub *Subscription) {
	defer sub.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case e, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(e.Type, e)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"time": time.Now().Unix()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	logs.LogJSON("DEBUG", "Realtime stream closed", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
		"table":  sub.table,
	})
}

// StreamPosts GET /api/realtime/posts?mood=
func StreamPosts(c *gin.Context) {
	var filter Filter
	if m := c.Query("mood"); m != "" {
		filter = Eq("mood", m)
	}
	stream(c, Default.Subscribe("posts", filter))
}

// StreamNotifications GET /api/realtime/notifications
func StreamNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	stream(c, Default.Subscribe("notifications", Eq("user_id", userID)))
}

// StreamMessages GET /api/realtime/messages/:partnerId
func StreamMessages(c *gin.Context) {
	userID := c.GetString("user_id")
	partnerID := c.Param("partnerId")

	filter := Filter{
		{"sender_id": userID, "recipient_id": partnerID},
		{"sender_id": partnerID, "recipient_id": userID},
	}
	stream(c, Default.Subscribe("messages", filter))
}
