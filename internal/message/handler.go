package message

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// GetConversations GET /api/messages
func GetConversations(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	messages, err := Recent(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		logs.LogJSON("ERROR", "Error retrieving messages", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	latest := Dedup(messages, userID)

	partnerIDs := make([]string, 0, len(latest))
	for _, m := range latest {
		partnerIDs = append(partnerIDs, PartnerOf(m, userID))
	}
	partners, err := profile.AuthorsByID(partnerIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		logs.LogJSON("ERROR", "Error retrieving conversation partners", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	unread, err := UnreadBySender(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		logs.LogJSON("ERROR", "Error counting unread messages", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	response := make([]ConversationResponse, 0, len(latest))
	for _, m := range latest {
		partnerID := PartnerOf(m, userID)
		response = append(response, ConversationResponse{
			ConversationKey: m.ConversationKey,
			Partner:         partners[partnerID],
			LastMessage:     m,
			UnreadCount:     unread[partnerID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": response})
}

// GetConversation GET /api/messages/:partnerId
func GetConversation(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	partnerID := c.Param("partnerId")

	messages, err := History(database.DB, userID, partnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		logs.LogJSON("ERROR", "Error retrieving conversation", map[string]interface{}{
			"error":     err.Error(),
			"route":     route,
			"userID":    userID,
			"partnerID": partnerID,
		})
		return
	}

	// Lecture best-effort : un échec n'empêche pas de renvoyer l'historique
	if _, err := MarkRead(database.DB, userID, partnerID); err != nil {
		logs.LogJSON("WARN", "Error marking messages as read", map[string]interface{}{
			"error":     err.Error(),
			"route":     route,
			"userID":    userID,
			"partnerID": partnerID,
		})
	}

	partners, _ := profile.AuthorsByID([]string{partnerID})

	c.JSON(http.StatusOK, gin.H{
		"partner":  partners[partnerID],
		"messages": messages,
	})
}

// SendMessage POST /api/messages
func SendMessage(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg, n, err := Send(database.DB, userID, input.RecipientID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		case errors.Is(err, ErrSelfMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot message yourself"})
		case errors.Is(err, ErrRecipientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			logs.LogJSON("ERROR", "Error sending message", map[string]interface{}{
				"error":       err.Error(),
				"route":       route,
				"userID":      userID,
				"recipientID": input.RecipientID,
			})
		}
		return
	}

	Publish(msg)
	notification.Publish(n)

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
