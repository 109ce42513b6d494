package caption

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

var defaultClient *Client

func Init(url, apiKey, model, prompt string) {
	defaultClient = NewClient(url, apiKey, model, prompt)
}

// GenerateCaption POST /api/ai/generate-caption
func GenerateCaption(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input struct {
		Image string `json:"image" binding:"required"`
		Mood  string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate caption"})
		logs.LogJSON("WARN", "Invalid caption request", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	if defaultClient == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate caption"})
		logs.LogJSON("ERROR", "Caption client not initialised", map[string]interface{}{
			"route":  route,
			"userID": userID,
		})
		return
	}

	text, err := defaultClient.Generate(c.Request.Context(), input.Image, input.Mood)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate caption"})
		logs.LogJSON("ERROR", "Caption generation failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"caption": text})
}
