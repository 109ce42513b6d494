package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

// CreateReport POST /api/reports
func CreateReport(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report data"})
		logs.LogJSON("WARN", "Invalid report data", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	r, err := File(database.DB, userID, input)
	switch {
	case errors.Is(err, ErrInvalidTarget), errors.Is(err, ErrInvalidReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reported item not found"})
		return
	case errors.Is(err, ErrAlreadyFiled):
		c.JSON(http.StatusConflict, gin.H{"error": "You already reported this item"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		logs.LogJSON("ERROR", "Error creating report", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": r})
	logs.LogJSON("INFO", "Report created", map[string]interface{}{
		"reportID":   r.ID,
		"targetType": r.TargetType,
		"targetID":   r.TargetID,
		"route":      route,
		"userID":     userID,
	})
}

// GetReports GET /api/admin/reports
func GetReports(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.DB.Model(&Report{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if targetType := c.Query("target_type"); targetType != "" {
		query = query.Where("target_type = ?", targetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		logs.LogJSON("ERROR", "Error counting reports", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	reports := []Report{}
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		logs.LogJSON("ERROR", "Error fetching reports", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// UpdateReport PATCH /api/admin/reports/:id
func UpdateReport(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	reportID := c.Param("id")

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report update"})
		return
	}

	r, err := Review(database.DB, reportID, userID, input)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		logs.LogJSON("ERROR", "Error updating report", map[string]interface{}{
			"error":    err.Error(),
			"reportID": reportID,
			"route":    route,
			"userID":   userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": r})
	logs.LogJSON("INFO", "Report reviewed", map[string]interface{}{
		"reportID": reportID,
		"status":   r.Status,
		"route":    route,
		"userID":   userID,
	})
}

// GetReportStats GET /api/admin/reports/stats
func GetReportStats(c *gin.Context) {
	type bucket struct {
		Key   string `json:"key"`
		Count int64  `json:"count"`
	}

	stats := gin.H{}
	for _, column := range []string{"status", "target_type", "reason"} {
		rows := []bucket{}
		if err := database.DB.Model(&Report{}).
			Select(column + " AS key, COUNT(*) AS count").
			Group(column).
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report stats"})
			logs.LogJSON("ERROR", "Error computing report stats", map[string]interface{}{
				"error":  err.Error(),
				"column": column,
				"route":  c.FullPath(),
				"userID": c.GetString("user_id"),
			})
			return
		}
		stats["by_"+column] = rows
	}

	c.JSON(http.StatusOK, stats)
}
