package Controllers

import (
	"strconv"
	"time"

	"Himal/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LogController serves the admin log browser from the persisted request rows.
type LogController struct {
	DB *gorm.DB
}

func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db}
}

// GetLogs returns request logs with pagination and filters. Newest first.
func (ctl *LogController) GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 50
	}

	query := ctl.DB.Model(&Models.RequestLog{})
	if path := c.Query("path"); path != "" {
		query = query.Where("path LIKE ?", "%"+path+"%")
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if user := c.Query("user"); user != "" {
		query = query.Where("user_name = ?", user)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count logs"})
	}

	var logs []Models.RequestLog
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read logs"})
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return c.JSON(fiber.Map{
		"logs":        logs,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
	})
}

// GetLogStats aggregates request counts, latency and error rate per path.
func (ctl *LogController) GetLogStats(c *fiber.Ctx) error {
	type pathStat struct {
		Path       string  `json:"path"`
		Method     string  `json:"method"`
		Count      int64   `json:"count"`
		AvgLatency float64 `json:"avg_latency_ms"`
		MaxLatency int64   `json:"max_latency_ms"`
		ErrorCount int64   `json:"error_count"`
	}

	var stats []pathStat
	err := ctl.DB.Model(&Models.RequestLog{}).
		Select("path, method, COUNT(*) as count, AVG(latency_ms) as avg_latency, MAX(latency_ms) as max_latency, SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END) as error_count").
		Group("path, method").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate logs"})
	}

	var total int64
	ctl.DB.Model(&Models.RequestLog{}).Count(&total)

	return c.JSON(fiber.Map{
		"total_requests": total,
		"paths":          stats,
	})
}

// PurgeLogs deletes request logs older than the given number of days.
func (ctl *LogController) PurgeLogs(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("older_than_days", "90"))
	if err != nil || days < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid older_than_days"})
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	result := ctl.DB.Where("created_at < ?", cutoff).Delete(&Models.RequestLog{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to purge logs"})
	}
	return c.JSON(fiber.Map{"message": "Logs Purged Successfully", "deleted": result.RowsAffected})
}
