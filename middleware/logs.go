package middleware

import (
	"time"

	"Himal/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one structured log line per request and persists a
// RequestLog row for the admin log browser. Static asset paths are skipped.
func RequestLogger() fiber.Handler {
	skip := map[string]bool{
		"/favicon.ico": true,
	}

	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": latency.String(),
			"ip":      c.IP(),
		})

		errMsg := ""
		if err != nil {
			errMsg = err.Error()
			entry = entry.WithError(err)
		}

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}

		// Persisting the row is best effort; never fail the request over it.
		if Models.DB != nil {
			row := Models.RequestLog{
				Method:    c.Method(),
				Path:      c.Path(),
				Status:    status,
				LatencyMs: latency.Milliseconds(),
				IP:        c.IP(),
				UserName:  CurrentUserName(c),
				Error:     errMsg,
			}
			if dbErr := Models.DB.Create(&row).Error; dbErr != nil {
				logrus.WithError(dbErr).Warn("request log row not saved")
			}
		}

		return err
	}
}
