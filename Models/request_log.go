package Models

import (
	"gorm.io/gorm"
)

// RequestLog is one handled HTTP request, persisted for the admin log browser.
type RequestLog struct {
	gorm.Model
	Method    string `json:"method"`
	Path      string `json:"path" gorm:"index"`
	Status    int    `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	IP        string `json:"ip"`
	UserName  string `json:"user_name"`
	Error     string `json:"error"`
}
