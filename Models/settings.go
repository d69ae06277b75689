package Models

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Settings are the configurable business rates. Zero-valued per-document rates
// fall back to these; the file may override any of them.
type Settings struct {
	DropOffRate   float64 `json:"drop_off_rate"`
	DetentionRate float64 `json:"detention_rate"`
	VATRate       float64 `json:"vat_rate"`
	TDSRate       float64 `json:"tds_rate"`
	BonusMinDays  int     `json:"bonus_min_days"`
	FreeDropOffs  int     `json:"free_drop_offs"`
}

func defaultSettings() Settings {
	return Settings{
		DropOffRate:   800,
		DetentionRate: 3000,
		VATRate:       0.13,
		TDSRate:       0.015,
		BonusMinDays:  26,
		FreeDropOffs:  3,
	}
}

var (
	settings     Settings
	settingsOnce sync.Once
)

// GetSettings loads settings.json5 (path overridable via SETTINGS_PATH) on
// first use. A missing or unreadable file means hard defaults.
func GetSettings() Settings {
	settingsOnce.Do(func() {
		settings = defaultSettings()

		path := os.Getenv("SETTINGS_PATH")
		if path == "" {
			path = "settings.json5"
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			logrus.WithField("path", path).Info("no settings file, using defaults")
			return
		}
		if err := json5.Unmarshal(raw, &settings); err != nil {
			logrus.WithError(err).Warn("settings file unreadable, using defaults")
			settings = defaultSettings()
			return
		}

		// Partial files keep defaults for anything left at zero.
		defaults := defaultSettings()
		if settings.DropOffRate == 0 {
			settings.DropOffRate = defaults.DropOffRate
		}
		if settings.DetentionRate == 0 {
			settings.DetentionRate = defaults.DetentionRate
		}
		if settings.VATRate == 0 {
			settings.VATRate = defaults.VATRate
		}
		if settings.TDSRate == 0 {
			settings.TDSRate = defaults.TDSRate
		}
		if settings.BonusMinDays == 0 {
			settings.BonusMinDays = defaults.BonusMinDays
		}
		if settings.FreeDropOffs == 0 {
			settings.FreeDropOffs = defaults.FreeDropOffs
		}
	})
	return settings
}
