package service

import (
	"fmt"

	"github.com/jengzang/gpx-records/internal/config"
	"github.com/jengzang/gpx-records/internal/gpx"
	"github.com/jengzang/gpx-records/internal/timezone"
)

// LoadOptions translates configuration into GPX load options
func LoadOptions(cfg config.GPXConfig) ([]gpx.Option, error) {
	opts := []gpx.Option{gpx.WithMaxFileSize(cfg.MaxFileSize)}
	if cfg.LocalTime {
		tz, err := timezone.NewService()
		if err != nil {
			return nil, fmt.Errorf("failed to enable local time: %w", err)
		}
		opts = append(opts, gpx.WithZoneResolver(tz))
	}
	return opts, nil
}
