package server

import (
	"log/slog"
	"net/http"
	"strings"

	"nba-scoreboard-service/internal/config"
	"nba-scoreboard-service/internal/providers"
	"nba-scoreboard-service/internal/providers/espn"
	"nba-scoreboard-service/internal/providers/fixture"
)

// buildProvider selects the upstream data provider from configuration.
// Unknown names fall back to the fixture provider so the service always
// boots with usable data.
func buildProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "espn":
		return espn.NewClient(espn.Config{
			BaseURL:    cfg.ESPN.BaseURL,
			Timeout:    cfg.ESPN.Timeout,
			HTTPClient: &http.Client{Timeout: cfg.ESPN.Timeout},
		})
	case "fixture":
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, using fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
