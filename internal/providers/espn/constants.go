package espn

import "time"

// ProviderName labels this provider in logs, metrics, and game ids.
const ProviderName = "espn"

const (
	defaultBaseURL     = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	defaultHTTPTimeout = 15 * time.Second

	scoreboardLimit = 100
)
