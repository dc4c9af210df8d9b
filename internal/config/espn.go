package config

import "time"

const (
	envESPNBaseURL = "ESPN_BASE_URL"
	envESPNTimeout = "ESPN_HTTP_TIMEOUT"

	defaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	defaultESPNTimeout = 15 * Duration(time.Second)
)

// ConferenceGroup identifies one upstream standings group.
type ConferenceGroup struct {
	ID           string
	Name         string
	Abbreviation string
}

// ESPNConfig controls how we talk to the ESPN site API.
type ESPNConfig struct {
	BaseURL string
	Timeout Duration
	Groups  []ConferenceGroup
}

// DefaultConferenceGroups lists the league's standings groups fetched in
// parallel by the aggregator.
func DefaultConferenceGroups() []ConferenceGroup {
	return []ConferenceGroup{
		{ID: "5", Name: "Eastern Conference", Abbreviation: "East"},
		{ID: "6", Name: "Western Conference", Abbreviation: "West"},
	}
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL: envOrDefault(envESPNBaseURL, defaultESPNBaseURL),
		Timeout: durationEnvOrDefault(envESPNTimeout, defaultESPNTimeout),
		Groups:  DefaultConferenceGroups(),
	}
}
