package config

import "strings"

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	Provider       string
	Timezone       string
	AllowedOrigins []string
	Window         WindowConfig
	Cache          CacheConfig
	Prefetch       PrefetchConfig
	RateLimit      RateLimitConfig
	ESPN           ESPNConfig
	Metrics        MetricsConfig
}

// WindowConfig sets the fetch window span around a target date.
type WindowConfig struct {
	DaysBefore int
	DaysAfter  int
}

// CacheConfig sets stale-while-revalidate freshness thresholds.
type CacheConfig struct {
	ScoresFreshFor    Duration
	StandingsFreshFor Duration
}

// PrefetchConfig sets the background warm cycle cadences.
type PrefetchConfig struct {
	ScoresInterval    Duration
	StandingsInterval Duration
}

// RateLimitConfig sets the sliding-window quota and retry backoff.
type RateLimitConfig struct {
	MaxRequests int
	Window      Duration
	BaseDelay   Duration
	MaxRetries  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		Provider:       envOrDefault(envProvider, defaultProvider),
		Timezone:       envOrDefault(envTimezone, defaultTimezone),
		AllowedOrigins: splitOrigins(envOrDefault(envAllowedOrigins, "*")),
		Window: WindowConfig{
			DaysBefore: intEnvOrDefault(envWindowDaysBefore, defaultWindowDaysBefore),
			DaysAfter:  intEnvOrDefault(envWindowDaysAfter, defaultWindowDaysAfter),
		},
		Cache: CacheConfig{
			ScoresFreshFor:    durationEnvOrDefault(envScoresFreshFor, defaultScoresFreshFor),
			StandingsFreshFor: durationEnvOrDefault(envStandingsFreshFor, defaultStandingsFreshFor),
		},
		Prefetch: PrefetchConfig{
			ScoresInterval:    durationEnvOrDefault(envPrefetchScores, defaultPrefetchScores),
			StandingsInterval: durationEnvOrDefault(envPrefetchStandings, defaultPrefetchStandings),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: intEnvOrDefault(envRateLimitMax, defaultRateLimitMax),
			Window:      durationEnvOrDefault(envRateLimitWindow, defaultRateLimitWindow),
			BaseDelay:   durationEnvOrDefault(envRetryBaseDelay, defaultRetryBaseDelay),
			MaxRetries:  intEnvOrDefault(envMaxRetries, defaultMaxRetries),
		},
		ESPN:    loadESPN(),
		Metrics: loadMetrics(),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
