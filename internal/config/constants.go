package config

import "time"

const (
	envPort     = "PORT"
	envProvider = "PROVIDER"
	envTimezone = "VIEWER_TIMEZONE"

	envWindowDaysBefore = "WINDOW_DAYS_BEFORE"
	envWindowDaysAfter  = "WINDOW_DAYS_AFTER"

	envScoresFreshFor    = "SCORES_FRESH_FOR"
	envStandingsFreshFor = "STANDINGS_FRESH_FOR"

	envPrefetchScores    = "PREFETCH_SCORES_INTERVAL"
	envPrefetchStandings = "PREFETCH_STANDINGS_INTERVAL"

	envRateLimitMax    = "RATE_LIMIT_MAX_REQUESTS"
	envRateLimitWindow = "RATE_LIMIT_WINDOW"
	envRetryBaseDelay  = "RETRY_BASE_DELAY"
	envMaxRetries      = "MAX_RETRIES"

	envAllowedOrigins = "ALLOWED_ORIGINS"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultProvider = "espn"
	// The extension renders game times in the viewer's local day; NBA
	// schedules publish in US/Eastern so that is the deterministic default.
	defaultTimezone = "America/New_York"

	// One window fetch serves the current date plus two days either side.
	defaultWindowDaysBefore = 2
	defaultWindowDaysAfter  = 2

	// Freshness thresholds before a read triggers a background revalidate.
	defaultScoresFreshFor    = 2 * Duration(time.Minute)
	defaultStandingsFreshFor = 10 * Duration(time.Minute)

	// Prefetch cadences, tuned to match the freshness thresholds above.
	defaultPrefetchScores    = 2 * Duration(time.Minute)
	defaultPrefetchStandings = 10 * Duration(time.Minute)

	// Conservative sliding-window quota for the upstream site API.
	defaultRateLimitMax    = 30
	defaultRateLimitWindow = Duration(time.Minute)
	defaultRetryBaseDelay  = Duration(time.Second)
	defaultMaxRetries      = 3

	defaultMetricsPort = "9090"
)
