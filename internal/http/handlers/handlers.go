package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"nba-scoreboard-service/internal/app/scores"
	"nba-scoreboard-service/internal/app/standings"
	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/pipeline"
	"nba-scoreboard-service/internal/prefetch"
	"nba-scoreboard-service/internal/ratelimit"
	"nba-scoreboard-service/internal/timeutil"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the app services.
type Handler struct {
	scores    *scores.Service
	standings *standings.Service
	monitor   *ratelimit.Monitor
	logger    *slog.Logger
	now       nowFunc
	statusFn  func() prefetch.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(scoresSvc *scores.Service, standingsSvc *standings.Service, monitor *ratelimit.Monitor, logger *slog.Logger, statusFn func() prefetch.Status) *Handler {
	return &Handler{
		scores:    scoresSvc,
		standings: standingsSvc,
		monitor:   monitor,
		logger:    logger,
		now:       time.Now,
		statusFn:  statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on prefetch cycle health.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.Scores.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Scores returns normalized games for the requested local calendar day.
// An absent date means today in the viewer's timezone.
func (h *Handler) Scores(w nethttp.ResponseWriter, r *nethttp.Request) {
	date, ok := h.resolveDate(w, r)
	if !ok {
		return
	}
	favorite := r.URL.Query().Get("favorite")

	list, err := h.scores.GamesForDateSorted(r.Context(), date, favorite)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}
	h.writeDay(w, date, list)
}

// RefreshScores invalidates exactly the window covering the requested date
// and refetches it.
func (h *Handler) RefreshScores(w nethttp.ResponseWriter, r *nethttp.Request) {
	date, ok := h.resolveDate(w, r)
	if !ok {
		return
	}

	list, err := h.scores.Refresh(r.Context(), date)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}
	h.writeDay(w, date, list)
}

// Standings returns ranked conference standings.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	result, err := h.standings.Standings(r.Context())
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, h.logger)
}

// RefreshStandings invalidates and recomputes the standings.
func (h *Handler) RefreshStandings(w nethttp.ResponseWriter, r *nethttp.Request) {
	result, err := h.standings.Refresh(r.Context())
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, h.logger)
}

// RateLimitStatus reports the sliding window state for the UI indicator.
func (h *Handler) RateLimitStatus(w nethttp.ResponseWriter, r *nethttp.Request) {
	_ = r
	writeJSON(w, nethttp.StatusOK, h.monitor.Status(), h.logger)
}

// Summary passes a box-score summary payload through.
func (h *Handler) Summary(w nethttp.ResponseWriter, r *nethttp.Request) {
	eventID := r.URL.Query().Get("event")
	if eventID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "missing event id", h.logger)
		return
	}

	raw, err := h.scores.GameSummary(r.Context(), eventID)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}
	writeRaw(w, nethttp.StatusOK, raw, h.logger)
}

func (h *Handler) resolveDate(w nethttp.ResponseWriter, r *nethttp.Request) (time.Time, bool) {
	dateParam := r.URL.Query().Get("date")
	loc := h.scores.Windows().Loc
	if dateParam == "" {
		return h.now().In(loc), true
	}
	parsed, err := time.ParseInLocation(timeutil.DateLayout, dateParam, loc)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return time.Time{}, false
	}
	return parsed, true
}

func (h *Handler) writeDay(w nethttp.ResponseWriter, date time.Time, list []games.Game) {
	loc := h.scores.Windows().Loc
	payload := games.NewDayResponse(timeutil.FormatDate(date.In(loc)), list)
	writeJSON(w, nethttp.StatusOK, payload, h.logger)
}

// writeFetchError maps the pipeline error taxonomy onto HTTP statuses so the
// UI can distinguish rate limiting from plain upstream failure.
func (h *Handler) writeFetchError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	if _, ok := pipeline.AsRateLimitError(err); ok {
		writeError(w, r, nethttp.StatusTooManyRequests, "upstream rate limited", h.logger)
		return
	}
	if _, ok := pipeline.AsValidationError(err); ok {
		writeError(w, r, nethttp.StatusBadGateway, "upstream returned unusable data", h.logger)
		return
	}
	writeError(w, r, nethttp.StatusBadGateway, "upstream fetch failed", h.logger)
}
