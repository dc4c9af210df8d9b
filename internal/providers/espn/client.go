package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nba-scoreboard-service/internal/domain/games"
	"nba-scoreboard-service/internal/domain/standings"
	"nba-scoreboard-service/internal/pipeline"
)

// Config controls how the espn client reaches the upstream site API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches scoreboard, standings, and summary payloads from the ESPN
// site API and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs an espn client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchScoreboard retrieves all events in the inclusive date range and maps
// them to games. Events the mapper cannot shape are dropped, not fatal.
func (c *Client) FetchScoreboard(ctx context.Context, dateRange string) ([]games.Game, error) {
	q := map[string]string{
		"dates": dateRange,
		"limit": strconv.Itoa(scoreboardLimit),
	}

	var payload scoreboardResponse
	if err := c.getJSON(ctx, "/scoreboard", q, &payload); err != nil {
		return nil, err
	}

	return mapScoreboard(payload), nil
}

// FetchConferenceStandings retrieves one conference's unranked entries.
func (c *Client) FetchConferenceStandings(ctx context.Context, groupID string) ([]standings.Entry, error) {
	q := map[string]string{
		"group": groupID,
		"level": "2",
	}

	var payload standingsGroupResponse
	if err := c.getJSON(ctx, "/standings", q, &payload); err != nil {
		return nil, err
	}

	entries := collectStandingsEntries(payload, groupID)
	if entries == nil {
		return nil, &pipeline.ValidationError{
			Label:  ProviderName + "-standings",
			Reason: "no standings entries for group " + groupID,
		}
	}
	return entries, nil
}

// FetchGameSummary retrieves a box-score summary and passes it through after
// checking that the payload is a JSON object at all.
func (c *Client) FetchGameSummary(ctx context.Context, eventID string) (json.RawMessage, error) {
	q := map[string]string{"event": eventID}

	var raw json.RawMessage
	if err := c.getJSON(ctx, "/summary", q, &raw); err != nil {
		return nil, err
	}
	if !looksLikeObject(raw) {
		return nil, &pipeline.ValidationError{
			Label:  ProviderName + "-summary",
			Reason: "summary payload is not a JSON object",
		}
	}
	return raw, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return &pipeline.RateLimitError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &pipeline.RequestError{
			Label:      ProviderName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &pipeline.ValidationError{
			Label:  ProviderName,
			Reason: "malformed JSON response",
			Err:    err,
		}
	}
	return nil
}

// collectStandingsEntries finds entries either at the top level or nested one
// level down in children, since the upstream moves them depending on the
// group parameter.
func collectStandingsEntries(payload standingsGroupResponse, groupID string) []standings.Entry {
	if len(payload.Standings.Entries) > 0 {
		return mapStandingsEntries(payload.Standings.Entries)
	}
	for _, child := range payload.Children {
		if child.ID == groupID && len(child.Standings.Entries) > 0 {
			return mapStandingsEntries(child.Standings.Entries)
		}
	}
	for _, child := range payload.Children {
		if len(child.Standings.Entries) > 0 {
			return mapStandingsEntries(child.Standings.Entries)
		}
	}
	return nil
}

func looksLikeObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
