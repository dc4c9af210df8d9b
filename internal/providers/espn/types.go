package espn

// Response shapes for the pieces of the site API we consume. Decoding is
// deliberately best-effort: unknown fields are ignored and optional fields
// degrade to zero values rather than failing the payload.

type scoreboardResponse struct {
	Events []eventResponse `json:"events"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Status       statusResponse        `json:"status"`
	Competitions []competitionResponse `json:"competitions"`
}

type competitionResponse struct {
	ID          string               `json:"id"`
	Competitors []competitorResponse `json:"competitors"`
	Venue       venueResponse        `json:"venue"`
}

type competitorResponse struct {
	HomeAway string           `json:"homeAway"`
	Score    string           `json:"score"`
	Team     teamResponse     `json:"team"`
	Records  []recordResponse `json:"records"`
}

type teamResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Abbreviation   string `json:"abbreviation"`
	Logo           string `json:"logo"`
	Color          string `json:"color"`
	AlternateColor string `json:"alternateColor"`
}

type recordResponse struct {
	Summary string `json:"summary"`
}

type statusResponse struct {
	Period       int                `json:"period"`
	DisplayClock string             `json:"displayClock"`
	Type         statusTypeResponse `json:"type"`
}

type statusTypeResponse struct {
	Name string `json:"name"`
}

type venueResponse struct {
	FullName string `json:"fullName"`
}

type standingsGroupResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Standings standingsListResponse    `json:"standings"`
	Children  []standingsGroupResponse `json:"children"`
}

type standingsListResponse struct {
	Entries []standingsEntryResponse `json:"entries"`
}

type standingsEntryResponse struct {
	Team  standingsTeamResponse `json:"team"`
	Stats []statResponse        `json:"stats"`
}

type standingsTeamResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	DisplayName    string         `json:"displayName"`
	Abbreviation   string         `json:"abbreviation"`
	Color          string         `json:"color"`
	AlternateColor string         `json:"alternateColor"`
	Logos          []logoResponse `json:"logos"`
}

type logoResponse struct {
	Href string `json:"href"`
}

type statResponse struct {
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}
