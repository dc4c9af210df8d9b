package teams

// Record is a team's win-loss record when the upstream reports one.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Team is the canonical team shape exposed by the service.
// Identity is by ID; a Team is immutable per fetch.
type Team struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DisplayName    string  `json:"displayName"`
	Abbreviation   string  `json:"abbreviation"`
	Logo           string  `json:"logo,omitempty"`
	Color          string  `json:"color,omitempty"`
	AlternateColor string  `json:"alternateColor,omitempty"`
	Record         *Record `json:"record,omitempty"`
}
