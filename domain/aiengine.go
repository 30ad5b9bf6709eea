package domain

// Payloads exchanged with the external AI engine. The engine is a black
// box; these mirror its wire contract and nothing else.

type ComparisonOutcome struct {
	Criteria []string       `json:"criteria"`
	Analysis map[string]any `json:"analysis"`
}

type ReportOutcome struct {
	RawData        map[string]any `json:"raw_data"`
	AISummary      string         `json:"ai_summary"`
	Visualizations map[string]any `json:"visualizations"`
}
