package apimodels

type AnalysisResponse struct {
	// Whether the analysis completed
	Success bool `json:"success"`

	// The structured competitive analysis, present on success
	Data *CompetitiveAnalysis `json:"data,omitempty"`

	// Canonical markdown rendering of the analysis, present on success
	Markdown string `json:"markdown,omitempty"`

	// Short, user-safe error message, present on failure
	Error string `json:"error,omitempty"`

	// Metadata about the analysis
	Metadata *AnalysisMetadata `json:"metadata,omitempty"`
}

// CompetitiveAnalysis is the five-field structured record extracted from
// model output. All fields are populated after validation.
type CompetitiveAnalysis struct {
	Overview        string   `json:"overview"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	MarketPosition  string   `json:"marketPosition"`
	Recommendations []string `json:"recommendations"`
}

type AnalysisMetadata struct {
	// Time taken for analysis
	Duration string `json:"duration"`

	// Model used for analysis
	Model string `json:"model"`

	// Tokens used in analysis
	TokensUsed int64 `json:"tokensUsed"`
}
