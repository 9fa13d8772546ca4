package dto

// AnalyzeRequest is the body of POST /analyze-resume.
type AnalyzeRequest struct {
	ResumeText string `json:"resumeText"`
	Prompt     string `json:"prompt"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   *int64 `json:"fileSize"`
}

// MatchRequest is the body of POST /match-resume.
type MatchRequest struct {
	AnalyzeRequest
	JobDescription string `json:"jobDescription"`
}

type AnalyzerResult struct {
	OverallScore       float64        `json:"overallScore"`
	Summary            string         `json:"summary,omitempty"`
	Strengths          []string       `json:"strengths,omitempty"`
	Improvements       []string       `json:"improvements,omitempty"`
	ActionItems        []string       `json:"actionItems,omitempty"`
	ProTips            []string       `json:"proTips,omitempty"`
	Keywords           []string       `json:"keywords,omitempty"`
	PerformanceMetrics map[string]any `json:"performanceMetrics,omitempty"`
}

type MatcherResult struct {
	MatchPercentage      float64        `json:"matchPercentage"`
	MatchLevel           string         `json:"matchLevel,omitempty"`
	ExecutiveSummary     string         `json:"executiveSummary,omitempty"`
	OverallAssessment    string         `json:"overallAssessment,omitempty"`
	MatchingSkills       []string       `json:"matchingSkills,omitempty"`
	MissingSkills        []string       `json:"missingSkills,omitempty"`
	StrengthsForThisJob  []string       `json:"strengthsForThisJob,omitempty"`
	WeaknessesForThisJob []string       `json:"weaknessesForThisJob,omitempty"`
	Recommendations      []string       `json:"recommendations,omitempty"`
	DetailedBreakdown    map[string]any `json:"detailedBreakdown,omitempty"`
}

type HealthDTO struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Database string `json:"database"`
	Message  string `json:"message"`
}

type ExtractedTextDTO struct {
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	Text       string `json:"text"`
	TextLength int    `json:"textLength"`
}
