package domain

// SeverityLevel tiers an analysis outcome.
type SeverityLevel string

const (
	SeverityMild     SeverityLevel = "mild"
	SeverityModerate SeverityLevel = "moderate"
	SeveritySevere   SeverityLevel = "severe"
)

// Assessment is the questionnaire submitted for analysis. All numeric fields
// are optional; a nil pointer means the field was not supplied.
type Assessment struct {
	Text        string   `json:"text"`
	Symptoms    []string `json:"symptoms"`
	OverallMood *int     `json:"overall_mood,omitempty"`
	SleepHours  *float64 `json:"sleep_hours,omitempty"`
	StressLevel *int     `json:"stress_level,omitempty"`
}

// AnalysisResult is the outcome of an analysis, whether produced by the
// hosted model or the heuristic scorer.
type AnalysisResult struct {
	PredictedDisorder         string        `json:"predicted_disorder"`
	ConfidenceScore           float64       `json:"confidence_score"`
	SeverityLevel             SeverityLevel `json:"severity_level"`
	Recommendations           string        `json:"recommendations"`
	NextSteps                 string        `json:"next_steps"`
	EmergencyContactSuggested bool          `json:"emergency_contact_suggested"`
}
