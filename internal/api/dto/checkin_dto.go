package dto

import "github.com/KushalZanzari/neuroq-backend/internal/domain"

// CheckInRequest is a full questionnaire submission.
type CheckInRequest struct {
	Thoughts    string   `json:"thoughts"`
	Symptoms    []string `json:"symptoms"`
	Mood        int      `json:"mood"`
	SleepHours  float64  `json:"sleep_hours"`
	StressLevel int      `json:"stress_level"`
}

// ToAssessment converts the submission into the domain assessment.
func (r CheckInRequest) ToAssessment() domain.Assessment {
	symptoms := r.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	mood := r.Mood
	sleep := r.SleepHours
	stress := r.StressLevel
	return domain.Assessment{
		Text:        r.Thoughts,
		Symptoms:    symptoms,
		OverallMood: &mood,
		SleepHours:  &sleep,
		StressLevel: &stress,
	}
}

// SavePredictionRequest stores an already-computed prediction.
type SavePredictionRequest struct {
	PredictedDisorder string  `json:"predicted_disorder"`
	ConfidenceScore   float64 `json:"confidence_score"`
	SeverityLevel     string  `json:"severity_level"`
	Recommendations   string  `json:"recommendations"`
	NextSteps         string  `json:"next_steps"`
}

// ToResult converts the request into the domain result.
func (r SavePredictionRequest) ToResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		PredictedDisorder: r.PredictedDisorder,
		ConfidenceScore:   r.ConfidenceScore,
		SeverityLevel:     domain.SeverityLevel(r.SeverityLevel),
		Recommendations:   r.Recommendations,
		NextSteps:         r.NextSteps,
	}
}
