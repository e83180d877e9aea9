package dto

import "github.com/KushalZanzari/neuroq-backend/internal/domain"

// AnalyzeRequest mirrors the symptom questionnaire form.
type AnalyzeRequest struct {
	Text        string   `json:"text"`
	Symptoms    []string `json:"symptoms"`
	OverallMood *int     `json:"overall_mood"`
	SleepHours  *float64 `json:"sleep_hours"`
	StressLevel *int     `json:"stress_level"`
}

// ToAssessment converts the request into the domain assessment.
func (r AnalyzeRequest) ToAssessment() domain.Assessment {
	symptoms := r.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return domain.Assessment{
		Text:        r.Text,
		Symptoms:    symptoms,
		OverallMood: r.OverallMood,
		SleepHours:  r.SleepHours,
		StressLevel: r.StressLevel,
	}
}
