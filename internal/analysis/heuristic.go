// Package analysis holds the deterministic fallback scorer used whenever the
// hosted model is unavailable or returns garbage. It is pure and total: no
// network, no randomness, and every input combination produces a result.
package analysis

import (
	"math"
	"strings"

	"github.com/KushalZanzari/neuroq-backend/internal/domain"
)

const (
	recommendationsText = "Try relaxation techniques (deep breathing, short mindful breaks), improve sleep hygiene, " +
		"and consider speaking with a mental health professional if symptoms persist."
	nextStepsText = "1. Practice relaxation  2. Keep sleep schedule  3. Track symptoms for a week  4. Consider professional help"
)

// HeuristicScorer converts a questionnaire into an analysis result.
type HeuristicScorer struct{}

// NewHeuristicScorer returns the scorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score produces the fallback analysis for an assessment.
//
// A zero stress level or mood is treated the same as an absent one in the
// label rules; only a present, non-zero value triggers them.
func (s *HeuristicScorer) Score(a domain.Assessment) domain.AnalysisResult {
	score := math.Min(float64(len(a.Symptoms))*0.12, 0.6)
	if stressSet(a.StressLevel) {
		score += float64(*a.StressLevel) / 10.0 * 0.3
	}
	if a.OverallMood != nil {
		score += math.Max(0, float64(6-*a.OverallMood)/10.0) * 0.2
	}

	confidence := math.Max(0.05, math.Min(score, 0.98))
	confidence = math.Round(confidence*100) / 100

	var (
		disorder string
		severity domain.SeverityLevel
	)
	switch {
	case hasSymptom(a.Symptoms, "panic attacks") || (stressSet(a.StressLevel) && *a.StressLevel >= 8):
		disorder = "Panic / Anxiety"
		severity = domain.SeverityModerate
		if confidence > 0.7 {
			severity = domain.SeveritySevere
		}
	case strings.Contains(strings.ToLower(strings.Join(a.Symptoms, " ")), "depression") ||
		(moodSet(a.OverallMood) && *a.OverallMood <= 3):
		disorder = "Depression"
		severity = domain.SeverityMild
		if confidence > 0.5 {
			severity = domain.SeverityModerate
		}
	case len(a.Symptoms) == 0:
		disorder = "No disorder detected"
		severity = domain.SeverityMild
	default:
		disorder = "Anxiety"
		severity = domain.SeverityModerate
	}

	emergency := (stressSet(a.StressLevel) && *a.StressLevel >= 9) ||
		strings.Contains(strings.ToLower(a.Text), "self-harm")

	return domain.AnalysisResult{
		PredictedDisorder:         disorder,
		ConfidenceScore:           confidence,
		SeverityLevel:             severity,
		Recommendations:           recommendationsText,
		NextSteps:                 nextStepsText,
		EmergencyContactSuggested: emergency,
	}
}

func hasSymptom(symptoms []string, want string) bool {
	for _, s := range symptoms {
		if strings.ToLower(s) == want {
			return true
		}
	}
	return false
}

func stressSet(v *int) bool { return v != nil && *v != 0 }

func moodSet(v *int) bool { return v != nil && *v != 0 }
