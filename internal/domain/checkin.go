package domain

import "time"

// CheckIn is one persisted submission: the questionnaire the user entered
// and the prediction that was produced for it. A manually saved prediction
// has an empty Input.
type CheckIn struct {
	ID         int64          `json:"id"`
	UserID     int64          `json:"user_id"`
	CreatedAt  time.Time      `json:"timestamp"`
	Title      string         `json:"title"`
	Input      Assessment     `json:"input"`
	Prediction AnalysisResult `json:"prediction"`
}
