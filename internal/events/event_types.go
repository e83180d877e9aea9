package events

import (
	"time"

	"github.com/KushalZanzari/neuroq-backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCheckInRecorded  EventType = "checkin_recorded"
	EventEmergencyFlagged EventType = "emergency_flagged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CheckInRecordedPayload describes a newly stored check-in.
type CheckInRecordedPayload struct {
	CheckInID int64                `json:"checkin_id"`
	Disorder  string               `json:"disorder"`
	Severity  domain.SeverityLevel `json:"severity"`
	Manual    bool                 `json:"manual"`
}

// EmergencyFlaggedPayload describes a check-in whose prediction suggested
// contacting emergency services.
type EmergencyFlaggedPayload struct {
	CheckInID  int64   `json:"checkin_id"`
	Disorder   string  `json:"disorder"`
	Confidence float64 `json:"confidence"`
}
