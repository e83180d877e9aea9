package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KushalZanzari/neuroq-backend/internal/domain"
	"github.com/KushalZanzari/neuroq-backend/internal/events"
	"github.com/KushalZanzari/neuroq-backend/internal/repository"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

const (
	statsCacheTTL = time.Minute
	recentLimit   = 5
)

// Stats summarizes a user's check-in history for the dashboard.
type Stats struct {
	TotalCheckins int        `json:"total_checkins"`
	Streak        int        `json:"streak"`
	LastCheckin   *time.Time `json:"last_checkin"`
	AISessions    int        `json:"ai_sessions"`
}

// RecentEntry is a condensed view of one recent check-in.
type RecentEntry struct {
	ID         int64                `json:"id"`
	Date       time.Time            `json:"date"`
	Disorder   string               `json:"disorder"`
	Severity   domain.SeverityLevel `json:"severity"`
	Confidence float64              `json:"confidence"`
}

// CheckInService runs the analyze-and-persist flow and the history queries.
type CheckInService struct {
	checkIns   repository.CheckInRepository
	analysis   *AnalysisService
	dispatcher events.Dispatcher
	cache      *redis.Client
	logger     *zap.Logger
}

// NewCheckInService builds the service. The cache client may be nil; stats
// are then computed on every call.
func NewCheckInService(checkIns repository.CheckInRepository, analysisService *AnalysisService, dispatcher events.Dispatcher, cache *redis.Client, logger *zap.Logger) *CheckInService {
	return &CheckInService{
		checkIns:   checkIns,
		analysis:   analysisService,
		dispatcher: dispatcher,
		cache:      cache,
		logger:     logger,
	}
}

// Submit analyzes the assessment and persists the resulting check-in.
// Analysis cannot fail: the heuristic scorer covers every model failure.
func (s *CheckInService) Submit(ctx context.Context, userID int64, input domain.Assessment) (*domain.CheckIn, error) {
	prediction := s.analysis.Analyze(ctx, input)

	checkIn := &domain.CheckIn{
		UserID:     userID,
		Title:      prediction.PredictedDisorder,
		Input:      input,
		Prediction: prediction,
	}
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	s.publishRecorded(ctx, checkIn, false)
	return checkIn, nil
}

// SavePrediction stores an already-computed prediction without questionnaire
// input.
func (s *CheckInService) SavePrediction(ctx context.Context, userID int64, prediction domain.AnalysisResult) (*domain.CheckIn, error) {
	checkIn := &domain.CheckIn{
		UserID:     userID,
		Title:      prediction.PredictedDisorder,
		Input:      domain.Assessment{Symptoms: []string{}},
		Prediction: prediction,
	}
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	s.publishRecorded(ctx, checkIn, true)
	return checkIn, nil
}

// History returns the user's check-ins, newest first.
func (s *CheckInService) History(ctx context.Context, userID int64) ([]domain.CheckIn, error) {
	return s.checkIns.ListByUser(ctx, userID)
}

// Recent returns condensed views of the last few check-ins.
func (s *CheckInService) Recent(ctx context.Context, userID int64) ([]RecentEntry, error) {
	checkIns, err := s.checkIns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(checkIns) > recentLimit {
		checkIns = checkIns[:recentLimit]
	}
	entries := make([]RecentEntry, 0, len(checkIns))
	for _, c := range checkIns {
		entries = append(entries, RecentEntry{
			ID:         c.ID,
			Date:       c.CreatedAt.UTC(),
			Disorder:   c.Prediction.PredictedDisorder,
			Severity:   c.Prediction.SeverityLevel,
			Confidence: c.Prediction.ConfidenceScore,
		})
	}
	return entries, nil
}

// Stats computes dashboard statistics, served from cache when fresh.
func (s *CheckInService) Stats(ctx context.Context, userID int64) (*Stats, error) {
	if cached := s.cachedStats(ctx, userID); cached != nil {
		return cached, nil
	}

	checkIns, err := s.checkIns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalCheckins: len(checkIns)}
	if len(checkIns) > 0 {
		last := checkIns[0].CreatedAt.UTC()
		stats.LastCheckin = &last
	}
	stats.Streak = streak(checkIns, time.Now().UTC())

	s.storeStats(ctx, userID, stats)
	return stats, nil
}

// Delete removes one of the user's check-ins by id.
func (s *CheckInService) Delete(ctx context.Context, id, userID int64) error {
	deleted, err := s.checkIns.DeleteByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("record", map[string]any{"id": id})
	}
	s.invalidateStats(ctx, userID)
	return nil
}

// streak counts consecutive days with at least one check-in, walking back
// from today. Check-ins must be ordered newest first.
func streak(checkIns []domain.CheckIn, now time.Time) int {
	seen := make(map[string]struct{}, len(checkIns))
	days := make([]time.Time, 0, len(checkIns))
	for _, c := range checkIns {
		day := c.CreatedAt.UTC().Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}

	today := now.Truncate(24 * time.Hour)
	count := 0
	for _, day := range days {
		if day.Equal(today.AddDate(0, 0, -count)) {
			count++
		} else {
			break
		}
	}
	return count
}

func (s *CheckInService) publishRecorded(ctx context.Context, checkIn *domain.CheckIn, manual bool) {
	if s.dispatcher == nil {
		return
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCheckInRecorded,
		UserID:    checkIn.UserID,
		Timestamp: time.Now().UTC(),
		Payload: events.CheckInRecordedPayload{
			CheckInID: checkIn.ID,
			Disorder:  checkIn.Prediction.PredictedDisorder,
			Severity:  checkIn.Prediction.SeverityLevel,
			Manual:    manual,
		},
	})

	if checkIn.Prediction.EmergencyContactSuggested {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventEmergencyFlagged,
			UserID:    checkIn.UserID,
			Timestamp: time.Now().UTC(),
			Payload: events.EmergencyFlaggedPayload{
				CheckInID:  checkIn.ID,
				Disorder:   checkIn.Prediction.PredictedDisorder,
				Confidence: checkIn.Prediction.ConfidenceScore,
			},
		})
	}
}

func statsCacheKey(userID int64) string {
	return fmt.Sprintf("checkin:stats:%d", userID)
}

func (s *CheckInService) cachedStats(ctx context.Context, userID int64) *Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *CheckInService) storeStats(ctx context.Context, userID int64, stats *Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey(userID), raw, statsCacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}

func (s *CheckInService) invalidateStats(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey(userID)).Err(); err != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}
