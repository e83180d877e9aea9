package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KushalZanzari/neuroq-backend/internal/analysis"
	"github.com/KushalZanzari/neuroq-backend/internal/domain"
	"github.com/KushalZanzari/neuroq-backend/internal/events"
	"github.com/KushalZanzari/neuroq-backend/internal/llm"
	"github.com/KushalZanzari/neuroq-backend/internal/observability"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// -------- test fakes --------

type fakeCheckInRepo struct {
	records []domain.CheckIn
	nextID  int64
}

func (f *fakeCheckInRepo) Create(_ context.Context, checkIn *domain.CheckIn) error {
	f.nextID++
	checkIn.ID = f.nextID
	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now().UTC()
	}
	f.records = append(f.records, *checkIn)
	return nil
}

func (f *fakeCheckInRepo) ListByUser(_ context.Context, userID int64) ([]domain.CheckIn, error) {
	out := make([]domain.CheckIn, 0)
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCheckInRepo) DeleteByID(_ context.Context, id, userID int64) (bool, error) {
	for i, r := range f.records {
		if r.ID == id && r.UserID == userID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func newCheckInService(repo *fakeCheckInRepo, dispatcher events.Dispatcher) *CheckInService {
	analysisService := NewAnalysisService(&fakeAnalyzer{err: llm.ErrLLM}, observability.NewMetrics(), zap.NewNop())
	return NewCheckInService(repo, analysisService, dispatcher, nil, zap.NewNop())
}

func intRef(v int) *int { return &v }

func floatRef(v float64) *float64 { return &v }

// -------- tests --------

func TestSubmit_FallsBackToHeuristicAndPersists(t *testing.T) {
	t.Parallel()

	repo := &fakeCheckInRepo{}
	svc := newCheckInService(repo, nil)

	input := domain.Assessment{
		Text:        "cannot sleep",
		Symptoms:    []string{"insomnia"},
		OverallMood: intRef(4),
		SleepHours:  floatRef(4.5),
		StressLevel: intRef(6),
	}

	checkIn, err := svc.Submit(context.Background(), 7, input)
	require.NoError(t, err)
	require.Equal(t, int64(1), checkIn.ID)
	require.Equal(t, int64(7), checkIn.UserID)

	want := analysis.NewHeuristicScorer().Score(input)
	require.Equal(t, want, checkIn.Prediction)
	require.Equal(t, want.PredictedDisorder, checkIn.Title)
	require.Len(t, repo.records, 1)
}

func TestSubmit_PublishesEvents(t *testing.T) {
	t.Parallel()

	repo := &fakeCheckInRepo{}
	dispatcher := &capturingDispatcher{}
	svc := newCheckInService(repo, dispatcher)

	// Stress 9 flags the emergency contact suggestion.
	_, err := svc.Submit(context.Background(), 7, domain.Assessment{
		Symptoms:    []string{"panic attacks"},
		StressLevel: intRef(9),
	})
	require.NoError(t, err)

	require.Len(t, dispatcher.published, 2)
	require.Equal(t, events.EventCheckInRecorded, dispatcher.published[0].Type)
	require.Equal(t, events.EventEmergencyFlagged, dispatcher.published[1].Type)
	require.Equal(t, int64(7), dispatcher.published[0].UserID)
}

func TestSubmit_NoEmergencyEventForCalmCheckIn(t *testing.T) {
	t.Parallel()

	dispatcher := &capturingDispatcher{}
	svc := newCheckInService(&fakeCheckInRepo{}, dispatcher)

	_, err := svc.Submit(context.Background(), 7, domain.Assessment{Symptoms: []string{}})
	require.NoError(t, err)

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventCheckInRecorded, dispatcher.published[0].Type)
}

func TestSavePrediction_StoresWithoutInput(t *testing.T) {
	t.Parallel()

	repo := &fakeCheckInRepo{}
	dispatcher := &capturingDispatcher{}
	svc := newCheckInService(repo, dispatcher)

	prediction := domain.AnalysisResult{
		PredictedDisorder: "Depression",
		ConfidenceScore:   0.4,
		SeverityLevel:     domain.SeverityMild,
		Recommendations:   "saved manually",
	}

	checkIn, err := svc.SavePrediction(context.Background(), 3, prediction)
	require.NoError(t, err)
	require.Equal(t, "Depression", checkIn.Title)
	require.Empty(t, checkIn.Input.Text)
	require.Empty(t, checkIn.Input.Symptoms)

	require.Len(t, dispatcher.published, 1)
	payload, ok := dispatcher.published[0].Payload.(events.CheckInRecordedPayload)
	require.True(t, ok)
	require.True(t, payload.Manual)
}

func TestHistory_NewestFirst(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &fakeCheckInRepo{records: []domain.CheckIn{
		{ID: 1, UserID: 7, CreatedAt: now.Add(-48 * time.Hour), Title: "old"},
		{ID: 2, UserID: 7, CreatedAt: now, Title: "new"},
		{ID: 3, UserID: 8, CreatedAt: now, Title: "someone else"},
	}, nextID: 3}
	svc := newCheckInService(repo, nil)

	history, err := svc.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "new", history[0].Title)
	require.Equal(t, "old", history[1].Title)
}

func TestRecent_LimitsToFive(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &fakeCheckInRepo{nextID: 10}
	for i := 0; i < 8; i++ {
		repo.records = append(repo.records, domain.CheckIn{
			ID:        int64(i + 1),
			UserID:    7,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			Prediction: domain.AnalysisResult{
				PredictedDisorder: "Anxiety",
				SeverityLevel:     domain.SeverityModerate,
				ConfidenceScore:   0.3,
			},
		})
	}
	svc := newCheckInService(repo, nil)

	recent, err := svc.Recent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	require.Equal(t, int64(1), recent[0].ID)
	require.Equal(t, "Anxiety", recent[0].Disorder)
	require.Equal(t, domain.SeverityModerate, recent[0].Severity)
}

func TestStats_CountsAndLastCheckin(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &fakeCheckInRepo{records: []domain.CheckIn{
		{ID: 1, UserID: 7, CreatedAt: now.Add(-26 * time.Hour)},
		{ID: 2, UserID: 7, CreatedAt: now.Add(-2 * time.Hour)},
	}, nextID: 2}
	svc := newCheckInService(repo, nil)

	stats, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalCheckins)
	require.NotNil(t, stats.LastCheckin)
	require.WithinDuration(t, now.Add(-2*time.Hour), *stats.LastCheckin, time.Second)
	require.Zero(t, stats.AISessions)
}

func TestStats_EmptyHistory(t *testing.T) {
	t.Parallel()

	svc := newCheckInService(&fakeCheckInRepo{}, nil)

	stats, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)
	require.Zero(t, stats.TotalCheckins)
	require.Zero(t, stats.Streak)
	require.Nil(t, stats.LastCheckin)
}

func TestStreak_ConsecutiveUniqueDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	day := func(daysAgo int, hour int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
	}

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no check-ins", nil, 0},
		{"today only", []time.Time{day(0, 9)}, 1},
		{"two days running", []time.Time{day(0, 9), day(1, 20)}, 2},
		{"duplicate entries same day count once", []time.Time{day(0, 9), day(0, 11), day(1, 8)}, 2},
		{"gap breaks the streak", []time.Time{day(0, 9), day(2, 9), day(3, 9)}, 1},
		{"streak not anchored to today", []time.Time{day(1, 9), day(2, 9)}, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checkIns := make([]domain.CheckIn, 0, len(tt.days))
			for i, ts := range tt.days {
				checkIns = append(checkIns, domain.CheckIn{ID: int64(i + 1), UserID: 7, CreatedAt: ts})
			}
			sort.Slice(checkIns, func(i, j int) bool { return checkIns[i].CreatedAt.After(checkIns[j].CreatedAt) })

			require.Equal(t, tt.want, streak(checkIns, now))
		})
	}
}

func TestDelete_RemovesOwnRecordOnly(t *testing.T) {
	t.Parallel()

	repo := &fakeCheckInRepo{records: []domain.CheckIn{
		{ID: 1, UserID: 7, CreatedAt: time.Now().UTC()},
	}, nextID: 1}
	svc := newCheckInService(repo, nil)

	// Someone else's id: not found.
	err := svc.Delete(context.Background(), 1, 99)
	require.Error(t, err)
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	require.Len(t, repo.records, 1)

	require.NoError(t, svc.Delete(context.Background(), 1, 7))
	require.Empty(t, repo.records)
}
