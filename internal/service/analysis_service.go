package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/KushalZanzari/neuroq-backend/internal/analysis"
	"github.com/KushalZanzari/neuroq-backend/internal/domain"
	"github.com/KushalZanzari/neuroq-backend/internal/observability"
)

// SymptomAnalyzer is the hosted-model boundary used by AnalysisService.
type SymptomAnalyzer interface {
	AnalyzeSymptoms(ctx context.Context, a domain.Assessment) (*domain.AnalysisResult, error)
}

// AnalysisService produces an AnalysisResult for every assessment. The hosted
// model is tried once when configured; on any failure the deterministic
// heuristic scorer takes over. Analyze never fails.
type AnalysisService struct {
	llm       SymptomAnalyzer
	heuristic *analysis.HeuristicScorer
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewAnalysisService builds the service. A nil analyzer means heuristic-only
// mode (no API key configured).
func NewAnalysisService(llm SymptomAnalyzer, metrics *observability.Metrics, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		llm:       llm,
		heuristic: analysis.NewHeuristicScorer(),
		metrics:   metrics,
		logger:    logger,
	}
}

// Analyze returns the model's analysis when available, the heuristic one
// otherwise.
func (s *AnalysisService) Analyze(ctx context.Context, a domain.Assessment) domain.AnalysisResult {
	if s.llm == nil {
		s.metrics.RecordHeuristicFallback()
		return s.heuristic.Score(a)
	}

	result, err := s.llm.AnalyzeSymptoms(ctx, a)
	if err != nil {
		s.logger.Warn("llm analysis failed, using heuristic scorer", zap.Error(err))
		s.metrics.RecordHeuristicFallback()
		return s.heuristic.Score(a)
	}
	return *result
}
