package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KushalZanzari/neuroq-backend/internal/api/dto"
	"github.com/KushalZanzari/neuroq-backend/internal/service"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// AnalyzeHandler exposes the symptom analysis endpoint.
type AnalyzeHandler struct {
	analysis *service.AnalysisService
}

// NewAnalyzeHandler constructs the handler.
func NewAnalyzeHandler(analysisService *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysisService}
}

// Analyze handles POST /analyze/. It always answers 200: model failures are
// absorbed by the heuristic scorer and never reach the client.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result := h.analysis.Analyze(c.UserContext(), req.ToAssessment())
	return c.JSON(result)
}
