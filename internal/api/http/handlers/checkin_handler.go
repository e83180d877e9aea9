package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/KushalZanzari/neuroq-backend/internal/api/dto"
	"github.com/KushalZanzari/neuroq-backend/internal/auth"
	"github.com/KushalZanzari/neuroq-backend/internal/domain"
	"github.com/KushalZanzari/neuroq-backend/internal/service"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// CheckInHandler exposes the check-in endpoints.
type CheckInHandler struct {
	checkIns *service.CheckInService
}

// NewCheckInHandler constructs the handler.
func NewCheckInHandler(checkInService *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkIns: checkInService}
}

// Submit handles POST /checkin/: analyze the questionnaire and persist the
// resulting record.
func (h *CheckInHandler) Submit(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	checkIn, err := h.checkIns.Submit(c.UserContext(), user.ID, req.ToAssessment())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(checkIn)
}

// History handles GET /checkin/: the user's records, newest first.
func (h *CheckInHandler) History(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	checkIns, err := h.checkIns.History(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	return c.JSON(checkIns)
}

// Stats handles GET /checkin/stats.
func (h *CheckInHandler) Stats(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	stats, err := h.checkIns.Stats(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Recent handles GET /checkin/recent: the last five submissions, condensed.
func (h *CheckInHandler) Recent(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	entries, err := h.checkIns.Recent(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// Save handles POST /checkin/save: persist an already-computed prediction.
func (h *CheckInHandler) Save(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.SavePredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PredictedDisorder == "" {
		return apperrors.NewValidationError("predicted_disorder required", nil)
	}

	checkIn, err := h.checkIns.SavePrediction(c.UserContext(), user.ID, req.ToResult())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "id": checkIn.ID})
}

// Delete handles DELETE /checkin/delete/:id.
func (h *CheckInHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid check-in id", nil)
	}

	if err := h.checkIns.Delete(c.UserContext(), id, user.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "deleted", "id": id})
}
