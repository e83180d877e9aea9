package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KushalZanzari/neuroq-backend/internal/api/dto"
	"github.com/KushalZanzari/neuroq-backend/internal/service"
	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// ChatHandler exposes the assistant chat and language endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs the handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

// Chat handles POST /chat/.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Message == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	reply, err := h.chat.Chat(c.UserContext(), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(reply)
}

// DetectLanguage handles POST /language/detect-language.
func (h *ChatHandler) DetectLanguage(c *fiber.Ctx) error {
	var req dto.LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Text == "" {
		return apperrors.NewValidationError("text required", nil)
	}

	language, err := h.chat.DetectLanguage(c.UserContext(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(dto.LanguageResponse{Language: language})
}
