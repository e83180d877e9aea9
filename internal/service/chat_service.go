package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// ChatClient is the hosted-model boundary used by ChatService.
type ChatClient interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature, topP *float64) (string, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// ChatReply is the response to one chat turn.
type ChatReply struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
	Title    string `json:"title"`
}

// ChatService drives the assistant chat: replies in the user's language and
// titles the conversation from the first message.
type ChatService struct {
	llm    ChatClient
	logger *zap.Logger
}

// NewChatService builds the service. A nil client means chat is unavailable.
func NewChatService(llm ChatClient, logger *zap.Logger) *ChatService {
	return &ChatService{llm: llm, logger: logger}
}

// Chat produces the assistant reply, detected language and a short title.
func (s *ChatService) Chat(ctx context.Context, message string) (*ChatReply, error) {
	if s.llm == nil {
		return nil, apperrors.NewUnavailable("chat model not configured")
	}

	lang := detectScriptLanguage(message)
	system := fmt.Sprintf(
		"You are a multilingual AI. Detect the user's language and always reply in the same language. Detected language: %s.",
		lang,
	)

	reply, err := s.llm.Complete(ctx, system, message, 300, nil, nil)
	if err != nil {
		s.logger.Warn("chat completion failed", zap.Error(err))
		return nil, apperrors.NewUnavailable("chat model unavailable")
	}

	title, err := s.llm.Complete(ctx, "", fmt.Sprintf(
		"Generate a short 3-6 word title describing the topic of this message: '%s'. Return ONLY the title, no explanation.",
		message,
	), 20, nil, nil)
	if err != nil {
		// The reply is still useful without a title.
		s.logger.Warn("title generation failed", zap.Error(err))
		title = ""
	}

	return &ChatReply{Reply: reply, Language: lang, Title: title}, nil
}

// DetectLanguage names the language of the text. The hosted model is asked
// when configured; otherwise the script-range detector answers with a code.
func (s *ChatService) DetectLanguage(ctx context.Context, text string) (string, error) {
	if s.llm == nil {
		return detectScriptLanguage(text), nil
	}
	detected, err := s.llm.DetectLanguage(ctx, text)
	if err != nil {
		s.logger.Warn("language detection failed", zap.Error(err))
		return "", apperrors.NewUnavailable("language model unavailable")
	}
	return detected, nil
}

// detectScriptLanguage guesses a language code from Unicode script ranges.
// Devanagari is reported as Hindi; Marathi shares the script and cannot be
// told apart here.
func detectScriptLanguage(text string) string {
	for _, ch := range text {
		switch {
		case ch >= 0x0900 && ch <= 0x097F:
			return "hi"
		case ch >= 0x0A80 && ch <= 0x0AFF:
			return "gu"
		case ch >= 0x0C00 && ch <= 0x0C7F:
			return "te"
		}
	}
	return "en"
}
