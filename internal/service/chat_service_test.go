package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/KushalZanzari/neuroq-backend/pkg/util"
)

// -------- test fakes --------

type fakeChatClient struct {
	completions []string
	completeErr error
	language    string
	langErr     error
	systems     []string
}

func (f *fakeChatClient) Complete(_ context.Context, system, _ string, _ int, _, _ *float64) (string, error) {
	f.systems = append(f.systems, system)
	if f.completeErr != nil {
		return "", f.completeErr
	}
	out := f.completions[0]
	if len(f.completions) > 1 {
		f.completions = f.completions[1:]
	}
	return out, nil
}

func (f *fakeChatClient) DetectLanguage(_ context.Context, _ string) (string, error) {
	return f.language, f.langErr
}

// -------- tests --------

func TestChat_ReturnsReplyLanguageAndTitle(t *testing.T) {
	t.Parallel()

	client := &fakeChatClient{completions: []string{"you are doing fine", "Feeling Anxious Today"}}
	svc := NewChatService(client, zap.NewNop())

	reply, err := svc.Chat(context.Background(), "I feel anxious")
	require.NoError(t, err)
	require.Equal(t, "you are doing fine", reply.Reply)
	require.Equal(t, "en", reply.Language)
	require.Equal(t, "Feeling Anxious Today", reply.Title)

	// The reply prompt carries the detected language; the title prompt has no
	// system message.
	require.Len(t, client.systems, 2)
	require.Contains(t, client.systems[0], "Detected language: en")
	require.Empty(t, client.systems[1])
}

func TestChat_UnavailableWithoutClient(t *testing.T) {
	t.Parallel()

	svc := NewChatService(nil, zap.NewNop())

	_, err := svc.Chat(context.Background(), "hello")
	require.Error(t, err)
	require.Equal(t, 503, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDetectLanguage_UsesModelWhenConfigured(t *testing.T) {
	t.Parallel()

	svc := NewChatService(&fakeChatClient{language: "Hindi"}, zap.NewNop())

	lang, err := svc.DetectLanguage(context.Background(), "some text")
	require.NoError(t, err)
	require.Equal(t, "Hindi", lang)
}

func TestDetectLanguage_ScriptFallbackWithoutClient(t *testing.T) {
	t.Parallel()

	svc := NewChatService(nil, zap.NewNop())

	lang, err := svc.DetectLanguage(context.Background(), "नमस्ते")
	require.NoError(t, err)
	require.Equal(t, "hi", lang)
}

func TestDetectScriptLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"hindi devanagari", "नमस्ते दुनिया", "hi"},
		{"gujarati", "કેમ છો", "gu"},
		{"telugu", "నమస్కారం", "te"},
		{"english default", "hello there", "en"},
		{"empty text", "", "en"},
		{"mixed latin then devanagari", "hello नमस्ते", "hi"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, detectScriptLanguage(tt.text))
		})
	}
}
