// Package llm talks to a Groq-hosted chat-completions endpoint. Every
// transport, HTTP, or parse failure collapses into ErrLLM so call sites can
// fall back to the heuristic scorer with a single check. Calls are made once,
// with no retries.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/KushalZanzari/neuroq-backend/internal/config"
	"github.com/KushalZanzari/neuroq-backend/internal/domain"
)

// ErrLLM marks any failure talking to or parsing the hosted model.
var ErrLLM = errors.New("llm request failed")

const analyzeSystemPrompt = "You are an AI mental-health assistant. Base your analysis ONLY on the " +
	"user's inputs. Different symptoms MUST produce different outputs. " +
	"Return ONLY a valid JSON object with: predicted_disorder, confidence_score, " +
	"severity_level, recommendations, next_steps, emergency_contact_suggested."

// Client calls the chat-completions API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a client from configuration. Returns nil when no API key
// is configured; callers treat a nil client as "heuristic-only mode".
func NewClient(cfg config.LLMConfig) *Client {
	if !cfg.Enabled() {
		return nil
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion and returns the raw message content.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int, temperature, topP *float64) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	msgs := make([]message, 0, 2)
	if system != "" {
		msgs = append(msgs, message{Role: "system", Content: system})
	}
	msgs = append(msgs, message{Role: "user", Content: user})

	payload, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrLLM, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrLLM, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLM, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d: %s", ErrLLM, resp.StatusCode, string(body))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrLLM, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrLLM)
	}
	return parsed.Choices[0].Message.Content, nil
}

// AnalyzeSymptoms asks the model for a structured analysis of the assessment.
func (c *Client) AnalyzeSymptoms(ctx context.Context, a domain.Assessment) (*domain.AnalysisResult, error) {
	userContent := fmt.Sprintf(`User text: %s
Symptoms: %s
Overall mood (1-10): %s
Hours sleep: %s
Stress level (1-10): %s

RULES:
- More symptoms = more severe.
- Stress >= 8 means high severity.
- Mood <= 3 is a depression indicator.
- Panic attacks strongly increase panic/anxiety.
- Sleep < 5 increases depression/anxiety.
- No symptoms means 'No disorder detected'.

Return ONLY JSON.`,
		a.Text,
		strings.Join(a.Symptoms, ", "),
		optInt(a.OverallMood),
		optFloat(a.SleepHours),
		optInt(a.StressLevel),
	)

	temperature, topP := 0.75, 0.95
	raw, err := c.Complete(ctx, analyzeSystemPrompt, userContent, 300, &temperature, &topP)
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(obj, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed analysis object: %v", ErrLLM, err)
	}
	if result.PredictedDisorder == "" {
		return nil, fmt.Errorf("%w: analysis object missing predicted_disorder", ErrLLM)
	}
	return &result, nil
}

// DetectLanguage asks the model to name the language of the given text.
func (c *Client) DetectLanguage(ctx context.Context, text string) (string, error) {
	out, err := c.Complete(ctx,
		"Detect the language of the user's message. Return ONLY the language name, nothing else.",
		text, 20, nil, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ExtractJSON pulls the first {...} block out of model output, stripping
// markdown code fences when present.
func ExtractJSON(raw string) ([]byte, error) {
	txt := strings.TrimSpace(raw)
	if strings.HasPrefix(txt, "```") {
		lines := strings.Split(txt, "\n")
		if len(lines) >= 3 {
			txt = strings.Join(lines[1:len(lines)-1], "\n")
		} else {
			txt = strings.Trim(txt, "`")
		}
	}

	start := strings.Index(txt, "{")
	end := strings.LastIndex(txt, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrLLM)
	}
	obj := []byte(txt[start : end+1])
	if !json.Valid(obj) {
		return nil, fmt.Errorf("%w: invalid JSON in model output", ErrLLM)
	}
	return obj, nil
}

func optInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

func optFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g", *v)
}
