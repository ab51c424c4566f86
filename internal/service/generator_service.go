package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"playercare/internal/config"
	"playercare/internal/metrics"
	"playercare/internal/model"
)

// ErrGenerationUnavailable marks the one hard failure this core surfaces:
// the reply-generation call itself failed and there is no text to parse.
var ErrGenerationUnavailable = errors.New("text generation service unavailable")

// GeneratorService is the boundary to the Gemini API. Classification callers
// treat errors as a signal to fall back; reply callers surface them.
type GeneratorService struct {
	config *config.LLMConfig
	client *http.Client
}

// NewGeneratorService creates a generator from the LLM config.
func NewGeneratorService(cfg *config.LLMConfig) *GeneratorService {
	return &GeneratorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Complete runs a classification completion. Returns an error when the API
// is unconfigured or unreachable; the classifier recovers via its fallback.
func (s *GeneratorService) Complete(ctx context.Context, prompt string) (string, error) {
	if !s.config.IsEnabled() {
		return "", ErrGenerationUnavailable
	}
	return s.callGemini(ctx, s.config.Models.Classify, prompt)
}

// GenerateReply produces a conversational support reply from typed turns.
// Turns flatten to the textual role format only here, at the boundary.
func (s *GeneratorService) GenerateReply(ctx context.Context, turns []model.ChatTurn) (string, error) {
	if !s.config.IsEnabled() {
		return mockReply(), nil
	}
	reply, err := s.callGemini(ctx, s.config.Models.Reply, flattenTurns(turns))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	return reply, nil
}

// Ping issues a minimal completion to keep the model warm.
func (s *GeneratorService) Ping(ctx context.Context) error {
	if !s.config.IsEnabled() {
		return nil
	}
	_, err := s.callGemini(ctx, s.config.Models.Classify, "Reply with the single word: ok")
	return err
}

// callGemini makes a request to the Gemini API
func (s *GeneratorService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	start := time.Now()
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.GenerationFailures.Inc()
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GenerationFailures.Inc()
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		metrics.GenerationFailures.Inc()
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		metrics.GenerationLatency.Observe(time.Since(start).Seconds())
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	metrics.GenerationFailures.Inc()
	return "", fmt.Errorf("empty response from Gemini")
}

// flattenTurns renders typed turns into the flat "Role: content" transcript
// the generation API consumes.
func flattenTurns(turns []model.ChatTurn) string {
	var sb strings.Builder
	for _, t := range turns {
		sb.WriteString(string(t.Role))
		sb.WriteString(": ")
		sb.WriteString(t.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// mockReply keeps the reply path exercisable without an API key.
func mockReply() string {
	return "I understand you ran into a problem and I am sorry for the trouble.\n---\n" +
		"1. Restart the game client.\n2. Check for a pending update.\n3. Reply here if the issue persists.\n---\n" +
		"A small goodwill package of 100 gold has been sent to your mailbox."
}
