package service

import (
	"context"
	"strings"
	"testing"

	"playercare/internal/config"
	"playercare/internal/model"
)

// stubGenerator returns a canned completion or error
type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func newTestClassifier(llm TextGenerator) *ClassifierService {
	rules := config.DefaultRules()
	return NewClassifierService(rules, NewSentimentAnalyzer(rules), llm)
}

func TestClassifyProblemFromLLMResponse(t *testing.T) {
	llm := &stubGenerator{response: "```json\n" + `{
  "suggestedCategories": [
    {"categoryId": "technical", "confidence": 0.92, "reasoning": "crash report"},
    {"categoryId": "gameplay", "confidence": 0.4, "reasoning": "maybe"}
  ],
  "autoResolvable": true,
  "routeDecision": "automated",
  "reasoning": "client crash on load",
  "suggestedUrgency": "high"
}` + "\n```"}

	cls := newTestClassifier(llm).ClassifyProblem(context.Background(), "the game closes on startup every time", nil)

	if len(cls.SuggestedCategories) != 1 {
		t.Fatalf("categories = %d, want 1 (low-confidence entry filtered)", len(cls.SuggestedCategories))
	}
	if cls.SuggestedCategories[0].Category != model.CategoryTechnical {
		t.Errorf("category = %v, want technical", cls.SuggestedCategories[0].Category)
	}
	if cls.RouteDecision != model.RouteAutomated || !cls.AutoResolvable {
		t.Errorf("route = %v autoResolvable = %v, want automated/true", cls.RouteDecision, cls.AutoResolvable)
	}
	if cls.SuggestedUrgency != model.UrgencyHigh {
		t.Errorf("urgency = %v, want high", cls.SuggestedUrgency)
	}
}

func TestClassifyProblemKeywordFallback(t *testing.T) {
	tests := []struct {
		name        string
		description string
		category    model.IssueCategory
		urgency     model.Urgency
		route       model.RouteDecision
	}{
		{"login", "I cannot log in with my password", model.CategoryAccountAccess, model.UrgencyHigh, model.RouteAutomated},
		{"rewards", "the event reward never arrived in my mailbox", model.CategoryMissingRewards, model.UrgencyMedium, model.RouteAutomated},
		{"purchase", "my payment went through but no gems", model.CategoryPurchaseIssues, model.UrgencyHigh, model.RouteAutomated},
		{"crash urgency", "game crash during the siege battle", model.CategoryTechnical, model.UrgencyHigh, model.RouteAutomated},
		{"lag urgency", "terrible lag in the arena", model.CategoryTechnical, model.UrgencyMedium, model.RouteAutomated},
		{"gameplay", "the new hero balance feels wrong", model.CategoryGameplay, model.UrgencyLow, model.RouteHuman},
		{"recovery", "I need to restore my old progress", model.CategoryAccountRecovery, model.UrgencyHigh, model.RouteHuman},
	}

	svc := newTestClassifier(&stubGenerator{response: "model is down", err: ErrGenerationUnavailable})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := svc.ClassifyProblem(context.Background(), tt.description, nil)
			if got := cls.SuggestedCategories[0]; got.Category != tt.category {
				t.Errorf("category = %v, want %v", got.Category, tt.category)
			}
			if cls.SuggestedCategories[0].Confidence != 0.75 {
				t.Errorf("confidence = %v, want 0.75", cls.SuggestedCategories[0].Confidence)
			}
			if cls.SuggestedUrgency != tt.urgency {
				t.Errorf("urgency = %v, want %v", cls.SuggestedUrgency, tt.urgency)
			}
			if cls.RouteDecision != tt.route {
				t.Errorf("route = %v, want %v", cls.RouteDecision, tt.route)
			}
			if cls.Reasoning != "keyword-based fallback analysis" {
				t.Errorf("reasoning = %q", cls.Reasoning)
			}
		})
	}
}

func TestClassifyProblemGarbageOutputNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"plain text that matches no keywords whatsoever here",
	}
	responses := []string{
		"",
		"not json at all { unbalanced",
		"```json\n{\"suggestedCategories\": \"not an array\"}\n```",
		`{"wrong": "shape"}`,
	}

	for _, resp := range responses {
		svc := newTestClassifier(&stubGenerator{response: resp})
		for _, input := range inputs {
			cls := svc.ClassifyProblem(context.Background(), input, nil)
			if cls == nil || len(cls.SuggestedCategories) == 0 {
				t.Fatalf("nil or empty classification for input %q response %q", input, resp)
			}
		}
	}
}

func TestClassifyProblemGarbageYieldsConservativeDefault(t *testing.T) {
	svc := newTestClassifier(&stubGenerator{response: "sorry, I can't help with that"})

	cls := svc.ClassifyProblem(context.Background(), "qwerty uiop zxcv bnm asdf", nil)

	top := cls.SuggestedCategories[0]
	if top.Category != model.CategoryOther {
		t.Errorf("category = %v, want other", top.Category)
	}
	if top.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", top.Confidence)
	}
	if cls.RouteDecision != model.RouteHuman {
		t.Errorf("route = %v, want human", cls.RouteDecision)
	}
}

func TestClassifySentimentOverride(t *testing.T) {
	// The model says automated, but the message is visibly angry.
	llm := &stubGenerator{response: `{
  "suggestedCategories": [{"categoryId": "purchase_issues", "confidence": 0.9, "reasoning": "refund"}],
  "autoResolvable": true,
  "routeDecision": "automated",
  "reasoning": "simple refund",
  "suggestedUrgency": "high"
}`}
	svc := newTestClassifier(llm)

	cls := svc.ClassifyProblem(context.Background(), "this refund process is a scam, absolutely the worst", nil)

	if cls.RouteDecision != model.RouteHuman {
		t.Errorf("route = %v, want human override", cls.RouteDecision)
	}
	if cls.AutoResolvable {
		t.Error("autoResolvable should be forced false by sentiment")
	}
	if !strings.Contains(cls.Reasoning, "sentiment") {
		t.Errorf("reasoning %q should state the sentiment override", cls.Reasoning)
	}
	if !cls.Sentiment.RequiresHuman {
		t.Error("sentiment should require a human")
	}
}

func TestClassifyFlaggedProfileBypass(t *testing.T) {
	svc := newTestClassifier(&stubGenerator{response: `{"suggestedCategories": [{"categoryId": "other", "confidence": 0.9}], "routeDecision": "suggest"}`})
	flagged := &model.PlayerProfile{ID: "p1", Name: "ShadowReaper", Level: 41, Flagged: true}

	calm := svc.ClassifyProblem(context.Background(), "my account is locked and I cannot log in", flagged)
	if calm.SuggestedCategories[0].Category != model.CategoryAccountAccess {
		t.Fatalf("category = %v, want account_access bypass", calm.SuggestedCategories[0].Category)
	}
	if calm.SuggestedCategories[0].Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", calm.SuggestedCategories[0].Confidence)
	}
	if calm.RouteDecision != model.RouteAutomated {
		t.Errorf("calm flagged route = %v, want automated", calm.RouteDecision)
	}

	angry := svc.ClassifyProblem(context.Background(), "my account is locked, this is outrageous garbage", flagged)
	if angry.RouteDecision != model.RouteHuman {
		t.Errorf("angry flagged route = %v, want human", angry.RouteDecision)
	}
	if angry.AutoResolvable {
		t.Error("angry flagged case should not be auto-resolvable")
	}
}

func TestBuildClassificationPromptContainsContract(t *testing.T) {
	profile := &model.PlayerProfile{Level: 30, VIPLevel: 5, TotalSpend: 250, ChurnRisk: model.ChurnMedium, SessionDays: 90}
	prompt := buildClassificationPrompt("my gems vanished after the update", profile)

	required := []string{
		"ONLY valid JSON",
		"suggestedCategories",
		"autoResolvable",
		"routeDecision",
		"suggestedUrgency",
		"my gems vanished after the update",
		"level 30",
	}
	for _, cat := range model.AllCategories {
		required = append(required, string(cat))
	}

	for _, needle := range required {
		if !strings.Contains(prompt, needle) {
			t.Errorf("prompt missing %q", needle)
		}
	}
}
