package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"playercare/internal/config"
	"playercare/internal/metrics"
	"playercare/internal/model"
)

// TextGenerator is the boundary to the external text-generation collaborator.
// It may be slow or unavailable; callers must tolerate both.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClassifierService maps a problem description to ranked issue categories.
// The primary path asks the generation collaborator for structured JSON; any
// failure there recovers locally through the deterministic keyword fallback.
// ClassifyProblem never fails for any input.
type ClassifierService struct {
	rules     *config.RuleSet
	sentiment *SentimentAnalyzer
	llm       TextGenerator
}

// NewClassifierService creates a classifier. llm may be nil, in which case
// only the keyword fallback runs.
func NewClassifierService(rules *config.RuleSet, sentiment *SentimentAnalyzer, llm TextGenerator) *ClassifierService {
	return &ClassifierService{
		rules:     rules,
		sentiment: sentiment,
		llm:       llm,
	}
}

// llmClassification is the wire shape requested from the generation model
type llmClassification struct {
	SuggestedCategories []struct {
		CategoryID string  `json:"categoryId"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	} `json:"suggestedCategories"`
	AutoResolvable   bool   `json:"autoResolvable"`
	RouteDecision    string `json:"routeDecision"`
	Reasoning        string `json:"reasoning"`
	SuggestedUrgency string `json:"suggestedUrgency"`
	Sentiment        struct {
		Tone      string `json:"tone"`
		Intensity int    `json:"intensity"`
	} `json:"sentiment"`
}

// ClassifyProblem classifies a problem description for a player. profile may
// be nil when no context is available.
func (s *ClassifierService) ClassifyProblem(ctx context.Context, description string, profile *model.PlayerProfile) *model.IssueClassification {
	sent := s.sentiment.Analyze(description)

	// Flagged profiles hitting account-access wording bypass the general
	// classifier; only sentiment decides the route.
	if profile != nil && profile.Flagged && s.matchesAccountAccess(description) {
		cls := &model.IssueClassification{
			SuggestedCategories: []model.CategoryScore{{
				Category:   model.CategoryAccountAccess,
				Confidence: 0.95,
				Reasoning:  "profile flagged for security review",
			}},
			AutoResolvable:   true,
			RouteDecision:    model.RouteAutomated,
			Reasoning:        "flagged profile with account access keywords",
			SuggestedUrgency: model.UrgencyHigh,
			Sentiment:        sent,
		}
		return applyRouting(cls, sent)
	}

	cls := s.classifyWithLLM(ctx, description, profile)
	if cls == nil {
		cls = s.keywordClassify(description)
		metrics.ClassificationsTotal.WithLabelValues("fallback").Inc()
	} else {
		metrics.ClassificationsTotal.WithLabelValues("llm").Inc()
	}

	// Sentiment always recomputes independently and overrides the route.
	cls.Sentiment = sent
	return applyRouting(cls, sent)
}

// applyRouting folds the routing policy back into the classification.
func applyRouting(cls *model.IssueClassification, sent model.SentimentResult) *model.IssueClassification {
	decision := RouteFor(cls, sent)
	if sent.RequiresHuman && decision.Route != cls.RouteDecision {
		cls.Reasoning += "; routed to human due to player sentiment"
	}
	cls.RouteDecision = decision.Route
	cls.AutoResolvable = decision.AutoResolvable
	return cls
}

// classifyWithLLM returns nil whenever the primary path cannot produce a
// usable classification, for any reason.
func (s *ClassifierService) classifyWithLLM(ctx context.Context, description string, profile *model.PlayerProfile) *model.IssueClassification {
	if s.llm == nil {
		return nil
	}

	prompt := buildClassificationPrompt(description, profile)
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil
	}

	block, ok := extractClassificationJSON(raw)
	if !ok {
		return nil
	}

	var parsed llmClassification
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil
	}
	if len(parsed.SuggestedCategories) == 0 {
		return nil
	}

	// Retain at most 3 valid categories with confidence above 0.6.
	var scores []model.CategoryScore
	for _, c := range parsed.SuggestedCategories {
		cat := model.IssueCategory(strings.ToLower(strings.TrimSpace(c.CategoryID)))
		if !model.ValidCategory(cat) || c.Confidence <= 0.6 {
			continue
		}
		scores = append(scores, model.CategoryScore{
			Category:   cat,
			Confidence: c.Confidence,
			Reasoning:  c.Reasoning,
		})
		if len(scores) == 3 {
			break
		}
	}
	if len(scores) == 0 {
		return nil
	}

	route := model.RouteDecision(parsed.RouteDecision)
	if route != model.RouteAutomated && route != model.RouteHuman && route != model.RouteSuggest {
		route = model.RouteHuman
	}
	urgency := model.Urgency(parsed.SuggestedUrgency)
	if urgency != model.UrgencyLow && urgency != model.UrgencyMedium && urgency != model.UrgencyHigh {
		urgency = model.UrgencyMedium
	}

	return &model.IssueClassification{
		SuggestedCategories: scores,
		AutoResolvable:      parsed.AutoResolvable,
		RouteDecision:       route,
		Reasoning:           parsed.Reasoning,
		SuggestedUrgency:    urgency,
	}
}

// keywordClassify is the deterministic fallback. Keyword rules are tested in
// fixed priority order; anything unmatched becomes the conservative default.
func (s *ClassifierService) keywordClassify(description string) *model.IssueClassification {
	lower := strings.ToLower(description)

	for _, rule := range s.rules.KeywordRules {
		if !containsAny(lower, rule.Keywords) {
			continue
		}
		urgency := rule.Urgency
		if rule.Category == model.CategoryTechnical {
			urgency = model.UrgencyMedium
			if strings.Contains(lower, "crash") {
				urgency = model.UrgencyHigh
			}
		}
		route := model.RouteAutomated
		if !rule.AutoResolvable {
			route = model.RouteHuman
		}
		return &model.IssueClassification{
			SuggestedCategories: []model.CategoryScore{{
				Category:   rule.Category,
				Confidence: 0.75,
				Reasoning:  "keyword-based fallback analysis",
			}},
			AutoResolvable:   rule.AutoResolvable,
			RouteDecision:    route,
			Reasoning:        "keyword-based fallback analysis",
			SuggestedUrgency: urgency,
		}
	}

	return &model.IssueClassification{
		SuggestedCategories: []model.CategoryScore{{
			Category:   model.CategoryOther,
			Confidence: 0.5,
			Reasoning:  "keyword-based fallback analysis",
		}},
		AutoResolvable:   false,
		RouteDecision:    model.RouteHuman,
		Reasoning:        "keyword-based fallback analysis",
		SuggestedUrgency: model.UrgencyLow,
	}
}

func (s *ClassifierService) matchesAccountAccess(description string) bool {
	lower := strings.ToLower(description)
	for _, rule := range s.rules.KeywordRules {
		if rule.Category == model.CategoryAccountAccess {
			return containsAny(lower, rule.Keywords)
		}
	}
	return false
}

// buildClassificationPrompt asks for JSON only, enumerating the closed
// category set.
func buildClassificationPrompt(description string, profile *model.PlayerProfile) string {
	var cats []string
	for _, c := range model.AllCategories {
		cats = append(cats, string(c))
	}

	playerCtx := ""
	if profile != nil {
		playerCtx = fmt.Sprintf("\nPlayer context: level %d, VIP %d, total spend %.2f, churn risk %s, %d session days.",
			profile.Level, profile.VIPLevel, profile.TotalSpend, profile.ChurnRisk, profile.SessionDays)
	}

	return fmt.Sprintf(`You are classifying a game customer-support complaint. Return ONLY valid JSON matching this schema:
{
  "suggestedCategories": [{"categoryId": "one of: %s", "confidence": 0.0 to 1.0, "reasoning": "short"}],
  "autoResolvable": true or false,
  "routeDecision": "automated" or "human" or "suggest",
  "reasoning": "one sentence",
  "suggestedUrgency": "low" or "medium" or "high",
  "sentiment": {"tone": "calm|frustrated|angry|urgent", "intensity": 1 to 10}
}

Problem description: %s
%s
Suggest at most 3 categories, best first. Only include a category when confident.`,
		strings.Join(cats, ", "), description, playerCtx)
}
