package service

import (
	"strings"
	"unicode"

	"playercare/internal/config"
	"playercare/internal/model"
)

// SentimentAnalyzer derives tone, intensity and the human-required flag from
// raw message text. It is the single source of truth for sentiment: both the
// chat-analysis path and the classifier fallback call it. It never fails;
// text matching no pattern yields the calm default.
type SentimentAnalyzer struct {
	lex config.Lexicons
}

// NewSentimentAnalyzer creates an analyzer over the configured lexicons.
func NewSentimentAnalyzer(rules *config.RuleSet) *SentimentAnalyzer {
	return &SentimentAnalyzer{lex: rules.Lexicons}
}

// Analyze classifies one message. Rules apply in priority order: anger,
// frustration, urgency, calm. Account-lock wording raises the baseline
// intensity before the rules adjust it further.
func (a *SentimentAnalyzer) Analyze(text string) model.SentimentResult {
	lower := strings.ToLower(text)

	// Locks are inherently stressful; bias intensity upward.
	lockBias := 0
	if containsAny(lower, a.lex.AccountLock) {
		lockBias = 1
	}

	exclamations := strings.Count(text, "!")
	shouting := hasConsecutiveUpper(text, 3) && exclamations > 1

	if containsAny(lower, a.lex.Anger) || shouting {
		intensity := 8
		if shouting || lockBias > 0 {
			intensity = 9
		}
		return model.SentimentResult{Tone: model.ToneAngry, Intensity: intensity, RequiresHuman: true}
	}

	if containsAny(lower, a.lex.Frustration) || exclamations > 1 {
		return model.SentimentResult{Tone: model.ToneFrustrated, Intensity: 7, RequiresHuman: true}
	}

	if containsAny(lower, a.lex.Urgency) {
		return model.SentimentResult{Tone: model.ToneUrgent, Intensity: 7, RequiresHuman: false}
	}

	return model.SentimentResult{Tone: model.ToneCalm, Intensity: 3 + lockBias, RequiresHuman: false}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// hasConsecutiveUpper reports whether text contains a run of at least n
// consecutive uppercase letters.
func hasConsecutiveUpper(text string, n int) bool {
	run := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
