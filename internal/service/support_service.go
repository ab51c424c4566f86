package service

import (
	"context"
	"strings"

	"playercare/internal/metrics"
	"playercare/internal/model"
)

// minProblemLen is the minimum description length treated as a real issue.
const minProblemLen = 10

// ReplyGenerator produces a conversational reply from typed turns.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, turns []model.ChatTurn) (string, error)
}

// SupportService composes the engines into the chat-analysis operations the
// page layer consumes.
type SupportService struct {
	classifier   *ClassifierService
	sentiment    *SentimentAnalyzer
	compensation *CompensationService
	generator    ReplyGenerator
	parser       *ReplyParser
}

// NewSupportService wires the chat-path facade.
func NewSupportService(classifier *ClassifierService, sentiment *SentimentAnalyzer, compensation *CompensationService, generator ReplyGenerator, parser *ReplyParser) *SupportService {
	return &SupportService{
		classifier:   classifier,
		sentiment:    sentiment,
		compensation: compensation,
		generator:    generator,
		parser:       parser,
	}
}

// AnalyzeMessage inspects one freeform player message. Short messages are
// not treated as complaints; everything else is classified, scored for
// sentiment, and, when auto-resolvable, paired with a suggested
// compensation package.
func (s *SupportService) AnalyzeMessage(ctx context.Context, text string, profile *model.PlayerProfile) *model.MessageAnalysis {
	if len(strings.TrimSpace(text)) < minProblemLen {
		return &model.MessageAnalysis{IssueDetected: false}
	}

	sent := s.sentiment.Analyze(text)
	cls := s.classifier.ClassifyProblem(ctx, text, profile)

	issueDetected := len(cls.SuggestedCategories) > 0 &&
		cls.SuggestedCategories[0].Category != model.CategoryOther

	analysis := &model.MessageAnalysis{
		IssueDetected: issueDetected,
		Sentiment:     &sent,
	}
	if !issueDetected {
		return analysis
	}
	analysis.Issue = cls

	if sent.RequiresHuman {
		metrics.EscalationsTotal.Inc()
	}

	if cls.AutoResolvable && !sent.RequiresHuman && profile != nil {
		comp, err := s.compensation.Calculate(model.CompensationParams{
			PlayerLevel: profile.Level,
			VIPLevel:    profile.VIPLevel,
			TotalSpend:  profile.TotalSpend,
			ChurnRisk:   profile.ChurnRisk,
			ImpactLevel: impactForUrgency(cls.SuggestedUrgency),
		})
		if err == nil {
			analysis.Compensation = comp
		}
	}

	return analysis
}

// GenerateReply asks the generation collaborator for a three-section reply
// and parses it. A generation failure surfaces ErrGenerationUnavailable;
// there is no fallback text for a conversational reply.
func (s *SupportService) GenerateReply(ctx context.Context, message string, profile *model.PlayerProfile) (*model.ParsedReply, error) {
	turns := buildReplyTurns(message, profile)
	raw, err := s.generator.GenerateReply(ctx, turns)
	if err != nil {
		return nil, err
	}
	parsed := s.parser.Parse(raw)
	return &parsed, nil
}

// buildReplyTurns assembles the typed conversation sent to the generator.
func buildReplyTurns(message string, profile *model.PlayerProfile) []model.ChatTurn {
	system := "You are a game customer-support agent. Reply in exactly three segments separated by a line containing only ---: " +
		"first acknowledge the player's problem, then give step-by-step instructions, then describe any compensation. " +
		"Do not write section headers or labels. Do not repeat yourself."
	if profile != nil {
		system += " The player is " + profile.Name + "."
	}
	return []model.ChatTurn{
		{Role: model.RoleSystem, Content: system},
		{Role: model.RoleHuman, Content: message},
	}
}

func impactForUrgency(u model.Urgency) model.ImpactLevel {
	switch u {
	case model.UrgencyHigh:
		return model.ImpactHigh
	case model.UrgencyMedium:
		return model.ImpactMedium
	default:
		return model.ImpactLow
	}
}
