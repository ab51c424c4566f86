package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"playercare/internal/config"
	"playercare/internal/model"
)

// stubReplyGenerator returns canned reply text
type stubReplyGenerator struct {
	reply string
	err   error
}

func (s *stubReplyGenerator) GenerateReply(ctx context.Context, turns []model.ChatTurn) (string, error) {
	return s.reply, s.err
}

func newTestSupport(gen ReplyGenerator) *SupportService {
	rules := config.DefaultRules()
	sentiment := NewSentimentAnalyzer(rules)
	classifier := NewClassifierService(rules, sentiment, nil)
	compensation := NewCompensationService(rules)
	return NewSupportService(classifier, sentiment, compensation, gen, NewReplyParser())
}

func TestAnalyzeMessageShortText(t *testing.T) {
	svc := newTestSupport(nil)

	got := svc.AnalyzeMessage(context.Background(), "hi", nil)
	if got.IssueDetected {
		t.Error("short text should not be treated as a complaint")
	}
	if got.Issue != nil || got.Compensation != nil {
		t.Error("short text should carry no classification")
	}
}

func TestAnalyzeMessageAutoResolvableGetsCompensation(t *testing.T) {
	svc := newTestSupport(nil)
	profile := &model.PlayerProfile{ID: "p1", Name: "CasualKnight", Level: 5, TotalSpend: 0, ChurnRisk: model.ChurnLow}

	got := svc.AnalyzeMessage(context.Background(), "the event reward never arrived for me", profile)

	if !got.IssueDetected {
		t.Fatal("expected an issue")
	}
	if got.Issue.SuggestedCategories[0].Category != model.CategoryMissingRewards {
		t.Errorf("category = %v", got.Issue.SuggestedCategories[0].Category)
	}
	if got.Compensation == nil {
		t.Fatal("auto-resolvable issue should suggest compensation")
	}
	// f2p, medium impact from medium urgency
	if got.Compensation.Gold != 300 {
		t.Errorf("gold = %d, want 300", got.Compensation.Gold)
	}
}

func TestAnalyzeMessageAngryPlayerSkipsCompensation(t *testing.T) {
	svc := newTestSupport(nil)
	profile := &model.PlayerProfile{ID: "p1", Name: "CasualKnight", Level: 5, ChurnRisk: model.ChurnLow}

	got := svc.AnalyzeMessage(context.Background(), "my payment is gone, this is a scam and you are the worst", profile)

	if !got.IssueDetected {
		t.Fatal("expected an issue")
	}
	if got.Issue.RouteDecision != model.RouteHuman {
		t.Errorf("route = %v, want human", got.Issue.RouteDecision)
	}
	if got.Compensation != nil {
		t.Error("cases routed to a human must not pre-commit compensation")
	}
}

func TestAnalyzeMessageNoIssueForUnmatchedText(t *testing.T) {
	svc := newTestSupport(nil)

	got := svc.AnalyzeMessage(context.Background(), "I just wanted to say the new map looks great", nil)
	if got.IssueDetected {
		t.Error("praise is not an issue")
	}
	if got.Sentiment == nil {
		t.Error("sentiment should still be reported")
	}
}

func TestGenerateReplyParsesSections(t *testing.T) {
	svc := newTestSupport(&stubReplyGenerator{
		reply: "Sorry about the missing gems.\n---\nWe re-sent them to your mailbox.\n---\nPlus 20 bonus gems.",
	})

	got, err := svc.GenerateReply(context.Background(), "my gems are missing", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProblemSummary != "Sorry about the missing gems." {
		t.Errorf("problem = %q", got.ProblemSummary)
	}
	if !got.HasCompensation {
		t.Error("expected compensation segment")
	}
}

func TestGenerateReplySurfacesUnavailable(t *testing.T) {
	svc := newTestSupport(&stubReplyGenerator{err: ErrGenerationUnavailable})

	_, err := svc.GenerateReply(context.Background(), "help me", nil)
	if !errors.Is(err, ErrGenerationUnavailable) {
		t.Fatalf("expected ErrGenerationUnavailable, got %v", err)
	}
}

func TestBuildReplyTurnsForbidsHeaders(t *testing.T) {
	profile := &model.PlayerProfile{Name: "IronFalcon"}
	turns := buildReplyTurns("my purchase failed", profile)

	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if turns[0].Role != model.RoleSystem || turns[1].Role != model.RoleHuman {
		t.Errorf("roles = %v/%v", turns[0].Role, turns[1].Role)
	}
	system := turns[0].Content
	for _, needle := range []string{"---", "IronFalcon"} {
		if !strings.Contains(system, needle) {
			t.Errorf("system turn missing %q", needle)
		}
	}
}
