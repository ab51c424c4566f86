package service

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"playercare/internal/config"
	"playercare/internal/model"
)

var ticketIDRe = regexp.MustCompile(`^[A-Z]{2,3}-\d{8}-\d{4}-\d{3}$`)

func newTestResolution() *ResolutionService {
	return NewResolutionService(config.DefaultRules(), nil, nil)
}

func TestResolveAccountAccess(t *testing.T) {
	svc := newTestResolution()

	out := svc.ResolveIssue(context.Background(), &model.IntakeForm{
		IdentityConfirmed:  true,
		ProblemCategory:    model.CategoryAccountAccess,
		ProblemDescription: "I forgot my password and the reset email never came",
		UrgencyLevel:       model.UrgencyHigh,
	}, nil)

	if !out.Success {
		t.Fatalf("success = false, escalation: %s", out.EscalationReason)
	}
	if !ticketIDRe.MatchString(out.TicketID) {
		t.Errorf("ticketId %q does not match the required shape", out.TicketID)
	}
	if out.Resolution == nil || len(out.Resolution.Actions) == 0 {
		t.Fatal("expected ordered actions")
	}
	if out.Resolution.Compensation == nil {
		t.Error("expected a compensation block")
	}
}

func TestResolveUnknownCategoryEscalates(t *testing.T) {
	svc := newTestResolution()

	for _, category := range []model.IssueCategory{model.CategoryOther, model.CategoryGameplay, "made_up_category"} {
		out := svc.ResolveIssue(context.Background(), &model.IntakeForm{
			ProblemCategory:    category,
			ProblemDescription: "something automation has no handler for",
			UrgencyLevel:       model.UrgencyLow,
		}, nil)

		if out.Success {
			t.Errorf("category %q should escalate", category)
		}
		if out.EscalationReason == "" {
			t.Errorf("category %q needs an escalation reason", category)
		}
		if !ticketIDRe.MatchString(out.TicketID) {
			t.Errorf("escalation ticketId %q malformed", out.TicketID)
		}
	}
}

func TestResolveLockSubflowOverridesCategory(t *testing.T) {
	svc := newTestResolution()

	// Declared as technical, but the description is about a lock.
	out := svc.ResolveIssue(context.Background(), &model.IntakeForm{
		ProblemCategory:    model.CategoryTechnical,
		ProblemDescription: "my account got locked after the update",
		UrgencyLevel:       model.UrgencyMedium,
	}, nil)

	if !out.Success {
		t.Fatal("lock sub-flow should resolve")
	}
	if out.Resolution.Category != "account_unlock" {
		t.Errorf("category label = %q, want account_unlock", out.Resolution.Category)
	}
	if out.Resolution.Compensation == nil {
		t.Error("standard unlock should include compensation")
	}
}

func TestResolveFlaggedProfileWithholdsCompensation(t *testing.T) {
	svc := newTestResolution()
	flagged := &model.PlayerProfile{ID: "p4", Name: "ShadowReaper", Level: 41, VIPLevel: 7, TotalSpend: 620, Flagged: true}

	out := svc.ResolveIssue(context.Background(), &model.IntakeForm{
		ProblemCategory:    model.CategoryAccountAccess,
		ProblemDescription: "my account is locked and I want it back",
		UrgencyLevel:       model.UrgencyHigh,
	}, flagged)

	if !out.Success {
		t.Fatal("flagged lock flow should still succeed")
	}
	if out.Resolution.Category != "account_lock_pending_verification" {
		t.Errorf("category label = %q", out.Resolution.Category)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(out.Resolution.VerificationCode) {
		t.Errorf("verification code %q is not 6 digits", out.Resolution.VerificationCode)
	}
	if out.Resolution.Compensation != nil {
		t.Error("compensation must be withheld until verification")
	}
}

func TestResolveVIPScaledCompensation(t *testing.T) {
	svc := newTestResolution()
	profile := &model.PlayerProfile{ID: "p3", Level: 55, VIPLevel: 10, TotalSpend: 500}

	out := svc.ResolveIssue(context.Background(), &model.IntakeForm{
		ProblemCategory:    model.CategoryTechnical,
		ProblemDescription: "constant disconnects during rallies",
		UrgencyLevel:       model.UrgencyHigh,
	}, profile)

	comp := out.Resolution.Compensation
	// severe base 1000 gold / 50 energy, vip 10 -> x2.0, spend > 100 -> x1.5
	if comp.Gold != 3000 {
		t.Errorf("gold = %d, want 3000", comp.Gold)
	}
	if comp.Energy != 150 {
		t.Errorf("energy = %d, want 150", comp.Energy)
	}
}

func TestResolveMissingRewardsFormula(t *testing.T) {
	svc := newTestResolution()
	profile := &model.PlayerProfile{ID: "p2", Level: 28, VIPLevel: 2, TotalSpend: 29.99}

	out := svc.ResolveIssue(context.Background(), &model.IntakeForm{
		ProblemCategory:    model.CategoryMissingRewards,
		ProblemDescription: "event chest never showed up in my mailbox",
		UrgencyLevel:       model.UrgencyMedium,
	}, profile)

	comp := out.Resolution.Compensation
	if comp.Gold != 300+28*10 {
		t.Errorf("gold = %d, want level-scaled %d", comp.Gold, 300+28*10)
	}
	if comp.Gems != 25+2*5 {
		t.Errorf("gems = %d, want vip-scaled %d", comp.Gems, 25+2*5)
	}
}

func TestResolveIssueConcurrent(t *testing.T) {
	svc := newTestResolution()
	form := &model.IntakeForm{
		ProblemCategory:    model.CategoryMissingRewards,
		ProblemDescription: "daily chest rewards did not show up",
		UrgencyLevel:       model.UrgencyMedium,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				out := svc.ResolveIssue(context.Background(), form, nil)
				if !ticketIDRe.MatchString(out.TicketID) {
					t.Errorf("ticketId %q malformed", out.TicketID)
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewTicketIDPrefixes(t *testing.T) {
	svc := newTestResolution()

	auto := svc.NewTicketID(TicketPrefixAutomated)
	manual := svc.NewTicketID(TicketPrefixManual)

	if !ticketIDRe.MatchString(auto) || !ticketIDRe.MatchString(manual) {
		t.Fatalf("malformed ticket ids: %q %q", auto, manual)
	}
	if auto[:3] != "AR-" {
		t.Errorf("automated prefix wrong: %q", auto)
	}
	if manual[:3] != "CS-" {
		t.Errorf("manual prefix wrong: %q", manual)
	}
}
