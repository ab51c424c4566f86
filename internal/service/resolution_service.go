package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"playercare/internal/config"
	"playercare/internal/events"
	"playercare/internal/metrics"
	"playercare/internal/model"
	"playercare/internal/repository"
)

// Ticket prefixes by origin. Shape is always PREFIX-YYYYMMDD-HHMM-NNN.
const (
	TicketPrefixAutomated = "AR"
	TicketPrefixManual    = "CS"
)

// severityBase is the severity-indexed base grant of the VIP-scaled formula
type severityBase struct {
	gold   int
	energy int
}

var severityBases = map[model.Urgency]severityBase{
	model.UrgencyLow:    {gold: 200, energy: 10},  // minor
	model.UrgencyMedium: {gold: 500, energy: 25},  // moderate
	model.UrgencyHigh:   {gold: 1000, energy: 50}, // severe
}

// ResolutionService executes category-specific automated remediation and
// records the outcome as a support ticket. ResolveIssue never fails; cases
// automation cannot handle come back as escalations.
type ResolutionService struct {
	rules   *config.RuleSet
	tickets repository.TicketRepo
	events  *events.Publisher
	now     func() time.Time

	mu  sync.Mutex // guards rng; ResolveIssue runs per-request
	rng *rand.Rand
}

// NewResolutionService creates a resolution engine. tickets and publisher
// may be nil; persistence and event emission are then skipped.
func NewResolutionService(rules *config.RuleSet, tickets repository.TicketRepo, publisher *events.Publisher) *ResolutionService {
	return &ResolutionService{
		rules:   rules,
		tickets: tickets,
		events:  publisher,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ResolveIssue dispatches the intake form to a category handler. Lock-related
// wording takes priority over the declared category.
func (s *ResolutionService) ResolveIssue(ctx context.Context, form *model.IntakeForm, profile *model.PlayerProfile) *model.AutomatedResolution {
	ticketID := s.NewTicketID(TicketPrefixAutomated)
	lower := strings.ToLower(form.ProblemDescription)

	var res *model.Resolution
	if containsAny(lower, s.rules.Lexicons.AccountLock) {
		res = s.resolveAccountLock(form, profile)
	} else {
		switch form.ProblemCategory {
		case model.CategoryAccountAccess:
			res = s.resolveAccountAccess(form, profile)
		case model.CategoryMissingRewards:
			res = s.resolveMissingRewards(profile)
		case model.CategoryPurchaseIssues:
			res = s.resolvePurchaseIssue(profile)
		case model.CategoryTechnical:
			res = s.resolveTechnical(form, profile)
		}
	}

	if res == nil {
		out := &model.AutomatedResolution{
			TicketID:         ticketID,
			Success:          false,
			EscalationReason: fmt.Sprintf("no automated handler for category %q", form.ProblemCategory),
		}
		s.record(ctx, out, form, profile)
		metrics.ResolutionsTotal.WithLabelValues(string(form.ProblemCategory), "escalated").Inc()
		return out
	}

	out := &model.AutomatedResolution{
		TicketID:   ticketID,
		Success:    true,
		Resolution: res,
	}
	s.record(ctx, out, form, profile)
	metrics.ResolutionsTotal.WithLabelValues(string(form.ProblemCategory), "resolved").Inc()
	return out
}

// NewTicketID produces PREFIX-YYYYMMDD-HHMM-NNN with a 3-digit random suffix.
// Global uniqueness is the ticket store's responsibility, not this layer's.
func (s *ResolutionService) NewTicketID(prefix string) string {
	t := s.now()
	return fmt.Sprintf("%s-%s-%s-%03d", prefix, t.Format("20060102"), t.Format("1504"), s.randn(1000))
}

func (s *ResolutionService) randn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *ResolutionService) resolveAccountLock(form *model.IntakeForm, profile *model.PlayerProfile) *model.Resolution {
	if profile != nil && profile.Flagged {
		// Security hold: all compensation withheld until the player verifies.
		code := fmt.Sprintf("%06d", s.randn(1000000))
		return &model.Resolution{
			Category: "account_lock_pending_verification",
			Actions: []string{
				"Account hold confirmed for security review",
				"Verification code sent to the registered email address",
				"Unlock will complete once the code is confirmed",
			},
			Timeline:         "Unlock within minutes of successful verification",
			FollowUp:         "Enter the 6-digit verification code in the support chat to complete the unlock.",
			VerificationCode: code,
		}
	}

	return &model.Resolution{
		Category: "account_unlock",
		Actions: []string{
			"Temporary lock lifted from the account",
			"Recent login attempts reviewed, no suspicious activity found",
			"Password reset link sent to the registered email address",
		},
		Compensation: s.vipScaledCompensation(form.UrgencyLevel, profile),
		Timeline:     "Access restored immediately",
		FollowUp:     "If you still cannot log in after resetting your password, reply here and an agent will assist.",
	}
}

func (s *ResolutionService) resolveAccountAccess(form *model.IntakeForm, profile *model.PlayerProfile) *model.Resolution {
	return &model.Resolution{
		Category: "account_access",
		Actions: []string{
			"Login credentials verified against the account record",
			"Active sessions cleared on all devices",
			"Password reset link sent to the registered email address",
		},
		Compensation: s.vipScaledCompensation(form.UrgencyLevel, profile),
		Timeline:     "Access restored within 5 minutes",
		FollowUp:     "Use the reset link within 24 hours; it expires afterwards.",
	}
}

// resolveMissingRewards uses the event-specific formula: level drives gold,
// VIP level drives gems.
func (s *ResolutionService) resolveMissingRewards(profile *model.PlayerProfile) *model.Resolution {
	level, vip := 1, 0
	if profile != nil {
		level, vip = profile.Level, profile.VIPLevel
	}
	return &model.Resolution{
		Category: "missing_rewards",
		Actions: []string{
			"Event participation log checked and missing rewards confirmed",
			"Original rewards re-issued to the in-game mailbox",
			"Goodwill bonus added for the inconvenience",
		},
		Compensation: &model.ResolutionCompensation{
			Gold:  300 + level*10,
			Gems:  25 + vip*5,
			Items: []string{"missed_event_rewards"},
		},
		Timeline: "Rewards arrive in your mailbox within 10 minutes",
		FollowUp: "Claim the mailbox attachments within 7 days.",
	}
}

// resolvePurchaseIssue uses the purchase-specific formula; the refund itself
// is verified against the payment record before any goodwill grant.
func (s *ResolutionService) resolvePurchaseIssue(profile *model.PlayerProfile) *model.Resolution {
	level, vip := 1, 0
	if profile != nil {
		level, vip = profile.Level, profile.VIPLevel
	}
	return &model.Resolution{
		Category: "purchase_issues",
		Actions: []string{
			"Payment record matched against the store transaction",
			"Undelivered purchase contents re-delivered",
			"Goodwill bonus added for the delay",
		},
		Compensation: &model.ResolutionCompensation{
			Gold: 500 + level*5,
			Gems: 50 + vip*10,
			Note: "Refunds, where applicable, post to the original payment method in 3-5 business days.",
		},
		Timeline: "Purchase contents delivered within 15 minutes",
		FollowUp: "If the store charge still shows as pending after 5 business days, contact us again with the order id.",
	}
}

func (s *ResolutionService) resolveTechnical(form *model.IntakeForm, profile *model.PlayerProfile) *model.Resolution {
	actions := []string{
		"Client diagnostics reviewed for known issues",
		"Server-side session state reset for the account",
		"Cache-clear instructions sent to the device",
	}
	if form.Device != "" {
		actions = append(actions, "Device-specific fix notes attached for "+form.Device)
	}
	return &model.Resolution{
		Category:     "technical",
		Actions:      actions,
		Compensation: s.vipScaledCompensation(form.UrgencyLevel, profile),
		Timeline:     "Fix applied now; restart the game client to pick it up",
		FollowUp:     "If the problem persists after a restart, attach a screenshot and your device model.",
	}
}

// vipScaledCompensation applies the severity base times
// max(1, vip*0.2) times the spender bonus.
func (s *ResolutionService) vipScaledCompensation(urgency model.Urgency, profile *model.PlayerProfile) *model.ResolutionCompensation {
	base, ok := severityBases[urgency]
	if !ok {
		base = severityBases[model.UrgencyLow]
	}

	vipMult := 1.0
	spendMult := 1.0
	if profile != nil {
		if m := float64(profile.VIPLevel) * 0.2; m > vipMult {
			vipMult = m
		}
		if profile.TotalSpend > 100 {
			spendMult = 1.5
		}
	}

	return &model.ResolutionCompensation{
		Gold:   int(math.Round(float64(base.gold) * vipMult * spendMult)),
		Energy: int(math.Round(float64(base.energy) * vipMult * spendMult)),
	}
}

// record persists the ticket and publishes the outcome event. Both are
// best-effort: the resolution result never depends on them.
func (s *ResolutionService) record(ctx context.Context, out *model.AutomatedResolution, form *model.IntakeForm, profile *model.PlayerProfile) {
	playerID := ""
	if profile != nil {
		playerID = profile.ID
	}

	status := model.TicketResolved
	if !out.Success {
		status = model.TicketEscalated
	} else if out.Resolution != nil && out.Resolution.VerificationCode != "" {
		status = model.TicketPending
	}

	ticket := &model.SupportTicket{
		TicketID:         out.TicketID,
		PlayerID:         playerID,
		Category:         form.ProblemCategory,
		Description:      form.ProblemDescription,
		Status:           status,
		Resolution:       out.Resolution,
		EscalationReason: out.EscalationReason,
		CreatedAt:        s.now(),
	}

	if s.tickets != nil {
		if err := s.tickets.Create(ctx, ticket); err != nil {
			log.Printf("ticket persist failed for %s: %v", out.TicketID, err)
		}
	}
	if s.events != nil {
		var err error
		if out.Success {
			err = s.events.PublishResolution(ticket)
		} else {
			err = s.events.PublishEscalation(ticket)
		}
		if err != nil {
			log.Printf("event publish failed for %s: %v", out.TicketID, err)
		}
	}
}
