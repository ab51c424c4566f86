package service

import (
	"math"

	"playercare/internal/config"
	"playercare/internal/model"
)

// CompensationService computes tiered compensation packages from the static
// rule table. Stateless; every call is independent.
type CompensationService struct {
	rules *config.RuleSet
}

// NewCompensationService creates a calculator over the given rule set.
func NewCompensationService(rules *config.RuleSet) *CompensationService {
	return &CompensationService{rules: rules}
}

// ClassifyTier maps cumulative spend to a tier. Thresholds are total-ordered
// and exhaustive: every non-negative spend maps to exactly one tier.
func ClassifyTier(totalSpend float64) model.PlayerTier {
	switch {
	case totalSpend <= 0:
		return model.TierF2P
	case totalSpend < 50:
		return model.TierLightSpender
	case totalSpend < 500:
		return model.TierMediumSpender
	case totalSpend < 2000:
		return model.TierWhale
	default:
		return model.TierVIPWhale
	}
}

// Calculate validates params, resolves the (tier, impact) rule and composes
// the final package. Returns a *model.ValidationError on out-of-domain input.
func (s *CompensationService) Calculate(params model.CompensationParams) (*model.CalculatedCompensation, error) {
	if params.ChurnRisk == "" {
		params.ChurnRisk = model.ChurnLow
	}

	if params.PlayerLevel < 1 {
		return nil, model.NewValidationError("player_level", "must be at least 1")
	}
	if params.VIPLevel < 0 {
		return nil, model.NewValidationError("vip_level", "must not be negative")
	}
	if params.TotalSpend < 0 {
		return nil, model.NewValidationError("total_spend", "must not be negative")
	}
	churnMult, ok := s.rules.ChurnMultipliers[params.ChurnRisk]
	if !ok {
		return nil, model.NewValidationError("churn_risk", "unknown value "+string(params.ChurnRisk))
	}
	switch params.ImpactLevel {
	case model.ImpactLow, model.ImpactMedium, model.ImpactHigh, model.ImpactCritical:
	default:
		return nil, model.NewValidationError("impact_level", "unknown value "+string(params.ImpactLevel))
	}

	tier := ClassifyTier(params.TotalSpend)
	rule, ruleMiss := s.lookupRule(tier, params.ImpactLevel)

	weekendMult := 1.0
	if params.IsWeekend {
		weekendMult = s.rules.WeekendMultiplier
	}
	totalMult := rule.Multiplier * churnMult * weekendMult

	result := &model.CalculatedCompensation{
		Gold:             roundScaled(rule.Gold, totalMult),
		Gems:             roundScaled(rule.Gems, totalMult),
		VIPPoints:        roundScaled(rule.VIPPoints, totalMult),
		Resources:        copyResources(rule.Resources),
		Items:            append([]string(nil), rule.Items...),
		Multiplier:       totalMult,
		Tier:             tier,
		RequiresApproval: rule.RequiresApproval,
	}

	if ruleMiss {
		result.Error = "No matching rule found, using fallback"
		result.RequiresApproval = false
	}

	switch tier {
	case model.TierWhale:
		result.SpecialOffers = map[string]bool{"discount_10_percent": true}
	case model.TierVIPWhale:
		result.SpecialOffers = map[string]bool{
			"discount_10_percent":     true,
			"exclusive_bundle_unlock": true,
			"vip_support_priority":    true,
		}
	}

	return result, nil
}

// lookupRule resolves (tier, impact) with the documented fallback chain:
// critical falls back to the tier's high rule, and a total miss falls back
// to the global f2p/low default.
func (s *CompensationService) lookupRule(tier model.PlayerTier, impact model.ImpactLevel) (model.CompensationRule, bool) {
	if tierRules, ok := s.rules.Compensation[tier]; ok {
		if rule, ok := tierRules[impact]; ok {
			return rule, false
		}
		if impact == model.ImpactCritical {
			if rule, ok := tierRules[model.ImpactHigh]; ok {
				return rule, true
			}
		}
	}
	if defaults, ok := s.rules.Compensation[model.TierF2P]; ok {
		if rule, ok := defaults[model.ImpactLow]; ok {
			return rule, true
		}
	}
	return model.CompensationRule{Multiplier: 1.0}, true
}

// roundScaled rounds half away from zero.
func roundScaled(base int, mult float64) int {
	return int(math.Round(float64(base) * mult))
}

func copyResources(src map[string]int) map[string]int {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
