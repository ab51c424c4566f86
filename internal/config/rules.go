package config

import (
	"fmt"
	"os"

	"playercare/internal/model"

	"gopkg.in/yaml.v3"
)

// KeywordRule maps description substrings to a category in fixed priority order
type KeywordRule struct {
	Keywords       []string            `yaml:"keywords"`
	Category       model.IssueCategory `yaml:"category"`
	Urgency        model.Urgency       `yaml:"urgency"`
	AutoResolvable bool                `yaml:"autoResolvable"`
}

// Lexicons are the keyword lists driving the sentiment heuristics
type Lexicons struct {
	Anger       []string `yaml:"anger"`
	Frustration []string `yaml:"frustration"`
	Urgency     []string `yaml:"urgency"`
	AccountLock []string `yaml:"accountLock"`
}

// RuleSet is the read-only configuration injected into the engines.
// Loaded once at startup; never mutated afterwards.
type RuleSet struct {
	Compensation      map[model.PlayerTier]map[model.ImpactLevel]model.CompensationRule `yaml:"compensation"`
	ChurnMultipliers  map[model.ChurnRisk]float64                                       `yaml:"churnMultipliers"`
	WeekendMultiplier float64                                                           `yaml:"weekendMultiplier"`
	KeywordRules      []KeywordRule                                                     `yaml:"keywordRules"`
	Lexicons          Lexicons                                                          `yaml:"lexicons"`
}

// DefaultRules returns the built-in rule tables and lexicons.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Compensation: map[model.PlayerTier]map[model.ImpactLevel]model.CompensationRule{
			model.TierF2P: {
				model.ImpactLow:    {Gold: 100, Multiplier: 1.0},
				model.ImpactMedium: {Gold: 300, Gems: 10, Multiplier: 1.0},
				model.ImpactHigh:   {Gold: 500, Gems: 50, Resources: map[string]int{"food": 1000, "wood": 1000}, Multiplier: 1.0},
			},
			model.TierLightSpender: {
				model.ImpactLow:    {Gold: 200, Gems: 10, Multiplier: 1.2},
				model.ImpactMedium: {Gold: 500, Gems: 30, Multiplier: 1.2},
				model.ImpactHigh:   {Gold: 1000, Gems: 100, Resources: map[string]int{"food": 2000, "wood": 2000}, Items: []string{"speedup_1h"}, Multiplier: 1.2},
			},
			model.TierMediumSpender: {
				model.ImpactLow:    {Gold: 500, Gems: 50, Multiplier: 1.5},
				model.ImpactMedium: {Gold: 1000, Gems: 100, VIPPoints: 10, Multiplier: 1.5},
				model.ImpactHigh:   {Gold: 2000, Gems: 200, VIPPoints: 20, Resources: map[string]int{"food": 5000, "wood": 5000, "stone": 2000}, Items: []string{"speedup_3h"}, Multiplier: 1.5},
			},
			model.TierWhale: {
				model.ImpactLow:    {Gold: 1000, Gems: 100, VIPPoints: 20, Multiplier: 2.0},
				model.ImpactMedium: {Gold: 2000, Gems: 300, VIPPoints: 50, Items: []string{"speedup_8h"}, Multiplier: 2.0},
				model.ImpactHigh:   {Gold: 5000, Gems: 500, VIPPoints: 100, Resources: map[string]int{"food": 10000, "wood": 10000, "stone": 5000}, Items: []string{"speedup_24h", "legendary_chest"}, Multiplier: 2.0, RequiresApproval: true},
			},
			model.TierVIPWhale: {
				model.ImpactLow:    {Gold: 2000, Gems: 200, VIPPoints: 50, Multiplier: 3.0},
				model.ImpactMedium: {Gold: 5000, Gems: 500, VIPPoints: 100, Items: []string{"speedup_24h"}, Multiplier: 3.0, RequiresApproval: true},
				model.ImpactHigh:   {Gold: 10000, Gems: 1000, VIPPoints: 200, Resources: map[string]int{"food": 20000, "wood": 20000, "stone": 10000}, Items: []string{"speedup_24h", "legendary_chest", "teleport_advanced"}, Multiplier: 3.0, RequiresApproval: true},
			},
		},
		ChurnMultipliers: map[model.ChurnRisk]float64{
			model.ChurnLow:    1.0,
			model.ChurnMedium: 1.25,
			model.ChurnHigh:   1.5,
		},
		WeekendMultiplier: 1.1,
		KeywordRules: []KeywordRule{
			{Keywords: []string{"login", "password", "locked", "can't log", "cannot log"}, Category: model.CategoryAccountAccess, Urgency: model.UrgencyHigh, AutoResolvable: true},
			{Keywords: []string{"reward", "missing", "didn't receive", "did not receive"}, Category: model.CategoryMissingRewards, Urgency: model.UrgencyMedium, AutoResolvable: true},
			{Keywords: []string{"purchase", "payment", "refund", "charged"}, Category: model.CategoryPurchaseIssues, Urgency: model.UrgencyHigh, AutoResolvable: true},
			{Keywords: []string{"crash", "lag", "connection", "freeze"}, Category: model.CategoryTechnical, Urgency: model.UrgencyMedium, AutoResolvable: true},
			{Keywords: []string{"gameplay", "bug", "balance", "unfair"}, Category: model.CategoryGameplay, Urgency: model.UrgencyLow, AutoResolvable: false},
			{Keywords: []string{"lost", "restore", "recovery", "deleted"}, Category: model.CategoryAccountRecovery, Urgency: model.UrgencyHigh, AutoResolvable: false},
		},
		Lexicons: Lexicons{
			Anger:       []string{"furious", "pissed", "outraged", "scam", "stolen", "ridiculous", "worst", "hate", "garbage", "trash"},
			Frustration: []string{"frustrated", "annoying", "annoyed", "tired of", "fed up", "again", "still broken", "disappointed"},
			Urgency:     []string{"urgent", "immediately", "asap", "right now", "emergency"},
			AccountLock: []string{"locked", "lock", "suspended", "banned", "can't access", "cannot access"},
		},
	}
}

// LoadRules reads a YAML rule file layered over the defaults. Sections
// present in the file replace the corresponding default section wholesale.
func LoadRules(path string) (*RuleSet, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var override RuleSet
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(override.Compensation) > 0 {
		rules.Compensation = override.Compensation
	}
	if len(override.ChurnMultipliers) > 0 {
		rules.ChurnMultipliers = override.ChurnMultipliers
	}
	if override.WeekendMultiplier > 0 {
		rules.WeekendMultiplier = override.WeekendMultiplier
	}
	if len(override.KeywordRules) > 0 {
		rules.KeywordRules = override.KeywordRules
	}
	if len(override.Lexicons.Anger) > 0 {
		rules.Lexicons = override.Lexicons
	}
	return rules, nil
}
