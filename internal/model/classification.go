package model

// Tone is the detected emotional tone of a player message
type Tone string

const (
	ToneCalm         Tone = "calm"
	ToneFrustrated   Tone = "frustrated"
	ToneAngry        Tone = "angry"
	ToneAgitated     Tone = "agitated"
	ToneUrgent       Tone = "urgent"
	ToneDisappointed Tone = "disappointed"
)

// SentimentResult is derived fresh per message and never persisted by the engine
type SentimentResult struct {
	Tone          Tone `json:"tone"`
	Intensity     int  `json:"intensity"` // 1-10
	RequiresHuman bool `json:"requiresHuman"`
}

// IssueCategory is the closed set of issue categories
type IssueCategory string

const (
	CategoryAccountAccess   IssueCategory = "account_access"
	CategoryMissingRewards  IssueCategory = "missing_rewards"
	CategoryPurchaseIssues  IssueCategory = "purchase_issues"
	CategoryTechnical       IssueCategory = "technical"
	CategoryGameplay        IssueCategory = "gameplay"
	CategoryAccountRecovery IssueCategory = "account_recovery"
	CategoryOther           IssueCategory = "other"
)

// AllCategories lists every valid issue category, in prompt order.
var AllCategories = []IssueCategory{
	CategoryAccountAccess,
	CategoryMissingRewards,
	CategoryPurchaseIssues,
	CategoryTechnical,
	CategoryGameplay,
	CategoryAccountRecovery,
	CategoryOther,
}

// ValidCategory reports whether c is in the closed category set.
func ValidCategory(c IssueCategory) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryScore is one ranked category suggestion
type CategoryScore struct {
	Category   IssueCategory `json:"category"`
	Confidence float64       `json:"confidence"` // 0-1
	Reasoning  string        `json:"reasoning,omitempty"`
}

// RouteDecision says whether a case proceeds without a person
type RouteDecision string

const (
	RouteAutomated RouteDecision = "automated"
	RouteHuman     RouteDecision = "human"
	RouteSuggest   RouteDecision = "suggest" // present category options to the caller
)

// Urgency is the suggested handling urgency for a case
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// IssueClassification is the full classifier output for one problem description
type IssueClassification struct {
	SuggestedCategories []CategoryScore `json:"suggestedCategories"`
	AutoResolvable      bool            `json:"autoResolvable"`
	RouteDecision       RouteDecision   `json:"routeDecision"`
	Reasoning           string          `json:"reasoning"`
	SuggestedUrgency    Urgency         `json:"suggestedUrgency"`
	Sentiment           SentimentResult `json:"sentiment"`
}

// RoutingDecision is the final route after the sentiment override is applied
type RoutingDecision struct {
	Route          RouteDecision `json:"route"`
	AutoResolvable bool          `json:"autoResolvable"`
	Urgency        Urgency       `json:"urgency"`
}
