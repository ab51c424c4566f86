package model

// ImpactLevel is the severity of the reported issue
type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "low"
	ImpactMedium   ImpactLevel = "medium"
	ImpactHigh     ImpactLevel = "high"
	ImpactCritical ImpactLevel = "critical"
)

// CompensationRule is one entry of the static (tier, impact) rule table
type CompensationRule struct {
	Gold             int            `json:"gold" yaml:"gold"`
	Gems             int            `json:"gems" yaml:"gems"`
	Resources        map[string]int `json:"resources,omitempty" yaml:"resources,omitempty"`
	Items            []string       `json:"items,omitempty" yaml:"items,omitempty"`
	VIPPoints        int            `json:"vipPoints" yaml:"vipPoints"`
	Multiplier       float64        `json:"multiplier" yaml:"multiplier"`
	RequiresApproval bool           `json:"requiresApproval" yaml:"requiresApproval"`
}

// CompensationParams are the caller-supplied inputs to the calculator
type CompensationParams struct {
	PlayerLevel int         `json:"player_level"`         // >= 1
	VIPLevel    int         `json:"vip_level"`            // >= 0
	TotalSpend  float64     `json:"total_spend"`          // >= 0
	ChurnRisk   ChurnRisk   `json:"churn_risk,omitempty"` // default low
	ImpactLevel ImpactLevel `json:"impact_level"`
	IsWeekend   bool        `json:"is_weekend,omitempty"`
}

// CalculatedCompensation is the final package. Computed fresh per request.
type CalculatedCompensation struct {
	Gold             int             `json:"gold"`
	Gems             int             `json:"gems"`
	VIPPoints        int             `json:"vipPoints"`
	Resources        map[string]int  `json:"resources,omitempty"`
	Items            []string        `json:"items,omitempty"`
	SpecialOffers    map[string]bool `json:"specialOffers,omitempty"`
	Multiplier       float64         `json:"multiplier"` // tier x churn x weekend, exactly
	Tier             PlayerTier      `json:"tier"`
	RequiresApproval bool            `json:"requiresApproval"`

	// Error flags a recovered rule-lookup miss; the result is still usable.
	Error string `json:"error,omitempty"`
}
