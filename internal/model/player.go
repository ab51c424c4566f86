package model

import "time"

// PlayerTier is the spend bracket driving base compensation
type PlayerTier string

const (
	TierF2P           PlayerTier = "f2p"
	TierLightSpender  PlayerTier = "light_spender"
	TierMediumSpender PlayerTier = "medium_spender"
	TierWhale         PlayerTier = "whale"
	TierVIPWhale      PlayerTier = "vip_whale"
)

// ChurnRisk is the externally supplied likelihood the player stops playing
type ChurnRisk string

const (
	ChurnLow    ChurnRisk = "low"
	ChurnMedium ChurnRisk = "medium"
	ChurnHigh   ChurnRisk = "high"
)

// PlayerProfile is an immutable snapshot of a player supplied by the caller.
// The engine never mutates it.
type PlayerProfile struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Level       int       `json:"level" bson:"level"`           // >= 1
	VIPLevel    int       `json:"vipLevel" bson:"vipLevel"`     // >= 0
	TotalSpend  float64   `json:"totalSpend" bson:"totalSpend"` // cumulative, currency units
	ChurnRisk   ChurnRisk `json:"churnRisk" bson:"churnRisk"`
	Spender     bool      `json:"spender" bson:"spender"`
	SessionDays int       `json:"sessionDays" bson:"sessionDays"`
	Kingdom     string    `json:"kingdom,omitempty" bson:"kingdom,omitempty"`
	Alliance    string    `json:"alliance,omitempty" bson:"alliance,omitempty"`

	// Flagged marks a profile under security review; account-access issues
	// for flagged profiles require identity verification before any unlock.
	Flagged bool `json:"flagged" bson:"flagged"`

	LastActiveAt time.Time `json:"lastActiveAt,omitempty" bson:"lastActiveAt,omitempty"`
}
