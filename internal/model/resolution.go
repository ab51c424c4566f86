package model

import "time"

// IntakeForm is the structured complaint a player submits for automated handling
type IntakeForm struct {
	IdentityConfirmed  bool          `json:"identityConfirmed"`
	ProblemCategory    IssueCategory `json:"problemCategory"`
	ProblemDescription string        `json:"problemDescription"`
	UrgencyLevel       Urgency       `json:"urgencyLevel"`
	Device             string        `json:"device,omitempty"`
	Feature            string        `json:"feature,omitempty"`
}

// ResolutionCompensation is the concrete grant attached to an automated resolution
type ResolutionCompensation struct {
	Gold   int      `json:"gold"`
	Gems   int      `json:"gems,omitempty"`
	Energy int      `json:"energy,omitempty"`
	Items  []string `json:"items,omitempty"`
	Note   string   `json:"note,omitempty"`
}

// Resolution describes what the automation did for the player
type Resolution struct {
	Category     string                  `json:"category"` // human-readable label
	Actions      []string                `json:"actions"`  // ordered, plain language
	Compensation *ResolutionCompensation `json:"compensation,omitempty"`
	Timeline     string                  `json:"timeline"`
	FollowUp     string                  `json:"followUp"`

	// VerificationCode is set only by the flagged-profile account-lock flow;
	// compensation is withheld until the player verifies.
	VerificationCode string `json:"verificationCode,omitempty"`
}

// AutomatedResolution is the outcome of one ResolveIssue call
type AutomatedResolution struct {
	TicketID         string      `json:"ticketId"`
	Success          bool        `json:"success"`
	Resolution       *Resolution `json:"resolution,omitempty"`
	EscalationReason string      `json:"escalationReason,omitempty"`
}

// TicketStatus is the lifecycle state of a persisted ticket
type TicketStatus string

const (
	TicketResolved  TicketStatus = "resolved"
	TicketEscalated TicketStatus = "escalated"
	TicketPending   TicketStatus = "pending_verification"
)

// SupportTicket is the persisted record of a handled case
type SupportTicket struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	TicketID         string        `json:"ticketId" bson:"ticketId"` // PREFIX-YYYYMMDD-HHMM-NNN
	PlayerID         string        `json:"playerId" bson:"playerId"`
	Category         IssueCategory `json:"category" bson:"category"`
	Description      string        `json:"description" bson:"description"`
	Status           TicketStatus  `json:"status" bson:"status"`
	Resolution       *Resolution   `json:"resolution,omitempty" bson:"resolution,omitempty"`
	EscalationReason string        `json:"escalationReason,omitempty" bson:"escalationReason,omitempty"`
	CreatedAt        time.Time     `json:"createdAt" bson:"createdAt"`
}
