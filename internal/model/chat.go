package model

import "time"

// Role tags one turn of a support conversation
type Role string

const (
	RoleSystem    Role = "System"
	RoleHuman     Role = "Human"
	RoleAssistant Role = "Assistant"
)

// ChatTurn is a single role-tagged turn. Prompts are assembled from typed
// turns and flattened to text only at the generation boundary.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ParsedReply is the validated 3-part split of a freeform generated reply
type ParsedReply struct {
	ProblemSummary   string `json:"problemSummary"`
	Solution         string `json:"solution"`
	CompensationText string `json:"compensationText"`
	HasCompensation  bool   `json:"hasCompensation"`
}

// MessageAnalysis is the chat-path analysis of one player message
type MessageAnalysis struct {
	IssueDetected bool                    `json:"issueDetected"`
	Issue         *IssueClassification    `json:"issue,omitempty"`
	Sentiment     *SentimentResult        `json:"sentiment,omitempty"`
	Compensation  *CalculatedCompensation `json:"compensation,omitempty"`
}

// SupportSession is the cached state of one player's support conversation
type SupportSession struct {
	ID           string           `json:"id"`
	PlayerID     string           `json:"playerId"`
	Turns        []ChatTurn       `json:"turns"`
	LastAnalysis *MessageAnalysis `json:"lastAnalysis,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
