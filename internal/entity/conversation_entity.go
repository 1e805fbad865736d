package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationLog is one turn of one session, user or assistant side.
type ConversationLog struct {
	Id        uuid.UUID
	SessionID string
	UserId    uuid.UUID
	Role      string // "user" or "assistant"
	Message   string
	Intent    string
	Entities  map[string]string
	CreatedAt time.Time
}

// SessionSummary is one row of a user's session list, aggregated from
// the conversation log.
type SessionSummary struct {
	SessionID    string
	Turns        int
	LastActivity time.Time
}

type EscalationStatus string

const (
	EscalationStatusPending  EscalationStatus = "pending"
	EscalationStatusNotified EscalationStatus = "notified"
	EscalationStatusClosed   EscalationStatus = "closed"
)

// Escalation is a human-handoff request with the transcript the agent
// picks up from.
type Escalation struct {
	Id         uuid.UUID
	SessionID  string
	UserId     uuid.UUID
	Status     EscalationStatus
	Transcript []TranscriptEntry
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type TranscriptEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
