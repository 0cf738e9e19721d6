// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// Queue names shared by the publisher and the consumer.
const (
	PenaltyIssuedQueue = "penalty.issued"
	PassDecidedQueue   = "pass.decided"
)

// PenaltyIssuedEvent is published after a penalty issuance commits. It
// carries enough for downstream consumers (audit log, parent portal
// export) to act without querying the primary database.
type PenaltyIssuedEvent struct {
	RecordID      uint64   `json:"record_id"`
	IssuedBy      uint64   `json:"issued_by"`
	Points        int      `json:"points"`
	Title         string   `json:"title"`
	IssuedDate    string   `json:"issued_date"`
	TargetUserIDs []uint64 `json:"target_user_ids"`
	IssuedAt      string   `json:"issued_at"`
}

// PassDecidedEvent is published after a pass request is approved or
// rejected.
type PassDecidedEvent struct {
	PassID    uint64 `json:"pass_id"`
	UserID    uint64 `json:"user_id"`
	Type      string `json:"type"`
	PassDate  string `json:"pass_date"`
	Status    string `json:"status"`
	DecidedBy uint64 `json:"decided_by"`
	DecidedAt string `json:"decided_at"`
}
