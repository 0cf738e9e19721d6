package model

import "time"

// Notification type tags. RelatedID points at the entity named by the
// tag (penalty record id, pass request id, booking id).
const (
	NotifPenalty = "PENALTY"
	NotifPass    = "PASS"
	NotifBooking = "BOOKING"
)

// Notification is a per-user message created as a side effect of
// penalty issuance and pass/booking decisions. Only the owning user
// may mark it read.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – recipient of the message.
//  Title     – short headline.
//  Message   – optional longer body.
//  Type      – one of the Notif* tags.
//  IsRead    – whether the recipient marked it read.
//  RelatedID – id of the entity the message refers to, if any.
//  CreatedAt – creation timestamp.
//  ReadAt    – when the message was marked read.
type Notification struct {
	ID        uint64     // notifications.id
	UserID    uint64     // notifications.user_id
	Title     string     // notifications.title
	Message   *string    // notifications.message (nullable)
	Type      string     // notifications.type
	IsRead    bool       // notifications.is_read
	RelatedID *uint64    // notifications.related_id (nullable)
	CreatedAt time.Time  // notifications.created_at
	ReadAt    *time.Time // notifications.read_at (nullable)
}
