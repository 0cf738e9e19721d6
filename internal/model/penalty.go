package model

import "time"

// PenaltyReason is a catalog entry curated by staff. Points are
// signed: positive values are demerits, negative values are merits.
//
// Fields:
//  ID        – primary key identifier.
//  Title     – short description shown to students.
//  Points    – signed point value inherited by records.
//  Category  – free-form grouping (attendance, dormitory, ...).
//  IsActive  – inactive reasons cannot be issued against.
//  CreatedAt – creation timestamp.
type PenaltyReason struct {
	ID        uint64    // penalty_reasons.id
	Title     string    // penalty_reasons.title
	Points    int       // penalty_reasons.points
	Category  string    // penalty_reasons.category
	IsActive  bool      // penalty_reasons.is_active
	CreatedAt time.Time // penalty_reasons.created_at
}

// PenaltyRecord is one issuance event in the append-only ledger. A
// record either references a catalog reason or carries an ad-hoc
// description; either way the signed point value is frozen on the row
// so later catalog edits cannot rewrite history.
//
// Fields:
//  ID          – primary key identifier.
//  ReasonID    – catalog reason, NULL for ad-hoc records.
//  IssuedBy    – staff member who issued the record.
//  Points      – signed point value at issuance time.
//  Description – ad-hoc title, NULL when ReasonID is set.
//  IssuedDate  – calendar day of issuance.
//  CreatedAt   – creation timestamp.
type PenaltyRecord struct {
	ID          uint64    // penalty_records.id
	ReasonID    *uint64   // penalty_records.reason_id (nullable)
	IssuedBy    uint64    // penalty_records.issued_by
	Points      int       // penalty_records.points
	Description *string   // penalty_records.description (nullable)
	IssuedDate  string    // penalty_records.issued_date (YYYY-MM-DD)
	CreatedAt   time.Time // penalty_records.created_at
}

// PenaltyRecordTarget joins one record to one targeted user; a record
// may target many users, unique per (record, user).
type PenaltyRecordTarget struct {
	ID       uint64 // penalty_record_targets.id
	RecordID uint64 // penalty_record_targets.record_id
	UserID   uint64 // penalty_record_targets.user_id
}
