package model

import "time"

// Pass request types. SPECIAL_ROOM covers after-hours use of labs and
// music rooms; the RESEARCH_* variants are outings tied to research
// programmes and follow the same state machine.
const (
	PassSpecialRoom       = "SPECIAL_ROOM"
	PassOuting            = "OUTING"
	PassOvernight         = "OVERNIGHT"
	PassResearchOuting    = "RESEARCH_OUTING"
	PassResearchOvernight = "RESEARCH_OVERNIGHT"
)

// Visibility scopes for pass requests. PUBLIC and LINK passes show up
// on the shared calendar while still pending or approved.
const (
	SharePrivate = "PRIVATE"
	ShareLink    = "LINK"
	SharePublic  = "PUBLIC"
)

// ValidPassType reports whether t is one of the recognised pass types.
func ValidPassType(t string) bool {
	switch t {
	case PassSpecialRoom, PassOuting, PassOvernight, PassResearchOuting, PassResearchOvernight:
		return true
	}
	return false
}

// ValidShareType reports whether s is a recognised visibility scope.
func ValidShareType(s string) bool {
	switch s {
	case SharePrivate, ShareLink, SharePublic:
		return true
	}
	return false
}

// CanCancelPass reports whether the owner may still cancel a pass.
// Unlike seat bookings, a pass can only be withdrawn while pending.
func CanCancelPass(status string) bool { return status == StatusPending }

// CanDecidePass reports whether staff may approve or reject a pass.
func CanDecidePass(status string) bool { return status == StatusPending }

// SharedPublicly reports whether a pass in the given visibility scope
// and status belongs on the shared calendar. Terminal passes drop off
// regardless of scope.
func SharedPublicly(shareType, status string) bool {
	if shareType != SharePublic && shareType != ShareLink {
		return false
	}
	return status == StatusPending || status == StatusApproved
}

// PassRequest models a row in the `pass_requests` table.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – student who submitted the request.
//  Type       – one of the Pass* constants.
//  Location   – where the student will be.
//  Reason     – free-text justification (nullable).
//  PassDate   – calendar day of the pass.
//  StartTime  – beginning of the requested window.
//  EndTime    – end of the requested window, strictly after StartTime.
//  ShareType  – PRIVATE, LINK or PUBLIC.
//  ShareToken – UUID for LINK visibility, NULL otherwise.
//  Status     – PENDING, APPROVED, REJECTED, CANCELLED or COMPLETED.
//  ApprovedBy – staff member who decided the request, if any.
//  DecidedAt  – when the decision was recorded.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type PassRequest struct {
	ID         uint64     // pass_requests.id
	UserID     uint64     // pass_requests.user_id
	Type       string     // pass_requests.type
	Location   string     // pass_requests.location
	Reason     *string    // pass_requests.reason (nullable)
	PassDate   string     // pass_requests.pass_date (YYYY-MM-DD)
	StartTime  time.Time  // pass_requests.start_time
	EndTime    time.Time  // pass_requests.end_time
	ShareType  string     // pass_requests.share_type
	ShareToken *string    // pass_requests.share_token (nullable)
	Status     string     // pass_requests.status
	ApprovedBy *uint64    // pass_requests.approved_by (nullable)
	DecidedAt  *time.Time // pass_requests.decided_at (nullable)
	CreatedAt  time.Time  // pass_requests.created_at
	UpdatedAt  time.Time  // pass_requests.updated_at
}
