package model

import "time"

// Roles assigned to users. Staff endpoints accept TEACHER and ADMIN;
// ADMIN additionally controls reference data (seats, reasons, meals).
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table. TotalPenalty is a denormalized running sum of the point ledger;
// it is only ever written inside the same transaction that writes
// penalty_record_targets, never by ad-hoc arithmetic.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Email         – unique email address.
//  PasswordHash  – bcrypt hashed password.
//  Name          – display name.
//  StudentNumber – school-issued student number (NULL for staff).
//  Role          – STUDENT, TEACHER or ADMIN.
//  TotalPenalty  – signed running point total derived from the ledger.
//  IsActive      – whether the account is active.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            uint64    // users.id
	Email         string    // users.email
	PasswordHash  string    // users.password_hash
	Name          string    // users.name
	StudentNumber *string   // users.student_number (nullable)
	Role          string    // users.role
	TotalPenalty  int       // users.total_penalty
	IsActive      bool      // users.is_active
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
