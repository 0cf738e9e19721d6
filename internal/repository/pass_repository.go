package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dshs-dev/studentlife/internal/model"
)

// PassRepo provides access to the pass_requests table and implements
// the approval state machine's storage side. State transitions carry
// their guard in the UPDATE's WHERE clause, so a row can only move out
// of PENDING once no matter how many callers race.
type PassRepo struct {
	db *sql.DB
}

func NewPassRepo(db *sql.DB) *PassRepo { return &PassRepo{db: db} }

func (r *PassRepo) DB() *sql.DB { return r.db }

const passColumns = "id, user_id, type, location, reason, pass_date, start_time, end_time, share_type, share_token, status, approved_by, decided_at, created_at, updated_at"

func scanPass(scan func(dest ...interface{}) error) (model.PassRequest, error) {
	var (
		p          model.PassRequest
		reason     sql.NullString
		passDate   time.Time
		shareToken sql.NullString
		approvedBy sql.NullInt64
		decidedAt  sql.NullTime
	)
	err := scan(&p.ID, &p.UserID, &p.Type, &p.Location, &reason, &passDate,
		&p.StartTime, &p.EndTime, &p.ShareType, &shareToken, &p.Status,
		&approvedBy, &decidedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.PassRequest{}, err
	}
	p.PassDate = dateString(passDate)
	if reason.Valid {
		s := reason.String
		p.Reason = &s
	}
	if shareToken.Valid {
		s := shareToken.String
		p.ShareToken = &s
	}
	if approvedBy.Valid {
		id := uint64(approvedBy.Int64)
		p.ApprovedBy = &id
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		p.DecidedAt = &t
	}
	return p, nil
}

// Create inserts a PENDING pass request. Field validation happens at
// the handler boundary; by the time a row reaches here it is well
// formed. Multiple simultaneous passes per user are allowed, so there
// is no uniqueness key to trip.
func (r *PassRepo) Create(ctx context.Context, p model.PassRequest) (model.PassRequest, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pass_requests
			(user_id, type, location, reason, pass_date, start_time, end_time, share_type, share_token, status)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.UserID, p.Type, p.Location, p.Reason, p.PassDate,
		p.StartTime.UTC(), p.EndTime.UTC(), p.ShareType, p.ShareToken, model.StatusPending)
	if err != nil {
		return model.PassRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PassRequest{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one pass request.
func (r *PassRepo) GetByID(ctx context.Context, id uint64) (model.PassRequest, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+passColumns+" FROM pass_requests WHERE id=? LIMIT 1", id)
	p, err := scanPass(row.Scan)
	if err == sql.ErrNoRows {
		return model.PassRequest{}, ErrPassNotFound
	}
	return p, err
}

// GetByShareToken resolves a LINK pass by its share token.
func (r *PassRepo) GetByShareToken(ctx context.Context, token string) (model.PassRequest, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+passColumns+" FROM pass_requests WHERE share_token=? LIMIT 1", token)
	p, err := scanPass(row.Scan)
	if err == sql.ErrNoRows {
		return model.PassRequest{}, ErrPassNotFound
	}
	return p, err
}

// Cancel withdraws a pending pass. Owner only, pending only.
func (r *PassRepo) Cancel(ctx context.Context, userID, passID uint64) (model.PassRequest, error) {
	p, err := r.GetByID(ctx, passID)
	if err != nil {
		return model.PassRequest{}, err
	}
	if p.UserID != userID {
		return model.PassRequest{}, ErrNotOwner
	}
	if !model.CanCancelPass(p.Status) {
		return model.PassRequest{}, ErrNotPending
	}
	// The WHERE clause re-checks the status so a concurrent decision
	// between the read above and this write still loses cleanly.
	res, err := r.db.ExecContext(ctx,
		"UPDATE pass_requests SET status=? WHERE id=? AND user_id=? AND status=?",
		model.StatusCancelled, passID, userID, model.StatusPending)
	if err != nil {
		return model.PassRequest{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.PassRequest{}, err
	}
	if n == 0 {
		return model.PassRequest{}, ErrNotPending
	}
	return r.GetByID(ctx, passID)
}

// Decide records a staff decision on a pending pass, stamping the
// approver and decision time.
func (r *PassRepo) Decide(ctx context.Context, staffID, passID uint64, approve bool) (model.PassRequest, error) {
	p, err := r.GetByID(ctx, passID)
	if err != nil {
		return model.PassRequest{}, err
	}
	if !model.CanDecidePass(p.Status) {
		return model.PassRequest{}, ErrNotPending
	}
	status := model.StatusApproved
	if !approve {
		status = model.StatusRejected
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE pass_requests SET status=?, approved_by=?, decided_at=? WHERE id=? AND status=?",
		status, staffID, time.Now().UTC(), passID, model.StatusPending)
	if err != nil {
		return model.PassRequest{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.PassRequest{}, err
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, passID); getErr != nil {
			return model.PassRequest{}, getErr
		}
		return model.PassRequest{}, ErrNotPending
	}
	return r.GetByID(ctx, passID)
}

// ListByUser returns the user's own passes, newest first. When
// terminalOnly is set, only finished ones (the "completed" scope).
func (r *PassRepo) ListByUser(ctx context.Context, userID uint64, terminalOnly bool) ([]model.PassRequest, error) {
	query := "SELECT " + passColumns + " FROM pass_requests WHERE user_id=?"
	args := []interface{}{userID}
	if terminalOnly {
		query += " AND status IN (?,?,?)"
		args = append(args, model.StatusRejected, model.StatusCancelled, model.StatusCompleted)
	}
	query += " ORDER BY pass_date DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPasses(rows)
}

// ListShared returns the shared-calendar view: PUBLIC or LINK passes
// still pending or approved, any owner. This cross-user visibility is
// intentional, not a leak.
func (r *PassRepo) ListShared(ctx context.Context) ([]model.PassRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+passColumns+" FROM pass_requests WHERE share_type IN (?,?) AND status IN (?,?) ORDER BY pass_date, start_time",
		model.SharePublic, model.ShareLink, model.StatusPending, model.StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPasses(rows)
}

// ListPending returns all pending passes for the staff review queue.
func (r *PassRepo) ListPending(ctx context.Context) ([]model.PassRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+passColumns+" FROM pass_requests WHERE status=? ORDER BY pass_date, start_time",
		model.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPasses(rows)
}

func collectPasses(rows *sql.Rows) ([]model.PassRequest, error) {
	var out []model.PassRequest
	for rows.Next() {
		p, err := scanPass(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CompleteExpired moves passes whose window has closed to COMPLETED.
// Pending passes that were never decided expire the same way. Called
// by the sweeper.
func (r *PassRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE pass_requests SET status=? WHERE end_time < ? AND status IN (?,?)",
		model.StatusCompleted, now.UTC(), model.StatusPending, model.StatusApproved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
