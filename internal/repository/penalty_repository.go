package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dshs-dev/studentlife/internal/model"
)

// PenaltyRepo provides access to the penalty_reasons catalog and the
// append-only ledger (penalty_records + penalty_record_targets). The
// write path is all *Tx methods: an issuance is one transaction owned
// by the handler that inserts the record, its targets and the fan-out
// notifications, then recomputes users.total_penalty from the ledger
// before committing. No method updates or deletes a ledger row.
type PenaltyRepo struct {
	db *sql.DB
}

func NewPenaltyRepo(db *sql.DB) *PenaltyRepo { return &PenaltyRepo{db: db} }

func (r *PenaltyRepo) DB() *sql.DB { return r.db }

// ---- reasons catalog ----

// ListReasons returns catalog entries, optionally only active ones.
func (r *PenaltyRepo) ListReasons(ctx context.Context, activeOnly bool) ([]model.PenaltyReason, error) {
	query := "SELECT id, title, points, category, is_active, created_at FROM penalty_reasons"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY category, title"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PenaltyReason
	for rows.Next() {
		var reason model.PenaltyReason
		if err := rows.Scan(&reason.ID, &reason.Title, &reason.Points,
			&reason.Category, &reason.IsActive, &reason.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, reason)
	}
	return out, rows.Err()
}

// CreateReason adds a catalog entry.
func (r *PenaltyRepo) CreateReason(ctx context.Context, title string, points int, category string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO penalty_reasons (title, points, category) VALUES (?,?,?)",
		title, points, category)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SetReasonActive flips a catalog entry's active flag.
func (r *PenaltyRepo) SetReasonActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE penalty_reasons SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if probeErr := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM penalty_reasons WHERE id=?)", id).Scan(&exists); probeErr != nil {
			return probeErr
		}
		if !exists {
			return ErrReasonNotFound
		}
	}
	return nil
}

// GetReasonTx loads one catalog entry inside the issuance transaction
// so the inherited point value cannot change between read and insert.
func (r *PenaltyRepo) GetReasonTx(ctx context.Context, tx *sql.Tx, id uint64) (model.PenaltyReason, error) {
	var reason model.PenaltyReason
	err := tx.QueryRowContext(ctx,
		"SELECT id, title, points, category, is_active, created_at FROM penalty_reasons WHERE id=? LIMIT 1",
		id).Scan(&reason.ID, &reason.Title, &reason.Points, &reason.Category,
		&reason.IsActive, &reason.CreatedAt)
	if err == sql.ErrNoRows {
		return model.PenaltyReason{}, ErrReasonNotFound
	}
	return reason, err
}

// ---- ledger ----

// CreateRecordTx inserts one ledger row within the provided
// transaction and populates the generated ID.
func (r *PenaltyRepo) CreateRecordTx(ctx context.Context, tx *sql.Tx, rec *model.PenaltyRecord) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO penalty_records (reason_id, issued_by, points, description, issued_date) VALUES (?,?,?,?,?)",
		rec.ReasonID, rec.IssuedBy, rec.Points, rec.Description, rec.IssuedDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// CreateTargetsBulkTx inserts the target rows in a single statement.
// Duplicate (record, user) pairs hit the unique key and roll the
// whole issuance back.
func (r *PenaltyRepo) CreateTargetsBulkTx(ctx context.Context, tx *sql.Tx, targets []model.PenaltyRecordTarget) error {
	if len(targets) == 0 {
		return ErrEmptyTargets
	}
	query := "INSERT INTO penalty_record_targets (record_id, user_id) VALUES "
	args := make([]interface{}, 0, len(targets)*2)
	for i, t := range targets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, t.RecordID, t.UserID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// RecomputeTotalsTx re-derives total_penalty from scratch for the
// given users by summing the ledger, inside the same transaction that
// changed the target rows. Running it co-located with the write means
// no reader can observe a committed ledger row without its total.
func (r *PenaltyRepo) RecomputeTotalsTx(ctx context.Context, tx *sql.Tx, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(userIDs)), ",")
	args := make([]interface{}, 0, len(userIDs))
	for _, uid := range userIDs {
		args = append(args, uid)
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE users u SET u.total_penalty = (
			SELECT COALESCE(SUM(pr.points), 0)
			FROM penalty_record_targets t
			JOIN penalty_records pr ON pr.id = t.record_id
			WHERE t.user_id = u.id
		) WHERE u.id IN (`+placeholders+`)`, args...)
	return err
}

// RecomputeTotal re-derives one user's total outside a transaction,
// for the read endpoint that reports the derived value.
func (r *PenaltyRepo) RecomputeTotal(ctx context.Context, userID uint64) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(pr.points), 0)
		FROM penalty_record_targets t
		JOIN penalty_records pr ON pr.id = t.record_id
		WHERE t.user_id = ?`, userID).Scan(&total)
	return total, err
}

// RecordWithTitle pairs a ledger row with its display title (catalog
// title or ad-hoc description).
type RecordWithTitle struct {
	Record model.PenaltyRecord
	Title  string
}

// ListByTarget returns the ledger entries targeting one user, newest
// first, with their resolved titles.
func (r *PenaltyRepo) ListByTarget(ctx context.Context, userID uint64) ([]RecordWithTitle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pr.id, pr.reason_id, pr.issued_by, pr.points, pr.description, pr.issued_date, pr.created_at,
		       COALESCE(reason.title, pr.description, '') AS title
		FROM penalty_record_targets t
		JOIN penalty_records pr ON pr.id = t.record_id
		LEFT JOIN penalty_reasons reason ON reason.id = pr.reason_id
		WHERE t.user_id = ?
		ORDER BY pr.issued_date DESC, pr.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecordWithTitle
	for rows.Next() {
		var (
			item       RecordWithTitle
			reasonID   sql.NullInt64
			desc       sql.NullString
			issuedDate time.Time
		)
		if err := rows.Scan(&item.Record.ID, &reasonID, &item.Record.IssuedBy,
			&item.Record.Points, &desc, &issuedDate,
			&item.Record.CreatedAt, &item.Title); err != nil {
			return nil, err
		}
		item.Record.IssuedDate = dateString(issuedDate)
		if reasonID.Valid {
			id := uint64(reasonID.Int64)
			item.Record.ReasonID = &id
		}
		if desc.Valid {
			d := desc.String
			item.Record.Description = &d
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
