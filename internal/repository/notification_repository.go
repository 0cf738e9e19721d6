package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dshs-dev/studentlife/internal/model"
)

// NotificationRepo provides access to the notifications table. The
// penalty fan-out uses the *Tx bulk insert so messages commit with the
// ledger rows they describe, or not at all.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) DB() *sql.DB { return r.db }

// CreateBulkTx inserts the given notifications in one statement within
// the provided transaction. Passing an empty slice has no effect.
func (r *NotificationRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, items []model.Notification) error {
	if len(items) == 0 {
		return nil
	}
	query := "INSERT INTO notifications (user_id, title, message, type, related_id) VALUES "
	args := make([]interface{}, 0, len(items)*5)
	for i, n := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, n.UserID, n.Title, n.Message, n.Type, n.RelatedID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Create inserts a single notification outside any transaction, used
// for pass and booking decisions where the message is the only write
// besides the status row itself.
func (r *NotificationRepo) Create(ctx context.Context, n model.Notification) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notifications (user_id, title, message, type, related_id) VALUES (?,?,?,?,?)",
		n.UserID, n.Title, n.Message, n.Type, n.RelatedID)
	return err
}

// ListByUser returns the user's notifications, newest first. When
// unreadOnly is set, read ones are filtered out.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64, unreadOnly bool) ([]model.Notification, error) {
	query := "SELECT id, user_id, title, message, type, is_read, related_id, created_at, read_at FROM notifications WHERE user_id=?"
	if unreadOnly {
		query += " AND is_read=0"
	}
	query += " ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var (
			n         model.Notification
			message   sql.NullString
			relatedID sql.NullInt64
			readAt    sql.NullTime
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &message, &n.Type,
			&n.IsRead, &relatedID, &n.CreatedAt, &readAt); err != nil {
			return nil, err
		}
		if message.Valid {
			m := message.String
			n.Message = &m
		}
		if relatedID.Valid {
			id := uint64(relatedID.Int64)
			n.RelatedID = &id
		}
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread returns the badge count.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id=? AND is_read=0",
		userID).Scan(&n)
	return n, err
}

// MarkRead flags one notification as read. Owner only; marking an
// already-read notification again is a no-op success.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notifID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM notifications WHERE id=? LIMIT 1", notifID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return ErrNotificationNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrNotOwner
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read=1, read_at=? WHERE id=? AND is_read=0",
		time.Now().UTC(), notifID)
	return err
}

// MarkAllRead flags every unread notification of the user as read and
// returns how many were affected.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read=1, read_at=? WHERE user_id=? AND is_read=0",
		time.Now().UTC(), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
