package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/utils"
)

// UserRepo provides access to the users table. Profile rows carry the
// denormalized total_penalty column; see PenaltyRepo for how it is
// maintained.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,name,student_number,role,total_penalty,is_active,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u      model.User
		number sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &number, &u.Role,
		&u.TotalPenalty, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if number.Valid {
		n := number.String
		u.StudentNumber = &n
	}
	return u, nil
}

// Create inserts a user and returns its ID. The email is normalized to
// lower case before insertion so the unique key is case-insensitive in
// practice.
func (r *UserRepo) Create(ctx context.Context, email, password, name, role string, studentNumber *string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, student_number, role) VALUES (?,?,?,?,?)",
		email, hash, name, studentNumber, role)
	if err != nil {
		return 0, translateUserError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateProfile updates the mutable profile fields. Role and
// total_penalty are deliberately not settable here.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name string, studentNumber *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, student_number=? WHERE id=?",
		name, studentNumber, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 both for missing rows and no-op updates;
		// distinguish with an existence probe.
		var exists bool
		if probeErr := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id=?)", id).Scan(&exists); probeErr != nil {
			return probeErr
		}
		if !exists {
			return ErrUserNotFound
		}
	}
	return nil
}

// Delete removes a user and, via FK cascades, their bookings, passes,
// notifications, refresh tokens and penalty targets. Deleting a staff
// member who has issued ledger records fails on the issued_by
// restriction so the ledger keeps its attribution.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrUserReferenced
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
