package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dshs-dev/studentlife/internal/model"
)

// MealRepo provides access to the meal_menus table. One row per day,
// keyed by date; writes are admin upserts, reads go through the
// response cache.
type MealRepo struct {
	db *sql.DB
}

func NewMealRepo(db *sql.DB) *MealRepo { return &MealRepo{db: db} }

// GetByDate returns the menu for a day, or sql.ErrNoRows when none is
// published yet.
func (r *MealRepo) GetByDate(ctx context.Context, date string) (model.MealMenu, error) {
	var (
		m         model.MealMenu
		menuDate  time.Time
		breakfast sql.NullString
		lunch     sql.NullString
		dinner    sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT menu_date, breakfast, lunch, dinner, updated_at FROM meal_menus WHERE menu_date=? LIMIT 1",
		date).Scan(&menuDate, &breakfast, &lunch, &dinner, &m.UpdatedAt)
	if err != nil {
		return model.MealMenu{}, err
	}
	m.MenuDate = dateString(menuDate)
	if breakfast.Valid {
		s := breakfast.String
		m.Breakfast = &s
	}
	if lunch.Valid {
		s := lunch.String
		m.Lunch = &s
	}
	if dinner.Valid {
		s := dinner.String
		m.Dinner = &s
	}
	return m, nil
}

// Upsert writes the menu for a day, replacing any existing row.
func (r *MealRepo) Upsert(ctx context.Context, m model.MealMenu) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_menus (menu_date, breakfast, lunch, dinner)
		VALUES (?,?,?,?)
		ON DUPLICATE KEY UPDATE breakfast=VALUES(breakfast), lunch=VALUES(lunch), dinner=VALUES(dinner)`,
		m.MenuDate, m.Breakfast, m.Lunch, m.Dinner)
	return err
}
