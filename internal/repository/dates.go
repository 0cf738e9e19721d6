package repository

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// dateString renders a DATE column back to its YYYY-MM-DD wire form.
// With parseTime enabled the driver hands DATE values over as midnight
// timestamps, so every scan site must go through here instead of
// scanning into a string directly.
func dateString(t time.Time) string { return t.Format(dateLayout) }

// nullDateString is dateString for nullable DATE columns.
func nullDateString(nt sql.NullTime) *string {
	if !nt.Valid {
		return nil
	}
	s := dateString(nt.Time)
	return &s
}
