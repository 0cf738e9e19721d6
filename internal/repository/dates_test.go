package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateString(t *testing.T) {
	// parseTime hands DATE columns over as midnight timestamps; the
	// rendered form must be the plain day, not RFC 3339.
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-02", dateString(day))

	// Even a stray time-of-day component renders as the day only.
	assert.Equal(t, "2026-03-02", dateString(day.Add(5*time.Hour)))
}

func TestNullDateString(t *testing.T) {
	assert.Nil(t, nullDateString(sql.NullTime{}))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := nullDateString(sql.NullTime{Time: day, Valid: true})
	if assert.NotNil(t, got) {
		assert.Equal(t, "2026-03-02", *got)
	}
}
