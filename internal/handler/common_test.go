package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	got, ok := parseDate("2025-09-01")
	assert.True(t, ok)
	assert.Equal(t, "2025-09-01", got)

	for _, bad := range []string{"", "2025-9-1", "01-09-2025", "2025-13-01", "today", "2025-09-01T00:00:00Z"} {
		_, ok := parseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, dedupeIDs([]uint64{3, 1, 3, 2, 1}))
	assert.Equal(t, []uint64{7}, dedupeIDs([]uint64{7, 7, 7}))
	assert.Empty(t, dedupeIDs(nil))
}

func TestFormatSignedPoints(t *testing.T) {
	assert.Equal(t, "+5", formatSignedPoints(5))
	assert.Equal(t, "-3", formatSignedPoints(-3))
	assert.Equal(t, "0", formatSignedPoints(0))
}
