package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOccupiesSlot(t *testing.T) {
	// PENDING occupies: the slot is claimed at insert time, not at
	// approval time, so two students can never both hold it.
	assert.True(t, StatusOccupiesSlot(StatusPending))
	assert.True(t, StatusOccupiesSlot(StatusApproved))

	assert.False(t, StatusOccupiesSlot(StatusCancelled))
	assert.False(t, StatusOccupiesSlot(StatusRejected))
	assert.False(t, StatusOccupiesSlot(StatusCompleted))
}
