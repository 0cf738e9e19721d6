package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPassType(t *testing.T) {
	for _, typ := range []string{PassSpecialRoom, PassOuting, PassOvernight, PassResearchOuting, PassResearchOvernight} {
		assert.True(t, ValidPassType(typ), typ)
	}
	assert.False(t, ValidPassType(""))
	assert.False(t, ValidPassType("outing"))
	assert.False(t, ValidPassType("VACATION"))
}

func TestValidShareType(t *testing.T) {
	for _, s := range []string{SharePrivate, ShareLink, SharePublic} {
		assert.True(t, ValidShareType(s), s)
	}
	assert.False(t, ValidShareType("link"))
	assert.False(t, ValidShareType(""))
}

func TestPassLifecycleGuards(t *testing.T) {
	tests := []struct {
		status    string
		canCancel bool
		canDecide bool
	}{
		{StatusPending, true, true},
		{StatusApproved, false, false},
		{StatusRejected, false, false},
		{StatusCancelled, false, false},
		{StatusCompleted, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.canCancel, CanCancelPass(tt.status))
			assert.Equal(t, tt.canDecide, CanDecidePass(tt.status))
		})
	}
}

func TestSharedPublicly(t *testing.T) {
	tests := []struct {
		name      string
		shareType string
		status    string
		want      bool
	}{
		{"public pending", SharePublic, StatusPending, true},
		{"public approved", SharePublic, StatusApproved, true},
		{"link approved", ShareLink, StatusApproved, true},
		{"private approved", SharePrivate, StatusApproved, false},
		{"public rejected", SharePublic, StatusRejected, false},
		{"public cancelled", SharePublic, StatusCancelled, false},
		{"link completed", ShareLink, StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SharedPublicly(tt.shareType, tt.status))
		})
	}
}
