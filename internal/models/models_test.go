package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name   string
		page   Page
		offset int
	}{
		{"zero", Page{From: 0, Size: 10}, 0},
		{"exact page", Page{From: 20, Size: 10}, 20},
		{"rounds down", Page{From: 5, Size: 10}, 0},
		{"rounds down second page", Page{From: 15, Size: 10}, 10},
		{"size one", Page{From: 3, Size: 1}, 3},
		{"zero size", Page{From: 3, Size: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.page.Offset())
		})
	}
}

func TestParseBookingState(t *testing.T) {
	for _, raw := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		state, ok := ParseBookingState(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, BookingState(raw), state)
	}

	for _, raw := range []string{"", "all", "banana", "APPROVED", " ALL"} {
		_, ok := ParseBookingState(raw)
		assert.False(t, ok, raw)
	}
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, StatusWaiting.Valid())
	assert.False(t, StatusWaiting.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, BookingStatus("CANCELED").Valid())
}
