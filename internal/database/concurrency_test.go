package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentDecision(t *testing.T) {
	logger := zerolog.Nop()
	db, err := NewDB(filepath.Join(t.TempDir(), "concurrency.db"), &logger)
	require.NoError(t, err)
	defer db.Close()

	owner := createTestUser(t, db, "owner")
	booker := createTestUser(t, db, "booker")
	item := createTestItem(t, db, owner, "drill")
	start := time.Now().Add(time.Hour)
	booking := createTestBooking(t, db, item, booker, start, start.Add(time.Hour), models.StatusWaiting)

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)
	ctx := context.Background()

	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			to := models.StatusApproved
			if i%2 == 1 {
				to = models.StatusRejected
			}
			results <- db.UpdateBookingStatus(ctx, booking.ID, models.StatusWaiting, to)
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case errors.Is(err, domain.ErrConcurrentModification):
			conflictCount++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successCount, "exactly one decision must win")
	assert.Equal(t, numGoroutines-1, conflictCount)

	found, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, found.Status.Terminal())
}
