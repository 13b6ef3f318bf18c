package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRequests(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	older := &models.ItemRequest{Description: "Need a tent", RequestorID: alice.ID, Created: base}
	newer := &models.ItemRequest{Description: "Need a kayak", RequestorID: alice.ID, Created: base.Add(time.Hour)}
	bobs := &models.ItemRequest{Description: "Need a bike", RequestorID: bob.ID, Created: base.Add(2 * time.Hour)}
	for _, r := range []*models.ItemRequest{older, newer, bobs} {
		require.NoError(t, db.CreateRequest(ctx, r))
	}

	found, err := db.GetRequest(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Need a tent", found.Description)
	assert.True(t, base.Equal(found.Created))

	own, err := db.ListRequestsByRequestor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, newer.ID, own[0].ID)
	assert.Equal(t, older.ID, own[1].ID)

	others, err := db.ListRequestsExcept(ctx, bob.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, newer.ID, others[0].ID)

	others, err = db.ListRequestsExcept(ctx, bob.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, older.ID, others[0].ID)

	_, err = db.GetRequest(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = db.CreateRequest(ctx, &models.ItemRequest{Description: "x", RequestorID: 999, Created: base})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
