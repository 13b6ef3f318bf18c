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

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner")

	item := &models.Item{Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	found, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", found.Name)
	assert.True(t, found.Available)
	assert.Equal(t, owner.ID, found.OwnerID)
	assert.Zero(t, found.RequestID)

	found.Available = false
	found.Description = "Broken"
	require.NoError(t, db.UpdateItem(ctx, found))

	updated, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Broken", updated.Description)
}

func TestCreateItemUnknownOwner(t *testing.T) {
	db := setupTestDB(t)
	err := db.CreateItem(context.Background(), &models.Item{Name: "x", Description: "y", OwnerID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	first := createTestItem(t, db, owner, "first")
	second := createTestItem(t, db, owner, "second")
	createTestItem(t, db, other, "foreign")

	items, err := db.ListItemsByOwner(ctx, owner.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	items, err = db.ListItemsByOwner(ctx, owner.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner")

	drill := &models.Item{Name: "Power Drill", Description: "Makes holes", Available: true, OwnerID: owner.ID}
	saw := &models.Item{Name: "Saw", Description: "Cuts wood, not a DRILL", Available: true, OwnerID: owner.ID}
	hidden := &models.Item{Name: "Old drill", Description: "Gone", Available: false, OwnerID: owner.ID}
	percent := &models.Item{Name: "100% cotton", Description: "Shirt", Available: true, OwnerID: owner.ID}
	for _, it := range []*models.Item{drill, saw, hidden, percent} {
		require.NoError(t, db.CreateItem(ctx, it))
	}

	items, err := db.SearchItems(ctx, "dRiLl", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, drill.ID, items[0].ID)
	assert.Equal(t, saw.ID, items[1].ID)

	items, err = db.SearchItems(ctx, "drill", 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, saw.ID, items[0].ID)

	items, err = db.SearchItems(ctx, "0%", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, percent.ID, items[0].ID)

	items, err = db.SearchItems(ctx, "_", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemsByRequests(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner")
	requestor := createTestUser(t, db, "requestor")

	request := &models.ItemRequest{Description: "Need a ladder", RequestorID: requestor.ID, Created: time.Now()}
	require.NoError(t, db.CreateRequest(ctx, request))

	ladder := &models.Item{Name: "Ladder", Description: "3m", Available: true, OwnerID: owner.ID, RequestID: request.ID}
	require.NoError(t, db.CreateItem(ctx, ladder))
	createTestItem(t, db, owner, "unrelated")

	items, err := db.ListItemsByRequests(ctx, []int64{request.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ladder.ID, items[0].ID)
	assert.Equal(t, request.ID, items[0].RequestID)

	items, err = db.ListItemsByRequests(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
