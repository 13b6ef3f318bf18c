package database

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "alice@example.com", found.Email)

	byEmail, err := db.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	found.Name = "Alice Updated"
	require.NoError(t, db.UpdateUser(ctx, found))

	updated, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", updated.Name)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserEmailUnique(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	err := db.CreateUser(ctx, &models.User{Name: "Other", Email: alice.Email})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	bob.Email = alice.Email
	err = db.UpdateUser(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	users, err := db.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
	assert.Equal(t, "bob", users[1].Name)
}

func TestUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetUserByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = db.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = db.UpdateUser(ctx, &models.User{ID: 42, Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	item := createTestItem(t, db, owner, "drill")

	require.NoError(t, db.DeleteUser(ctx, owner.ID))

	_, err := db.GetItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
