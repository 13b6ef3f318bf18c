package service

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, repo)
			ctx := context.Background()

			alice, err := f.users.CreateUser(ctx, &models.User{ID: 77, Name: "alice", Email: "alice@example.com"})
			require.NoError(t, err)
			assert.NotEqual(t, int64(77), alice.ID)

			bob := f.user(t, "bob")

			t.Run("Duplicate", func(t *testing.T) {
				_, err := f.users.CreateUser(ctx, &models.User{Name: "alias", Email: "alice@example.com"})
				assert.ErrorIs(t, err, ErrEmailNotUnique)
			})

			t.Run("Blank", func(t *testing.T) {
				_, err := f.users.CreateUser(ctx, &models.User{Name: "", Email: "x@example.com"})
				assert.ErrorIs(t, err, ErrValidation)
				_, err = f.users.CreateUser(ctx, &models.User{Name: "x"})
				assert.ErrorIs(t, err, ErrValidation)
			})

			t.Run("GetAndList", func(t *testing.T) {
				got, err := f.users.GetUser(ctx, alice.ID)
				require.NoError(t, err)
				assert.Equal(t, "alice@example.com", got.Email)

				_, err = f.users.GetUser(ctx, 999)
				assert.ErrorIs(t, err, ErrUserNotFound)

				users, err := f.users.ListUsers(ctx)
				require.NoError(t, err)
				require.Len(t, users, 2)
				assert.Equal(t, alice.ID, users[0].ID)
				assert.Equal(t, bob.ID, users[1].ID)
			})

			t.Run("Update", func(t *testing.T) {
				name := "Alice"
				updated, err := f.users.UpdateUser(ctx, alice.ID, models.UserPatch{Name: &name})
				require.NoError(t, err)
				assert.Equal(t, "Alice", updated.Name)
				assert.Equal(t, "alice@example.com", updated.Email)

				// Keeping one's own email is not a conflict.
				same := "alice@example.com"
				_, err = f.users.UpdateUser(ctx, alice.ID, models.UserPatch{Email: &same})
				require.NoError(t, err)

				taken := bob.Email
				_, err = f.users.UpdateUser(ctx, alice.ID, models.UserPatch{Email: &taken})
				assert.ErrorIs(t, err, ErrEmailNotUnique)

				_, err = f.users.UpdateUser(ctx, 999, models.UserPatch{Name: &name})
				assert.ErrorIs(t, err, ErrUserNotFound)
			})

			t.Run("Delete", func(t *testing.T) {
				drill := f.item(t, bob, "drill")
				require.NoError(t, f.users.DeleteUser(ctx, bob.ID))

				_, err := f.users.GetUser(ctx, bob.ID)
				assert.ErrorIs(t, err, ErrUserNotFound)
				_, err = f.items.GetItem(ctx, alice.ID, drill.ID)
				assert.ErrorIs(t, err, ErrItemNotFound)

				assert.ErrorIs(t, f.users.DeleteUser(ctx, bob.ID), ErrUserNotFound)
			})
		})
	}
}
