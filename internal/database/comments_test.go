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

func TestComments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner")
	author := createTestUser(t, db, "author")
	drill := createTestItem(t, db, owner, "drill")
	saw := createTestItem(t, db, owner, "saw")

	created := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	first := &models.Comment{Text: "Great drill", ItemID: drill.ID, AuthorID: author.ID, Created: created}
	require.NoError(t, db.CreateComment(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, "author", first.AuthorName)

	second := &models.Comment{Text: "Sharp", ItemID: saw.ID, AuthorID: author.ID, Created: created.Add(time.Hour)}
	require.NoError(t, db.CreateComment(ctx, second))

	comments, err := db.ListCommentsByItems(ctx, []int64{drill.ID})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Great drill", comments[0].Text)
	assert.True(t, created.Equal(comments[0].Created))
	assert.Equal(t, "author", comments[0].AuthorName)

	comments, err = db.ListCommentsByItems(ctx, []int64{drill.ID, saw.ID})
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	err = db.CreateComment(ctx, &models.Comment{Text: "x", ItemID: 999, AuthorID: author.ID, Created: created})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
