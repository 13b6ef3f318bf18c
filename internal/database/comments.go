package database

import (
	"context"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query, comment.Text, comment.ItemID, comment.AuthorID, formatTime(comment.Created))
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("comment references a missing item or author: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id

	if err := db.QueryRowContext(ctx, `SELECT name FROM users WHERE id = ?`, comment.AuthorID).Scan(&comment.AuthorName); err != nil {
		return fmt.Errorf("failed to resolve comment author: %w", err)
	}
	return nil
}

func (db *DB) ListCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(itemIDs)
	query := `SELECT c.id, c.text, c.item_id, c.author_id, c.created, u.name
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id IN ` + in + `
              ORDER BY c.created, c.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		var created string
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &created, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if c.Created, err = parseTime(created); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
