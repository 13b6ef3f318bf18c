package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const itemColumns = `id, name, description, available, owner_id, request_id, created_at, updated_at`

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		nullID(item.RequestID),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("item references a missing owner or request: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, item.Name, item.Description, item.Available, formatTime(now), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}
	item.UpdatedAt = now
	return nil
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Item, error) {
	page, pageArgs := pageClause(offset, limit)
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id` + page
	return db.queryItems(ctx, query, append([]interface{}{ownerID}, pageArgs...)...)
}

func (db *DB) SearchItems(ctx context.Context, text string, offset, limit int) ([]*models.Item, error) {
	pattern := "%" + escapeLike(strings.ToUpper(text)) + "%"
	page, pageArgs := pageClause(offset, limit)
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1
                AND (UPPER(name) LIKE ? ESCAPE '\' OR UPPER(description) LIKE ? ESCAPE '\')
              ORDER BY id` + page
	return db.queryItems(ctx, query, append([]interface{}{pattern, pattern}, pageArgs...)...)
}

func (db *DB) ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(requestIDs)
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id IN ` + in + ` ORDER BY id`
	return db.queryItems(ctx, query, args...)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...interface{}) ([]*models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row scanner) (*models.Item, error) {
	var item models.Item
	var requestID sql.NullInt64
	var createdAt, updatedAt string
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&requestID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.RequestID = requestID.Int64

	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
