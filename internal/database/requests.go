package database

import (
	"context"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const requestColumns = `id, description, requestor_id, created`

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO item_requests (description, requestor_id, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query, request.Description, request.RequestorID, formatTime(request.Created))
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("request references a missing user: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to create item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	request, err := scanRequest(db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM item_requests WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "item request", id)
	}
	return request, nil
}

func (db *DB) ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM item_requests WHERE requestor_id = ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, requestorID)
}

func (db *DB) ListRequestsExcept(ctx context.Context, requestorID int64, offset, limit int) ([]*models.ItemRequest, error) {
	page, pageArgs := pageClause(offset, limit)
	query := `SELECT ` + requestColumns + ` FROM item_requests WHERE requestor_id <> ? ORDER BY created DESC, id DESC` + page
	return db.queryRequests(ctx, query, append([]interface{}{requestorID}, pageArgs...)...)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ItemRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanRequest(row scanner) (*models.ItemRequest, error) {
	var request models.ItemRequest
	var created string
	if err := row.Scan(&request.ID, &request.Description, &request.RequestorID, &created); err != nil {
		return nil, err
	}
	var err error
	if request.Created, err = parseTime(created); err != nil {
		return nil, err
	}
	return &request, nil
}
