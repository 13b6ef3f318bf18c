package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const userColumns = `id, name, email, created_at, updated_at`

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, user.Name, user.Email, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := db.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := db.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, user.Name, user.Email, formatTime(now), user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrNotFound)
	}
	user.UpdatedAt = now
	return nil
}

func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (db *DB) queryUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	return scanUser(db.QueryRowContext(ctx, query, args...))
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	var createdAt, updatedAt string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
