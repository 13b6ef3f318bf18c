package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingSelect = `SELECT b.id, b.start_at, b.end_at, b.item_id, b.booker_id, b.status,
                              b.created_at, b.updated_at, i.name, u.name
                       FROM bookings b
                       JOIN items i ON i.id = b.item_id
                       JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_at, end_at, item_id, booker_id, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		formatTime(booking.Start),
		formatTime(booking.End),
		booking.ItemID,
		booking.BookerID,
		string(booking.Status),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("booking references a missing item or booker: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := scanBooking(db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "booking", id)
	}
	return booking, nil
}

// UpdateBookingStatus is a compare-and-swap on the status column, so of two
// concurrent decisions on the same booking only one can match the WHERE clause.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, string(to), formatTime(time.Now()), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check booking: %w", err)
	}
	return fmt.Errorf("booking %d: %w", id, domain.ErrConcurrentModification)
}

func (db *DB) FindBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	if q.ItemIDs != nil && len(q.ItemIDs) == 0 {
		return nil, nil
	}

	var (
		where []string
		args  []interface{}
	)
	if q.BookerID != 0 {
		where = append(where, "b.booker_id = ?")
		args = append(args, q.BookerID)
	}
	if len(q.ItemIDs) > 0 {
		in, inArgs := inClause(q.ItemIDs)
		where = append(where, "b.item_id IN "+in)
		args = append(args, inArgs...)
	}
	if len(q.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.Statuses)), ", ")
		where = append(where, "b.status IN ("+placeholders+")")
		for _, s := range q.Statuses {
			args = append(args, string(s))
		}
	}
	if !q.StartAfter.IsZero() {
		where = append(where, "b.start_at > ?")
		args = append(args, formatTime(q.StartAfter))
	}
	if !q.StartBefore.IsZero() {
		where = append(where, "b.start_at < ?")
		args = append(args, formatTime(q.StartBefore))
	}
	if !q.StartNotAfter.IsZero() {
		where = append(where, "b.start_at <= ?")
		args = append(args, formatTime(q.StartNotAfter))
	}
	if !q.EndBefore.IsZero() {
		where = append(where, "b.end_at < ?")
		args = append(args, formatTime(q.EndBefore))
	}
	if !q.EndNotBefore.IsZero() {
		where = append(where, "b.end_at >= ?")
		args = append(args, formatTime(q.EndNotBefore))
	}

	query := bookingSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if q.Ascending {
		query += " ORDER BY b.start_at ASC, b.id ASC"
	} else {
		query += " ORDER BY b.start_at DESC, b.id DESC"
	}
	page, pageArgs := pageClause(q.Offset, q.Limit)
	query += page
	args = append(args, pageArgs...)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func scanBooking(row scanner) (*models.Booking, error) {
	var booking models.Booking
	var start, end, createdAt, updatedAt, status string
	err := row.Scan(
		&booking.ID,
		&start,
		&end,
		&booking.ItemID,
		&booking.BookerID,
		&status,
		&createdAt,
		&updatedAt,
		&booking.ItemName,
		&booking.BookerName,
	)
	if err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatus(status)

	for _, f := range []struct {
		raw string
		dst *time.Time
	}{
		{start, &booking.Start},
		{end, &booking.End},
		{createdAt, &booking.CreatedAt},
		{updatedAt, &booking.UpdatedAt},
	} {
		if *f.dst, err = parseTime(f.raw); err != nil {
			return nil, err
		}
	}
	return &booking, nil
}
