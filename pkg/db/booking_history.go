package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// MetadataLastBooking is the metadata key holding the most recent booking reference.
const MetadataLastBooking = "last_booking_reference"

// BookingRecord represents a booking history row.
type BookingRecord struct {
	ID         int64
	Reference  string
	HouseID    int
	TenantName string
	StartDate  time.Time
	EndDate    time.Time
	Deposit    float64
	Amount     float64
	DueDate    time.Time
	IsPaid     bool
	PaidAt     sql.NullTime
	BookedAt   time.Time
}

// BookingHistory manages booking history operations.
type BookingHistory struct {
	conn *Connection
}

// NewBookingHistory creates a new BookingHistory instance.
func NewBookingHistory(conn *Connection) *BookingHistory {
	return &BookingHistory{conn: conn}
}

// RecordBooking inserts a booking built from its agreement and payment and
// remembers it as the last booking.
func (h *BookingHistory) RecordBooking(ctx context.Context, reference string, agreement rental.RentalAgreement, payment rental.Payment) error {
	query := `
		INSERT INTO booking_history
			(reference, house_id, tenant_name, start_date, end_date, deposit, amount, due_date, is_paid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return h.conn.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query,
			reference,
			agreement.HouseID,
			agreement.TenantName,
			agreement.StartDate.Format(rental.DateLayout),
			agreement.EndDate.Format(rental.DateLayout),
			agreement.Deposit,
			payment.Amount,
			payment.DueDate.Format(rental.DateLayout),
			payment.IsPaid,
		); err != nil {
			return fmt.Errorf("failed to record booking: %w", err)
		}

		if _, err := tx.ExecContext(ctx, upsertMetadata, MetadataLastBooking, reference); err != nil {
			return fmt.Errorf("failed to set metadata: %w", err)
		}
		return nil
	})
}

const selectBooking = `
	SELECT id, reference, house_id, tenant_name, start_date, end_date,
		deposit, amount, due_date, is_paid, paid_at, booked_at
	FROM booking_history
`

// GetBooking retrieves a booking by reference. It returns nil if not found.
func (h *BookingHistory) GetBooking(ctx context.Context, reference string) (*BookingRecord, error) {
	row := h.conn.QueryRow(ctx, selectBooking+` WHERE reference = ?`, reference)

	record, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return record, nil
}

// ListBookings lists bookings in booking order. An empty tenant lists all
// bookings; otherwise the tenant name is matched ignoring case.
func (h *BookingHistory) ListBookings(ctx context.Context, tenant string) ([]BookingRecord, error) {
	query := selectBooking + ` WHERE ? = '' OR lower(tenant_name) = lower(?) ORDER BY id`

	rows, err := h.conn.Query(ctx, query, tenant, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var records []BookingRecord
	for rows.Next() {
		record, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return records, nil
}

// MarkPaid marks the payment of a booking as paid.
// It returns false if the reference is unknown or already paid.
func (h *BookingHistory) MarkPaid(ctx context.Context, reference string) (bool, error) {
	query := `
		UPDATE booking_history
		SET is_paid = 1, paid_at = CURRENT_TIMESTAMP
		WHERE reference = ? AND is_paid = 0
	`

	result, err := h.conn.Exec(ctx, query, reference)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment as paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Stats represents booking statistics.
type Stats struct {
	TotalBookings     int
	PaidBookings      int
	OutstandingAmount float64
	LastBooking       sql.NullString
}

// GetStats retrieves booking statistics.
func (h *BookingHistory) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(is_paid), 0),
			COALESCE(SUM(CASE WHEN is_paid = 0 THEN amount ELSE 0 END), 0)
		FROM booking_history
	`).Scan(&stats.TotalBookings, &stats.PaidBookings, &stats.OutstandingAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking counts: %w", err)
	}

	err = h.conn.QueryRow(ctx, `SELECT MAX(booked_at) FROM booking_history`).Scan(&stats.LastBooking)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last booking time: %w", err)
	}

	return &stats, nil
}

const upsertMetadata = `
	INSERT INTO history_metadata (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
`

// GetMetadata retrieves a metadata value. It returns "" if the key is unset.
func (h *BookingHistory) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := h.conn.QueryRow(ctx, `SELECT value FROM history_metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *BookingHistory) SetMetadata(ctx context.Context, key, value string) error {
	if _, err := h.conn.Exec(ctx, upsertMetadata, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (*BookingRecord, error) {
	var (
		record          BookingRecord
		start, end, due string
	)

	if err := s.Scan(
		&record.ID,
		&record.Reference,
		&record.HouseID,
		&record.TenantName,
		&start,
		&end,
		&record.Deposit,
		&record.Amount,
		&due,
		&record.IsPaid,
		&record.PaidAt,
		&record.BookedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if record.StartDate, err = time.Parse(rental.DateLayout, start); err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if record.EndDate, err = time.Parse(rental.DateLayout, end); err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if record.DueDate, err = time.Parse(rental.DateLayout, due); err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", due, err)
	}

	return &record, nil
}
