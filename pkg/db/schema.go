// Package db provides the SQLite booking history index.
//
// The flat files stay the system of record; the index only tracks bookings
// by reference so payments can be looked up and marked as paid.
package db

import "context"

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Booking history table
-- One row per completed booking
CREATE TABLE IF NOT EXISTS booking_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reference TEXT NOT NULL UNIQUE,    -- booking reference (UUID)
    house_id INTEGER NOT NULL,
    tenant_name TEXT NOT NULL,
    start_date TEXT NOT NULL,          -- YYYY-MM-DD
    end_date TEXT NOT NULL,            -- YYYY-MM-DD
    deposit REAL NOT NULL,
    amount REAL NOT NULL,
    due_date TEXT NOT NULL,            -- YYYY-MM-DD
    is_paid INTEGER NOT NULL DEFAULT 0,
    paid_at TIMESTAMP,
    booked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_booking_history_tenant
    ON booking_history(tenant_name);

CREATE INDEX IF NOT EXISTS idx_booking_history_house
    ON booking_history(house_id);

-- History metadata table
-- Stores key-value metadata such as the last booking reference
CREATE TABLE IF NOT EXISTS history_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(ctx context.Context, conn *Connection) error {
	if _, err := conn.Exec(ctx, Schema); err != nil {
		return err
	}
	return nil
}
