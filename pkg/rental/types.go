// Package rental defines the rental records and their line-oriented text encoding.
package rental

import "time"

// DateLayout is the calendar date format used in agreement and payment records.
const DateLayout = "2006-01-02"

// House represents a rental house listed in the inventory.
type House struct {
	ID        int
	Location  string
	Price     float64
	Bedrooms  int
	OwnerInfo string
}

// Tenant represents a registered prospective tenant.
// Name is the lookup key used when booking.
type Tenant struct {
	Name              string
	Contact           string
	PreferredLocation string
}

// RentalAgreement represents a lease created when a house is booked.
type RentalAgreement struct {
	HouseID    int
	TenantName string
	StartDate  time.Time // calendar date, UTC midnight
	EndDate    time.Time // calendar date, UTC midnight
	Deposit    float64
}

// Payment represents a payment obligation scheduled by a booking.
type Payment struct {
	TenantName string
	HouseID    int
	Amount     float64
	DueDate    time.Time // calendar date, UTC midnight
	IsPaid     bool
}

// Day returns the calendar date of t as UTC midnight.
// The date components are taken from t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months to a date. When the resulting month is
// shorter, the day is clamped to its last day (Jan 31 + 1 month = Feb 28).
func AddMonths(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, date.Location())
}

// AddDays adds n calendar days to a date.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}
