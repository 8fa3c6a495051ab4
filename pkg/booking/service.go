// Package booking implements the booking workflow: a listed house and a
// registered tenant become a lease agreement and a payment obligation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/policy"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// ErrNotFound is returned when a booking references an unknown house or tenant.
var ErrNotFound = errors.New("not found")

// NotFoundError names the entity a booking could not find.
type NotFoundError struct {
	Entity string // "house" or "tenant"
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Inventory is the part of the repository a booking needs.
type Inventory interface {
	FindHouseByID(id int) (rental.House, bool)
	FindTenantByName(name string) (rental.Tenant, bool)
	RemoveHouse(id int) (int, error)
}

// Log is an append-only record log.
type Log[T any] interface {
	AppendOne(record T) error
}

// Recorder indexes completed bookings.
type Recorder interface {
	RecordBooking(ctx context.Context, reference string, agreement rental.RentalAgreement, payment rental.Payment) error
}

// Config represents the dependencies of a Service.
type Config struct {
	Inventory  Inventory
	Agreements Log[rental.RentalAgreement]
	Payments   Log[rental.Payment]
	History    Recorder // optional
	Policy     policy.Policy
	Now        func() time.Time // Default: time.Now
}

// Service books houses.
type Service struct {
	inventory  Inventory
	agreements Log[rental.RentalAgreement]
	payments   Log[rental.Payment]
	history    Recorder
	policy     policy.Policy
	now        func() time.Time
}

// NewService creates a booking Service.
func NewService(config Config) *Service {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		inventory:  config.Inventory,
		agreements: config.Agreements,
		payments:   config.Payments,
		history:    config.History,
		policy:     config.Policy,
		now:        now,
	}
}

// Result describes a completed booking.
type Result struct {
	Reference  string
	HouseID    int
	TenantName string
	Agreement  rental.RentalAgreement
	Payment    rental.Payment
}

// BookHouse books the house for the tenant.
//
// Both lookups happen before any mutation; a missing house or tenant fails
// with a *NotFoundError and changes nothing. Afterwards the house is removed
// and the agreement and payment are appended, in that order. These are
// independent file writes: the first failure stops the sequence and earlier
// writes stay in place.
func (s *Service) BookHouse(ctx context.Context, houseID int, tenantName string) (*Result, error) {
	house, houseFound := s.inventory.FindHouseByID(houseID)
	tenant, tenantFound := s.inventory.FindTenantByName(tenantName)

	var missing []error
	if !houseFound {
		missing = append(missing, &NotFoundError{Entity: "house", Key: fmt.Sprint(houseID)})
	}
	if !tenantFound {
		missing = append(missing, &NotFoundError{Entity: "tenant", Key: fmt.Sprintf("%q", tenantName)})
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	today := rental.Day(s.now())
	agreement := rental.RentalAgreement{
		HouseID:    house.ID,
		TenantName: tenant.Name,
		StartDate:  today,
		EndDate:    rental.AddMonths(today, s.policy.LeaseTermMonths),
		Deposit:    s.policy.Deposit(house.Price),
	}
	payment := rental.Payment{
		TenantName: tenant.Name,
		HouseID:    house.ID,
		Amount:     house.Price,
		DueDate:    rental.AddDays(today, s.policy.PaymentDueDays),
	}

	if _, err := s.inventory.RemoveHouse(house.ID); err != nil {
		return nil, fmt.Errorf("failed to remove booked house: %w", err)
	}
	if err := s.agreements.AppendOne(agreement); err != nil {
		return nil, fmt.Errorf("failed to append agreement: %w", err)
	}
	if err := s.payments.AppendOne(payment); err != nil {
		return nil, fmt.Errorf("failed to append payment: %w", err)
	}

	result := &Result{
		Reference:  uuid.NewString(),
		HouseID:    house.ID,
		TenantName: tenant.Name,
		Agreement:  agreement,
		Payment:    payment,
	}

	if s.history != nil {
		if err := s.history.RecordBooking(ctx, result.Reference, agreement, payment); err != nil {
			slog.Error("Failed to record booking history", "reference", result.Reference, "error", err)
		}
	}

	slog.Info("House booked",
		"reference", result.Reference,
		"house_id", result.HouseID,
		"tenant", result.TenantName,
		"deposit", agreement.Deposit,
		"due_date", payment.DueDate.Format(rental.DateLayout),
	)
	return result, nil
}
