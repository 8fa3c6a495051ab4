// Package inventory holds the live house and tenant lists and flushes them
// to their record files after every mutation.
package inventory

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// ErrInvalidRecord is returned when a house or tenant fails validation.
var ErrInvalidRecord = errors.New("invalid record")

// Store is a rewrite-whole-file record store.
type Store[T any] interface {
	LoadAll() (records []T, skipped int, err error)
	SaveAll(records []T) error
}

// Repository owns the ordered house and tenant lists for the session.
// The in-memory lists are authoritative; a failed save is reported and the
// next mutation rewrites the whole file again.
type Repository struct {
	houses      []rental.House
	tenants     []rental.Tenant
	houseStore  Store[rental.House]
	tenantStore Store[rental.Tenant]
}

// Load creates a Repository from the given stores. Load failures are logged
// and the affected list starts empty.
func Load(houseStore Store[rental.House], tenantStore Store[rental.Tenant]) *Repository {
	r := &Repository{
		houseStore:  houseStore,
		tenantStore: tenantStore,
	}

	houses, skipped, err := houseStore.LoadAll()
	if err != nil {
		slog.Error("Error loading house records", "error", err)
	}
	if skipped > 0 {
		slog.Warn("Invalid data found in houses file", "skipped", skipped)
	}
	r.houses = houses

	tenants, skipped, err := tenantStore.LoadAll()
	if err != nil {
		slog.Error("Error loading tenant records", "error", err)
	}
	if skipped > 0 {
		slog.Warn("Invalid data found in tenants file", "skipped", skipped)
	}
	r.tenants = tenants

	slog.Debug("Repository loaded", "houses", len(r.houses), "tenants", len(r.tenants))
	return r
}

// AddHouse appends a house and persists the house list.
// Duplicate ids are accepted.
func (r *Repository) AddHouse(h rental.House) error {
	if err := validateHouse(h); err != nil {
		return err
	}

	r.houses = append(r.houses, h)
	if err := r.houseStore.SaveAll(r.houses); err != nil {
		return fmt.Errorf("failed to save house records: %w", err)
	}

	slog.Info("House added", "id", h.ID, "location", h.Location)
	return nil
}

// RemoveHouse removes every house with the given id and persists the house
// list. It returns the number of houses removed; zero is not an error.
func (r *Repository) RemoveHouse(id int) (int, error) {
	before := len(r.houses)
	r.houses = slices.DeleteFunc(r.houses, func(h rental.House) bool {
		return h.ID == id
	})
	removed := before - len(r.houses)

	if err := r.houseStore.SaveAll(r.houses); err != nil {
		return removed, fmt.Errorf("failed to save house records: %w", err)
	}

	slog.Info("House removed", "id", id, "removed", removed)
	return removed, nil
}

// SearchHouses yields, in list order, houses whose location equals location
// ignoring case and whose price is at most maxPrice.
func (r *Repository) SearchHouses(location string, maxPrice float64) iter.Seq[rental.House] {
	return func(yield func(rental.House) bool) {
		for _, h := range r.houses {
			if strings.EqualFold(h.Location, location) && h.Price <= maxPrice {
				if !yield(h) {
					return
				}
			}
		}
	}
}

// RegisterTenant appends a tenant and persists the tenant list.
func (r *Repository) RegisterTenant(t rental.Tenant) error {
	if err := validateTenant(t); err != nil {
		return err
	}

	r.tenants = append(r.tenants, t)
	if err := r.tenantStore.SaveAll(r.tenants); err != nil {
		return fmt.Errorf("failed to save tenant records: %w", err)
	}

	slog.Info("Tenant registered", "name", t.Name)
	return nil
}

// FindHouseByID returns the first house with the given id.
func (r *Repository) FindHouseByID(id int) (rental.House, bool) {
	for _, h := range r.houses {
		if h.ID == id {
			return h, true
		}
	}
	return rental.House{}, false
}

// FindTenantByName returns the first tenant whose name matches ignoring case.
func (r *Repository) FindTenantByName(name string) (rental.Tenant, bool) {
	for _, t := range r.tenants {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return rental.Tenant{}, false
}

// Houses returns a copy of the house list.
func (r *Repository) Houses() []rental.House {
	return slices.Clone(r.houses)
}

// Tenants returns a copy of the tenant list.
func (r *Repository) Tenants() []rental.Tenant {
	return slices.Clone(r.tenants)
}

func validateHouse(h rental.House) error {
	if math.IsNaN(h.Price) || math.IsInf(h.Price, 0) || h.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidRecord)
	}
	if h.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms must be non-negative", ErrInvalidRecord)
	}
	if err := rental.CheckText("location", h.Location); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := rental.CheckText("owner", h.OwnerInfo); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

func validateTenant(t rental.Tenant) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tenant name is required", ErrInvalidRecord)
	}
	for _, f := range []struct{ name, value string }{
		{"name", t.Name},
		{"contact", t.Contact},
		{"preferred location", t.PreferredLocation},
	} {
		if err := rental.CheckText(f.name, f.value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	}
	return nil
}
