// Package policy loads the booking terms applied when a house is booked.
package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default booking terms.
const (
	DefaultLeaseTermMonths = 12
	DefaultDepositRate     = 0.10
	DefaultPaymentDueDays  = 30
)

// Policy represents the booking terms.
type Policy struct {
	LeaseTermMonths int     `yaml:"lease_term_months"`
	DepositRate     float64 `yaml:"deposit_rate"`
	PaymentDueDays  int     `yaml:"payment_due_days"`
}

// Default returns the standard terms: 12-month lease, 10% deposit, payment
// due in 30 days.
func Default() Policy {
	return Policy{
		LeaseTermMonths: DefaultLeaseTermMonths,
		DepositRate:     DefaultDepositRate,
		PaymentDueDays:  DefaultPaymentDueDays,
	}
}

// Load reads a policy from a YAML file. Keys missing from the file keep
// their default; a missing file yields Default().
func Load(path string) (Policy, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}

	return p, nil
}

// Validate checks that the terms are usable.
func (p Policy) Validate() error {
	if p.LeaseTermMonths <= 0 {
		return fmt.Errorf("lease_term_months must be positive, got %d", p.LeaseTermMonths)
	}
	if math.IsNaN(p.DepositRate) || p.DepositRate < 0 || p.DepositRate > 1 {
		return fmt.Errorf("deposit_rate must be within [0, 1], got %v", p.DepositRate)
	}
	if p.PaymentDueDays < 0 {
		return fmt.Errorf("payment_due_days must not be negative, got %d", p.PaymentDueDays)
	}
	return nil
}

// Deposit returns price × deposit rate. The product keeps every
// significant digit of the inputs; only binary rounding residue past
// 15 significant digits is dropped, so 1234.567 yields 123.4567.
func (p Policy) Deposit(price float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(price*p.DepositRate, 'g', 15, 64), 64)
	if err != nil {
		return price * p.DepositRate
	}
	return v
}
