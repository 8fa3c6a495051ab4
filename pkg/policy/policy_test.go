package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "policy.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lease_term_months: 6\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, p.LeaseTermMonths)
	assert.Equal(t, DefaultDepositRate, p.DepositRate)
	assert.Equal(t, DefaultPaymentDueDays, p.PaymentDueDays)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero term", "lease_term_months: 0\n"},
		{"rate above one", "deposit_rate: 1.5\n"},
		{"negative rate", "deposit_rate: -0.1\n"},
		{"negative due days", "payment_due_days: -1\n"},
		{"not yaml", "lease_term_months: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "policy.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDeposit(t *testing.T) {
	p := Default()

	assert.Equal(t, 120.0, p.Deposit(1200))
	assert.Equal(t, 0.0, p.Deposit(0))
	assert.Equal(t, 123.45, p.Deposit(1234.5))
	assert.Equal(t, 99.999, p.Deposit(999.99))
	assert.Equal(t, 123.4567, p.Deposit(1234.567))
	assert.Equal(t, 70.0, p.Deposit(700))
}
