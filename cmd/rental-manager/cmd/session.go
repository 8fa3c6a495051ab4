package cmd

import (
	"context"
	"log/slog"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/booking"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/config"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/db"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/flatfile"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/inventory"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/pathutil"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/policy"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// session holds everything one command needs, loaded once per process.
type session struct {
	paths   *pathutil.PathResolver
	repo    *inventory.Repository
	booking *booking.Service
	history *db.BookingHistory // nil when disabled or unavailable
	conn    *db.Connection
}

func loadConfig() (*config.Config, *pathutil.PathResolver) {
	slog.Debug("Loading configuration", "config", getConfigFile())

	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("data.root"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}

	paths := pathutil.New(pathutil.Config{
		DataRoot:       cfg.Data.Root,
		HousesFile:     cfg.Data.HousesFile,
		TenantsFile:    cfg.Data.TenantsFile,
		AgreementsFile: cfg.Data.AgreementsFile,
		PaymentsFile:   cfg.Data.PaymentsFile,
		PolicyFile:     cfg.Data.PolicyFile,
		DatabasePath:   cfg.History.DBPath,
	})
	return cfg, paths
}

// openSession loads the repository and wires the booking service.
// The booking history is optional: if it cannot be opened the session
// continues without it.
func openSession(ctx context.Context) *session {
	cfg, paths := loadConfig()

	terms, err := policy.Load(paths.GetPolicyFile())
	exitOnError(err, "failed to load booking policy")

	s := &session{paths: paths}
	s.repo = inventory.Load(
		flatfile.New(paths.GetHousesFile(), rental.HouseCodec),
		flatfile.New(paths.GetTenantsFile(), rental.TenantCodec),
	)

	if !cfg.History.Disabled {
		slog.Debug("Opening booking history", "path", paths.GetDatabasePath())
		conn, err := db.Open(ctx, paths.GetDatabasePath())
		if err != nil {
			slog.Warn("Booking history unavailable", "path", paths.GetDatabasePath(), "error", err)
		} else {
			s.conn = conn
			s.history = db.NewBookingHistory(conn)
		}
	}

	bookingCfg := booking.Config{
		Inventory:  s.repo,
		Agreements: flatfile.New(paths.GetAgreementsFile(), rental.AgreementCodec),
		Payments:   flatfile.New(paths.GetPaymentsFile(), rental.PaymentCodec),
		Policy:     terms,
	}
	if s.history != nil {
		bookingCfg.History = s.history
	}
	s.booking = booking.NewService(bookingCfg)

	return s
}

// openHistory opens only the booking history database.
func openHistory(ctx context.Context) (*db.Connection, *db.BookingHistory) {
	cfg, paths := loadConfig()
	if cfg.History.Disabled {
		exitOnError(errHistoryDisabled, "cannot open booking history")
	}

	slog.Debug("Opening booking history", "path", paths.GetDatabasePath())
	conn, err := db.Open(ctx, paths.GetDatabasePath())
	exitOnError(err, "failed to open booking history")

	return conn, db.NewBookingHistory(conn)
}

func (s *session) Close() {
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			slog.Warn("Failed to close booking history", "error", err)
		}
	}
}
