package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/application"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/booking"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/catalog"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/config"
	httptransport "github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/http"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence/sqlite"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/timeslot"
)

// NewServeCmd starts the reservation HTTP API.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reservation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			storage, err := openStorage(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := storage.Close(); cerr != nil {
					logger.Error("failed to close storage", "error", cerr)
				}
			}()

			grid, err := timeslot.NewGrid(cfg.SlotOpen, cfg.SlotClose, cfg.SlotInterval)
			if err != nil {
				return fmt.Errorf("build slot grid: %w", err)
			}

			now := time.Now
			policy := booking.NewWindowPolicy(cfg.BookingHorizonDays)

			catalogService := application.NewCatalogServiceWithLogger(storage, logger)
			availabilityService := application.NewAvailabilityServiceWithLogger(storage, storage, grid, logger)
			reservationService := application.NewReservationServiceWithLogger(storage, policy, now, logger)
			customerService := application.NewCustomerServiceWithLogger(storage, logger)

			router := httptransport.NewRouter(httptransport.RouterConfig{
				Catalog:      httptransport.NewCatalogHandler(catalogService, logger),
				Availability: httptransport.NewAvailabilityHandler(availabilityService, logger),
				Reservations: httptransport.NewReservationHandler(reservationService, logger),
				Customers:    httptransport.NewCustomerHandler(customerService, reservationService, logger),
			})
			handler := httptransport.RequestLogger(logger)(router)

			server := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("failed to shutdown server", "error", err)
				}
			}()

			logger.Info("reservation API listening", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

// openStorage opens the SQLite store, applies migrations, and seeds the
// catalog when the store is empty.
func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sqlite.Storage, error) {
	storage, err := sqlite.Open(cfg.SQLiteDSN, sqlite.Options{
		RefPrefix: cfg.ReservationPrefix,
		SeqStart:  cfg.ReservationSeqStart,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	seed, err := loadSeed(cfg.CatalogSeedPath)
	if err != nil {
		storage.Close()
		return nil, err
	}
	if err := storage.Seed(ctx, seed); err != nil {
		storage.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	logger.Info("storage ready", "dsn", cfg.SQLiteDSN)
	return storage, nil
}

func loadSeed(path string) (catalog.Seed, error) {
	if path == "" {
		return catalog.DefaultSeed(), nil
	}
	seed, err := catalog.LoadSeedFile(path)
	if err != nil {
		return catalog.Seed{}, fmt.Errorf("load catalog seed %s: %w", path, err)
	}
	return seed, nil
}
