package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the reservation service.
type Config struct {
	HTTPPort            int
	SQLiteDSN           string
	BookingHorizonDays  int
	ReservationPrefix   string
	ReservationSeqStart int64
	SlotOpen            string
	SlotClose           string
	SlotInterval        time.Duration
	CatalogSeedPath     string
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for every field so the service can start with no
// environment at all, while collecting the names of any values that fail to
// parse and reporting them in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:            8080,
		SQLiteDSN:           "file:tableturner.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		BookingHorizonDays:  3,
		ReservationPrefix:   "TT",
		ReservationSeqStart: 1000,
		SlotOpen:            "11:00",
		SlotClose:           "23:00",
		SlotInterval:        30 * time.Minute,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("TABLETURNER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "TABLETURNER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("TABLETURNER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if horizonValue := strings.TrimSpace(os.Getenv("TABLETURNER_BOOKING_HORIZON_DAYS")); horizonValue != "" {
		horizon, err := strconv.Atoi(horizonValue)
		if err != nil || horizon < 0 {
			invalid = append(invalid, "TABLETURNER_BOOKING_HORIZON_DAYS")
		} else {
			cfg.BookingHorizonDays = horizon
		}
	}

	if prefix := strings.TrimSpace(os.Getenv("TABLETURNER_RESERVATION_PREFIX")); prefix != "" {
		cfg.ReservationPrefix = prefix
	}

	if seqValue := strings.TrimSpace(os.Getenv("TABLETURNER_RESERVATION_SEQ_START")); seqValue != "" {
		seq, err := strconv.ParseInt(seqValue, 10, 64)
		if err != nil || seq < 0 {
			invalid = append(invalid, "TABLETURNER_RESERVATION_SEQ_START")
		} else {
			cfg.ReservationSeqStart = seq
		}
	}

	if open := strings.TrimSpace(os.Getenv("TABLETURNER_SLOT_OPEN")); open != "" {
		if !validClockValue(open) {
			invalid = append(invalid, "TABLETURNER_SLOT_OPEN")
		} else {
			cfg.SlotOpen = open
		}
	}

	if close := strings.TrimSpace(os.Getenv("TABLETURNER_SLOT_CLOSE")); close != "" {
		if !validClockValue(close) {
			invalid = append(invalid, "TABLETURNER_SLOT_CLOSE")
		} else {
			cfg.SlotClose = close
		}
	}

	if intervalValue := strings.TrimSpace(os.Getenv("TABLETURNER_SLOT_INTERVAL")); intervalValue != "" {
		interval, err := time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "TABLETURNER_SLOT_INTERVAL")
		} else {
			cfg.SlotInterval = interval
		}
	}

	if seedPath := strings.TrimSpace(os.Getenv("TABLETURNER_CATALOG_SEED")); seedPath != "" {
		cfg.CatalogSeedPath = seedPath
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func validClockValue(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}
