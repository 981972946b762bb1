// Package store persists analyzed profiles keyed by the user's Google id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverNone     = "none"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrMissingUserID = errors.New("user id is required")
)

// Record is one stored profile. Profile holds the serialized CandidateProfile
// exactly as it was returned to the client.
type Record struct {
	UserID    string
	Email     string
	Name      string
	Profile   json.RawMessage
	UpdatedAt time.Time
}

// Store upserts and reads profiles. A second Put for the same user replaces
// the profile and its timestamp. Email and name keep their first values.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, userID string) (Record, error)
	Close() error
}

type Config struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	// DSNFile points to a file holding the DSN and wins over DSN.
	DSNFile string `mapstructure:"dsn-file"`
}

// Open builds the store selected by cfg. An empty driver means postgres when
// a DSN is configured and an in-memory store otherwise.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)
	if driver == "" {
		driver = DriverMemory
		if dsn != "" {
			driver = DriverPostgres
		}
	}

	logger.Info("opening profile store", zap.String("driver", driver))

	switch driver {
	case DriverPostgres:
		return NewPostgres(ctx, dsn)
	case DriverSQLite:
		return NewSQLite(ctx, dsn)
	case DriverMemory:
		return NewMemory(), nil
	case DriverNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// prepare validates rec and stamps it with the current time when unset.
func prepare(rec Record) (Record, error) {
	rec.UserID = strings.TrimSpace(rec.UserID)
	if rec.UserID == "" {
		return rec, ErrMissingUserID
	}
	if len(rec.Profile) == 0 {
		rec.Profile = json.RawMessage("{}")
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}
