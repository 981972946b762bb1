package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS user_resumes (
	google_id   TEXT PRIMARY KEY,
	email       TEXT,
	name        TEXT,
	resume_data TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

// SQLite keeps profiles in a local database file. It mirrors the Postgres
// table so a deployment can switch drivers without reshaping data.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the
// user_resumes table exists.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating user_resumes table: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Put(ctx context.Context, rec Record) error {
	rec, err := prepare(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_resumes (google_id, email, name, resume_data, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(google_id) DO UPDATE
		 SET resume_data = excluded.resume_data, updated_at = excluded.updated_at`,
		rec.UserID, rec.Email, rec.Name, string(rec.Profile), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving profile for %s: %w", rec.UserID, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, userID string) (Record, error) {
	userID = strings.TrimSpace(userID)

	var (
		rec         Record
		email, name sql.NullString
		data        sql.NullString
		updatedAt   string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT google_id, email, name, resume_data, updated_at FROM user_resumes WHERE google_id = ?",
		userID,
	).Scan(&rec.UserID, &email, &name, &data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading profile for %s: %w", userID, err)
	}

	rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parsing updated_at for %s: %w", userID, err)
	}
	rec.Email = email.String
	rec.Name = name.String
	if data.Valid {
		rec.Profile = []byte(data.String)
	}
	return rec, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
