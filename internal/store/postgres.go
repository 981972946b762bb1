package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS user_resumes (
	google_id   TEXT PRIMARY KEY,
	email       TEXT,
	name        TEXT,
	resume_data JSONB,
	updated_at  TIMESTAMPTZ DEFAULT NOW()
)`

// Postgres stores profiles in the user_resumes table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	// Supabase pools connections through PgBouncer in transaction mode,
	// which does not support prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	config.MaxConns = 10
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating user_resumes table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Put(ctx context.Context, rec Record) error {
	rec, err := prepare(rec)
	if err != nil {
		return err
	}

	// resume_data is sent as text: the simple protocol encodes []byte as bytea.
	_, err = p.pool.Exec(ctx,
		`INSERT INTO user_resumes (google_id, email, name, resume_data, updated_at)
		 VALUES ($1, $2, $3, $4::jsonb, $5)
		 ON CONFLICT (google_id) DO UPDATE
		 SET resume_data = EXCLUDED.resume_data, updated_at = EXCLUDED.updated_at`,
		rec.UserID, rec.Email, rec.Name, string(rec.Profile), rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving profile for %s: %w", rec.UserID, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, userID string) (Record, error) {
	userID = strings.TrimSpace(userID)

	var (
		rec         Record
		email, name *string
		data        []byte
	)

	err := p.pool.QueryRow(ctx,
		`SELECT google_id, email, name, resume_data::text, updated_at
		 FROM user_resumes WHERE google_id = $1`,
		userID,
	).Scan(&rec.UserID, &email, &name, &data, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading profile for %s: %w", userID, err)
	}

	if email != nil {
		rec.Email = *email
	}
	if name != nil {
		rec.Name = *name
	}
	rec.Profile = data
	return rec, nil
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
