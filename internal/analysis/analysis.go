// Package analysis runs the resume analysis pipeline: text extraction,
// profile inference, job search, merge and persistence.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai"
	"github.com/spigell/resume-radar/internal/naukri"
	"github.com/spigell/resume-radar/internal/profile"
	"github.com/spigell/resume-radar/internal/store"
)

const (
	StageExtract = "extract"
	StageInfer   = "infer"
	StageSearch  = "search"
	StageMerge   = "merge"
	StagePersist = "persist"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// TextExtractor pulls plain text out of an uploaded document. It never fails;
// unreadable documents yield a placeholder text.
type TextExtractor interface {
	Extract(data []byte) string
}

// JobSearcher finds scored job listings. Failures yield an empty list.
type JobSearcher interface {
	Search(ctx context.Context, q naukri.SearchQuery) []profile.JobListing
}

// Deps aggregates the collaborators used by the pipeline stages.
type Deps struct {
	Extractor TextExtractor
	Oracle    ai.ProfileExtractor
	Jobs      JobSearcher
	Store     store.Store
	Logger    *zap.Logger
}

// Config tunes the pipeline. Zero values are replaced by DefaultConfig.
type Config struct {
	MaxTextChars      int           `mapstructure:"max-text-chars"`
	DefaultKeyword    string        `mapstructure:"default-keyword"`
	DefaultLocation   string        `mapstructure:"default-location"`
	DefaultExperience string        `mapstructure:"default-experience"`
	OracleTimeout     time.Duration `mapstructure:"oracle-timeout"`
	SearchTimeout     time.Duration `mapstructure:"search-timeout"`
	PersistTimeout    time.Duration `mapstructure:"persist-timeout"`
}

func DefaultConfig() Config {
	return Config{
		MaxTextChars:      15000,
		DefaultKeyword:    "Software Engineer",
		DefaultLocation:   "Bangalore",
		DefaultExperience: "0",
		OracleTimeout:     60 * time.Second,
		SearchTimeout:     15 * time.Second,
		PersistTimeout:    5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxTextChars <= 0 {
		c.MaxTextChars = def.MaxTextChars
	}
	if c.DefaultKeyword == "" {
		c.DefaultKeyword = def.DefaultKeyword
	}
	if c.DefaultLocation == "" {
		c.DefaultLocation = def.DefaultLocation
	}
	if c.DefaultExperience == "" {
		c.DefaultExperience = def.DefaultExperience
	}
	if c.OracleTimeout <= 0 {
		c.OracleTimeout = def.OracleTimeout
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = def.SearchTimeout
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = def.PersistTimeout
	}
	return c
}

// Request is one uploaded resume. UserID is empty for anonymous uploads,
// which are analyzed but never stored.
type Request struct {
	Document []byte
	Filename string
	UserID   string
}

// StageReport describes how a single stage went. Reports are meant for logs
// and tests and are not part of the API response.
type StageReport struct {
	Name     string
	Status   Status
	Duration time.Duration
	Err      error
}

type Result struct {
	RunID   string
	Profile *profile.CandidateProfile
	Stages  []StageReport
}

// Stage returns the report for the named stage.
func (r *Result) Stage(name string) (StageReport, bool) {
	for _, report := range r.Stages {
		if report.Name == name {
			return report, true
		}
	}
	return StageReport{}, false
}

// FailedError is returned when a fatal stage fails. No partial profile is
// produced in that case.
type FailedError struct {
	RunID  string
	Stage  string
	Err    error
	Stages []StageReport
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("analysis %s failed: %v", e.Stage, e.Err)
}

func (e *FailedError) Unwrap() error { return e.Err }

type Orchestrator struct {
	cfg   Config
	deps  Deps
	newID func() string
}

func New(cfg Config, deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Store == nil {
		deps.Store = store.Nop{}
	}

	return &Orchestrator{
		cfg:   cfg.withDefaults(),
		deps:  deps,
		newID: uuid.NewString,
	}
}
