package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/logger"
	"github.com/spigell/resume-radar/internal/naukri"
	"github.com/spigell/resume-radar/internal/profile"
	"github.com/spigell/resume-radar/internal/store"
	"github.com/spigell/resume-radar/internal/utils"
)

// run carries the state handed from one stage to the next.
type run struct {
	req      Request
	text     string
	profile  *profile.CandidateProfile
	listings []profile.JobListing
	logger   *zap.Logger
}

type stage struct {
	name  string
	fatal bool
	apply func(ctx context.Context, r *run) (Status, error)
}

func (o *Orchestrator) stages() []stage {
	return []stage{
		{name: StageExtract, apply: o.extract},
		{name: StageInfer, fatal: true, apply: o.infer},
		{name: StageSearch, apply: o.search},
		{name: StageMerge, apply: o.merge},
		{name: StagePersist, apply: o.persist},
	}
}

// Analyze runs every stage in order. Only a failed inference aborts the run;
// job search and persistence problems are logged and the profile is still
// returned.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*Result, error) {
	runID := o.newID()
	r := &run{
		req:    req,
		logger: logger.WithRun(o.deps.Logger, runID, req.UserID),
	}

	r.logger.Info("analysis started",
		zap.String("filename", req.Filename),
		zap.Int("size", len(req.Document)),
	)

	stages := o.stages()
	reports := make([]StageReport, 0, len(stages))
	for _, st := range stages {
		started := time.Now()
		status, err := st.apply(ctx, r)
		report := StageReport{Name: st.name, Status: status, Duration: time.Since(started), Err: err}
		reports = append(reports, report)

		fields := []zap.Field{
			zap.String(logger.FieldStage, st.name),
			zap.String("status", string(status)),
			zap.Duration("duration", report.Duration),
		}

		switch {
		case status == StatusFailed && st.fatal:
			r.logger.Error("analysis stage failed", append(fields, zap.Error(err))...)
			return nil, &FailedError{RunID: runID, Stage: st.name, Err: err, Stages: reports}
		case err != nil:
			r.logger.Warn("analysis stage degraded", append(fields, zap.Error(err))...)
		default:
			r.logger.Info("analysis stage", fields...)
		}
	}

	r.logger.Info("analysis finished", zap.Int("jobs", len(r.profile.Jobs)))

	return &Result{RunID: runID, Profile: r.profile, Stages: reports}, nil
}

func (o *Orchestrator) extract(_ context.Context, r *run) (Status, error) {
	text := o.deps.Extractor.Extract(r.req.Document)
	r.text = utils.TruncateRunes(text, o.cfg.MaxTextChars)

	r.logger.Debug("resume text extracted",
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.Int("kept", utf8.RuneCountInString(r.text)),
	)
	return StatusOK, nil
}

func (o *Orchestrator) infer(ctx context.Context, r *run) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.OracleTimeout)
	defer cancel()

	p, err := o.deps.Oracle.ExtractProfile(ctx, r.text)
	if err != nil {
		return StatusFailed, err
	}
	if p == nil {
		return StatusFailed, errors.New("profile oracle returned no profile")
	}

	r.profile = p
	return StatusOK, nil
}

func (o *Orchestrator) search(ctx context.Context, r *run) (Status, error) {
	params := r.profile.SearchParams.WithDefaults(o.cfg.DefaultKeyword, o.cfg.DefaultLocation, o.cfg.DefaultExperience)

	ctx, cancel := context.WithTimeout(ctx, o.cfg.SearchTimeout)
	defer cancel()

	r.listings = o.deps.Jobs.Search(ctx, naukri.SearchQuery{
		Keyword:    params.Keyword,
		Location:   params.Location,
		Experience: params.ExperienceYears,
		Skills:     r.profile.Skills,
	})

	r.logger.Debug("job search finished",
		zap.String("keyword", params.Keyword),
		zap.String("location", params.Location),
		zap.String("experience", params.ExperienceYears),
		zap.Int("jobs", len(r.listings)),
	)

	if len(r.listings) == 0 {
		return StatusDegraded, nil
	}
	return StatusOK, nil
}

func (o *Orchestrator) merge(_ context.Context, r *run) (Status, error) {
	if r.listings == nil {
		r.listings = []profile.JobListing{}
	}
	r.profile.Jobs = r.listings
	return StatusOK, nil
}

func (o *Orchestrator) persist(ctx context.Context, r *run) (Status, error) {
	userID := strings.TrimSpace(r.req.UserID)
	if userID == "" {
		r.logger.Info("no user id, profile not saved")
		return StatusSkipped, nil
	}

	payload, err := json.Marshal(r.profile)
	if err != nil {
		return StatusDegraded, fmt.Errorf("encoding profile: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.PersistTimeout)
	defer cancel()

	err = o.deps.Store.Put(ctx, store.Record{
		UserID:  userID,
		Email:   r.profile.PersonalInfo.Email,
		Name:    r.profile.PersonalInfo.Name,
		Profile: payload,
	})
	if err != nil {
		return StatusDegraded, err
	}
	return StatusOK, nil
}
