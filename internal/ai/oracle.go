// Package ai defines the generative model collaborators used by the analysis
// pipeline.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/resume-radar/internal/profile"
)

const (
	StageGenerate = "generate"
	StageDecode   = "decode"
)

// ProfileExtractor turns resume text into a structured candidate profile.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (*profile.CandidateProfile, error)
}

// OracleError reports a failed profile extraction. Stage tells whether the
// model call itself failed or its answer could not be decoded.
type OracleError struct {
	Stage string
	Err   error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("profile oracle %s: %v", e.Stage, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// Static is a ProfileExtractor answering with a fixed payload. It is used for
// offline runs and tests.
type Static struct {
	Payload []byte
	Err     error
}

func (s *Static) ExtractProfile(_ context.Context, _ string) (*profile.CandidateProfile, error) {
	if s.Err != nil {
		return nil, &OracleError{Stage: StageGenerate, Err: s.Err}
	}

	p, err := profile.Decode(s.Payload)
	if err != nil {
		return nil, &OracleError{Stage: StageDecode, Err: err}
	}
	return p, nil
}

// ChatContext describes the candidate a chat reply is addressed to.
type ChatContext struct {
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}

// Coach answers free-form career questions.
type Coach interface {
	Reply(ctx context.Context, chat ChatContext, message string) (string, error)
}

var ErrEmptyMessage = errors.New("message must not be empty")

// WithDefaults fills blank context fields with neutral values.
func (c ChatContext) WithDefaults() ChatContext {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = "Candidate"
	}
	if strings.TrimSpace(c.Role) == "" {
		c.Role = "Job Seeker"
	}
	return c
}
