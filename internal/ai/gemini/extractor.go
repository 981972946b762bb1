package gemini

import (
	"context"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai"
	"github.com/spigell/resume-radar/internal/profile"
	"github.com/spigell/resume-radar/internal/utils"
)

type jsonGenerator interface {
	GenerateJSON(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var profileInstruction string

const defaultMaxLogLength = 200

// Extractor asks Gemini for a structured profile of a resume.
type Extractor struct {
	generator   jsonGenerator
	instruction string
	logger      *zap.Logger
	maxLogLen   int
}

func NewExtractor(generator jsonGenerator, logger *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator:   generator,
		instruction: profileInstruction,
		logger:      logger,
		maxLogLen:   maxLogLength,
	}
}

// SetInstruction replaces the embedded system instruction. Blank values are ignored.
func (e *Extractor) SetInstruction(instruction string) {
	if strings.TrimSpace(instruction) == "" {
		return
	}
	e.instruction = instruction
}

func (e *Extractor) ExtractProfile(ctx context.Context, text string) (*profile.CandidateProfile, error) {
	message := "Resume Text:\n" + text

	e.logger.Debug("gemini profile request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateJSON(ctx, e.instruction, message)
	if err != nil {
		return nil, &ai.OracleError{Stage: ai.StageGenerate, Err: err}
	}

	e.logger.Debug("gemini profile response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	p, dropped, err := profile.DecodeLoose([]byte(extractJSON(raw)))
	if err != nil {
		return nil, &ai.OracleError{Stage: ai.StageDecode, Err: err}
	}
	if len(dropped) > 0 {
		e.logger.Warn("gemini profile sections dropped", zap.Strings("sections", dropped))
	}

	return p, nil
}

// extractJSON strips markdown code fences the model sometimes adds even in
// JSON mode.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
