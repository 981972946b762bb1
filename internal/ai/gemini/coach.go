package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai"
)

type textGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Coach answers career questions in the voice of a supportive career coach.
type Coach struct {
	generator textGenerator
	logger    *zap.Logger
}

func NewCoach(generator textGenerator, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{generator: generator, logger: logger}
}

func (c *Coach) Reply(ctx context.Context, chat ai.ChatContext, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ai.ErrEmptyMessage
	}

	chat = chat.WithDefaults()
	reply, err := c.generator.GenerateContent(ctx, coachInstruction(chat), message)
	if err != nil {
		return "", fmt.Errorf("coach reply: %w", err)
	}

	c.logger.Debug("coach replied", zap.String("role", chat.Role), zap.Int("reply_length", len(reply)))
	return reply, nil
}

func coachInstruction(chat ai.ChatContext) string {
	skills := strings.Join(chat.Skills, ", ")
	if skills == "" {
		skills = "not provided"
	}

	return fmt.Sprintf(`You are an upbeat, empathetic career coach helping %[1]s land a %[2]s role.

Guidelines:
- Acknowledge the feelings or worries the candidate shares before giving advice.
- Remind them of their strengths, grounded in their skills: %[3]s.
- Keep the advice professionally sound and specific. Be warm, concise and direct.

Candidate:
Name: %[1]s
Target role: %[2]s
Skills: %[3]s`, chat.Name, chat.Role, skills)
}
