package ai

import (
	"context"
	"errors"
	"testing"
)

func TestStaticExtractProfile(t *testing.T) {
	s := &Static{Payload: []byte(`{"skills": ["Go"], "search_params": {"keyword": "Go Developer"}}`)}

	p, err := s.ExtractProfile(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Skills) != 1 || p.SearchParams.Keyword != "Go Developer" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestStaticExtractProfileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		s     *Static
		stage string
	}{
		{name: "generate", s: &Static{Err: errors.New("quota exceeded")}, stage: StageGenerate},
		{name: "decode", s: &Static{Payload: []byte("{not json")}, stage: StageDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.s.ExtractProfile(context.Background(), "text")
			var oracleErr *OracleError
			if !errors.As(err, &oracleErr) {
				t.Fatalf("expected OracleError, got %v", err)
			}
			if oracleErr.Stage != tt.stage {
				t.Fatalf("expected stage %q, got %q", tt.stage, oracleErr.Stage)
			}
		})
	}
}

func TestChatContextWithDefaults(t *testing.T) {
	c := ChatContext{Role: "Data Engineer"}.WithDefaults()
	if c.Name != "Candidate" || c.Role != "Data Engineer" {
		t.Fatalf("unexpected context: %+v", c)
	}
}
