package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai/gemini"
	"github.com/spigell/resume-radar/internal/logger"
	"github.com/spigell/resume-radar/internal/naukri"
	"github.com/spigell/resume-radar/internal/secrets"
	"github.com/spigell/resume-radar/internal/store"
)

// setup builds the logger and reads the configuration shared by every
// command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

func redacted(config *Config) Config {
	c := *config
	if c.AI.Gemini != nil {
		g := *c.AI.Gemini
		if g.APIKey != "" {
			g.APIKey = "***"
		}
		c.AI.Gemini = &g
	}
	if c.Store.DSN != "" {
		c.Store.DSN = "***"
	}
	return c
}

func openStore(ctx context.Context, cfg store.Config, lg *zap.Logger) (store.Store, error) {
	dsn, err := secrets.Load(secrets.Source{
		Name:     "database url",
		Value:    cfg.DSN,
		File:     cfg.DSNFile,
		Optional: true,
	})
	if err != nil {
		return nil, err
	}
	cfg.DSN = dsn

	return store.Open(ctx, cfg, lg.With(zap.String("component", "store")))
}

func newJobClient(cfg NaukriConfig, lg *zap.Logger) (*naukri.Client, error) {
	client := naukri.New(lg.With(zap.String("component", "naukri")), nil)

	if cfg.APIURL != "" {
		client.APIURL = strings.TrimRight(cfg.APIURL, "/")
	}
	if cfg.Origin != "" {
		client.Origin = strings.TrimRight(cfg.Origin, "/")
	}
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}

	if cfg.HeadersFile != "" {
		headers, err := naukri.LoadHeaders(cfg.HeadersFile)
		if err != nil {
			return nil, err
		}
		client.Headers = headers
	}

	return client, nil
}

func newGenerator(ctx context.Context, cfg AIConfig, lg *zap.Logger) (*gemini.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file)", err)
	}

	genLogger := logger.WithAIFields(lg, "gemini", cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
}

func newProfileExtractor(generator *gemini.Generator, cfg *GeminiConfig, lg *zap.Logger) (*gemini.Extractor, error) {
	extractor := gemini.NewExtractor(generator, logger.WithAIFields(lg, "gemini", generator.Model()), cfg.MaxLogLength)

	if cfg.PromptFile != "" {
		data, err := os.ReadFile(cfg.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("reading prompt file %q: %w", cfg.PromptFile, err)
		}
		extractor.SetInstruction(string(data))
	}

	return extractor, nil
}
