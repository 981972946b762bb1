package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai"
	"github.com/spigell/resume-radar/internal/analysis"
	"github.com/spigell/resume-radar/internal/document"
	"github.com/spigell/resume-radar/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze a PDF resume and print the profile with matching jobs",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("user-id", "u", "", "store the profile under this user id")
	analyzeCmd.Flags().String("fixture", "", "answer with this profile JSON instead of calling Gemini")
}

func analyze(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, config := setup()
	defer logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err))
	}

	oracle, err := newOracle(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("configuring the profile oracle", zap.Error(err))
	}

	jobs, err := newJobClient(config.Naukri, logger)
	if err != nil {
		logger.Fatal("configuring the job search client", zap.Error(err))
	}

	userID, _ := cmd.Flags().GetString("user-id")

	var profiles store.Store = store.Nop{}
	if userID != "" {
		profiles, err = openStore(ctx, config.Store, logger)
		if err != nil {
			logger.Fatal("opening the profile store", zap.Error(err))
		}
		defer profiles.Close()
	}

	orchestrator := analysis.New(config.Analysis, analysis.Deps{
		Extractor: document.New(logger),
		Oracle:    oracle,
		Jobs:      jobs,
		Store:     profiles,
		Logger:    logger,
	})

	res, err := orchestrator.Analyze(ctx, analysis.Request{
		Document: data,
		Filename: filepath.Base(path),
		UserID:   userID,
	})
	if err != nil {
		logger.Fatal("analyzing the resume", zap.Error(err))
	}

	for _, stage := range res.Stages {
		logger.Debug("stage report",
			zap.String("stage", stage.Name),
			zap.String("status", string(stage.Status)),
			zap.Duration("duration", stage.Duration),
		)
	}

	pretty, err := json.MarshalIndent(res.Profile, "", "  ")
	if err != nil {
		logger.Fatal("encoding the profile", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

func newOracle(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (ai.ProfileExtractor, error) {
	if fixture, _ := cmd.Flags().GetString("fixture"); fixture != "" {
		payload, err := os.ReadFile(fixture)
		if err != nil {
			return nil, fmt.Errorf("reading fixture %q: %w", fixture, err)
		}
		logger.Info("using a fixture profile instead of gemini", zap.String("fixture", fixture))
		return &ai.Static{Payload: payload}, nil
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		return nil, err
	}
	return newProfileExtractor(generator, config.AI.Gemini, logger)
}
