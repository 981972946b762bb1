package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-radar/internal/ai/gemini"
	"github.com/spigell/resume-radar/internal/analysis"
	"github.com/spigell/resume-radar/internal/document"
	"github.com/spigell/resume-radar/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resume analysis HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	serveCmd.Flags().String("store", "", "profile store driver: postgres, sqlite, memory or none")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("store.driver", serveCmd.Flags().Lookup("store"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()
	defer logger.Sync()

	logger.Info("starting the resume-radar server", zap.String("version", version))

	jobs, err := newJobClient(config.Naukri, logger)
	if err != nil {
		logger.Fatal("configuring the job search client", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("configuring the gemini generator", zap.Error(err))
	}

	extractor, err := newProfileExtractor(generator, config.AI.Gemini, logger)
	if err != nil {
		logger.Fatal("configuring the profile extractor", zap.Error(err))
	}

	profiles, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening the profile store", zap.Error(err))
	}
	defer profiles.Close()

	orchestrator := analysis.New(config.Analysis, analysis.Deps{
		Extractor: document.New(logger.With(zap.String("component", "document"))),
		Oracle:    extractor,
		Jobs:      jobs,
		Store:     profiles,
		Logger:    logger.With(zap.String("component", "analysis")),
	})

	srv := server.New(config.Server, server.Deps{
		Analyzer: orchestrator,
		Jobs:     jobs,
		Profiles: profiles,
		Coach:    gemini.NewCoach(generator, logger.With(zap.String("component", "coach"))),
		Logger:   logger.With(zap.String("component", "http")),
	})

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}

	logger.Info("server stopped")
}
