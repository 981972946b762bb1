package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-radar/internal/analysis"
	"github.com/spigell/resume-radar/internal/server"
	"github.com/spigell/resume-radar/internal/store"
)

const (
	app = "resume-radar"
)

type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Naukri   NaukriConfig    `mapstructure:"naukri"`
	AI       AIConfig        `mapstructure:"ai"`
	Store    store.Config    `mapstructure:"store"`
	Analysis analysis.Config `mapstructure:"analysis"`
}

type NaukriConfig struct {
	APIURL      string        `mapstructure:"api-url"`
	Origin      string        `mapstructure:"origin"`
	HeadersFile string        `mapstructure:"headers-file"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
	PromptFile   string `mapstructure:"prompt-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-radar turns a resume into a structured profile and matching Naukri jobs",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string][]string{
		"ai.gemini.api-key":      {"GEMINI_API_KEY"},
		"ai.gemini.api-key-file": {"GEMINI_API_KEY_FILE"},
		"store.dsn":              {"DATABASE_URL", "SUPABASE_DB_URL"},
		"store.dsn-file":         {"DATABASE_URL_FILE"},
		"store.driver":           {"STORE_DRIVER"},
		"server.addr":            {"RESUME_RADAR_ADDR"},
	}
	for key, envs := range envBindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			log.Fatalf("binding %v environment variables: %v", envs, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-radar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	def := analysis.DefaultConfig()

	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.read-timeout", 30*time.Second)
	viper.SetDefault("server.write-timeout", 2*time.Minute)
	viper.SetDefault("server.max-upload-mb", 10)

	viper.SetDefault("naukri.timeout", 10*time.Second)

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("analysis.max-text-chars", def.MaxTextChars)
	viper.SetDefault("analysis.default-keyword", def.DefaultKeyword)
	viper.SetDefault("analysis.default-location", def.DefaultLocation)
	viper.SetDefault("analysis.default-experience", def.DefaultExperience)
	viper.SetDefault("analysis.oracle-timeout", def.OracleTimeout)
	viper.SetDefault("analysis.search-timeout", def.SearchTimeout)
	viper.SetDefault("analysis.persist-timeout", def.PersistTimeout)
}

func initConfig() {
	// A missing .env is fine, the variables may come from the environment.
	_ = godotenv.Load()

	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
