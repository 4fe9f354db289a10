package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/preferences"
)

const (
	app = "hh-matcher"
)

type Config struct {
	Profile      matching.Profile         `mapstructure:"profile"`
	Matching     *MatchingConfig          `mapstructure:"matching"`
	Search       *headhunter.SearchParams `mapstructure:"search"`
	ExcludeFile  string                   `mapstructure:"exclude-file"`
	UserAgent    string                   `mapstructure:"user-agent"`
	TokenFile    string                   `mapstructure:"token-file"`
	RequestDelay time.Duration            `mapstructure:"request-delay"`
	Exclude      *struct {
		Employers []string
	}
}

type MatchingConfig struct {
	MinimumScore        int               `mapstructure:"minimum-score"`
	Limit               int               `mapstructure:"limit"`
	Workers             int               `mapstructure:"workers"`
	FetchDetails        bool              `mapstructure:"fetch-details"`
	ExcludeBelowMinimum bool              `mapstructure:"exclude-below-minimum"`
	Weights             *matching.Weights `mapstructure:"weights"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-matcher ranks job postings against your preferences, from hh.ru or from a file",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional and never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	// Only run and rank read the config file.
	if runCmd.CalledAs() == "" && rankCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}

	return config, nil
}

// loadProfile normalizes the configured profile, logging every warning.
func loadProfile(config *Config, logger *zap.Logger) (matching.Profile, error) {
	profile, res := preferences.NormalizeAndValidate(config.Profile)
	for _, warning := range res.Warnings {
		logger.Warn("profile", zap.String("warning", warning))
	}

	return profile, res.Err()
}

func newEngine(config *MatchingConfig, logger *zap.Logger) (*matching.Engine, error) {
	weights := matching.DefaultWeights()
	if config.Weights != nil {
		weights = *config.Weights
	}

	engine, err := matching.NewEngine(matching.Config{
		Weights: weights,
		Workers: config.Workers,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("matching: %w", err)
	}

	return engine, nil
}
