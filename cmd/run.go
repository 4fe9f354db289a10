package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/filtering"
	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/secrets"
)

const (
	PromptReportByEmployers   = "Report by employers"
	PromptVacanciesToFile     = "Dump vacancies to file"
	PromptAppendToExcludeFile = "Append all vacancies to exclude file"
	PromptExit                = "Exit"

	tokenEnv = "HH_TOKEN"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search hh.ru and rank the found vacancies",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("keep-with-test", "t", false, "do not exclude vacancies with a test")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without asking")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with vacancies to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	l = logger.WithCommonFields(l, uuid.NewString(), "hh.ru")

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the hh-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Search == nil {
		l.Fatal("search section is required")
	}

	profile, err := loadProfile(config, l)
	if err != nil {
		l.Fatal("validating the profile", zap.Error(err))
	}

	engine, err := newEngine(config.Matching, l)
	if err != nil {
		l.Fatal("creating the matching engine", zap.Error(err))
	}

	token, err := resolveToken(config)
	if err != nil {
		l.Fatal(
			"loading headhunter token",
			zap.Error(err),
			zap.String("hint", "check HH_TOKEN_FILE or the 'token-file' key in the configuration file"),
		)
	}
	if token == "" {
		l.Debug("headhunter token is not set, using anonymous requests")
	}

	hh := headhunter.New(ctx, l, token)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}
	if config.RequestDelay > 0 {
		hh.RequestDelay = config.RequestDelay
	}

	l.Info("starting the search", zap.String("search", config.Search.Text))

	vacancies, err := getVacancies(hh, config, l)
	if err != nil {
		l.Fatal("getting available vacancies", zap.Error(err))
	}

	if vacancies.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no vacancies found"))
		return
	}

	filters := prepareFilters(cmd, hh, engine, profile, config, l)
	for _, status := range filters.Describe() {
		l.Debug("filter", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled), zap.String("reason", status.Reason))
	}

	vacancies, err = filters.RunFilters(ctx, vacancies)
	if err != nil {
		l.Fatal("filtering failed", zap.Error(err))
	}

	if vacancies.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no vacancies left after filters"))
		return
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		if err := handleAction(PromptReportByEmployers, l, vacancies); err != nil {
			l.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: actions(),
		}

		_, action, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		l.Info("current list of vacancies", zap.Int("count", vacancies.Len()))

		if err := handleAction(action, l, vacancies); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

func actions() []string {
	items := []string{PromptReportByEmployers, PromptVacanciesToFile}
	if viper.GetString("exclude-file") != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(action string, logger *zap.Logger, vacancies *headhunter.Vacancies) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByEmployers:
		pretty, _ := json.MarshalIndent(vacancies.ReportByEmployer(), "", "  ")
		logger.Info(string(pretty), zap.Int("vacancies count", vacancies.Len()))
		return nil
	case PromptVacanciesToFile:
		filename, err := vacancies.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(viper.GetString("exclude-file"), logger, vacancies)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(path string, logger *zap.Logger, vacancies *headhunter.Vacancies) error {
	if path == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := headhunter.GetExludedVacanciesFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(vacancies.ToExcluded(headhunter.ExcludeActorUser, ""))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", vacancies.Len()))

	vacancies.Exclude(headhunter.VacancyIDField, excluded.VacanciesIDs())
	return nil
}

// resolveToken returns an empty token when none is configured: hh.ru search works anonymously.
func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.LoadOptional(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
		Env:  tokenEnv,
	})
}

// getVacancies returns a list of vacancies that match the config.
func getVacancies(hh *headhunter.Client, config *Config, logger *zap.Logger) (*headhunter.Vacancies, error) {
	results, err := hh.Search(config.Search)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("getting vacancies", zap.Int("count", results.Len()))
	return results, nil
}

func prepareFilters(cmd *cobra.Command, hh *headhunter.Client, engine *matching.Engine, profile matching.Profile, config *Config, logger *zap.Logger) *filtering.Filtering {
	var employers []string
	if config.Exclude != nil {
		employers = config.Exclude.Employers
	}

	excludeFile := viper.GetString("exclude-file")

	steps := []filtering.Filter{
		filtering.NewWithTest(),
		filtering.NewExcludedEmployers(employers),
		filtering.NewExcludeFile(excludeFile),
		filtering.NewMatchScore(&filtering.MatchScoreConfig{
			Profile:             profile,
			MinimumScore:        config.Matching.MinimumScore,
			Limit:               config.Matching.Limit,
			FetchDetails:        config.Matching.FetchDetails,
			DetailsDelay:        config.RequestDelay,
			ExcludeBelowMinimum: config.Matching.ExcludeBelowMinimum,
			ExcludeFile:         excludeFile,
		}, &filtering.MatchScoreDeps{
			Logger: logger,
			Engine: engine,
			HH:     hh,
		}),
	}

	filters := filtering.New(steps, logger)

	if keep, _ := cmd.Flags().GetBool("keep-with-test"); keep {
		filters.DisableByName("with_test", "keep-with-test flag is set")
	}

	return filters
}
