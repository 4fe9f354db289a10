package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/matching"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank postings from a file against the configured profile",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("postings", "p", "", "file with postings under the 'postings' key (yaml, json or toml)")
	rankCmd.Flags().Int("min-score", 0, "hide postings scoring below this value")
	rankCmd.Flags().IntP("limit", "l", 0, "show only the best N postings. Zero shows all")
	rankCmd.Flags().StringP("output", "o", outputTable, "output format: table, json or yaml")

	rankCmd.MarkFlagRequired("postings")
}

func rank(cmd *cobra.Command) {
	log.SetFlags(0)

	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	path, _ := cmd.Flags().GetString("postings")
	minScore, _ := cmd.Flags().GetInt("min-score")
	limit, _ := cmd.Flags().GetInt("limit")
	output, _ := cmd.Flags().GetString("output")

	l = logger.WithCommonFields(l, uuid.NewString(), path)

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	profile, err := loadProfile(config, l)
	if err != nil {
		l.Fatal("validating the profile", zap.Error(err))
	}

	engine, err := newEngine(config.Matching, l)
	if err != nil {
		l.Fatal("creating the matching engine", zap.Error(err))
	}

	postings, err := loadPostings(path)
	if err != nil {
		l.Fatal("loading postings", zap.Error(err))
	}

	l.Info("ranking postings", zap.Int("count", len(postings)))

	results := selectResults(engine.MatchJobs(profile, postings), minScore, limit)

	l.Debug("ranking finished", zap.Int("shown", len(results)))

	if err := writeResults(cmd.OutOrStdout(), output, results); err != nil {
		l.Fatal("writing results", zap.Error(err))
	}
}

// loadPostings reads postings with a dedicated viper instance so the file can be in any
// format viper understands, without touching the global config.
func loadPostings(path string) ([]matching.Posting, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("postings file is not set")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var postings []matching.Posting
	if err := v.UnmarshalKey("postings", &postings); err != nil {
		return nil, fmt.Errorf("decoding postings from %s: %w", path, err)
	}

	for i, posting := range postings {
		if strings.TrimSpace(posting.Title) == "" {
			return nil, fmt.Errorf("posting #%d in %s has no title", i+1, path)
		}
	}

	return postings, nil
}
