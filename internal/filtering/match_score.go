package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/utils"
)

// VacancyFetcher loads a full vacancy. *headhunter.Client implements it.
type VacancyFetcher interface {
	GetVacancy(id string) (*headhunter.Vacancy, error)
}

type MatchScoreConfig struct {
	Profile matching.Profile
	// MinimumScore drops vacancies scoring below it. Zero keeps everything.
	MinimumScore int
	// Limit keeps only the best N vacancies. Zero means no limit.
	Limit int
	// FetchDetails replaces search snippets with full vacancies before scoring.
	FetchDetails bool
	// DetailsDelay is a pause between detail requests.
	DetailsDelay time.Duration
	// ExcludeBelowMinimum appends vacancies under MinimumScore to ExcludeFile.
	ExcludeBelowMinimum bool
	ExcludeFile         string
}

type MatchScoreDeps struct {
	Logger *zap.Logger
	Engine *matching.Engine
	HH     VacancyFetcher
}

type matchScoreFilter struct {
	enabled bool
	reason  string
	config  *MatchScoreConfig
	deps    *MatchScoreDeps
}

// NewMatchScore creates the step that ranks vacancies with the matching engine.
func NewMatchScore(cfg *MatchScoreConfig, deps *MatchScoreDeps) Filter {
	return &matchScoreFilter{
		enabled: true,
		config:  cfg,
		deps:    deps,
	}
}

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *matchScoreFilter) IsEnabled() bool { return f.enabled }

func (f *matchScoreFilter) Validate() error {
	if f.config == nil {
		return fmt.Errorf("config is not initialized: filter is not usable")
	}
	if f.deps == nil || f.deps.Engine == nil {
		return fmt.Errorf("matching engine is required")
	}
	if f.config.MinimumScore < 0 || f.config.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %d", f.config.MinimumScore)
	}
	if f.config.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", f.config.Limit)
	}
	if f.config.FetchDetails && f.deps.HH == nil {
		return fmt.Errorf("headhunter client is required to fetch vacancy details")
	}
	if f.config.ExcludeBelowMinimum && strings.TrimSpace(f.config.ExcludeFile) == "" {
		return fmt.Errorf("exclude file is required to exclude vacancies below the minimum score")
	}
	if f.deps.Logger == nil {
		f.deps.Logger = zap.NewNop()
	}
	return nil
}

func (f *matchScoreFilter) Apply(ctx context.Context, v *headhunter.Vacancies) (*headhunter.Vacancies, Step, error) {
	initial := v.Len()
	if initial == 0 {
		return v, Step{}, nil
	}

	if f.config.FetchDetails {
		if err := f.fetchDetails(ctx, v); err != nil {
			return v, Step{}, err
		}
	}

	postings := make([]matching.Posting, v.Len())
	for i, vacancy := range v.Items {
		postings[i] = vacancy.Posting()
	}

	// Results point into postings. IDs can repeat or be empty, pointers cannot.
	byPosting := make(map[*matching.Posting]*headhunter.Vacancy, len(postings))
	for i := range postings {
		byPosting[&postings[i]] = v.Items[i]
	}

	results := f.deps.Engine.MatchJobs(f.config.Profile, postings)

	kept := make([]*headhunter.Vacancy, 0, len(results))
	below := &headhunter.Vacancies{}
	for _, result := range results {
		vacancy := byPosting[result.Job]
		vacancy.Match = summary(result)

		if result.OverallScore < f.config.MinimumScore {
			f.deps.Logger.Debug("vacancy scored below the minimum",
				zap.String("vacancy_id", vacancy.ID),
				zap.String("vacancy_name", utils.TruncateForLog(vacancy.Name, 80)),
				zap.Int("match_score", result.OverallScore),
			)
			below.Items = append(below.Items, vacancy)
			continue
		}

		kept = append(kept, vacancy)
	}

	if f.config.ExcludeBelowMinimum && below.Len() > 0 {
		if err := f.appendToExcludeFile(below); err != nil {
			f.deps.Logger.Warn("failed to append vacancies to exclude file", zap.Error(err))
		}
	}

	if f.config.Limit > 0 && len(kept) > f.config.Limit {
		kept = kept[:f.config.Limit]
	}

	v.Items = kept

	if len(kept) > 0 {
		f.deps.Logger.Info("best match",
			zap.String("vacancy_id", kept[0].ID),
			zap.String("vacancy_name", kept[0].Name),
			zap.Int("match_score", kept[0].Match.Score),
			zap.Strings("match_reasons", kept[0].Match.Reasons),
		)
	}

	left := v.Len()
	return v, Step{Initial: initial, Dropped: initial - left, Left: left}, nil
}

// fetchDetails swaps search results for full vacancies. A failed fetch keeps the
// search result, which still carries a snippet.
func (f *matchScoreFilter) fetchDetails(ctx context.Context, v *headhunter.Vacancies) error {
	for i, vacancy := range v.Items {
		if i > 0 {
			if err := utils.WaitFor(ctx, f.config.DetailsDelay); err != nil {
				return err
			}
		}

		full, err := f.deps.HH.GetVacancy(vacancy.ID)
		if err != nil {
			f.deps.Logger.Warn("fetching detailed vacancy failed. Scoring the search snippet instead.",
				zap.String("vacancy_id", vacancy.ID),
				zap.Error(err),
			)
			continue
		}

		v.Items[i] = full
	}
	return nil
}

func (f *matchScoreFilter) appendToExcludeFile(vacancies *headhunter.Vacancies) error {
	path := strings.TrimSpace(f.config.ExcludeFile)

	excluded, err := headhunter.GetExludedVacanciesFromFile(path)
	if err != nil {
		return fmt.Errorf("load excluded vacancies: %w", err)
	}

	for _, vacancy := range vacancies.Items {
		reason := fmt.Sprintf("match score %d is below %d", vacancy.Match.Score, f.config.MinimumScore)
		single := &headhunter.Vacancies{Items: []*headhunter.Vacancy{vacancy}}
		excluded.Append(single.ToExcluded(headhunter.ExcludeActorMatcher, reason))
	}

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded vacancies: %w", err)
	}

	f.deps.Logger.Info("vacancies appended to exclude file",
		zap.Int("count", vacancies.Len()),
		zap.String("exclude_file", path),
	)

	return nil
}

func (f *matchScoreFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_score"] = strconv.Itoa(f.config.MinimumScore)
		details["limit"] = strconv.Itoa(f.config.Limit)
		details["fetch_details"] = strconv.FormatBool(f.config.FetchDetails)
		if f.config.ExcludeBelowMinimum {
			details["exclude_file"] = f.config.ExcludeFile
		}
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}

func summary(result matching.Result) *headhunter.MatchSummary {
	breakdown := make(map[string]int, len(result.Breakdown))
	for criterion, score := range result.Breakdown {
		breakdown[string(criterion)] = score
	}

	return &headhunter.MatchSummary{
		Score:     result.OverallScore,
		Reasons:   result.MatchReasons,
		Breakdown: breakdown,
	}
}
