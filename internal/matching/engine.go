package matching

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ReasonTopRole        = "Top Role Match"
	ReasonTechStack      = "Strong Tech Stack Alignment"
	ReasonSalary         = "Matches Salary Expectations"
	ReasonPerfectPlace   = "Perfect Location"
	ReasonRemote         = "Remote Opportunity"
	maxReasons           = 3
	defaultParallelFloor = 32
)

// Config tunes an Engine.
type Config struct {
	Weights Weights
	// Workers bounds the goroutines used for scoring. Zero or one scores sequentially.
	Workers int
	// ParallelFloor is the smallest batch worth fanning out. Zero uses the default.
	ParallelFloor int
}

// Engine scores postings against a profile. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	weights       Weights
	workers       int
	parallelFloor int
	logger        *zap.Logger
}

// NewEngine validates cfg and returns a ready Engine. A nil logger disables logging.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	floor := cfg.ParallelFloor
	if floor <= 0 {
		floor = defaultParallelFloor
	}

	return &Engine{
		weights:       cfg.Weights,
		workers:       cfg.Workers,
		parallelFloor: floor,
		logger:        logger,
	}, nil
}

var defaultEngine = &Engine{
	weights:       DefaultWeights(),
	parallelFloor: defaultParallelFloor,
	logger:        zap.NewNop(),
}

// MatchJobs ranks jobs for profile with the default weights, sequentially.
func MatchJobs(profile Profile, jobs []Posting) []Result {
	return defaultEngine.MatchJobs(profile, jobs)
}

// Weights returns the engine's weight vector.
func (e *Engine) Weights() Weights {
	return e.weights
}

// MatchJobs scores every job and returns the results sorted by overall score, highest
// first. Jobs with equal scores keep their input order. Result.Job points into jobs.
func (e *Engine) MatchJobs(profile Profile, jobs []Posting) []Result {
	results := make([]Result, len(jobs))

	if e.workers <= 1 || len(jobs) < e.parallelFloor {
		for i := range jobs {
			results[i] = e.Score(profile, &jobs[i])
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.workers)
		for i := range jobs {
			g.Go(func() error {
				results[i] = e.Score(profile, &jobs[i])
				return nil
			})
		}
		_ = g.Wait()
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.OverallScore - a.OverallScore
	})

	return results
}

// Score evaluates a single posting.
func (e *Engine) Score(profile Profile, job *Posting) Result {
	raw := map[Criterion]float64{
		CriterionRole:        RoleMatch(profile.DesiredRoles, job.Title, job.Category),
		CriterionTechStack:   TechStackMatch(profile.DesiredRoles, job.Title+" "+job.Description, job.Skills),
		CriterionDescription: DescriptionMatch(profile.DesiredRoles, job.Description),
		CriterionLocation:    LocationMatch(profile.Locations, job.Location, job.IsRemote),
		CriterionSalary: SalaryMatch(
			profile.SalaryMin, profile.SalaryMax, profile.SalaryPeriod,
			job.SalaryMin, job.SalaryMax, job.salaryPeriod(),
		),
		CriterionExperience:  ExperienceMatch(profile.ExperienceLevel, job.experience()),
		CriterionWorkType:    WorkTypeMatch(profile.WorkType, job.EmploymentType, job.IsRemote),
		CriterionIndustry:    IndustryMatch(profile.Industries, job.Industry),
		CriterionCompanySize: CompanySizeMatch(profile.CompanySize, job.CompanySize),
		CriterionBenefits:    ListOverlapMatch(profile.Benefits, job.Benefits),
		CriterionGrowth:      ListOverlapMatch(profile.GrowthOpportunities, job.GrowthOpportunities),
	}

	breakdown := make(Breakdown, len(raw))
	overall := 0.0
	for _, c := range Criteria {
		breakdown[c] = roundScore(raw[c])
		overall += raw[c] * e.weights.Of(c)
	}

	result := Result{
		Job:          job,
		OverallScore: roundScore(overall),
		Breakdown:    breakdown,
		MatchReasons: matchReasons(breakdown, job.IsRemote),
	}

	e.logger.Debug("posting scored",
		zap.String("title", job.Title),
		zap.String("id", job.ID),
		zap.Int("overall_score", result.OverallScore),
		zap.Strings("reasons", result.MatchReasons),
	)

	return result
}

// matchReasons explains a result using fixed thresholds, in priority order.
func matchReasons(b Breakdown, remote bool) []string {
	candidates := []struct {
		ok     bool
		reason string
	}{
		{b[CriterionRole] >= 90, ReasonTopRole},
		{b[CriterionTechStack] >= 80, ReasonTechStack},
		{b[CriterionSalary] >= 100, ReasonSalary},
		{b[CriterionLocation] >= 100, ReasonPerfectPlace},
		{remote, ReasonRemote},
	}

	reasons := make([]string, 0, maxReasons)
	for _, c := range candidates {
		if c.ok {
			reasons = append(reasons, c.reason)
		}
		if len(reasons) == maxReasons {
			break
		}
	}
	return reasons
}

// roundScore rounds to the nearest integer and clamps to [0, 100].
func roundScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(min(max(v, 0), 100)))
}
