// Package matching ranks job postings against a candidate preference profile.
//
// Every scorer in this package is a pure function: it never fails, never performs I/O
// and maps missing input to a fixed neutral score.
package matching

// SalaryPeriod is the pay period a salary figure refers to.
type SalaryPeriod string

const (
	PeriodHourly  SalaryPeriod = "hourly"
	PeriodWeekly  SalaryPeriod = "weekly"
	PeriodMonthly SalaryPeriod = "monthly"
	PeriodYearly  SalaryPeriod = "yearly"
)

// ExperienceLevel is an ordinal seniority label.
type ExperienceLevel string

const (
	LevelEntry    ExperienceLevel = "Entry Level"
	LevelJunior   ExperienceLevel = "Junior"
	LevelMid      ExperienceLevel = "Mid-level"
	LevelSenior   ExperienceLevel = "Senior"
	LevelLead     ExperienceLevel = "Lead"
	LevelManager  ExperienceLevel = "Manager"
	LevelDirector ExperienceLevel = "Director"
)

// ExperienceLevels lists the seniority labels from least to most senior.
var ExperienceLevels = []ExperienceLevel{
	LevelEntry,
	LevelJunior,
	LevelMid,
	LevelSenior,
	LevelLead,
	LevelManager,
	LevelDirector,
}

// Profile describes what a candidate is looking for.
type Profile struct {
	DesiredRoles        []string        `json:"desired_roles,omitempty" yaml:"desired_roles,omitempty" mapstructure:"desired-roles"`
	Locations           []string        `json:"locations,omitempty" yaml:"locations,omitempty" mapstructure:"locations"`
	SalaryMin           float64         `json:"salary_min,omitempty" yaml:"salary_min,omitempty" mapstructure:"salary-min" validate:"gte=0"`
	SalaryMax           float64         `json:"salary_max,omitempty" yaml:"salary_max,omitempty" mapstructure:"salary-max" validate:"omitempty,gte=0,gtefield=SalaryMin"`
	SalaryPeriod        SalaryPeriod    `json:"salary_period,omitempty" yaml:"salary_period,omitempty" mapstructure:"salary-period" validate:"omitempty,oneof=hourly weekly monthly yearly"`
	ExperienceLevel     ExperienceLevel `json:"experience_level,omitempty" yaml:"experience_level,omitempty" mapstructure:"experience-level"`
	WorkType            []string        `json:"work_type,omitempty" yaml:"work_type,omitempty" mapstructure:"work-type"`
	Industries          []string        `json:"industries,omitempty" yaml:"industries,omitempty" mapstructure:"industries"`
	CompanySize         []string        `json:"company_size,omitempty" yaml:"company_size,omitempty" mapstructure:"company-size"`
	Benefits            []string        `json:"benefits,omitempty" yaml:"benefits,omitempty" mapstructure:"benefits"`
	GrowthOpportunities []string        `json:"growth_opportunities,omitempty" yaml:"growth_opportunities,omitempty" mapstructure:"growth-opportunities"`
}

// Posting is a single job posting as seen by the scorers.
// ID, URL and Company are carried for callers and never read by the scorers.
type Posting struct {
	ID                  string          `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	URL                 string          `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
	Company             string          `json:"company,omitempty" yaml:"company,omitempty" mapstructure:"company"`
	Title               string          `json:"title" yaml:"title" mapstructure:"title"`
	Category            string          `json:"category,omitempty" yaml:"category,omitempty" mapstructure:"category"`
	Description         string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Skills              []string        `json:"skills,omitempty" yaml:"skills,omitempty" mapstructure:"skills"`
	Location            string          `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	IsRemote            bool            `json:"is_remote,omitempty" yaml:"is_remote,omitempty" mapstructure:"is-remote"`
	SalaryMin           float64         `json:"salary_min,omitempty" yaml:"salary_min,omitempty" mapstructure:"salary-min"`
	SalaryMax           float64         `json:"salary_max,omitempty" yaml:"salary_max,omitempty" mapstructure:"salary-max"`
	SalaryPeriod        SalaryPeriod    `json:"salary_period,omitempty" yaml:"salary_period,omitempty" mapstructure:"salary-period"`
	Experience          ExperienceLevel `json:"experience,omitempty" yaml:"experience,omitempty" mapstructure:"experience"`
	EmploymentType      string          `json:"employment_type,omitempty" yaml:"employment_type,omitempty" mapstructure:"employment-type"`
	Industry            string          `json:"industry,omitempty" yaml:"industry,omitempty" mapstructure:"industry"`
	CompanySize         string          `json:"company_size,omitempty" yaml:"company_size,omitempty" mapstructure:"company-size"`
	Benefits            []string        `json:"benefits,omitempty" yaml:"benefits,omitempty" mapstructure:"benefits"`
	GrowthOpportunities []string        `json:"growth_opportunities,omitempty" yaml:"growth_opportunities,omitempty" mapstructure:"growth-opportunities"`
}

// salaryPeriod returns the posting's pay period, defaulting to yearly.
func (p *Posting) salaryPeriod() SalaryPeriod {
	if p.SalaryPeriod == "" {
		return PeriodYearly
	}
	return p.SalaryPeriod
}

// experience returns the posting's seniority, defaulting to Mid-level.
func (p *Posting) experience() ExperienceLevel {
	if p.Experience == "" {
		return LevelMid
	}
	return p.Experience
}

// Criterion names a single scoring dimension.
type Criterion string

const (
	CriterionRole        Criterion = "role"
	CriterionTechStack   Criterion = "techStack"
	CriterionDescription Criterion = "description"
	CriterionLocation    Criterion = "location"
	CriterionSalary      Criterion = "salary"
	CriterionExperience  Criterion = "experience"
	CriterionWorkType    Criterion = "workType"
	CriterionIndustry    Criterion = "industry"
	CriterionCompanySize Criterion = "companySize"
	CriterionBenefits    Criterion = "benefits"
	CriterionGrowth      Criterion = "growth"
)

// Criteria lists every criterion reported in a Breakdown, in reporting order.
var Criteria = []Criterion{
	CriterionRole,
	CriterionTechStack,
	CriterionDescription,
	CriterionLocation,
	CriterionSalary,
	CriterionExperience,
	CriterionWorkType,
	CriterionIndustry,
	CriterionCompanySize,
	CriterionBenefits,
	CriterionGrowth,
}

// Breakdown maps each criterion to its rounded 0-100 score.
type Breakdown map[Criterion]int

// Result is the outcome of scoring one posting.
type Result struct {
	Job          *Posting  `json:"job" yaml:"job"`
	OverallScore int       `json:"overall_score" yaml:"overall_score"`
	Breakdown    Breakdown `json:"breakdown" yaml:"breakdown"`
	MatchReasons []string  `json:"match_reasons" yaml:"match_reasons"`
}
