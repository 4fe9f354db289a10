// Package preferences cleans up a candidate profile read from configuration before it
// reaches the matching engine.
package preferences

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/hh-matcher/internal/matching"
)

const maxLocations = 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report config keys rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err joins all errors into one, or returns nil.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("invalid profile: " + strings.Join(v.Errors, "; "))
}

var salaryPeriods = map[string]matching.SalaryPeriod{
	"hourly":   matching.PeriodHourly,
	"hour":     matching.PeriodHourly,
	"weekly":   matching.PeriodWeekly,
	"week":     matching.PeriodWeekly,
	"monthly":  matching.PeriodMonthly,
	"month":    matching.PeriodMonthly,
	"yearly":   matching.PeriodYearly,
	"year":     matching.PeriodYearly,
	"annual":   matching.PeriodYearly,
	"annually": matching.PeriodYearly,
}

// ParseSalaryPeriod maps common spellings onto a SalaryPeriod. Blank input means yearly.
func ParseSalaryPeriod(s string) (matching.SalaryPeriod, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return matching.PeriodYearly, true
	}
	period, ok := salaryPeriods[s]
	return period, ok
}

// NormalizeAndValidate returns a cleaned copy of the profile: lists are trimmed and
// de-duplicated case-insensitively, the experience level and salary period are
// canonical. Problems that make scoring meaningless are errors; suspicious input is a
// warning.
func NormalizeAndValidate(profile matching.Profile) (matching.Profile, Validation) {
	out := profile
	var res Validation

	out.DesiredRoles = trimList(out.DesiredRoles)
	out.Locations = trimList(out.Locations)
	out.WorkType = trimList(out.WorkType)
	out.Industries = trimList(out.Industries)
	out.CompanySize = trimList(out.CompanySize)
	out.Benefits = trimList(out.Benefits)
	out.GrowthOpportunities = trimList(out.GrowthOpportunities)

	if raw := strings.TrimSpace(string(out.ExperienceLevel)); raw != "" {
		level, ok := matching.NormalizeExperienceLevel(raw)
		switch {
		case !ok:
			res.addErr("experience-level %q is unknown, expected one of %s", raw, levelNames())
		case !strings.EqualFold(raw, string(level)):
			res.addWarn("experience-level %q is read as %q", raw, level)
		}
		out.ExperienceLevel = level
	}

	period, ok := ParseSalaryPeriod(string(out.SalaryPeriod))
	if !ok {
		res.addErr("salary-period %q is unknown, expected hourly, weekly, monthly or yearly", out.SalaryPeriod)
		period = ""
	}
	out.SalaryPeriod = period

	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			res.addErr("%v", err)
		}
		for _, fe := range fieldErrs {
			res.addErr("%s", describe(fe))
		}
	}

	if len(out.DesiredRoles) == 0 {
		res.addWarn("desired-roles is empty; role, tech stack and description criteria will score neutrally.")
	}
	if len(out.Locations) > maxLocations {
		res.addWarn("locations has %d entries; most postings will match some of them.", len(out.Locations))
	}
	if out.SalaryMin == 0 && out.SalaryMax > 0 {
		res.addWarn("salary-min is not set; every posting paying up to salary-max will look like a match.")
	}

	return out, res
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be lower than salary-min", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func trimList(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		ys = append(ys, x)
	}
	return ys
}

func levelNames() string {
	names := make([]string, 0, len(matching.ExperienceLevels))
	for _, level := range matching.ExperienceLevels {
		names = append(names, string(level))
	}
	return strings.Join(names, ", ")
}
