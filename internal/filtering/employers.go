package filtering

import (
	"context"
	"strings"

	"github.com/spigell/hh-matcher/internal/headhunter"
)

type employersFilter struct {
	employers []string
}

// NewExcludedEmployers creates a filter that removes vacancies of the given employer IDs.
func NewExcludedEmployers(employers []string) Filter {
	cleaned := make([]string, 0, len(employers))
	for _, employer := range employers {
		if employer = strings.TrimSpace(employer); employer != "" {
			cleaned = append(cleaned, employer)
		}
	}
	return &employersFilter{employers: cleaned}
}

func (f *employersFilter) Name() string { return "employers" }

func (f *employersFilter) Disable(string) {}

func (f *employersFilter) IsEnabled() bool { return true }

func (f *employersFilter) Validate() error { return nil }

func (f *employersFilter) Apply(_ context.Context, v *headhunter.Vacancies) (*headhunter.Vacancies, Step, error) {
	initial := v.Len()
	if len(f.employers) == 0 {
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	excluded := v.Exclude(headhunter.VacancyEmployerIDField, f.employers)

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.employers) > 0 {
		details["employers"] = strings.Join(f.employers, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
