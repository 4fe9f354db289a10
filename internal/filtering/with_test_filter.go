package filtering

import (
	"context"

	"github.com/spigell/hh-matcher/internal/headhunter"
)

type withTestFilter struct {
	enabled bool
	reason  string
}

// NewWithTest creates a filter that removes vacancies requiring tests.
func NewWithTest() Filter {
	return &withTestFilter{enabled: true}
}

func (f *withTestFilter) Name() string { return "with_test" }

func (f *withTestFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *withTestFilter) IsEnabled() bool { return f.enabled }

func (f *withTestFilter) Validate() error { return nil }

func (f *withTestFilter) Apply(_ context.Context, v *headhunter.Vacancies) (*headhunter.Vacancies, Step, error) {
	initial := v.Len()
	excluded := v.ExcludeWithTest()

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *withTestFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
