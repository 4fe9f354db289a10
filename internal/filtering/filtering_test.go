package filtering

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hh-matcher/internal/headhunter"
)

func vacancyIDs(v *headhunter.Vacancies) []string {
	ids := make([]string, 0, v.Len())
	for _, vacancy := range v.Items {
		ids = append(ids, vacancy.ID)
	}
	return ids
}

type failingFilter struct {
	validateErr error
	applyErr    error
	applied     bool
}

func (f *failingFilter) Name() string { return "failing" }

func (f *failingFilter) Disable(string) {}

func (f *failingFilter) IsEnabled() bool { return true }

func (f *failingFilter) Validate() error { return f.validateErr }

func (f *failingFilter) Apply(_ context.Context, v *headhunter.Vacancies) (*headhunter.Vacancies, Step, error) {
	f.applied = true
	return v, Step{}, f.applyErr
}

func TestRunFiltersAppliesStepsInOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	excludePath := filepath.Join(t.TempDir(), "excluded.json")
	seed := (&headhunter.Vacancies{Items: []*headhunter.Vacancy{{ID: "5"}}}).ToExcluded(headhunter.ExcludeActorUser, "")
	if err := seed.ToFile(excludePath); err != nil {
		t.Fatalf("seed exclude file: %v", err)
	}

	vacancies := &headhunter.Vacancies{Items: []*headhunter.Vacancy{
		{ID: "1", Employer: headhunter.Employer{ID: "e1"}},
		{ID: "2", HasTest: true, Employer: headhunter.Employer{ID: "e2"}},
		{ID: "3", Employer: headhunter.Employer{ID: "e3"}},
		{ID: "4", Employer: headhunter.Employer{ID: "e1"}},
		{ID: "5", Employer: headhunter.Employer{ID: "e2"}},
	}}

	f := New([]Filter{
		NewWithTest(),
		NewExcludedEmployers([]string{" e3 ", ""}),
		NewExcludeFile(excludePath),
	}, zap.New(core))

	got, err := f.RunFilters(context.Background(), vacancies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ids := vacancyIDs(got); !reflect.DeepEqual(ids, []string{"1", "4"}) {
		t.Fatalf("unexpected vacancies left: %v", ids)
	}

	steps := logs.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 step logs, got %d", len(steps))
	}
	wantDropped := []int64{1, 1, 1}
	for i, entry := range steps {
		if dropped := entry.ContextMap()["dropped"]; dropped != wantDropped[i] {
			t.Fatalf("step %d: expected %d dropped, got %v", i, wantDropped[i], dropped)
		}
	}
}

func TestRunFiltersSkipsDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	vacancies := &headhunter.Vacancies{Items: []*headhunter.Vacancy{{ID: "1", HasTest: true}}}

	f := New([]Filter{NewWithTest()}, zap.New(core))
	f.DisableByName("with_test", "tests are fine")

	got, err := f.RunFilters(context.Background(), vacancies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("disabled filter must not drop vacancies")
	}
	if logs.FilterMessage("filter disabled").Len() != 1 {
		t.Fatalf("expected a log about the disabled filter")
	}

	status := f.Describe()[0]
	if status.Enabled || status.Reason != "tests are fine" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestRunFiltersValidatesBeforeApplying(t *testing.T) {
	first := NewWithTest()
	broken := &failingFilter{validateErr: errors.New("bad config")}
	vacancies := &headhunter.Vacancies{Items: []*headhunter.Vacancy{{ID: "1", HasTest: true}}}

	_, err := New([]Filter{first, broken}, nil).RunFilters(context.Background(), vacancies)
	if err == nil || !strings.Contains(err.Error(), "failing: bad config") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vacancies.Len() != 1 || broken.applied {
		t.Fatalf("no filter must run when validation fails")
	}
}

func TestRunFiltersWrapsApplyErrors(t *testing.T) {
	broken := &failingFilter{applyErr: errors.New("boom")}

	_, err := New([]Filter{broken}, nil).RunFilters(context.Background(), &headhunter.Vacancies{})
	if err == nil || !strings.Contains(err.Error(), "failing: boom") {
		t.Fatalf("expected wrapped apply error, got %v", err)
	}
}

func TestRunFiltersStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	broken := &failingFilter{}
	_, err := New([]Filter{broken}, nil).RunFilters(ctx, &headhunter.Vacancies{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if broken.applied {
		t.Fatalf("filter must not run after cancellation")
	}
}

func TestExcludeFileFilterMissingFile(t *testing.T) {
	vacancies := &headhunter.Vacancies{Items: []*headhunter.Vacancy{{ID: "1"}}}

	_, step, err := NewExcludeFile(filepath.Join(t.TempDir(), "absent.json")).Apply(context.Background(), vacancies)
	if err != nil {
		t.Fatalf("missing exclude file must not fail: %v", err)
	}
	if step.Dropped != 0 || step.Left != 1 {
		t.Fatalf("unexpected step: %+v", step)
	}
}

func TestDescribe(t *testing.T) {
	statuses := New([]Filter{
		NewExcludedEmployers([]string{"e1", "e2"}),
		NewExcludeFile(" excluded.json "),
		&failingFilter{},
	}, nil).Describe()

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].Details["employers"] != "e1,e2" {
		t.Fatalf("unexpected employers status: %+v", statuses[0])
	}
	if statuses[1].Details["path"] != "excluded.json" {
		t.Fatalf("unexpected exclude file status: %+v", statuses[1])
	}
	if statuses[2].Name != "failing" || !statuses[2].Enabled {
		t.Fatalf("unexpected fallback status: %+v", statuses[2])
	}
}
