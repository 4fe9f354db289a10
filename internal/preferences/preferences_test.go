package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hh-matcher/internal/matching"
)

func TestNormalizeAndValidate_CleansLists(t *testing.T) {
	got, res := NormalizeAndValidate(matching.Profile{
		DesiredRoles: []string{" Backend ", "backend", "", "Go Developer"},
		Locations:    []string{"Toronto", "  ", "TORONTO", "remote"},
		Benefits:     []string{"gym"},
	})

	require.True(t, res.OK(), res.Errors)
	assert.Equal(t, []string{"Backend", "Go Developer"}, got.DesiredRoles)
	assert.Equal(t, []string{"Toronto", "remote"}, got.Locations)
	assert.Equal(t, []string{"gym"}, got.Benefits)
	assert.Nil(t, got.Industries)
	assert.Equal(t, matching.PeriodYearly, got.SalaryPeriod)
	assert.NoError(t, res.Err())
}

func TestNormalizeAndValidate_DoesNotMutateInput(t *testing.T) {
	roles := []string{" Backend "}
	in := matching.Profile{DesiredRoles: roles}

	NormalizeAndValidate(in)

	assert.Equal(t, " Backend ", roles[0])
}

func TestNormalizeAndValidate_ExperienceLevel(t *testing.T) {
	tests := []struct {
		input    matching.ExperienceLevel
		want     matching.ExperienceLevel
		warnings int
		ok       bool
	}{
		{input: "senior", want: matching.LevelSenior, ok: true},
		{input: "mid level", want: matching.LevelMid, warnings: 1, ok: true},
		{input: "", want: "", ok: true},
		{input: "wizard", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got, res := NormalizeAndValidate(matching.Profile{
				DesiredRoles:    []string{"backend"},
				ExperienceLevel: tt.input,
			})

			assert.Equal(t, tt.want, got.ExperienceLevel)
			assert.Equal(t, tt.ok, res.OK())
			assert.Len(t, res.Warnings, tt.warnings)
		})
	}
}

func TestNormalizeAndValidate_SalaryPeriod(t *testing.T) {
	got, res := NormalizeAndValidate(matching.Profile{DesiredRoles: []string{"sre"}, SalaryPeriod: " Monthly "})
	require.True(t, res.OK())
	assert.Equal(t, matching.PeriodMonthly, got.SalaryPeriod)

	_, res = NormalizeAndValidate(matching.Profile{DesiredRoles: []string{"sre"}, SalaryPeriod: "fortnightly"})
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `salary-period "fortnightly" is unknown`)
}

func TestNormalizeAndValidate_SalaryBounds(t *testing.T) {
	_, res := NormalizeAndValidate(matching.Profile{DesiredRoles: []string{"sre"}, SalaryMin: 100, SalaryMax: 50})
	assert.Equal(t, []string{"salary-max must not be lower than salary-min"}, res.Errors)

	_, res = NormalizeAndValidate(matching.Profile{DesiredRoles: []string{"sre"}, SalaryMin: -1})
	assert.Equal(t, []string{"salary-min must be >= 0"}, res.Errors)
	assert.ErrorContains(t, res.Err(), "invalid profile: salary-min must be >= 0")

	_, res = NormalizeAndValidate(matching.Profile{DesiredRoles: []string{"sre"}, SalaryMin: 50, SalaryMax: 50})
	assert.True(t, res.OK())
}

func TestNormalizeAndValidate_Warnings(t *testing.T) {
	_, res := NormalizeAndValidate(matching.Profile{SalaryMax: 1000})

	require.True(t, res.OK())
	assert.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "desired-roles is empty")
	assert.Contains(t, res.Warnings[1], "salary-min is not set")
}

func TestParseSalaryPeriod(t *testing.T) {
	for input, want := range map[string]matching.SalaryPeriod{
		"":         matching.PeriodYearly,
		"HOUR":     matching.PeriodHourly,
		"week":     matching.PeriodWeekly,
		"annually": matching.PeriodYearly,
	} {
		got, ok := ParseSalaryPeriod(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseSalaryPeriod("daily")
	assert.False(t, ok)
}
