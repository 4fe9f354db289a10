package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "empty left", a: "", b: "go", want: 0},
		{name: "empty right", a: "go", b: "  ", want: 0},
		{name: "exact ignoring case and spaces", a: "  Backend Developer ", b: "backend developer", want: 100},
		{name: "containment", a: "Senior Backend Developer", b: "backend", want: 90},
		{name: "one edit", a: "kitten", b: "sitten", want: 100 * 5.0 / 6.0},
		{name: "classic kitten sitting", a: "kitten", b: "sitting", want: 100 * 4.0 / 7.0},
		{name: "nothing in common", a: "abc", b: "xyz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein([]rune(""), []rune("")))
	assert.Equal(t, 3, levenshtein([]rune("abc"), []rune("")))
	assert.Equal(t, 3, levenshtein([]rune(""), []rune("abc")))
	assert.Equal(t, 3, levenshtein([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 1, levenshtein([]rune("мир"), []rune("мор")))
}

func TestNormalizeExperienceLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  ExperienceLevel
		ok    bool
	}{
		{input: "Senior", want: LevelSenior, ok: true},
		{input: " senior ", want: LevelSenior, ok: true},
		{input: "mid level", want: LevelMid, ok: true},
		{input: "entry", want: LevelEntry, ok: true},
		{input: "Directr", want: LevelDirector, ok: true},
		{input: "astronaut", ok: false},
		{input: "a", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizeExperienceLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
