package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/hh-matcher/internal/matching"
)

func sampleResults() []matching.Result {
	return []matching.Result{
		{
			Job:          &matching.Posting{ID: "1", Title: "Backend Developer", Company: "Acme", Location: "Toronto", IsRemote: true},
			OverallScore: 81,
			Breakdown:    matching.Breakdown{matching.CriterionRole: 100},
			MatchReasons: []string{matching.ReasonTopRole, matching.ReasonPerfectPlace},
		},
		{
			Job:          &matching.Posting{ID: "2", Title: "Chef"},
			OverallScore: 35,
			Breakdown:    matching.Breakdown{matching.CriterionRole: 0},
		},
	}
}

func TestSelectResults(t *testing.T) {
	results := []matching.Result{{OverallScore: 90}, {OverallScore: 70}, {OverallScore: 50}, {OverallScore: 10}}

	tests := []struct {
		name     string
		minScore int
		limit    int
		want     []int
	}{
		{name: "everything", want: []int{90, 70, 50, 10}},
		{name: "minimum score", minScore: 50, want: []int{90, 70, 50}},
		{name: "limit", limit: 2, want: []int{90, 70}},
		{name: "both", minScore: 60, limit: 5, want: []int{90, 70}},
		{name: "nothing passes", minScore: 95, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectResults(results, tt.minScore, tt.limit)

			scores := make([]int, 0, len(got))
			for _, r := range got {
				scores = append(scores, r.OverallScore)
			}
			assert.Equal(t, tt.want, scores)
		})
	}
}

func TestWriteResults_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "table", sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "Backend Developer")
	assert.Contains(t, out, "Toronto (remote)")
	assert.Contains(t, out, matching.ReasonTopRole+", "+matching.ReasonPerfectPlace)
	assert.Contains(t, out, "Chef")
	assert.Contains(t, out, " - ")
}

func TestWriteResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, " JSON ", sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.EqualValues(t, 81, decoded[0]["overall_score"])
	assert.Equal(t, "Backend Developer", decoded[0]["job"].(map[string]any)["title"])
}

func TestWriteResults_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "yaml", sampleResults()))

	var decoded []struct {
		Job struct {
			ID string `yaml:"id"`
		} `yaml:"job"`
		OverallScore int      `yaml:"overall_score"`
		MatchReasons []string `yaml:"match_reasons"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "1", decoded[0].Job.ID)
	assert.Equal(t, 35, decoded[1].OverallScore)
	assert.Equal(t, []string{matching.ReasonTopRole, matching.ReasonPerfectPlace}, decoded[0].MatchReasons)
}

func TestWriteResults_UnknownFormat(t *testing.T) {
	err := writeResults(&bytes.Buffer{}, "csv", nil)
	assert.ErrorContains(t, err, `unknown output format "csv"`)
}
