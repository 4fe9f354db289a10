package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/spigell/hh-matcher/internal/matching"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// selectResults applies the caller-side cut: a minimum score and a result limit.
// Results are expected to be ranked already.
func selectResults(results []matching.Result, minScore, limit int) []matching.Result {
	selected := make([]matching.Result, 0, len(results))
	for _, result := range results {
		if result.OverallScore < minScore {
			continue
		}
		selected = append(selected, result)
		if limit > 0 && len(selected) == limit {
			break
		}
	}
	return selected
}

func writeResults(w io.Writer, format string, results []matching.Result) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case outputTable, "":
		return writeTable(w, results)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected %s, %s or %s", format, outputTable, outputJSON, outputYAML)
	}
}

func writeTable(w io.Writer, results []matching.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tTITLE\tCOMPANY\tLOCATION\tREASONS")
	for i, result := range results {
		location := result.Job.Location
		if result.Job.IsRemote {
			location = strings.TrimSpace(location + " (remote)")
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
			i+1,
			result.OverallScore,
			result.Job.Title,
			dash(result.Job.Company),
			dash(location),
			dash(strings.Join(result.MatchReasons, ", ")),
		)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
