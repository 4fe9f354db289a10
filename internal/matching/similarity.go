package matching

import "strings"

// Similarity scores how alike two strings are on a 0-100 scale.
// Exact matches (case-insensitive, trimmed) score 100 and containment scores 90;
// anything else falls back to normalized Levenshtein distance.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 90
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := max(len(ra), len(rb))
	dist := levenshtein(ra, rb)

	return max(0, float64(maxLen-dist)/float64(maxLen)*100)
}

// levenshtein fills a (len(b)+1) x (len(a)+1) table with unit edit costs.
func levenshtein(a, b []rune) int {
	table := make([][]int, len(b)+1)
	for i := range table {
		table[i] = make([]int, len(a)+1)
		table[i][0] = i
	}
	for j := range table[0] {
		table[0][j] = j
	}

	for i := 1; i <= len(b); i++ {
		for j := 1; j <= len(a); j++ {
			if b[i-1] == a[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(
				table[i-1][j-1], // substitution
				table[i][j-1],   // insertion
				table[i-1][j],   // deletion
			)
		}
	}

	return table[len(b)][len(a)]
}

// NormalizeExperienceLevel resolves a free-form seniority label to its canonical form.
// Labels shorter than three characters or scoring below 80 against every known level
// are reported as unknown.
func NormalizeExperienceLevel(label string) (ExperienceLevel, bool) {
	label = strings.TrimSpace(label)
	if len([]rune(label)) < 3 {
		return "", false
	}

	best, bestScore := ExperienceLevel(""), 0.0
	for _, level := range ExperienceLevels {
		if strings.EqualFold(label, string(level)) {
			return level, true
		}
		if score := Similarity(label, string(level)); score > bestScore {
			best, bestScore = level, score
		}
	}

	if bestScore < 80 {
		return "", false
	}
	return best, true
}
