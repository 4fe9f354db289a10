package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped by ExtractKeywords. Tokens of two characters or fewer are
// dropped anyway, so short words are not listed.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "any": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "has": true, "have": true, "his": true, "how": true,
	"its": true, "may": true, "new": true, "now": true, "old": true,
	"see": true, "who": true, "did": true, "get": true, "let": true,
	"put": true, "say": true, "she": true, "too": true, "use": true,
	"with": true, "this": true, "that": true, "from": true, "they": true,
	"will": true, "would": true, "there": true, "their": true, "what": true,
	"about": true, "which": true, "when": true, "make": true, "like": true,
	"time": true, "just": true, "know": true, "take": true, "into": true,
	"your": true, "some": true, "could": true, "them": true, "than": true,
	"then": true, "also": true, "well": true, "were": true, "been": true,
	"job": true, "role": true, "experience": true, "team": true, "skills": true,
	"work": true, "position": true, "candidate": true, "looking": true, "years": true,
	"join": true, "company": true, "opportunity": true, "required": true, "ability": true,
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lower-cases s and strips diacritics.
func NormalizeText(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ExtractKeywords tokenizes free text into lower-case keywords, dropping stop-words and
// tokens of two characters or fewer. Only ASCII letters, digits, underscores and hyphens
// survive as token characters.
func ExtractKeywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var b strings.Builder
	for _, r := range NormalizeText(text) {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	keywords := []string{}
	for _, token := range strings.Fields(b.String()) {
		if len(token) <= 2 || stopWords[token] {
			continue
		}
		keywords = append(keywords, token)
	}

	return keywords
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}
