package matching

import "strings"

const (
	neutralRoleScore        = 50
	neutralTechStackScore   = 60
	neutralDescriptionScore = 50
)

// RoleMatch scores how well a posting's title and category fit the desired roles.
// A desired role found verbatim in the job text wins outright.
func RoleMatch(desiredRoles []string, jobTitle, jobCategory string) float64 {
	roles := nonBlank(desiredRoles)
	if len(roles) == 0 {
		return neutralRoleScore
	}

	jobText := strings.ToLower(jobTitle + " " + jobCategory)
	var jobKeywords []string

	best := 0.0
	for _, role := range roles {
		if strings.Contains(jobText, role) {
			return 100
		}

		if jobKeywords == nil {
			jobKeywords = ExtractKeywords(jobText)
		}
		best = max(best, keywordIntersection(ExtractKeywords(role), jobKeywords))
	}

	return min(best, 100)
}

// keywordIntersection returns the share of role keywords related to any job keyword.
func keywordIntersection(roleKeywords, jobKeywords []string) float64 {
	if len(roleKeywords) == 0 {
		return 0
	}

	matched := 0
	for _, rk := range roleKeywords {
		for _, jk := range jobKeywords {
			if strings.Contains(jk, rk) || strings.Contains(rk, jk) {
				matched++
				break
			}
		}
	}

	return 100 * float64(matched) / float64(len(roleKeywords))
}

// stackRule maps role hints to the technologies a candidate with that role likely uses.
type stackRule struct {
	hints []string
	terms []string
}

var stackRules = []stackRule{
	{hints: []string{"frontend", "react", "angular"}, terms: []string{"javascript", "react", "frontend"}},
	{hints: []string{"backend", "node", "java"}, terms: []string{"node", "java", "python", "sql", "backend"}},
	{hints: []string{"fullstack"}, terms: []string{"javascript", "react", "node", "fullstack"}},
	{hints: []string{"data"}, terms: []string{"python", "sql", "data"}},
}

// InferTechStack guesses a candidate's technologies from role keywords.
// The result is deduplicated and keeps first-seen order.
func InferTechStack(desiredRoles []string) []string {
	seen := make(map[string]bool)
	stack := []string{}

	for _, role := range nonBlank(desiredRoles) {
		for _, rule := range stackRules {
			if !containsAny(role, rule.hints) {
				continue
			}
			for _, term := range rule.terms {
				if !seen[term] {
					seen[term] = true
					stack = append(stack, term)
				}
			}
		}
	}

	return stack
}

// TechStackMatch scores the share of the inferred stack mentioned by the posting.
// Engine.Score passes the title together with the description, so a stack term named
// only in the title still counts.
func TechStackMatch(desiredRoles []string, jobDescription string, jobSkills []string) float64 {
	stack := InferTechStack(desiredRoles)
	if len(stack) == 0 {
		return neutralTechStackScore
	}

	description := strings.ToLower(jobDescription)
	skills := lowerAll(jobSkills)

	matched := 0
	for _, term := range stack {
		if strings.Contains(description, term) || anyContains(skills, term) {
			matched++
		}
	}

	return 100 * float64(matched) / float64(len(stack))
}

var positiveKeywords = []string{"team", "grow", "build", "develop", "create", "innovate", "stable", "funded"}

// DescriptionMatch is a coarse read of the job description: up to 30 points for
// upbeat wording plus 70 when a desired role is mentioned (40 otherwise).
func DescriptionMatch(desiredRoles []string, jobDescription string) float64 {
	roles := nonBlank(desiredRoles)
	if len(roles) == 0 || strings.TrimSpace(jobDescription) == "" {
		return neutralDescriptionScore
	}

	description := strings.ToLower(jobDescription)

	found := 0
	for _, keyword := range positiveKeywords {
		if strings.Contains(description, keyword) {
			found++
		}
	}
	score := float64(found) / float64(len(positiveKeywords)) * 30

	if anyContainedIn(roles, description) {
		score += 70
	} else {
		score += 40
	}

	return min(score, 100)
}
