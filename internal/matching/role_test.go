package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleMatch_NoRolesIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, RoleMatch(nil, "Backend Developer", "Engineering"))
	assert.Equal(t, 50.0, RoleMatch([]string{" ", ""}, "Backend Developer", "Engineering"))
}

func TestRoleMatch_ExactTitleShortCircuits(t *testing.T) {
	assert.Equal(t, 100.0, RoleMatch([]string{"  Backend Developer "}, "backend developer", ""))
	assert.Equal(t, 100.0, RoleMatch([]string{"designer", "Data Engineer"}, "Senior Data Engineer", "IT"))
}

func TestRoleMatch_CategoryCounts(t *testing.T) {
	assert.Equal(t, 100.0, RoleMatch([]string{"engineering"}, "Platform Developer", "Engineering"))
}

func TestRoleMatch_KeywordIntersection(t *testing.T) {
	// "senior" and "python" relate to title keywords, "architect" does not.
	got := RoleMatch([]string{"senior python architect"}, "Senior Python Developer", "")
	assert.InDelta(t, 100*2.0/3.0, got, 1e-9)
}

func TestRoleMatch_SubstringRelatedKeywords(t *testing.T) {
	// "developer" is contained in "developers".
	got := RoleMatch([]string{"golang developer"}, "Developers wanted", "")
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestRoleMatch_BestRoleWins(t *testing.T) {
	got := RoleMatch([]string{"chef", "python backend specialist"}, "Backend Python Engineer", "")
	assert.InDelta(t, 100*2.0/3.0, got, 1e-9)
}

func TestRoleMatch_RoleWithoutKeywordsScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, RoleMatch([]string{"qa"}, "Backend Developer", ""))
}

func TestInferTechStack(t *testing.T) {
	assert.Empty(t, InferTechStack(nil))
	assert.Empty(t, InferTechStack([]string{"designer"}))
	assert.Equal(t, []string{"javascript", "react", "frontend"}, InferTechStack([]string{"Frontend Engineer"}))
	assert.Equal(t,
		[]string{"javascript", "react", "node", "fullstack", "python", "sql", "data"},
		InferTechStack([]string{"Fullstack", "Data Analyst"}),
	)
	// "javascript" mentions "java", so it also pulls in the backend stack.
	assert.Equal(t,
		[]string{"node", "java", "python", "sql", "backend"},
		InferTechStack([]string{"javascript"}),
	)
}

func TestTechStackMatch(t *testing.T) {
	assert.Equal(t, 60.0, TechStackMatch([]string{"designer"}, "Figma", nil))
	assert.Equal(t, 60.0, TechStackMatch(nil, "Python and SQL", nil))

	roles := []string{"data scientist"}
	assert.InDelta(t, 100.0, TechStackMatch(roles, "We use Python, SQL and big data tools", nil), 1e-9)
	assert.InDelta(t, 100*2.0/3.0, TechStackMatch(roles, "", []string{"Python", "PostgreSQL"}), 1e-9)
	assert.Equal(t, 0.0, TechStackMatch(roles, "Golang only", []string{"Kubernetes"}))
}

func TestDescriptionMatch(t *testing.T) {
	assert.Equal(t, 50.0, DescriptionMatch(nil, "we build things"))
	assert.Equal(t, 50.0, DescriptionMatch([]string{"backend"}, "   "))

	// No positive words, role absent.
	assert.InDelta(t, 40.0, DescriptionMatch([]string{"backend"}, "Maintain legacy reports"), 1e-9)
	// Two of eight positive words, role present.
	assert.InDelta(t, 70+30*2.0/8.0, DescriptionMatch([]string{"Backend"}, "Join our team to build the BACKEND"), 1e-9)
	// Every positive word and the role: capped at 100.
	all := "team grow build develop create innovate stable funded backend"
	assert.Equal(t, 100.0, DescriptionMatch([]string{"backend"}, all))
}
