package headhunter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spigell/hh-matcher/internal/matching"
)

const remoteScheduleID = "remote"

var experienceLevels = map[string]matching.ExperienceLevel{
	"noExperience": matching.LevelEntry,
	"between1And3": matching.LevelJunior,
	"between3And6": matching.LevelMid,
	"moreThan6":    matching.LevelSenior,
}

var employmentTypes = map[string]string{
	"full":      "full-time",
	"part":      "part-time",
	"project":   "contract",
	"probation": "internship",
	"volunteer": "volunteer",
}

// Posting converts the vacancy into the matching engine's model. hh.ru salaries are
// monthly. Descriptions come as HTML and are reduced to text; search results only carry
// a snippet, which is used instead.
func (va *Vacancy) Posting() matching.Posting {
	posting := matching.Posting{
		ID:             va.ID,
		URL:            va.AlternateURL,
		Company:        va.Employer.Name,
		Title:          va.Name,
		Location:       va.Area.Name,
		IsRemote:       va.Schedule.ID == remoteScheduleID,
		SalaryPeriod:   matching.PeriodMonthly,
		Experience:     experienceLevels[va.Experience.ID],
		EmploymentType: employmentTypes[va.Employment.ID],
	}

	if len(va.ProfessionalRoles) > 0 {
		posting.Category = va.ProfessionalRoles[0].Name
	}

	if va.Salary != nil {
		posting.SalaryMin = float64(va.Salary.From)
		posting.SalaryMax = float64(va.Salary.To)
	}

	for _, skill := range va.KeySkills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			posting.Skills = append(posting.Skills, name)
		}
	}

	description := va.Description
	if strings.TrimSpace(description) == "" {
		description = va.Snippet.Requirement + " " + va.Snippet.Responsibility
	}
	posting.Description = htmlToText(description)

	return posting
}

// htmlToText strips markup (hh.ru uses <p>, <ul>, <highlighttext> and friends) and
// collapses whitespace.
func htmlToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}

	// Block elements must not glue neighbouring words together.
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find(blockElements).AppendHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " ")
}

const blockElements = "p, li, ul, ol, div, h1, h2, h3, h4, h5, h6, tr, td"
