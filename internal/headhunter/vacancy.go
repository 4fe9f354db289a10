package headhunter

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

const (
	VacancyIDField         = "ID"
	VacancyEmployerIDField = "EmployerID"
)

type Vacancies struct {
	Items []*Vacancy
}

// Named is the common {id, name} dictionary entry of the hh.ru API.
type Named struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Area struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type Salary struct {
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
	Gross    bool   `json:"gross,omitempty"`
}

type Employer struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	URL          string `json:"url,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	VacanciesURL string `json:"vacancies_url,omitempty"`
	Trusted      bool   `json:"trusted,omitempty"`
}

type Snippet struct {
	Requirement    string `json:"requirement,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

type Vacancy struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name,omitempty"`
	Area              Area     `json:"area,omitempty"`
	HasTest           bool     `json:"has_test,omitempty"`
	Salary            *Salary  `json:"salary,omitempty"`
	Experience        Named    `json:"experience,omitempty"`
	Schedule          Named    `json:"schedule,omitempty"`
	Employment        Named    `json:"employment,omitempty"`
	Employer          Employer `json:"employer,omitempty"`
	CreatedAt         string   `json:"created_at,omitempty"`
	PublishedAt       string   `json:"published_at,omitempty"`
	AlternateURL      string   `json:"alternate_url,omitempty"`
	Description       string   `json:"description,omitempty"`
	KeySkills         []Named  `json:"key_skills,omitempty"`
	Archived          bool     `json:"archived,omitempty"`
	Snippet           Snippet  `json:"snippet,omitempty"`
	ProfessionalRoles []Named  `json:"professional_roles,omitempty"`
	// Match is filled by the match_score filter.
	Match *MatchSummary `json:"match,omitempty"`
}

// MatchSummary is the matching engine's verdict on a vacancy.
type MatchSummary struct {
	Score     int            `json:"score"`
	Reasons   []string       `json:"reasons,omitempty"`
	Breakdown map[string]int `json:"breakdown,omitempty"`
}

func (c *Client) getVacancy(id string) (*Vacancy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("vacancy id is empty")
	}

	var vacancy Vacancy
	if err := c.getJSON(fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id), nil, &vacancy); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

func (v *Vacancies) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "vacancies_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (va *Vacancy) GetStringField(name string) string {
	switch name {
	case VacancyIDField:
		return va.ID
	case VacancyEmployerIDField:
		return va.Employer.ID

	default:
		return ""
	}
}

// ReportByEmployer groups vacancies by employer for the interactive review.
func (v *Vacancies) ReportByEmployer() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, vacancy := range v.Items {
		key := fmt.Sprintf("%s (%s)", vacancy.Employer.Name, vacancy.Employer.ID)
		entry := map[string]string{
			"name":                 vacancy.Name,
			"url":                  vacancy.AlternateURL,
			"area":                 vacancy.Area.Name,
			"salary":               vacancy.salaryString(),
			"brief requirement":    vacancy.Snippet.Requirement,
			"brief responsibility": vacancy.Snippet.Responsibility,
		}

		if vacancy.Match != nil {
			entry["match_score"] = strconv.Itoa(vacancy.Match.Score)
			if len(vacancy.Match.Reasons) > 0 {
				entry["match_reasons"] = strings.Join(vacancy.Match.Reasons, ", ")
			}
		}

		report[key] = append(report[key], entry)
	}
	return report
}

func (va *Vacancy) salaryString() string {
	if va.Salary == nil {
		return "not specified"
	}
	return fmt.Sprintf("%d-%d %s", va.Salary.From, va.Salary.To, va.Salary.Currency)
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) FindByID(id string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}

// ExcludeWithTest removes every vacancy that requires a test task.
func (v *Vacancies) ExcludeWithTest() []string {
	return v.removeIf(func(vacancy *Vacancy) bool {
		return vacancy.HasTest
	})
}

// Exclude removes vacancies whose field (VacancyIDField or VacancyEmployerIDField)
// equals any of targets and returns the removed vacancy IDs. Order is preserved.
func (v *Vacancies) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	return v.removeIf(func(vacancy *Vacancy) bool {
		return slices.Contains(targets, vacancy.GetStringField(name))
	})
}

// Keep leaves only the vacancies with the given IDs, in the order of ids.
func (v *Vacancies) Keep(ids []string) {
	kept := make([]*Vacancy, 0, len(ids))
	for _, id := range ids {
		if vacancy := v.FindByID(id); vacancy != nil {
			kept = append(kept, vacancy)
		}
	}
	v.Items = kept
}

func (v *Vacancies) removeIf(drop func(*Vacancy) bool) []string {
	var excluded []string
	kept := v.Items[:0]
	for _, vacancy := range v.Items {
		if drop(vacancy) {
			excluded = append(excluded, vacancy.ID)
			continue
		}
		kept = append(kept, vacancy)
	}
	clear(v.Items[len(kept):])
	v.Items = kept
	return excluded
}
