package headhunter

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

const (
	ExcludeActorUser    = "user"
	ExcludeActorMatcher = "matcher"
)

type ExcludedVacancies struct {
	Items []*ExcludedVacancy
}

type ExcludedVacancy struct {
	ID           string
	URL          string
	EmployerName string
	ExcludedAt   time.Time
	// Actor is who excluded the vacancy. Empty in files written by older versions.
	Actor  string `json:",omitempty"`
	Reason string `json:",omitempty"`
}

func (v *Vacancies) ToExcluded(actor, reason string) *ExcludedVacancies {
	now := time.Now().UTC()
	excluded := &ExcludedVacancies{}
	for _, vacancy := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedVacancy{
			ID:           vacancy.ID,
			URL:          vacancy.AlternateURL,
			EmployerName: vacancy.Employer.Name,
			ExcludedAt:   now,
			Actor:        actor,
			Reason:       reason,
		})
	}
	return excluded
}

// GetExludedVacanciesFromFile reads the exclude file. A missing or empty file yields an
// empty list.
func GetExludedVacanciesFromFile(path string) (*ExcludedVacancies, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedVacancies{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedVacancies{}, nil
	}

	var excluded ExcludedVacancies
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (v *ExcludedVacancies) Append(s *ExcludedVacancies) {
	v.Items = append(v.Items, s.Items...)
}

func (v *ExcludedVacancies) VacanciesIDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, vacancy := range v.Items {
		ids = append(ids, vacancy.ID)
	}
	return ids
}

func (v *ExcludedVacancies) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
