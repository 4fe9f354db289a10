package headhunter

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	SearchPath = "/vacancies"
)

type SearchParams struct {
	Text string `yaml:"text"`
	// hhparam is custom tag for reflect. Please see below.
	Areas          []int    `hhparam:"area"`
	Clusters       bool     `yaml:"clusters"`
	OrderBy        string   `yaml:"order_by" mapstructure:"order_by"`
	Employer       uint     `yaml:"employer_id" mapstructure:"employer_id"`
	SearchField    string   `yaml:"search_field" mapstructure:"search_field"`
	Schedules      []string `hhparam:"schedule"`
	PerPage        string   `yaml:"per_page" mapstructure:"per_page"`
	Experience     string   `yaml:"experience"`
	Period         uint     `yaml:"period"`
	Salary         uint     `yaml:"salary"`
	OnlyWithSalary bool     `yaml:"only_with_salary" mapstructure:"only_with_salary"`
}

func (c *Client) search(params *SearchParams) (*Vacancies, error) {
	var vacancies []*Vacancy

	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	q := buildParams(params)
	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	items, err := c.GetItems(apiURLSearch, q)
	if err != nil {
		return nil, err
	}

	if err := decodeItems(items, &vacancies); err != nil {
		return nil, fmt.Errorf("decode vacancies: %w", err)
	}

	return &Vacancies{
		Items: vacancies,
	}, nil
}

// decodeItems maps raw API items onto typed values using their json tags.
func decodeItems(items []Item, result interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		// Our custom tag is using here.
		key := field.Tag.Get("hhparam")
		if key == "" {
			// Failover to default tag if our tag do not exist.
			key = field.Tag.Get("yaml")
		}
		value := reflect.ValueOf(params).Elem().Field(field.Index[0])

		switch field.Type.Kind() {
		case reflect.Slice:
			switch v := value.Interface().(type) {
			case []int:
				for _, item := range v {
					q.Add(key, strconv.Itoa(item))
				}

			case []string:
				for _, item := range v {
					q.Add(key, item)
				}
			}

		case reflect.Bool:
			// hh.ru treats any present flag as a filter, so false is omitted.
			if value.Bool() {
				q.Set(key, "true")
			}

		default:
			s := fmt.Sprintf("%v", value.Interface())
			if s != "" && s != "0" {
				q.Set(key, s)
			}
		}
	}

	return q
}
