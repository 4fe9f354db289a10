package matching

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-6

// Weights is the share each criterion contributes to the overall score.
// Growth opportunities are reported in the breakdown but carry no weight.
type Weights struct {
	Role        float64 `json:"role" yaml:"role" mapstructure:"role"`
	TechStack   float64 `json:"tech_stack" yaml:"tech_stack" mapstructure:"tech-stack"`
	Description float64 `json:"description" yaml:"description" mapstructure:"description"`
	Location    float64 `json:"location" yaml:"location" mapstructure:"location"`
	Salary      float64 `json:"salary" yaml:"salary" mapstructure:"salary"`
	Experience  float64 `json:"experience" yaml:"experience" mapstructure:"experience"`
	WorkType    float64 `json:"work_type" yaml:"work_type" mapstructure:"work-type"`
	Industry    float64 `json:"industry" yaml:"industry" mapstructure:"industry"`
	CompanySize float64 `json:"company_size" yaml:"company_size" mapstructure:"company-size"`
	Benefits    float64 `json:"benefits" yaml:"benefits" mapstructure:"benefits"`
}

// DefaultWeights returns the standard weight vector.
func DefaultWeights() Weights {
	return Weights{
		Role:        0.25,
		TechStack:   0.15,
		Description: 0.15,
		Location:    0.10,
		Salary:      0.10,
		Experience:  0.10,
		WorkType:    0.05,
		Industry:    0.05,
		CompanySize: 0.025,
		Benefits:    0.025,
	}
}

// Of returns the weight for a criterion; unweighted criteria return 0.
func (w Weights) Of(c Criterion) float64 {
	switch c {
	case CriterionRole:
		return w.Role
	case CriterionTechStack:
		return w.TechStack
	case CriterionDescription:
		return w.Description
	case CriterionLocation:
		return w.Location
	case CriterionSalary:
		return w.Salary
	case CriterionExperience:
		return w.Experience
	case CriterionWorkType:
		return w.WorkType
	case CriterionIndustry:
		return w.Industry
	case CriterionCompanySize:
		return w.CompanySize
	case CriterionBenefits:
		return w.Benefits
	default:
		return 0
	}
}

// Sum adds up every weight.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, c := range Criteria {
		total += w.Of(c)
	}
	return total
}

// Validate checks that no weight is negative and that the vector sums to 1.
func (w Weights) Validate() error {
	for _, c := range Criteria {
		if w.Of(c) < 0 {
			return fmt.Errorf("weight for %s is negative: %v", c, w.Of(c))
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %.4f", sum)
	}
	return nil
}
