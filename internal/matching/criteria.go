package matching

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	remoteSentinel = "remote"

	neutralLocationScore   = 70
	neutralSalaryScore     = 60
	neutralExperienceScore = 70
	neutralPreferenceScore = 100
	missingListScore       = 30

	workTypeFloor    = 40
	industryFloor    = 20
	companySizeFloor = 40

	listOverlapCap = 3
)

// LocationMatch has no partial credit: a posting is either in a wanted place or not.
// The "remote" sentinel only ever matches remote postings.
func LocationMatch(userLocations []string, jobLocation string, jobIsRemote bool) float64 {
	locations := nonBlank(userLocations)
	if jobIsRemote && slices.Contains(locations, remoteSentinel) {
		return 100
	}
	if len(locations) == 0 {
		return neutralLocationScore
	}

	place := strings.ToLower(strings.TrimSpace(jobLocation))
	if place == "" && !jobIsRemote {
		return neutralLocationScore
	}

	for _, location := range locations {
		if location == remoteSentinel || place == "" {
			continue
		}
		if strings.Contains(place, location) || strings.Contains(location, place) {
			return 100
		}
	}

	return 0
}

// ConvertToYearly annualizes a salary figure. Unknown periods are treated as yearly.
func ConvertToYearly(amount float64, period SalaryPeriod) float64 {
	switch SalaryPeriod(strings.ToLower(string(period))) {
	case PeriodHourly:
		return amount * 2080
	case PeriodWeekly:
		return amount * 52
	case PeriodMonthly:
		return amount * 12
	default:
		return amount
	}
}

// SalaryMatch compares the candidate's and the posting's annualized salary ranges.
// Overlapping ranges score 100; otherwise the score decays with the relative gap
// between the candidate's minimum and the posting's top figure.
func SalaryMatch(userMin, userMax float64, userPeriod SalaryPeriod, jobMin, jobMax float64, jobPeriod SalaryPeriod) float64 {
	if jobMin <= 0 && jobMax <= 0 {
		return neutralSalaryScore
	}

	uMin := max(0, ConvertToYearly(userMin, userPeriod))
	uMax := ConvertToYearly(userMax, userPeriod)
	if uMax <= 0 {
		uMax = math.Inf(1)
	}

	jobLow := ConvertToYearly(jobMin, jobPeriod)
	jobHigh := ConvertToYearly(jobMax, jobPeriod)
	if jobMax <= 0 {
		jobHigh = jobLow
	}
	if jobMin <= 0 {
		jobLow = jobHigh
	}

	if max(uMin, jobLow) <= min(uMax, jobHigh) {
		return 100
	}
	if uMin == 0 {
		return 100
	}

	percentDiff := math.Abs(uMin-jobHigh) / uMin
	return max(0, 100-percentDiff*100)
}

// ExperienceIndex returns the ordinal position of level, or -1 when it is unknown.
func ExperienceIndex(level ExperienceLevel) int {
	name := strings.TrimSpace(string(level))
	for i, known := range ExperienceLevels {
		if strings.EqualFold(name, string(known)) {
			return i
		}
	}
	return -1
}

// ExperienceMatch scores the ordinal distance between two seniority levels.
func ExperienceMatch(userLevel, jobLevel ExperienceLevel) float64 {
	userIdx, jobIdx := ExperienceIndex(userLevel), ExperienceIndex(jobLevel)
	if userIdx < 0 || jobIdx < 0 {
		return neutralExperienceScore
	}

	diff := userIdx - jobIdx
	if diff < 0 {
		diff = -diff
	}

	switch diff {
	case 0:
		return 100
	case 1:
		return 85
	case 2:
		return 60
	default:
		return max(0, float64(100-diff*25))
	}
}

// WorkTypeMatch never drops below a partial-credit floor of 40.
func WorkTypeMatch(userWorkTypes []string, employmentType string, jobIsRemote bool) float64 {
	workTypes := nonBlank(userWorkTypes)
	if len(workTypes) == 0 {
		return neutralPreferenceScore
	}
	if jobIsRemote && slices.Contains(workTypes, remoteSentinel) {
		return 100
	}
	if anyContainedIn(workTypes, strings.ToLower(employmentType)) {
		return 100
	}
	return workTypeFloor
}

// IndustryMatch gives full marks when the posting's industry mentions any wanted
// industry. A blank posting industry is a miss.
func IndustryMatch(userIndustries []string, jobIndustry string) float64 {
	industries := nonBlank(userIndustries)
	if len(industries) == 0 {
		return neutralPreferenceScore
	}
	if anyContainedIn(industries, strings.ToLower(jobIndustry)) {
		return 100
	}
	return industryFloor
}

// sizeBucket groups company-size labels into coarse buckets.
type sizeBucket struct {
	labels  []string
	markers []string
	fits    func(headcount int) bool
}

var sizeBuckets = []sizeBucket{
	{
		labels:  []string{"startup", "small"},
		markers: []string{"1-10", "1-50", "11-50", "small", "startup"},
		fits:    func(n int) bool { return n > 0 && n <= 50 },
	},
	{
		labels:  []string{"medium", "mid"},
		markers: []string{"51-", "201-", "medium"},
		fits:    func(n int) bool { return n > 50 && n < 500 },
	},
	{
		labels:  []string{"large", "enterprise"},
		markers: []string{"500+", "1000+", "enterprise", "large"},
		fits:    func(n int) bool { return n >= 500 },
	},
}

// CompanySizeMatch accepts either size labels ("51-200", "Enterprise") or a plain
// headcount on the posting side.
func CompanySizeMatch(userSizes []string, jobSize string) float64 {
	sizes := nonBlank(userSizes)
	if len(sizes) == 0 {
		return neutralPreferenceScore
	}

	size := strings.ToLower(strings.TrimSpace(jobSize))
	headcount, numeric := parseHeadcount(size)

	for _, wanted := range sizes {
		if size != "" && strings.Contains(size, wanted) {
			return 100
		}
		for _, bucket := range sizeBuckets {
			if !containsAny(wanted, bucket.labels) {
				continue
			}
			if bucket.marks(size) || (numeric && bucket.fits(headcount)) {
				return 100
			}
		}
	}

	return companySizeFloor
}

// marks reports whether size carries one of the bucket's markers. Range markers only
// count at the start of the label, so "1001-5000" is not read as "1-50".
func (b sizeBucket) marks(size string) bool {
	for _, marker := range b.markers {
		if marker[0] >= '0' && marker[0] <= '9' {
			if strings.HasPrefix(size, marker) {
				return true
			}
			continue
		}
		if strings.Contains(size, marker) {
			return true
		}
	}
	return false
}

// parseHeadcount reads a plain headcount or the lower bound of a range ("51-200",
// "1000+").
func parseHeadcount(size string) (int, bool) {
	size = strings.ReplaceAll(size, ",", "")
	if n, err := strconv.Atoi(size); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(size, 64); err == nil {
		return int(f), true
	}

	lower, _, isRange := strings.Cut(size, "-")
	if !isRange {
		lower, isRange = strings.CutSuffix(size, "+")
	}
	if !isRange {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(lower))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ListOverlapMatch scores how many wanted items a posting offers. Three hits (or all of
// them, for shorter lists) earn the full score.
func ListOverlapMatch(userItems, jobItems []string) float64 {
	wanted := nonBlank(userItems)
	if len(wanted) == 0 {
		return neutralPreferenceScore
	}
	offered := nonBlank(jobItems)
	if len(offered) == 0 {
		return missingListScore
	}

	overlap := 0
	for _, w := range wanted {
		for _, o := range offered {
			if strings.Contains(o, w) || strings.Contains(w, o) {
				overlap++
				break
			}
		}
	}

	target := min(listOverlapCap, len(wanted))
	return 100 * float64(min(overlap, target)) / float64(target)
}

// nonBlank returns the trimmed, lower-cased, non-empty entries of items.
func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.ToLower(item)
	}
	return out
}

// containsAny reports whether s contains any of the needles.
func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

// anyContainedIn reports whether any of the items is a substring of s.
func anyContainedIn(items []string, s string) bool {
	return containsAny(s, items)
}

// anyContains reports whether any of the items contains needle.
func anyContains(items []string, needle string) bool {
	for _, item := range items {
		if strings.Contains(item, needle) {
			return true
		}
	}
	return false
}
