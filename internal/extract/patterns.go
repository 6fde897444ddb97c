package extract

import (
	"regexp"
	"strings"
)

const timeMarkers = `(?:/yr|/year|per year|yr|/mo|/month|per month|month|mo|/hr|/hour|per hour|hr)\b`

const moneyAmount = `\$\s*[\d,]+(?:\.\d+)?`

var (
	// City, ST with optional multi-word city. Words are separated by blanks
	// only so a match never spans lines.
	locationRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*,[ \t]*[A-Z]{2}\b`)

	locationLineRe = regexp.MustCompile(`^[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*,[ \t]*[A-Z]{2}$`)

	htmlSalaryRe = regexp.MustCompile(`(?i)` + moneyAmount + `(?:\s*k)?(?:\s*[-–]\s*\$?\s*[\d,]+(?:\.\d+)?(?:\s*k)?)?(?:\s*` + timeMarkers + `)?`)

	textSalaryRe = regexp.MustCompile(`(?i)` + moneyAmount + `\s*k?(?:\s*[-–]\s*\$?\s*[\d,]+(?:\.\d+)?\s*k?)?\s*` + timeMarkers)

	logoLineRe = regexp.MustCompile(`(?i)^(.+?)\s+logo\s*$`)

	postedRe  = regexp.MustCompile(`^posted`)
	daysAgoRe = regexp.MustCompile(`\d+\s+days?\s+ago`)

	jobTypeWordRe = regexp.MustCompile(`^(internship|full[-\s]?time|part[-\s]?time|contract)$`)
)

const (
	labelPosition       = "position"
	labelCompany        = "company"
	labelLocation       = "location"
	labelSalary         = "salary"
	labelJobType        = "jobtype"
	labelJobTypeSpaced  = "job type"
	labelEmploymentType = "employment type"
	labelRemote         = "remote"
)

// fieldLabels are the line labels honored by the labeled-block scan.
var fieldLabels = map[string]struct{}{
	labelPosition:       {},
	labelCompany:        {},
	labelLocation:       {},
	labelSalary:         {},
	labelJobType:        {},
	labelJobTypeSpaced:  {},
	labelEmploymentType: {},
}

// labelWords additionally treats "remote" as a bare label when picking
// meaningful lines.
var labelWords = map[string]struct{}{
	labelPosition:       {},
	labelCompany:        {},
	labelLocation:       {},
	labelSalary:         {},
	labelJobType:        {},
	labelJobTypeSpaced:  {},
	labelEmploymentType: {},
	labelRemote:         {},
}

var skipKeywords = []string{"profile", "view", "follow"}

var titleKeywords = []string{"engineer", "developer", "manager", "analyst", "scientist", "designer", "architect", "specialist"}

// FindLocation returns the first City, ST occurrence in text.
func FindLocation(text string) string {
	return strings.TrimSpace(locationRe.FindString(text))
}

// IsLocationLine reports whether the whole line is a City, ST value.
func IsLocationLine(line string) bool {
	return locationLineRe.MatchString(strings.TrimSpace(line))
}

// FindSalary returns the first dollar amount with an optional time marker.
func FindSalary(text string) string {
	return trimSalary(htmlSalaryRe.FindString(text))
}

// FindSalaryWithUnit is FindSalary with a mandatory time marker.
func FindSalaryWithUnit(text string) string {
	return trimSalary(textSalaryRe.FindString(text))
}

func trimSalary(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), ",")
}

// normalizeLocation prefers a City, ST match in value, then in fallback,
// and finally keeps value as-is.
func normalizeLocation(value string, fallback string) string {
	if loc := FindLocation(value); loc != "" {
		return loc
	}
	if loc := FindLocation(fallback); loc != "" {
		return loc
	}
	return strings.TrimSpace(value)
}

func containsAny(value string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(value, needle) {
			return true
		}
	}
	return false
}
