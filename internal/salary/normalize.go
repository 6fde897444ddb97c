// Package salary rewrites free-form pay strings into a canonical form with
// the equivalent pay in the other common units.
package salary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	HoursPerYear  = 2080
	MonthsPerYear = 12
)

// Unit is the pay period a salary string is quoted in.
type Unit int

const (
	UnitNone Unit = iota
	UnitHourly
	UnitYearly
	UnitMonthly
)

func (u Unit) String() string {
	switch u {
	case UnitHourly:
		return "hourly"
	case UnitYearly:
		return "yearly"
	case UnitMonthly:
		return "monthly"
	default:
		return "none"
	}
}

// annotation marks strings this package already produced.
const annotation = "(~$"

var manualKeywords = map[string]struct{}{
	"negotiable":    {},
	"tbd":           {},
	"tba":           {},
	"n/a":           {},
	"not specified": {},
	"unspecified":   {},
	"market":        {},
	"dependent":     {},
	"undisclosed":   {},
	"competitive":   {},
}

// Checked in order; the first unit with a matching marker wins.
var unitMarkers = []struct {
	unit    Unit
	markers []string
}{
	{unit: UnitHourly, markers: []string{"/hr", "/hour", "per hour", "an hour", "hourly", " hr"}},
	{unit: UnitYearly, markers: []string{"/yr", "/year", "per year", "a year", "yearly", " yr"}},
	{unit: UnitMonthly, markers: []string{"/mo", "/month", "per month", "a month", "monthly", " mo"}},
}

var (
	dollarRe = regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d+)?)(?:\s*(k)\b)?(?:\s*[-–]\s*\$?\s*([\d,]+(?:\.\d+)?)(?:\s*(k)\b)?)?`)
	bareKRe  = regexp.MustCompile(`(?i)([\d,]+)(?:\s*[-–]\s*([\d,]+))?\s*k\b`)
)

// DetectUnit reports the pay period named in s. Hourly markers take
// priority over yearly, and yearly over monthly.
func DetectUnit(s string) Unit {
	lower := strings.ToLower(s)
	for _, entry := range unitMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				return entry.unit
			}
		}
	}
	return UnitNone
}

// Normalize returns raw rewritten with its converted equivalents, for
// example "$23/hr" becomes "$23.00/hr (~$47,840/yr)". Anything it cannot
// parse confidently comes back trimmed but otherwise unchanged.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if _, ok := manualKeywords[lower]; ok {
		return s
	}
	if strings.Contains(s, annotation) {
		return s
	}

	unit := DetectUnit(s)
	hasCurrency := strings.Contains(s, "$") || strings.Contains(lower, "k")
	if !hasCurrency && unit == UnitNone {
		return s
	}

	values := dollarAmounts(s)
	if len(values) == 0 && unit != UnitNone && strings.Contains(lower, "k") {
		values = thousandAmounts(s)
	}
	if len(values) == 0 {
		return s
	}
	if len(values) > 2 {
		values = values[:2]
	}

	switch unit {
	case UnitHourly:
		return formatHourly(values)
	case UnitYearly:
		return formatYearly(values)
	case UnitMonthly:
		return formatMonthly(values)
	default:
		return s
	}
}

func dollarAmounts(s string) []float64 {
	var values []float64
	for _, match := range dollarRe.FindAllStringSubmatch(s, -1) {
		thousands := match[2] != "" || match[4] != ""
		for _, group := range []string{match[1], match[3]} {
			value, ok := parseAmount(group)
			if !ok {
				continue
			}
			if thousands && value < 1000 {
				value *= 1000
			}
			values = append(values, value)
		}
	}
	return values
}

func thousandAmounts(s string) []float64 {
	var values []float64
	for _, match := range bareKRe.FindAllStringSubmatch(s, -1) {
		for _, group := range []string{match[1], match[2]} {
			if value, ok := parseAmount(group); ok {
				values = append(values, value*1000)
			}
		}
	}
	return values
}

func parseAmount(group string) (float64, bool) {
	group = strings.ReplaceAll(group, ",", "")
	if group == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(group, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func formatHourly(values []float64) string {
	yearly := scale(values, HoursPerYear)
	return span(values, cents) + "/hr (~" + span(yearly, dollars) + "/yr)"
}

func formatYearly(values []float64) string {
	hourly := scale(values, 1.0/HoursPerYear)
	return span(values, dollars) + "/yr (~" + span(hourly, cents) + "/hr)"
}

func formatMonthly(values []float64) string {
	yearly := scale(values, MonthsPerYear)
	hourly := scale(yearly, 1.0/HoursPerYear)
	return span(values, dollars) + "/mo (~" + span(yearly, dollars) + "/yr, ~" + span(hourly, cents) + "/hr)"
}

func scale(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

// span renders one value or an en-dash range.
func span(values []float64, format func(float64) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return strings.Join(parts, "–")
}

func dollars(v float64) string {
	return "$" + humanize.FormatFloat("#,###.", v)
}

func cents(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
