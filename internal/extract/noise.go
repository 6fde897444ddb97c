package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\s+profile\s+views?$`),
	regexp.MustCompile(`^skip to`),
	regexp.MustCompile(`^menu$`),
	regexp.MustCompile(`^navigation$`),
	regexp.MustCompile(`^home$`),
	regexp.MustCompile(`^jobs$`),
	regexp.MustCompile(`^sign in$`),
	regexp.MustCompile(`^log in$`),
	regexp.MustCompile(`^search$`),
	regexp.MustCompile(`^get the app$`),
	regexp.MustCompile(`^save$`),
	regexp.MustCompile(`^share$`),
	regexp.MustCompile(`^apply$`),
	regexp.MustCompile(`^follow$`),
	regexp.MustCompile(`in the past \d+ days?$`),
	regexp.MustCompile(`\d+\s+days?\s+ago$`),
	regexp.MustCompile(`^posted`),
	regexp.MustCompile(`^apply by`),
	regexp.MustCompile(`^={3,}$`),
}

// IsNoise reports whether a pasted line is page chrome rather than
// posting content.
func IsNoise(line string) bool {
	value := strings.ToLower(strings.TrimSpace(line))
	if value == "" {
		return true
	}
	if isDigits(value) {
		return true
	}
	if strings.Contains(value, " logo") || strings.HasSuffix(value, "logo") {
		return true
	}
	for _, pattern := range noisePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func isDigits(value string) bool {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return value != ""
}

// isUpperLine mirrors "all caps" detection: at least one cased letter and
// no lowercase letters.
func isUpperLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
