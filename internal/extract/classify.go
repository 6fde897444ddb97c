package extract

import (
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
)

type keywordRule struct {
	keywords []string
	value    string
}

// Both extractors classify through these tables. Order is priority.
var jobTypeRules = []keywordRule{
	{keywords: []string{"internship", "intern position"}, value: models.JobTypeInternship},
	{keywords: []string{"full-time", "full time"}, value: models.JobTypeFullTime},
	{keywords: []string{"part-time", "part time"}, value: models.JobTypePartTime},
	{keywords: []string{"contract"}, value: models.JobTypeContract},
}

var remoteRules = []keywordRule{
	{keywords: []string{"remote"}, value: models.RemoteRemote},
	{keywords: []string{"hybrid"}, value: models.RemoteHybrid},
}

var onSiteKeywords = []string{"on-site", "onsite", "on site", "in-person", "in person"}

func classify(text string, rules []keywordRule) string {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		if containsAny(lower, rule.keywords) {
			return rule.value
		}
	}
	return ""
}

// ClassifyJobType returns the first matching job type or "".
func ClassifyJobType(text string) string {
	return classify(text, jobTypeRules)
}

// ClassifyRemote returns Remote, Hybrid or On-site. It never returns "".
func ClassifyRemote(text string) string {
	if value := classify(text, remoteRules); value != "" {
		return value
	}
	return models.RemoteOnSite
}

// CanonicalRemote maps a labeled work-arrangement value onto the enum,
// or "" when the value names none of them.
func CanonicalRemote(value string) string {
	if mode := classify(value, remoteRules); mode != "" {
		return mode
	}
	if containsAny(strings.ToLower(value), onSiteKeywords) {
		return models.RemoteOnSite
	}
	return ""
}
