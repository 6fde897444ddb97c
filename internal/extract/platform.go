package extract

import (
	"regexp"
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
)

// Platform configures the shared HTML pipeline for one job board.
type Platform struct {
	Name string

	// TitleSuffixes are stripped from the end of the page title before
	// TitleRules run.
	TitleSuffixes []string

	// TitleRules decompose a combined title, in order. A rule runs only
	// while position or company is still unset.
	TitleRules []TitleRule

	// CompanyFromSiteName reads og:site_name as the company.
	CompanyFromSiteName bool

	// CompanyFromDomain falls back to the URL's second-level domain.
	CompanyFromDomain bool
}

// TitleParts is what a TitleRule can pull out of a page title.
type TitleParts struct {
	Position string
	Company  string
	Location string
}

func (p TitleParts) complete() bool {
	return p.Position != "" && p.Company != ""
}

// TitleRule fills unset parts from title.
type TitleRule func(title string, parts *TitleParts)

var titleSeparatorRe = regexp.MustCompile(`\s+[-–—]\s+`)

// HiringTitleRule handles "<Company> hiring <Position> in <Location>".
func HiringTitleRule(title string, parts *TitleParts) {
	company, rest, ok := strings.Cut(title, " hiring ")
	if !ok {
		return
	}
	position := rest
	location := ""
	if idx := strings.LastIndex(rest, " in "); idx >= 0 {
		position = rest[:idx]
		location = rest[idx+len(" in "):]
	}
	setIfEmpty(&parts.Company, company)
	setIfEmpty(&parts.Position, position)
	setIfEmpty(&parts.Location, location)
}

// DashTitleRule handles "<Position> – <Company> – <Location>".
func DashTitleRule(title string, parts *TitleParts) {
	pieces := titleSeparatorRe.Split(title, 3)
	if len(pieces) < 2 {
		return
	}
	setIfEmpty(&parts.Position, pieces[0])
	setIfEmpty(&parts.Company, pieces[1])
	if len(pieces) == 3 {
		setIfEmpty(&parts.Location, pieces[2])
	}
}

func (p Platform) decomposeTitle(title string) TitleParts {
	title = strings.TrimSpace(title)
	for _, suffix := range p.TitleSuffixes {
		title = strings.TrimSpace(strings.TrimSuffix(title, suffix))
	}

	var parts TitleParts
	for _, rule := range p.TitleRules {
		if parts.complete() {
			break
		}
		rule(title, &parts)
	}
	if parts.Position == "" {
		parts.Position = title
	}
	return parts
}

func setIfEmpty(dst *string, value string) {
	if *dst != "" {
		return
	}
	*dst = strings.TrimSpace(value)
}

var (
	LinkedInPlatform = Platform{
		Name:          models.PlatformLinkedIn,
		TitleSuffixes: []string{" | LinkedIn"},
		TitleRules:    []TitleRule{HiringTitleRule, DashTitleRule},
	}

	HandshakePlatform = Platform{
		Name:                models.PlatformHandshake,
		CompanyFromSiteName: true,
	}

	IndeedPlatform = Platform{Name: models.PlatformIndeed}

	GlassdoorPlatform = Platform{Name: models.PlatformGlassdoor}

	GenericPlatform = Platform{
		Name:              models.PlatformOther,
		CompanyFromDomain: true,
	}
)
