package extract

import (
	"strings"

	"github.com/rs/zerolog"
)

// Route sends URLs matching Match to Strategy. Match receives the
// lower-cased URL.
type Route struct {
	Name     string
	Match    func(lowerURL string) bool
	Strategy Strategy
}

// Dispatcher picks an extraction strategy from an ordered route table.
type Dispatcher struct {
	routes   []Route
	fallback Strategy
}

func NewDispatcher(routes []Route, fallback Strategy) *Dispatcher {
	return &Dispatcher{routes: append([]Route(nil), routes...), fallback: fallback}
}

// DefaultDispatcher wires the supported job boards.
func DefaultDispatcher(logger zerolog.Logger) *Dispatcher {
	return NewDispatcher([]Route{
		{
			Name:     LinkedInPlatform.Name,
			Match:    Contains("linkedin.com"),
			Strategy: NewHTMLExtractor(LinkedInPlatform, logger),
		},
		{
			Name:     HandshakePlatform.Name,
			Match:    Contains("joinhandshake.com", "handshake.com"),
			Strategy: NewHTMLExtractor(HandshakePlatform, logger),
		},
		{
			Name:     IndeedPlatform.Name,
			Match:    Contains("indeed.com"),
			Strategy: NewHTMLExtractor(IndeedPlatform, logger),
		},
		{
			Name:     GlassdoorPlatform.Name,
			Match:    Contains("glassdoor"),
			Strategy: NewHTMLExtractor(GlassdoorPlatform, logger),
		},
	}, NewHTMLExtractor(GenericPlatform, logger))
}

// Contains matches when the URL contains any of needles.
func Contains(needles ...string) func(string) bool {
	return func(lowerURL string) bool {
		return containsAny(lowerURL, needles)
	}
}

// Select returns the first matching route's strategy, or the fallback.
func (d *Dispatcher) Select(pageURL string) Strategy {
	if route, ok := d.match(pageURL); ok {
		return route.Strategy
	}
	return d.fallback
}

// PlatformFor names the board a URL belongs to.
func (d *Dispatcher) PlatformFor(pageURL string) string {
	if route, ok := d.match(pageURL); ok {
		return route.Name
	}
	return d.fallback.Platform()
}

func (d *Dispatcher) match(pageURL string) (Route, bool) {
	lower := strings.ToLower(pageURL)
	for _, route := range d.routes {
		if route.Match(lower) {
			return route, true
		}
	}
	return Route{}, false
}

func (d *Dispatcher) Routes() []Route {
	return append([]Route(nil), d.routes...)
}

func (d *Dispatcher) Fallback() Strategy {
	return d.fallback
}
