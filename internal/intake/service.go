// Package intake turns a job URL, or text pasted from a job page, into a
// standardized posting record.
package intake

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jimezsa/jobtrack/internal/extract"
	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/jimezsa/jobtrack/internal/salary"
	"github.com/rs/zerolog"
)

var ErrInvalidURL = errors.New("invalid job URL")

// Fetcher downloads a page. network.Fetcher is the production
// implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service holds only configuration fixed at construction, so it is safe
// for concurrent use.
type Service struct {
	fetcher    Fetcher
	dispatcher *extract.Dispatcher
	text       *extract.TextExtractor
	status     string
	now        func() time.Time
	logger     zerolog.Logger
	normalize  bool
}

type Option func(*Service)

func WithDispatcher(d *extract.Dispatcher) Option {
	return func(s *Service) { s.dispatcher = d }
}

func WithTextExtractor(e *extract.TextExtractor) Option {
	return func(s *Service) { s.text = e }
}

// WithStatus sets the status stamped on new records.
func WithStatus(status string) Option {
	return func(s *Service) { s.status = status }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithSalaryNormalization rewrites salaries through salary.Normalize.
func WithSalaryNormalization(enabled bool) Option {
	return func(s *Service) { s.normalize = enabled }
}

func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		status:  models.DefaultStatus,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatcher == nil {
		s.dispatcher = extract.DefaultDispatcher(s.logger)
	}
	if s.text == nil {
		s.text = extract.NewTextExtractor(s.logger)
	}
	return s
}

// Process fetches pageURL and extracts a posting from it. A fetch failure
// is returned as-is and no record is produced; extraction never fails.
func (s *Service) Process(ctx context.Context, pageURL string) (models.JobPosting, error) {
	markup, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.logger.Error().Err(err).Str("url", pageURL).Msg("fetch failed")
		return models.JobPosting{}, err
	}

	strategy := s.dispatcher.Select(pageURL)
	s.logger.Debug().Str("url", pageURL).Str("platform", strategy.Platform()).Msg("dispatching")

	fields := strategy.ExtractHTML(markup, pageURL)
	if fields.Platform == "" {
		fields.Platform = strategy.Platform()
	}
	return s.build(fields, pageURL), nil
}

// ProcessPastedText extracts a posting from copied page text. pageURL
// only names the platform and is stored on the record.
func (s *Service) ProcessPastedText(pageURL string, text string) models.JobPosting {
	fields := s.text.Extract(text, pageURL)
	fields.Platform = s.dispatcher.PlatformFor(pageURL)
	return s.build(fields, pageURL)
}

// Platforms lists the routed platform names followed by the fallback.
func (s *Service) Platforms() []string {
	routes := s.dispatcher.Routes()
	names := make([]string, 0, len(routes)+1)
	for _, route := range routes {
		names = append(names, route.Name)
	}
	return append(names, s.dispatcher.Fallback().Platform())
}

func (s *Service) build(fields models.RawFields, pageURL string) models.JobPosting {
	posting := models.NewJobPosting(fields, pageURL, s.status, s.now())
	if s.normalize && posting.Salary != "" {
		posting = posting.WithSalary(salary.Normalize(posting.Salary))
	}
	s.logger.Debug().
		Str("url", pageURL).
		Str("title", posting.Title).
		Str("company", posting.Company).
		Str("salary", posting.Salary).
		Msg("built posting")
	return posting
}

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https: %s", ErrInvalidURL, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host: %s", ErrInvalidURL, raw)
	}
	return nil
}
