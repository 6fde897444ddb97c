package extract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var errEmptyHTML = errors.New("empty HTML document")

// Strategy turns fetched markup into raw posting fields.
type Strategy interface {
	Platform() string
	ExtractHTML(markup string, pageURL string) models.RawFields
}

// HTMLExtractor is the structured extraction pipeline. Per-board
// differences live in its Platform.
type HTMLExtractor struct {
	platform Platform
	logger   zerolog.Logger
}

var _ Strategy = (*HTMLExtractor)(nil)

func NewHTMLExtractor(platform Platform, logger zerolog.Logger) *HTMLExtractor {
	return &HTMLExtractor{platform: platform, logger: logger}
}

func (e *HTMLExtractor) Platform() string {
	return e.platform.Name
}

type document struct {
	doc  *goquery.Document
	text string
}

func parseDocument(markup string) (*document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, errEmptyHTML
	}
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &document{
		doc:  goquery.NewDocumentFromNode(root),
		text: visibleText(root),
	}, nil
}

// ExtractHTML never fails. A broken document yields default fields with
// the reason in Notes; a broken field is logged and left empty.
func (e *HTMLExtractor) ExtractHTML(markup string, pageURL string) (fields models.RawFields) {
	fields.Platform = e.platform.Name
	logger := e.logger.With().Str("platform", e.platform.Name).Str("url", pageURL).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("html parse failed")
			fields = models.RawFields{
				Platform: e.platform.Name,
				Notes:    fmt.Sprintf("Parsing error: %v", r),
			}
		}
	}()

	page, err := parseDocument(markup)
	if err != nil {
		logger.Error().Err(err).Msg("html parse failed")
		fields.Notes = "Parsing error: " + err.Error()
		return fields
	}

	var titleLocation string
	runField(logger, "title", func() error {
		parts := e.extractTitle(page.doc)
		fields.Title = parts.Position
		fields.Company = parts.Company
		titleLocation = parts.Location
		return nil
	})

	if e.platform.CompanyFromSiteName {
		runField(logger, "company", func() error {
			if site := metaContent(page.doc, "og:site_name"); site != "" {
				fields.Company = site
			}
			return nil
		})
	}

	runField(logger, "location", func() error {
		fields.Location = FindLocation(page.text)
		if fields.Location == "" && titleLocation != "" {
			fields.Location = normalizeLocation(titleLocation, "")
		}
		return nil
	})

	runField(logger, "salary", func() error {
		fields.Salary = FindSalary(page.text)
		return nil
	})

	runField(logger, "remote", func() error {
		fields.Remote = ClassifyRemote(page.text)
		return nil
	})

	runField(logger, "job_type", func() error {
		fields.JobType = ClassifyJobType(page.text)
		return nil
	})

	runField(logger, "json_ld", func() error {
		posting, ok := parseJSONLDPosting(page.doc)
		if !ok {
			return nil
		}
		setIfEmpty(&fields.Title, posting.Title)
		setIfEmpty(&fields.Company, posting.Company)
		if posting.Location != "" {
			setIfEmpty(&fields.Location, normalizeLocation(posting.Location, ""))
		}
		setIfEmpty(&fields.Salary, posting.Salary)
		return nil
	})

	if e.platform.CompanyFromDomain && fields.Company == "" {
		runField(logger, "company", func() error {
			company, err := companyFromDomain(pageURL)
			if err != nil {
				return err
			}
			fields.Company = company
			return nil
		})
	}

	logger.Info().Str("title", fields.Title).Str("company", fields.Company).Msg("parsed job page")
	return fields
}

func (e *HTMLExtractor) extractTitle(doc *goquery.Document) TitleParts {
	title := metaContent(doc, "og:title")
	if title == "" {
		title = cleanText(doc.Find("h1").First().Text())
	}
	if title == "" {
		return TitleParts{}
	}
	return e.platform.decomposeTitle(title)
}

// runField isolates one field's extraction so a failure leaves only that
// field empty.
func runField(logger zerolog.Logger, name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Str("field", name).Interface("panic", r).Msg("field extraction failed")
		}
	}()
	if err := fn(); err != nil {
		logger.Warn().Str("field", name).Err(err).Msg("field extraction failed")
	}
}

func metaContent(doc *goquery.Document, property string) string {
	selector := fmt.Sprintf("meta[property='%s'], meta[name='%s']", property, property)
	return cleanText(doc.Find(selector).First().AttrOr("content", ""))
}

func companyFromDomain(pageURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return "", err
	}
	labels := strings.Split(parsed.Hostname(), ".")
	if len(labels) < 2 {
		return "", nil
	}
	name := labels[len(labels)-2]
	if name == "" {
		return "", nil
	}
	return cases.Title(language.English).String(name), nil
}

func cleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// visibleText returns one line per rendered text node so patterns never
// match across element boundaries.
func visibleText(root *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := cleanText(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(parts, "\n")
}
