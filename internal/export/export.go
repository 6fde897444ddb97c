package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatTable, FormatCSV, FormatTSV, FormatJSON, FormatMarkdown, FormatYAML}
}

// ParseFormat maps a user-supplied name onto a Format.
func ParseFormat(value string) (Format, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "", string(FormatTable):
		return FormatTable, nil
	case "markdown":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, format := range Formats() {
		if string(format) == value {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", value)
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func WriteJobs(w io.Writer, postings []models.JobPosting, format Format, opts WriteOptions) error {
	if postings == nil {
		postings = []models.JobPosting{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, postings)
	case FormatCSV:
		return writeCSV(w, postings, ',')
	case FormatTSV:
		return writeCSV(w, postings, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, postings)
	case FormatYAML:
		return writeYAML(w, postings)
	default:
		return writeTable(w, postings, opts)
	}
}

func writeJSON(w io.Writer, postings []models.JobPosting) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(postings)
}

func writeYAML(w io.Writer, postings []models.JobPosting) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(postings); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(w io.Writer, postings []models.JobPosting, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(models.Columns()); err != nil {
		return err
	}
	for _, p := range postings {
		if err := writer.Write(p.Row()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, postings []models.JobPosting, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, p := range postings {
		fmt.Fprintln(tw, strings.Join(tableRow(p, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, postings []models.JobPosting) error {
	if len(postings) == 0 {
		_, err := fmt.Fprintln(w, "No postings.")
		return err
	}
	for _, p := range postings {
		urlLine := "  URL: -"
		if link := safe(p.URL); link != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", orDash(p.Title), orDash(p.Company)),
			fmt.Sprintf("  Location: %s", orDash(p.Location)),
			fmt.Sprintf("  Platform: %s", orDash(p.Platform)),
			urlLine,
		}
		optional := []struct {
			label string
			value string
		}{
			{label: "Salary", value: p.Salary},
			{label: "Type", value: p.JobType},
			{label: "Remote", value: p.Remote},
			{label: "Status", value: p.Status},
			{label: "Added", value: p.DateAdded.String()},
			{label: "Notes", value: p.Notes},
		}
		for _, field := range optional {
			if value := safe(field.value); value != "" {
				lines = append(lines, fmt.Sprintf("  %s: %s", field.label, value))
			}
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func orDash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

func tableHeader() []string {
	return []string{
		"date",
		"company",
		"title",
		"location",
		"salary",
		"status",
		"url",
	}
}

func tableRow(p models.JobPosting, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	link := safe(p.URL)
	displayURL := "-"
	if link != "" {
		displayURL = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(link)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(link, displayURL)
		}
	}
	return []string{
		orDash(p.DateAdded.String()),
		orDash(p.Company),
		orDash(p.Title),
		orDash(p.Location),
		orDash(p.Salary),
		orDash(p.Status),
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
