package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	colorEnabled := shouldEnableColor(output, mode, disableColor)
	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: colorEnabled,
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) paint(output *termenv.Output, color string, msg string) string {
	if !u.ColorEnabled {
		return msg
	}
	return output.String(msg).Foreground(output.Color(color)).String()
}

func (u *UI) Errorf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, "1", msg))
}

func (u *UI) Warnf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, "3", msg))
}

func (u *UI) Infof(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(u.Out, u.paint(u.Output, "4", msg))
}

func (u *UI) Successf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(u.Out, u.paint(u.Output, "2", msg))
}

// PrintPosting writes one posting as aligned label/value lines.
func (u *UI) PrintPosting(p models.JobPosting) error {
	tw := tabwriter.NewWriter(u.Out, 0, 4, 2, ' ', 0)
	fields := []struct {
		label string
		value string
	}{
		{label: "Title", value: p.Title},
		{label: "Company", value: p.Company},
		{label: "Location", value: p.Location},
		{label: "Salary", value: p.Salary},
		{label: "Type", value: p.JobType},
		{label: "Remote", value: p.Remote},
		{label: "Platform", value: p.Platform},
		{label: "Status", value: p.Status},
		{label: "Added", value: p.DateAdded.String()},
		{label: "URL", value: u.LinkText(p.URL)},
		{label: "Notes", value: p.Notes},
	}
	for _, field := range fields {
		value := strings.TrimSpace(field.value)
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", u.paint(u.Output, "6", field.label+":"), value)
	}
	return tw.Flush()
}

func ColorizeLink(output *termenv.Output, enabled bool, text string) string {
	if !enabled || output == nil || text == "" {
		return text
	}
	return output.String(text).Foreground(output.Color(LinkColor)).String()
}

func (u *UI) LinkText(text string) string {
	return ColorizeLink(u.Output, u.ColorEnabled, text)
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
