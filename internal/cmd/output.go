package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimezsa/jobtrack/internal/export"
	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/muesli/termenv"
)

type OutputOptions struct {
	Format string `help:"Output format: table, csv, tsv, json, md, yaml." enum:",table,csv,tsv,json,md,markdown,yaml,yml" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

func writePostings(ctx *Context, postings []models.JobPosting, opts OutputOptions) error {
	format, err := resolveFormat(ctx, opts, opts.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(opts.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteJobs(writer, postings, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	})
}

func resolveFormat(ctx *Context, opts OutputOptions, outputPath string) (export.Format, error) {
	if outputPath != "" {
		if ctx.JSONOutput {
			return export.FormatJSON, nil
		}
		if ctx.PlainText {
			return export.FormatTSV, nil
		}
		if opts.Format == "" {
			return export.FormatCSV, nil
		}
		return export.ParseFormat(opts.Format)
	}

	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return export.ParseFormat(opts.Format)
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

// startIndicator draws a spinner on stderr until the returned func is
// called. It is a no-op off a terminal.
func startIndicator(ctx *Context, label string) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return func() {}
	}
	if !isTTY(ctx.Err) {
		return func() {}
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2K%s... %ds %s", label, seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
