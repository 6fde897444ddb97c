package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/jobtrack/internal/export"
	"github.com/jimezsa/jobtrack/internal/intake"
	"github.com/jimezsa/jobtrack/internal/models"
)

type PasteCmd struct {
	URL  string `name:"url" required:"" help:"URL of the page the text was copied from."`
	File string `name:"file" short:"f" help:"Read the text from a file instead of stdin."`
	RecordOptions
	OutputOptions
}

func (p *PasteCmd) Run(ctx *Context) error {
	if err := intake.ValidateURL(p.URL); err != nil {
		return err
	}

	text, err := p.readText(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to parse")
	}

	svc := ctx.service(nil, p.RecordOptions)
	posting := svc.ProcessPastedText(p.URL, text)
	if posting.Notes != "" {
		ctx.Logger.Warn().Str("url", p.URL).Str("notes", posting.Notes).Msg("extraction incomplete")
	}
	posting = ctx.applyEdits(posting, p.RecordOptions)

	if p.saving() {
		result, err := savePostings(ctx, []models.JobPosting{posting}, p.RecordOptions)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.Err, formatSaveSummary(result))
	}

	format, err := resolveFormat(ctx, p.OutputOptions, p.Output)
	if err != nil {
		return err
	}
	if format == export.FormatTable && p.Output == "" && ctx.UI != nil {
		return ctx.UI.PrintPosting(posting)
	}
	return writePostings(ctx, []models.JobPosting{posting}, p.OutputOptions)
}

func (p *PasteCmd) readText(ctx *Context) (string, error) {
	if strings.TrimSpace(p.File) != "" {
		data, err := os.ReadFile(p.File)
		if err != nil {
			return "", fmt.Errorf("read --file: %w", err)
		}
		return string(data), nil
	}

	in := ctx.In
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
