package cmd

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobtrack/internal/intake"
	"github.com/jimezsa/jobtrack/internal/models"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 4

type ParseCmd struct {
	URLs    []string `arg:"" name:"url" help:"Job posting URLs."`
	Proxies string   `help:"Comma-separated proxy URLs." env:"JOBTRACK_PROXIES"`
	RecordOptions
	OutputOptions
}

type parseFailure struct {
	url string
	err error
}

func (p *ParseCmd) Run(ctx *Context) error {
	for _, raw := range p.URLs {
		if err := intake.ValidateURL(raw); err != nil {
			return err
		}
	}
	if p.editsFields() && len(p.URLs) > 1 {
		return fmt.Errorf("field overrides take a single URL, got %d", len(p.URLs))
	}
	if p.Output != "" && p.saving() {
		path, err := ctx.storePath(p.Store)
		if err == nil && pathsEqual(p.Output, path) {
			return fmt.Errorf("--output path must differ from the store file")
		}
	}

	fetcher, err := ctx.fetcher(p.Proxies)
	if err != nil {
		return err
	}
	svc := ctx.service(fetcher, p.RecordOptions)

	stop := startIndicator(ctx, "Parsing")
	postings, failures := processURLs(context.Background(), svc, p.URLs)
	stop()

	reportFailures(ctx, failures)
	for i := range postings {
		postings[i] = ctx.applyEdits(postings[i], p.RecordOptions)
	}

	if p.saving() && len(postings) > 0 {
		result, err := savePostings(ctx, postings, p.RecordOptions)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.Err, formatSaveSummary(result))
	}

	if err := writePostings(ctx, postings, p.OutputOptions); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d URLs failed", len(failures), len(p.URLs))
	}
	return nil
}

// processURLs runs svc.Process over urls with bounded concurrency.
// Successful postings keep the input order. A failed URL does not stop
// the others.
func processURLs(ctx context.Context, svc *intake.Service, urls []string) ([]models.JobPosting, []parseFailure) {
	results := make([]models.JobPosting, len(urls))
	errs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, url := range urls {
		g.Go(func() error {
			posting, err := svc.Process(ctx, url)
			if err != nil {
				errs[i] = err
				return err
			}
			results[i] = posting
			return nil
		})
	}
	if err := g.Wait(); err == nil {
		return results, nil
	}

	postings := make([]models.JobPosting, 0, len(urls))
	var failures []parseFailure
	for i, url := range urls {
		if errs[i] != nil {
			failures = append(failures, parseFailure{url: url, err: errs[i]})
			continue
		}
		postings = append(postings, results[i])
	}
	return postings, failures
}

func reportFailures(ctx *Context, failures []parseFailure) {
	if ctx == nil || ctx.UI == nil || len(failures) == 0 {
		return
	}
	ctx.UI.Warnf("Failed URLs:")
	for _, failure := range failures {
		ctx.UI.Warnf("  %s: %v", failure.url, failure.err)
	}
}
