package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/jimezsa/jobtrack/internal/salary"
	"github.com/jimezsa/jobtrack/internal/store"
)

// RecordOptions control how new postings are stamped and stored.
type RecordOptions struct {
	Status          string `help:"Status for new records (default from config)."`
	NormalizeSalary bool   `name:"normalize-salary" help:"Annotate salaries with hourly/yearly equivalents."`
	Save            bool   `help:"Save records to the store."`
	Replace         bool   `help:"Replace the stored record with the same URL (implies --save)." xor:"replace"`
	ReplaceLast     bool   `name:"replace-last" help:"Replace the most recently stored record (implies --save)." xor:"replace"`
	Store           string `help:"Path to the store file (default from config)." env:"JOBTRACK_STORE"`

	Title    string `help:"Use this title instead of the extracted one." group:"edit"`
	Company  string `help:"Use this company instead of the extracted one." group:"edit"`
	Location string `help:"Use this location instead of the extracted one." group:"edit"`
	Salary   string `help:"Use this salary instead of the extracted one." group:"edit"`
	JobType  string `name:"job-type" help:"Use this job type instead of the extracted one." enum:",Internship,Full-time,Part-time,Contract" default:"" group:"edit"`
	Remote   string `help:"Use this remote setting instead of the extracted one." enum:",Remote,Hybrid,On-site" default:"" group:"edit"`
	Notes    string `help:"Notes to store with the record." group:"edit"`
}

func (o RecordOptions) saving() bool {
	return o.Save || o.Replace || o.ReplaceLast
}

// editsFields reports whether any per-posting field override is set.
// Status and notes may apply to many postings at once.
func (o RecordOptions) editsFields() bool {
	for _, value := range []string{o.Title, o.Company, o.Location, o.Salary, o.JobType, o.Remote} {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

// applyEdits replaces extracted values with the ones given on the command
// line. Empty options keep the extracted value.
func (c *Context) applyEdits(p models.JobPosting, opts RecordOptions) models.JobPosting {
	if strings.TrimSpace(opts.Status) != "" {
		p = p.WithStatus(opts.Status)
	}
	if strings.TrimSpace(opts.Title) != "" {
		p = p.WithTitle(opts.Title)
	}
	if strings.TrimSpace(opts.Company) != "" {
		p = p.WithCompany(opts.Company)
	}
	if strings.TrimSpace(opts.Location) != "" {
		p = p.WithLocation(opts.Location)
	}
	if strings.TrimSpace(opts.Salary) != "" {
		value := opts.Salary
		if opts.NormalizeSalary || c.Config.NormalizeSalary {
			value = salary.Normalize(value)
		}
		p = p.WithSalary(value)
	}
	if strings.TrimSpace(opts.JobType) != "" {
		p = p.WithJobType(opts.JobType)
	}
	if strings.TrimSpace(opts.Remote) != "" {
		p = p.WithRemote(opts.Remote)
	}
	if strings.TrimSpace(opts.Notes) != "" {
		p = p.WithNotes(opts.Notes)
	}
	return p
}

type saveResult struct {
	added      int
	replaced   int
	duplicates int
}

func savePostings(ctx *Context, postings []models.JobPosting, opts RecordOptions) (saveResult, error) {
	var result saveResult
	if opts.ReplaceLast && len(postings) > 1 {
		return result, fmt.Errorf("--replace-last takes a single posting, got %d", len(postings))
	}

	path, err := ctx.storePath(opts.Store)
	if err != nil {
		return result, err
	}
	st, err := store.Load(path)
	if err != nil {
		return result, fmt.Errorf("read store: %w", err)
	}

	for _, posting := range postings {
		switch {
		case opts.ReplaceLast:
			if st.ReplaceLast(posting) {
				result.replaced++
			} else {
				result.added++
			}
		case opts.Replace:
			if st.ReplaceByURL(posting) {
				result.replaced++
			} else {
				result.added++
			}
		default:
			if err := st.AddUnique(posting); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					result.duplicates++
					if ctx.UI != nil {
						ctx.UI.Warnf("already stored, skipping: %s (use --replace)", posting.URL)
					}
					continue
				}
				return result, err
			}
			result.added++
		}
	}

	if err := st.Save(); err != nil {
		return result, fmt.Errorf("write store: %w", err)
	}
	ctx.Logger.Debug().
		Str("store", path).
		Int("added", result.added).
		Int("replaced", result.replaced).
		Int("duplicates", result.duplicates).
		Msg("store updated")
	return result, nil
}

func formatSaveSummary(result saveResult) string {
	return fmt.Sprintf("saved: added=%d replaced=%d skipped=%d", result.added, result.replaced, result.duplicates)
}
