package cmd

import (
	"fmt"

	"github.com/jimezsa/jobtrack/internal/store"
)

type StoreCmd struct {
	List   StoreListCmd   `cmd:"" help:"Print stored records, newest first."`
	Trash  StoreTrashCmd  `cmd:"" help:"Print replaced records."`
	Import StoreImportCmd `cmd:"" help:"Merge records from a JSON file into the store."`
	Path   StorePathCmd   `cmd:"" help:"Print the store file path."`
}

type StoreListCmd struct {
	Store string `help:"Path to the store file (default from config)." env:"JOBTRACK_STORE"`
	Limit int    `help:"Maximum records to print (0 for all)."`
	OutputOptions
}

type StoreTrashCmd struct {
	Store string `help:"Path to the store file (default from config)." env:"JOBTRACK_STORE"`
	OutputOptions
}

type StoreImportCmd struct {
	Input string `arg:"" help:"JSON file holding a records array or a store file."`
	Store string `help:"Path to the store file (default from config)." env:"JOBTRACK_STORE"`
	Stats bool   `help:"Print merge stats."`
}

type StorePathCmd struct {
	Store string `help:"Path to the store file (default from config)." env:"JOBTRACK_STORE"`
}

func (c *StoreListCmd) Run(ctx *Context) error {
	st, err := openStore(ctx, c.Store)
	if err != nil {
		return err
	}
	jobs := st.Jobs()
	if c.Limit > 0 && len(jobs) > c.Limit {
		jobs = jobs[:c.Limit]
	}
	return writePostings(ctx, jobs, c.OutputOptions)
}

func (c *StoreTrashCmd) Run(ctx *Context) error {
	st, err := openStore(ctx, c.Store)
	if err != nil {
		return err
	}
	return writePostings(ctx, st.Trash(), c.OutputOptions)
}

func (c *StoreImportCmd) Run(ctx *Context) error {
	path, err := ctx.storePath(c.Store)
	if err != nil {
		return err
	}
	if pathsEqual(path, c.Input) {
		return fmt.Errorf("input path must differ from the store file")
	}

	input, err := store.ReadPostings(c.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	st, err := store.Load(path)
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}

	stats := st.Merge(input)
	if err := st.Save(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_stored=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
			stats.TotalStored,
			stats.TotalInput,
			stats.Invalid,
			stats.Added,
			stats.TotalOut,
		)
		return err
	}
	return nil
}

func (c *StorePathCmd) Run(ctx *Context) error {
	path, err := ctx.storePath(c.Store)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, path)
	return err
}

func openStore(ctx *Context, override string) (*store.Store, error) {
	path, err := ctx.storePath(override)
	if err != nil {
		return nil, err
	}
	st, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	return st, nil
}
