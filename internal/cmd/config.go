package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/jobtrack/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write default config and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	storePath, err := ctx.Config.ResolvedStorePath()
	if err != nil {
		return err
	}
	effective := ctx.Config
	effective.StorePath = storePath

	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(effective)
}
