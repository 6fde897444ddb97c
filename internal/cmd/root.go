package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Parse     ParseCmd     `cmd:"" help:"Fetch job pages and extract posting records."`
	Paste     PasteCmd     `cmd:"" help:"Extract a posting record from copied page text."`
	Salary    SalaryCmd    `cmd:"" help:"Normalize salary strings."`
	Platforms PlatformsCmd `cmd:"" help:"List recognized job platforms."`
	Store     StoreCmd     `cmd:"" help:"Stored records utilities."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
