package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobtrack/internal/cmd"
	"github.com/jimezsa/jobtrack/internal/config"
	"github.com/jimezsa/jobtrack/internal/ui"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("jobtrack"),
		kong.Description("Turn job posting pages into tracking records."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("JOBTRACK_COLOR")), false)
		fallbackUI.Errorf("%v", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	configDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, cli.JSON || cli.Plain)
	logger := newLogger(os.Stderr, cli.Verbose)

	runCtx := &cmd.Context{
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    versionString,
		ColorMode:  colorMode,
	}

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		return 1
	}
	return 0
}

// newLogger writes human-readable lines on a terminal and JSON otherwise.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if termenv.NewOutput(w).ColorProfile() != termenv.Ascii {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func buildVersion() string {
	switch {
	case commit == "" && date == "":
		return version
	case commit == "":
		return fmt.Sprintf("%s (%s)", version, date)
	case date == "":
		return fmt.Sprintf("%s (%s)", version, commit)
	default:
		return fmt.Sprintf("%s (%s, %s)", version, commit, date)
	}
}

func applyEnvDefaults(cli *cmd.CLI) {
	if envBool("JOBTRACK_JSON") {
		cli.JSON = true
	}
	if envBool("JOBTRACK_PLAIN") {
		cli.Plain = true
	}
	if envBool("JOBTRACK_VERBOSE") {
		cli.Verbose = true
	}
	if value := os.Getenv("JOBTRACK_COLOR"); value != "" {
		cli.Color = value
	}
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
