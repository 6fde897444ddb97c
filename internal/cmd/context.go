package cmd

import (
	"io"
	"strings"
	"time"

	"github.com/jimezsa/jobtrack/internal/config"
	"github.com/jimezsa/jobtrack/internal/intake"
	"github.com/jimezsa/jobtrack/internal/network"
	"github.com/jimezsa/jobtrack/internal/ui"
	"github.com/rs/zerolog"
)

const proxyBanDuration = 10 * time.Minute

type Context struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Fetcher replaces the network fetcher when set.
	Fetcher intake.Fetcher
}

func (c *Context) fetcher(proxiesFlag string) (intake.Fetcher, error) {
	if c.Fetcher != nil {
		return c.Fetcher, nil
	}

	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
	}

	timeout := c.Config.FetchTimeout()
	client, err := network.NewClient(rotator, timeout)
	if err != nil {
		return nil, err
	}
	limiter := network.NewHostLimiter(c.Config.HostRequestsPerSecond)
	return network.NewFetcher(client, timeout).LimitPerHost(limiter), nil
}

func (c *Context) service(fetcher intake.Fetcher, opts RecordOptions) *intake.Service {
	status := c.Config.DefaultStatus
	if strings.TrimSpace(opts.Status) != "" {
		status = opts.Status
	}
	return intake.NewService(fetcher,
		intake.WithStatus(status),
		intake.WithSalaryNormalization(opts.NormalizeSalary || c.Config.NormalizeSalary),
		intake.WithLogger(c.Logger),
	)
}

func (c *Context) storePath(override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return override, nil
	}
	return c.Config.ResolvedStorePath()
}
