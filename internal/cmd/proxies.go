package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobtrack/internal/config"
	"github.com/jimezsa/jobtrack/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against a target URL."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL." default:"https://www.linkedin.com/jobs"`
	Timeout int    `help:"Timeout in seconds." default:"15"`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBTRACK_PROXIES"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies(p.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return network.ErrNoProxies
	}

	timeout := time.Duration(p.Timeout) * time.Second
	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, checkProxy(proxy, p.Target, timeout))
	}

	return writeProxyResults(ctx, results)
}

func checkProxy(proxy string, target string, timeout time.Duration) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy}
	fail := func(err error) ProxyCheckResult {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	rotator, err := network.NewRotator([]string{proxy}, 5*time.Minute)
	if err != nil {
		return fail(err)
	}
	client, err := network.NewClient(rotator, timeout)
	if err != nil {
		return fail(err)
	}

	start := time.Now()
	status, err := network.NewFetcher(client, timeout).Check(context.Background(), target)
	if err != nil {
		return fail(err)
	}
	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = fmt.Sprintf("%d", status)
	return result
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
