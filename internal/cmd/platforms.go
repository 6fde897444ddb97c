package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

type PlatformsCmd struct{}

type platformRow struct {
	Platform string `json:"platform"`
	Fallback bool   `json:"fallback"`
}

func (p *PlatformsCmd) Run(ctx *Context) error {
	names := ctx.service(nil, RecordOptions{}).Platforms()
	rows := make([]platformRow, 0, len(names))
	for i, name := range names {
		rows = append(rows, platformRow{Platform: name, Fallback: i == len(names)-1})
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if ctx.PlainText {
		for _, row := range rows {
			fmt.Fprintf(ctx.Out, "%s\t%t\n", row.Platform, row.Fallback)
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "platform\tfallback")
	for _, row := range rows {
		marker := ""
		if row.Fallback {
			marker = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Platform, marker)
	}
	return tw.Flush()
}
