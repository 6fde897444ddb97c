package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jimezsa/jobtrack/internal/salary"
)

type SalaryCmd struct {
	Values []string `arg:"" name:"value" help:"Salary strings, e.g. '$23/hr' or '$120k - $150k'."`
}

type salaryResult struct {
	Input      string `json:"input"`
	Unit       string `json:"unit"`
	Normalized string `json:"normalized"`
}

func (s *SalaryCmd) Run(ctx *Context) error {
	results := make([]salaryResult, 0, len(s.Values))
	for _, value := range s.Values {
		results = append(results, salaryResult{
			Input:      value,
			Unit:       salary.DetectUnit(value).String(),
			Normalized: salary.Normalize(value),
		})
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, res := range results {
		if ctx.PlainText {
			fmt.Fprintf(ctx.Out, "%s\t%s\n", res.Input, res.Normalized)
			continue
		}
		fmt.Fprintln(ctx.Out, res.Normalized)
	}
	return nil
}
