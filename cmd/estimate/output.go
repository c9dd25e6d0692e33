package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/lemonberrylabs/estimate/pkg/runtime"
)

func writeJSON(w io.Writer, results []*runtime.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

func writeText(w io.Writer, results []*runtime.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		if r.Model != "" {
			fmt.Fprintf(tw, "# %s (%d samples)\n", r.Model, r.Samples)
		}
		for _, out := range r.Outputs {
			s := out.Summary
			state := "folded"
			if !out.Folded {
				state = fmt.Sprintf("%d nodes, depth %d", out.Size, out.Depth)
			}
			fmt.Fprintf(tw, "%s = %s\t[%s]\n", out.Name, out.Formula, state)
			fmt.Fprintf(tw, "  mean\t%s\tstd dev\t%s\n", num(s.Mean), num(s.StdDev))
			fmt.Fprintf(tw, "  min\t%s\tmax\t%s\n", num(s.Min), num(s.Max))
			fmt.Fprintf(tw, "  p5\t%s\tp95\t%s\n", num(s.P5), num(s.P95))
			fmt.Fprintf(tw, "  p25\t%s\tp75\t%s\n", num(s.P25), num(s.P75))
			fmt.Fprintf(tw, "  median\t%s\n", num(s.P50))
			if s.Invalid > 0 {
				fmt.Fprintf(tw, "  invalid\t%d of %d\n", s.Invalid, s.Invalid+s.Count)
			}
		}
	}
	return tw.Flush()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
