package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pumpsizer/internal/services/evaluate"
)

func evaluateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Print pump verdicts and per-system health",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := appCtx.Report()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return printReport(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func printReport(w io.Writer, rep evaluate.Report) error {
	d := rep.Demand
	fmt.Fprintf(w, "Demand: pool turnover %.1f GPM, water features %.1f GPM, pool required %.1f GPM\n",
		d.PoolTurnover, d.WaterFeatures, d.PoolRequired)
	if d.SpaEnabled {
		fmt.Fprintf(w, "        spa jets %.1f GPM, spa turnover %.1f GPM, spa required %.1f GPM\n",
			d.SpaJets, d.SpaTurnover, d.SpaRequired)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PUMP\tSYSTEM\tVERDICT\tCAPACITY\tREQUIRED\tDETAIL")
	for _, p := range rep.Pumps {
		r := p.Result
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\t%s\n",
			p.Assignment.ID, p.Assignment.System, r.Verdict, r.TotalCapacity, r.Required, r.Explanation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYSTEM\tSTATUS\tCAPACITY\tREQUIRED\tNOTE")
	for _, h := range rep.Health.Systems {
		note := ""
		if h.CoveredBy != "" {
			note = "covered by " + h.CoveredBy
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%s\n", h.System, h.Status, h.Capacity, h.Required, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Overall: %s\n", rep.Health.Overall)
	for _, warn := range rep.Estimate.Warnings {
		fmt.Fprintf(w, "warning [%s]: %s\n", warn.Code, warn.Message)
	}
	return nil
}
