package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func estimateCmd() *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate total dynamic head with Hazen-Williams",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			est, _ := appCtx.Estimator.Run(appCtx.Snapshot().Doc)
			fmt.Fprintf(out, "Scope:      %s\n", est.Scope)
			fmt.Fprintf(out, "Flow basis: %.1f GPM\n", est.FlowBasis)
			fmt.Fprintf(out, "Length:     %.1f ft equivalent\n", est.Length)
			fmt.Fprintf(out, "Friction:   %.2f ft\n", est.Friction)
			fmt.Fprintf(out, "Head:       %.1f ft\n", est.Rounded())
			for _, w := range est.Warnings {
				fmt.Fprintf(out, "warning [%s]: %s\n", w.Code, w.Message)
			}
			if !apply {
				return nil
			}
			applied, n, err := appCtx.ApplyEstimate()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Applied %.1f ft to %d pump(s)\n", applied.Rounded(), n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "write the head into pumps in scope when every guard passes")
	return cmd
}
