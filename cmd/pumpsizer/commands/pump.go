package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pumpsizer/internal/domain"
)

func pumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pump",
		Short: "Manage pump assignments",
	}
	cmd.AddCommand(pumpAddCmd(), pumpRmCmd(), pumpListCmd())
	return cmd
}

func pumpAddCmd() *cobra.Command {
	var (
		a      domain.PumpAssignment
		system string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Assign a pump model to a demand system",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := domain.ParseDemandSystem(system)
			if err != nil {
				return err
			}
			a.System = sys
			a.ID = uuid.NewString()
			if _, err := appCtx.Update(func(doc *domain.Document) { doc.Pumps = append(doc.Pumps, a) }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pump %s added (%d x %s on %s)\n", a.ID, a.Quantity, a.ModelID, a.System)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.ModelID, "model", "", "pump model id")
	cmd.Flags().IntVar(&a.Quantity, "qty", 1, "identical pumps in parallel")
	cmd.Flags().StringVar(&system, "system", "shared", "pool, waterFeatures, spa or shared")
	cmd.Flags().Float64Var(&a.TargetHead, "head", 0, "target head in feet")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func pumpRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a pump assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := appCtx.Snapshot().Doc.Pump(id); !ok {
				return fmt.Errorf("no pump %s", id)
			}
			_, err := appCtx.Update(func(doc *domain.Document) {
				kept := doc.Pumps[:0]
				for _, p := range doc.Pumps {
					if p.ID != id {
						kept = append(kept, p)
					}
				}
				doc.Pumps = kept
			})
			return err
		},
	}
}

func pumpListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pump assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMODEL\tQTY\tSYSTEM\tHEAD")
			for _, p := range appCtx.Snapshot().Doc.Pumps {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.1f ft\n", p.ID, p.ModelID, p.Quantity, p.System, p.TargetHead)
			}
			return tw.Flush()
		},
	}
}
