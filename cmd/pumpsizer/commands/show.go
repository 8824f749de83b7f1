package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the project summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			snap := appCtx.Snapshot()
			doc := snap.Doc
			fp, err := appCtx.Fingerprint()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Project:     %s (%s)\n", doc.Project.Name, appCtx.Documents.Path())
			fmt.Fprintf(out, "Pool:        %.0f gal, %.1f h turnover\n", doc.Project.PoolVolume, doc.Project.TurnoverHours)
			fmt.Fprintf(out, "Features:    %d row(s)\n", len(doc.WaterFeatures))
			for i, r := range doc.WaterFeatures {
				fmt.Fprintf(out, "  #%d %-12s %g x %g ft @ %g GPM/ft\n", i+1, r.Type, r.Quantity, r.Width, r.FlowPerUnitWidth)
			}
			if doc.Spa.Enabled {
				fmt.Fprintf(out, "Spa:         %s, %.0f gal, %g jets @ %g GPM\n",
					doc.Spa.Mode, doc.Spa.Volume, doc.Spa.JetCount, doc.Spa.FlowPerJet)
			} else {
				fmt.Fprintln(out, "Spa:         off")
			}
			fmt.Fprintf(out, "Pumps:       %d assignment(s)\n", len(doc.Pumps))
			for _, p := range doc.Pumps {
				fmt.Fprintf(out, "  %s %d x %s on %s @ %.1f ft\n", p.ID, p.Quantity, p.ModelID, p.System, p.TargetHead)
			}
			e := doc.Engineering
			fmt.Fprintf(out, "Engineering: %g ft run, %g ft fittings, %g in pipe, C=%g, scope %s\n",
				e.EquipmentDistance, e.FittingAllowance, e.PipeDiameter, e.Roughness, e.ApplyScope)
			fmt.Fprintf(out, "Revision:    %d\n", snap.Version)
			fmt.Fprintf(out, "Fingerprint: %s\n", fp)
			return nil
		},
	}
}
