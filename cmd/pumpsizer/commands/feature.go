package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pumpsizer/internal/domain"
)

func featureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Add or remove water-feature rows",
	}
	cmd.AddCommand(featureAddCmd(), featureRmCmd())
	return cmd
}

func featureAddCmd() *cobra.Command {
	var row domain.WaterFeatureRow
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a water-feature row",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := appCtx.Update(func(doc *domain.Document) {
				doc.WaterFeatures = append(doc.WaterFeatures, row)
			})
			if err != nil {
				return err
			}
			n := len(snap.Doc.WaterFeatures)
			added := snap.Doc.WaterFeatures[n-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Feature #%d %s: %.1f GPM\n", n, added.Type,
				added.Quantity*added.Width*added.FlowPerUnitWidth)
			return nil
		},
	}
	cmd.Flags().StringVar(&row.Type, "type", "", "feature type, e.g. sheer or deck jet")
	cmd.Flags().Float64Var(&row.Quantity, "qty", 1, "number of units")
	cmd.Flags().Float64Var(&row.Width, "width", 0, "width per unit in feet")
	cmd.Flags().Float64Var(&row.FlowPerUnitWidth, "flow-per-ft", 0, "GPM per foot of width")
	return cmd
}

func featureRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove a water-feature row by its 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if i < 1 || i > len(appCtx.Snapshot().Doc.WaterFeatures) {
				return fmt.Errorf("no feature #%d", i)
			}
			_, err = appCtx.Update(func(doc *domain.Document) {
				doc.WaterFeatures = append(doc.WaterFeatures[:i-1], doc.WaterFeatures[i:]...)
			})
			return err
		},
	}
}
