package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pumpsizer/internal/curve"
	"pumpsizer/internal/domain"
)

func curvesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Import, list or remove pump curves",
	}
	cmd.AddCommand(curvesImportCmd(), curvesListCmd(), curvesRmCmd())
	return cmd
}

func curvesImportCmd() *cobra.Command {
	var (
		rpm        float64
		label      string
		modelLabel string
		file       string
		library    bool
	)
	cmd := &cobra.Command{
		Use:   "import <model>",
		Short: "Parse flow/head pairs into one RPM line of a model",
		Long: "Parse flow/head pairs (one per line, separated by comma, semicolon or\n" +
			"whitespace; '#' starts a comment) from --file or stdin. The line replaces\n" +
			"any existing line at the same RPM.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			text, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			line, diags, err := curve.BuildLine(rpm, label, text)
			for _, d := range diags {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", d.Error())
			}
			if err != nil {
				return err
			}

			var model domain.PumpCurveModel
			if library {
				lib, err := appCtx.Curves.LoadLibrary()
				if err != nil {
					return err
				}
				model = withIdentity(lib[id], id, modelLabel)
				model = curve.UpsertLine(model, line)
				if err := appCtx.Curves.SaveModel(model); err != nil {
					return err
				}
			} else {
				model = withIdentity(appCtx.Snapshot().Doc.Curves[id], id, modelLabel)
				model = curve.UpsertLine(model, line)
				if _, err := appCtx.Update(func(doc *domain.Document) { doc.Curves[id] = model }); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points at %.0f RPM (%d lines)\n",
				id, len(line.Points), rpm, len(model.Lines))
			return nil
		},
	}
	cmd.Flags().Float64Var(&rpm, "rpm", 0, "motor speed of this line")
	cmd.Flags().StringVar(&label, "label", "", "line label, e.g. High")
	cmd.Flags().StringVar(&modelLabel, "model-label", "", "display name of the model")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "input file, - for stdin")
	cmd.Flags().BoolVar(&library, "library", false, "store in the shared library instead of the project")
	_ = cmd.MarkFlagRequired("rpm")
	return cmd
}

func withIdentity(m domain.PumpCurveModel, id, label string) domain.PumpCurveModel {
	m.ID = id
	if label != "" {
		m.Label = label
	}
	if m.Label == "" {
		m.Label = id
	}
	return m
}

func readInput(cmd *cobra.Command, file string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	return string(b), err
}

func curvesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pump models from the library and the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := appCtx.Curves.LoadLibrary()
			if err != nil {
				return err
			}
			doc := appCtx.Snapshot().Doc
			merged := lib.Merge(doc.Curves)

			ids := make([]string, 0, len(merged))
			for id := range merged {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODEL\tLABEL\tSOURCE\tLINES\tMAX HEAD")
			for _, id := range ids {
				m := curve.NormalizeModel(merged[id])
				source := "library"
				if _, ok := doc.Curves[id]; ok {
					source = "project"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f ft\n", id, m.Label, source, rpmList(m), curve.MaxHead(m))
			}
			return tw.Flush()
		},
	}
}

func rpmList(m domain.PumpCurveModel) string {
	rpms := make([]string, len(m.Lines))
	for i, l := range m.Lines {
		rpms[i] = strconv.FormatFloat(l.RPM, 'f', 0, 64)
	}
	return strings.Join(rpms, ",")
}

func curvesRmCmd() *cobra.Command {
	var library bool
	cmd := &cobra.Command{
		Use:   "rm <model>",
		Short: "Remove a pump model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if library {
				return appCtx.Curves.DeleteModel(id)
			}
			if _, ok := appCtx.Snapshot().Doc.Curves[id]; !ok {
				return errors.New("no project curve " + id)
			}
			_, err := appCtx.Update(func(doc *domain.Document) { delete(doc.Curves, id) })
			return err
		},
	}
	cmd.Flags().BoolVar(&library, "library", false, "remove from the shared library")
	return cmd
}
