package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the stored project document to file (default stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !appCtx.Documents.Exists() {
				return fmt.Errorf("no project at %s (run init)", appCtx.Documents.Path())
			}
			if len(args) == 0 || args[0] == "-" {
				return appCtx.Documents.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := appCtx.Documents.Export(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the project document with file after validating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			snap, err := appCtx.Import(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d pumps)\n", snap.Doc.Project.Name, len(snap.Doc.Pumps))
			return nil
		},
	}
}
