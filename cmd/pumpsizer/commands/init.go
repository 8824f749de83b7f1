package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
)

func initCmd() *cobra.Command {
	var (
		force bool
		name  string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default project document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Documents.Exists() && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", appCtx.Documents.Path())
			}
			snap, err := appCtx.Update(func(doc *domain.Document) {
				*doc = project.Default()
				if name != "" {
					doc.Project.Name = name
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %q created at %s\n", snap.Doc.Project.Name, appCtx.Documents.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing project")
	cmd.Flags().StringVar(&name, "name", "", "project name")
	return cmd
}
