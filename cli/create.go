package cli

import (
	"fmt"
	"strings"

	"github.com/skelter-dev/skelter/engine/creator"
	"github.com/skelter-dev/skelter/pkg/config"
	"github.com/spf13/cobra"
)

func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <app_name> [database_type] [package_prefix]",
		Short: "Create a web application skeleton",
		Long: `Create a web application from the skeleton source tree.

The application name may be a bare name (created under the webapps
directory) or a path (created in place). Supported database types: ` +
			strings.Join(creator.DatabaseTypes(), ", ") + `.`,
		Example: `  skelter create blog
  skelter create blog sqlite3
  skelter create /home/john/projects/blog
  skelter create blog postgres example.com`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := creator.Options{Name: args[0]}
			if len(args) > 1 {
				opts.DatabaseType = strings.ToLower(args[1])
			}
			if len(args) > 2 {
				opts.PackagePrefix = args[2]
			}
			cfg := config.FromContext(cmd.Context())
			result, err := creator.New(cfg).Create(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s at %s (%d files, %d rendered)\n",
				result.AppName, result.AppPath, result.Report.Total, result.Report.Rendered)
			return nil
		},
	}
	return cmd
}
