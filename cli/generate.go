package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skelter-dev/skelter/engine/generator"
	"github.com/skelter-dev/skelter/engine/schema"
	"github.com/skelter-dev/skelter/pkg/config"
	"github.com/skelter-dev/skelter/pkg/props"
	"github.com/skelter-dev/skelter/pkg/tplengine"
	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"
)

func GenerateCmd() *cobra.Command {
	var (
		templatePath string
		databasePath string
		outputPath   string
		appName      string
	)
	cmd := &cobra.Command{
		Use:   "generate <kind> <model>",
		Short: "Generate view code for a data model",
		Long: `Generate a view artifact for a model. The model's columns are read from
the application database; audited and auto-increment columns are excluded.`,
		Example: `  skelter generate add posts --db webapps/blog/db/development.db
  skelter generate list posts --db blog.db --template my_list.tmpl -o list.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, model := generator.Kind(args[0]), args[1]
			cfg := config.FromContext(cmd.Context())

			db, err := sql.Open("sqlite", databasePath)
			if err != nil {
				return fmt.Errorf("failed to open database %q: %w", databasePath, err)
			}
			defer db.Close()

			provider := schema.NewSQLiteProvider(db, cfg.Generator.AuditedColumns)
			gen, err := generator.NewViewGenerator(
				kind, provider, tplengine.NewEngine(), cfg.Generator.LongTextThreshold)
			if err != nil {
				return err
			}
			if templatePath == "" {
				templatePath = filepath.Join(cfg.TemplatesPath(), fmt.Sprintf("view_%s.tmpl", kind))
			}
			out, err := gen.Generate(cmd.Context(), model, templatePath, props.Map{
				"app_name": appName,
			})
			if err != nil {
				return err
			}
			if outputPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "Template file (defaults to view_<kind>.tmpl in the templates dir)")
	cmd.Flags().StringVar(&databasePath, "db", "", "SQLite database file holding the model's table")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().StringVar(&appName, "app", "", "Application name exposed to templates")
	cobra.CheckErr(cmd.MarkFlagRequired("db"))
	return cmd
}
