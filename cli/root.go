// Package cli wires the scaffolding commands. Commands only parse arguments
// and format output; all behavior lives in the engine packages.
package cli

import (
	"fmt"

	"github.com/skelter-dev/skelter/pkg/config"
	"github.com/skelter-dev/skelter/pkg/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "skelter",
		Short:         "Web application scaffolding toolkit",
		Long:          "skelter creates application skeletons, generates view and controller code from a data model, and runs the embedded dev server.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logLevel, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
			if err != nil {
				return err
			}
			logger.SetupLogger(logLevel, logJSON, logSource)
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			ctx := config.ContextWithConfig(cmd.Context(), cfg)
			ctx = logger.ContextWithLogger(ctx, logger.GetDefault())
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	root.PersistentFlags().Bool("log-source", false, "Include source locations in logs")

	root.AddCommand(
		CreateCmd(),
		GenerateCmd(),
		ServeCmd(),
	)
	return root
}
