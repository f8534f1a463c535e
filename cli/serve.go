package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/skelter-dev/skelter/engine/infra/server"
	"github.com/skelter-dev/skelter/pkg/config"
	"github.com/skelter-dev/skelter/pkg/logger"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve <app_name> [port] [config...]",
		Short: "Run the embedded dev server for an application",
		Long: `Start the embedded dev server for a created application. The application
may be named (looked up under the webapps directory) or given as a path.
Additional arguments are YAML server config files applied in order.`,
		Example: `  skelter serve blog
  skelter serve blog 8090
  skelter serve /home/john/projects/blog
  skelter serve blog 8091 etc/server.yaml etc/tls.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			appPath := resolveAppPath(cfg, args[0])

			port := cfg.Server.Port
			rest := args[1:]
			if len(rest) > 0 {
				if p, err := strconv.Atoi(rest[0]); err == nil {
					port = p
					rest = rest[1:]
				}
			}
			configFiles := make([]string, len(rest))
			for i, file := range rest {
				if filepath.IsAbs(file) {
					configFiles[i] = file
				} else {
					configFiles[i] = filepath.Join(appPath, file)
				}
			}

			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("failed to load env file %q: %w", envFile, err)
				}
			} else if _, err := os.Stat(filepath.Join(appPath, ".env")); err == nil {
				if err := godotenv.Load(filepath.Join(appPath, ".env")); err != nil {
					return fmt.Errorf("failed to load env file: %w", err)
				}
			}

			srv, err := server.New(server.Config{
				Host:        cfg.Server.Host,
				Port:        port,
				AppPath:     appPath,
				ConfigFiles: configFiles,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log := logger.FromContext(ctx)
			log.Info("starting dev server", "app", appPath, "port", port)
			log.Info("use Ctrl-C to shut down")
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "Environment file loaded before start (defaults to <app>/.env when present)")
	return cmd
}

// resolveAppPath mirrors app creation: a bare name is looked up under the
// webapps directory, a path is used as given.
func resolveAppPath(cfg *config.Config, name string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
		return name
	}
	return filepath.Join(cfg.WebappsPath(), strings.ToLower(name))
}
