// Package creator builds a working application skeleton: it materializes the
// source tree into the target location with the application's properties and
// then generates the application controller.
package creator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skelter-dev/skelter/engine/generator"
	"github.com/skelter-dev/skelter/engine/scaffold"
	"github.com/skelter-dev/skelter/pkg/config"
	"github.com/skelter-dev/skelter/pkg/logger"
	"github.com/skelter-dev/skelter/pkg/props"
	"github.com/skelter-dev/skelter/pkg/tplengine"
)

// controllerTemplate is looked up under the configured templates directory;
// creation proceeds without a controller when the install does not ship it.
const controllerTemplate = "controller_application.tmpl"

// Options configures one app creation run.
type Options struct {
	// Name is the application name, or a path whose last element names the
	// application and whose parent overrides the webapps directory.
	Name string
	// DatabaseType selects the connection profile (see DatabaseTypes).
	DatabaseType string
	// PackagePrefix is prepended to the application's module prefix.
	PackagePrefix string
}

// Result reports where the application landed.
type Result struct {
	AppName string
	AppPath string
	Report  *scaffold.Report
}

// Creator orchestrates app creation.
type Creator struct {
	cfg          *config.Config
	materializer *scaffold.Materializer
	controller   *generator.ControllerGenerator
}

func New(cfg *config.Config) *Creator {
	engine := tplengine.NewEngine()
	return &Creator{
		cfg:          cfg,
		materializer: scaffold.NewMaterializer(engine),
		controller:   generator.NewControllerGenerator(engine),
	}
}

// Create materializes the skeleton for opts.Name and generates the
// application controller.
func (c *Creator) Create(ctx context.Context, opts Options) (*Result, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("application name is required")
	}
	appName, appPath, err := c.resolveTarget(opts.Name)
	if err != nil {
		return nil, err
	}
	databaseType := opts.DatabaseType
	if databaseType == "" {
		databaseType = DefaultDatabaseType
	}
	mapping := c.buildProps(appName, appPath, databaseType, opts.PackagePrefix)

	log := logger.FromContext(ctx)
	log.Info("creating application",
		"app", appName, "target", appPath, "database", databaseType)

	report, err := c.materializer.Materialize(ctx, c.cfg.SourcePath(), appPath, mapping)
	if err != nil {
		return nil, err
	}
	if err := c.generateController(ctx, appPath, mapping); err != nil {
		return nil, err
	}
	log.Info("application created",
		"app", appName, "files", report.Total, "rendered", report.Rendered)
	return &Result{AppName: appName, AppPath: appPath, Report: report}, nil
}

// resolveTarget splits a path-bearing name into parent directory and app
// name; a bare name lands under the configured webapps directory.
func (c *Creator) resolveTarget(name string) (string, string, error) {
	if !strings.ContainsRune(name, os.PathSeparator) && !strings.ContainsRune(name, '/') {
		appName := strings.ToLower(name)
		return appName, filepath.Join(c.cfg.WebappsPath(), appName), nil
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve application path %q: %w", name, err)
	}
	appName := strings.ToLower(filepath.Base(abs))
	return appName, filepath.Join(filepath.Dir(abs), appName), nil
}

func (c *Creator) buildProps(appName, appPath, databaseType, packagePrefix string) props.Map {
	prefix := appName
	if packagePrefix != "" {
		prefix = packagePrefix + "/" + appName
	}
	profile := ProfileFor(databaseType, appName)
	return props.Map{
		"app_name":           appName,
		"app_path":           appPath,
		"home":               c.cfg.Home,
		"package_prefix":     prefix,
		"db_driver":          profile.Driver,
		"development_db_url": profile.Development,
		"test_db_url":        profile.Test,
		"production_db_url":  profile.Production,
		"db_username":        profile.Username,
	}
}

func (c *Creator) generateController(ctx context.Context, appPath string, mapping props.Map) error {
	templatePath := filepath.Join(c.cfg.TemplatesPath(), controllerTemplate)
	if _, err := os.Stat(templatePath); err != nil {
		logger.FromContext(ctx).Debug("no controller template, skipping", "path", templatePath)
		return nil
	}
	outputPath := filepath.Join(appPath, "app", "controllers", "application.go")
	return c.controller.Generate(ctx, templatePath, outputPath, mapping)
}
