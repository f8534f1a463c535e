// Package config carries the explicit configuration for the scaffolding
// toolkit. A *Config is built once at startup and handed to every component
// that needs it; there is no ambient process-wide state.
package config

import "path/filepath"

// Config is the complete configuration for the toolkit.
type Config struct {
	Home      string          `koanf:"home"`
	Webapps   WebappsConfig   `koanf:"webapps"   validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Generator GeneratorConfig `koanf:"generator" validate:"required"`
}

// WebappsConfig locates the application skeleton and the directory that
// receives created applications.
type WebappsConfig struct {
	Name         string `koanf:"name"          validate:"required" env:"SKELTER_WEBAPPS_NAME"`
	SourceDir    string `koanf:"source_dir"    validate:"required" env:"SKELTER_SOURCE_DIR"`
	TemplatesDir string `koanf:"templates_dir" validate:"required" env:"SKELTER_TEMPLATES_DIR"`
}

// ServerConfig contains the embedded dev server configuration.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"        env:"SKELTER_SERVER_HOST"`
	Port int    `koanf:"port" validate:"min=1,max=65535" env:"SKELTER_SERVER_PORT"`
}

// GeneratorConfig tunes column-descriptor building. Audited columns and the
// long-text threshold are deployment concerns, not code assumptions.
type GeneratorConfig struct {
	LongTextThreshold int      `koanf:"long_text_threshold" validate:"min=1" env:"SKELTER_LONG_TEXT_THRESHOLD"`
	AuditedColumns    []string `koanf:"audited_columns"                      env:"SKELTER_AUDITED_COLUMNS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Home: ".",
		Webapps: WebappsConfig{
			Name:         "webapps",
			SourceDir:    filepath.Join("source", "webapp"),
			TemplatesDir: filepath.Join("source", "templates"),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Generator: GeneratorConfig{
			LongTextThreshold: 255,
			AuditedColumns:    []string{"created_at", "updated_at", "created_by", "updated_by"},
		},
	}
}

// WebappsPath returns the directory that receives created applications.
func (c *Config) WebappsPath() string {
	return filepath.Join(c.Home, c.Webapps.Name)
}

// SourcePath returns the skeleton source tree used by app creation.
func (c *Config) SourcePath() string {
	if filepath.IsAbs(c.Webapps.SourceDir) {
		return c.Webapps.SourceDir
	}
	return filepath.Join(c.Home, c.Webapps.SourceDir)
}

// TemplatesPath returns the directory holding generator templates.
func (c *Config) TemplatesPath() string {
	if filepath.IsAbs(c.Webapps.TemplatesDir) {
		return c.Webapps.TemplatesDir
	}
	return filepath.Join(c.Home, c.Webapps.TemplatesDir)
}
