// Package server boots the embedded dev server for a created application.
// It is a direct call into the HTTP stack's published startup API; the CLI
// hands it an app path and an ordered list of YAML config files.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
	"github.com/skelter-dev/skelter/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Config describes one server run.
type Config struct {
	Host        string
	Port        int
	AppPath     string
	ConfigFiles []string
}

// FileConfig is the shape of a YAML server config file. Files are applied in
// order; later files override earlier ones field by field.
type FileConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	StaticDir  string `yaml:"static_dir"`
	HealthPath string `yaml:"health_path"`
}

// Server serves a single application until its context is canceled.
type Server struct {
	cfg        Config
	staticDir  string
	healthPath string
}

// New validates the run configuration and applies the config files.
func New(cfg Config) (*Server, error) {
	info, err := os.Stat(cfg.AppPath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("web application %q does not exist", cfg.AppPath)
	}
	s := &Server{cfg: cfg, staticDir: "public", healthPath: "/healthz"}
	for _, file := range cfg.ConfigFiles {
		if err := s.applyConfigFile(file); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) applyConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("server configuration file %q does not exist: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse server configuration %q: %w", path, err)
	}
	if fc.Host != "" {
		s.cfg.Host = fc.Host
	}
	if fc.Port != 0 {
		s.cfg.Port = fc.Port
	}
	if fc.StaticDir != "" {
		s.staticDir = fc.StaticDir
	}
	if fc.HealthPath != "" {
		s.healthPath = fc.HealthPath
	}
	return nil
}

// Addr returns the listen address after config-file overrides.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// StaticPath returns the directory served as static content.
func (s *Server) StaticPath() string {
	if filepath.IsAbs(s.staticDir) {
		return s.staticDir
	}
	return filepath.Join(s.cfg.AppPath, s.staticDir)
}

func (s *Server) handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(s.healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "app": filepath.Base(s.cfg.AppPath)})
	})
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.StaticPath()))))
	return router
}

// Run serves until the context is canceled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	log.Info("dev server started",
		"addr", s.Addr(), "app", s.cfg.AppPath, "static", s.StaticPath())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dev server: %w", err)
		}
		log.Info("dev server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server failed: %w", err)
	}
}
