// Package scaffold materializes a template directory tree: the source is
// copied to the target and every text file in the copy is rendered in place
// against a property mapping. Binary files pass through untouched.
package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	cp "github.com/otiai10/copy"
	"github.com/skelter-dev/skelter/pkg/logger"
	"github.com/skelter-dev/skelter/pkg/props"
	"github.com/skelter-dev/skelter/pkg/tplengine"
)

// CopyError reports a filesystem problem during the copy phase. The copy
// phase is validated up front so a failing run creates nothing.
type CopyError struct {
	Source string
	Target string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Source, e.Target, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Report summarizes one materialization run.
type Report struct {
	Rendered int
	Binary   int
	Total    int
}

// Materializer owns the traversal state of a single run; runs never share
// state.
type Materializer struct {
	engine *tplengine.TemplateEngine
}

func NewMaterializer(engine *tplengine.TemplateEngine) *Materializer {
	return &Materializer{engine: engine}
}

// Materialize copies sourceDir to targetDir, then renders every text file in
// the target in place. File and directory names are preserved exactly; a
// render failure aborts the run without rolling back earlier writes.
func (m *Materializer) Materialize(ctx context.Context, sourceDir, targetDir string, mapping props.Map) (*Report, error) {
	if err := m.copyTree(sourceDir, targetDir); err != nil {
		return nil, err
	}
	return m.renderTree(ctx, targetDir, mapping)
}

// copyTree validates both endpoints before touching the filesystem so the
// copy phase is atomic-or-nothing.
func (m *Materializer) copyTree(sourceDir, targetDir string) error {
	src, err := os.Stat(sourceDir)
	if err != nil {
		return &CopyError{Source: sourceDir, Target: targetDir, Err: err}
	}
	if !src.IsDir() {
		return &CopyError{Source: sourceDir, Target: targetDir, Err: fmt.Errorf("source is not a directory")}
	}
	if dst, err := os.Stat(targetDir); err == nil && !dst.IsDir() {
		return &CopyError{Source: sourceDir, Target: targetDir, Err: fmt.Errorf("target exists and is not a directory")}
	}
	parent := filepath.Dir(targetDir)
	if _, err := os.Stat(parent); err != nil {
		return &CopyError{Source: sourceDir, Target: targetDir, Err: fmt.Errorf("target parent %s: %w", parent, err)}
	}
	if err := cp.Copy(sourceDir, targetDir); err != nil {
		return &CopyError{Source: sourceDir, Target: targetDir, Err: err}
	}
	return nil
}

// renderTree walks the target tree rendering text files in place.
func (m *Materializer) renderTree(ctx context.Context, targetDir string, mapping props.Map) (*Report, error) {
	log := logger.FromContext(ctx)
	report := &Report{}
	err := filepath.WalkDir(targetDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		report.Total++
		if !isTextFile(path, log) {
			report.Binary++
			return nil
		}
		if err := m.renderFile(path, mapping); err != nil {
			return err
		}
		report.Rendered++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (m *Materializer) renderFile(path string, mapping props.Map) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	rendered, err := m.engine.RenderString(string(data), mapping)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if rendered == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(rendered), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// isTextFile classifies a file by content. When classification fails the
// file is treated as binary so it passes through unmodified.
func isTextFile(path string, log logger.Logger) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		log.Warn("could not classify file, treating as binary", "file", path, "error", err)
		return false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
