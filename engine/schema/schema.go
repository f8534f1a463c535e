// Package schema exposes data-model metadata to the generators. The toolkit
// only consumes column descriptors; how they are discovered belongs to the
// provider implementation.
package schema

import (
	"context"
	"fmt"
)

// ColumnInfo describes one column of a model as reported by a provider.
type ColumnInfo struct {
	Name          string
	AutoIncrement bool
	// Audited marks columns the system populates on create/update
	// (timestamps and the like); they are excluded from generated forms.
	Audited bool
	// Length is the declared textual capacity; 0 when unknown.
	Length int
}

// ModelInfo is an ordered snapshot of a model's columns.
type ModelInfo struct {
	Name    string
	Columns []ColumnInfo
}

// Provider resolves model metadata. Failures are propagated to callers
// unchanged; the toolkit implements no discovery logic of its own.
type Provider interface {
	ModelInfo(ctx context.Context, model string) (*ModelInfo, error)
}

// ErrModelNotFound is returned by providers when a model has no metadata.
type ErrModelNotFound struct {
	Model string
}

func (e *ErrModelNotFound) Error() string {
	return fmt.Sprintf("no metadata found for model %q", e.Model)
}
