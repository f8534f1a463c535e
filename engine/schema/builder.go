package schema

import (
	"strings"

	"github.com/skelter-dev/skelter/pkg/props"
)

// Descriptor is a template-ready view of a surviving column. Constructed once
// per generation request and never mutated.
type Descriptor struct {
	Name       string
	NameLower  string
	IsLongText bool
}

// Props converts the descriptor into a property mapping for iterated
// template sections.
func (d Descriptor) Props() props.Map {
	return props.Map{
		"name":       d.Name,
		"nameLower":  d.NameLower,
		"isLongText": d.IsLongText,
	}
}

// BuildColumns filters a model's columns into template descriptors: audited
// and auto-increment columns are dropped, relative order is preserved, and a
// column is long-text when its declared length reaches the threshold. The
// result may legitimately be empty.
func BuildColumns(info *ModelInfo, longTextThreshold int) []Descriptor {
	if info == nil {
		return nil
	}
	descriptors := make([]Descriptor, 0, len(info.Columns))
	for _, col := range info.Columns {
		if col.Audited || col.AutoIncrement {
			continue
		}
		descriptors = append(descriptors, Descriptor{
			Name:       col.Name,
			NameLower:  strings.ToLower(col.Name),
			IsLongText: col.Length >= longTextThreshold,
		})
	}
	return descriptors
}

// ColumnProps renders descriptors as a sequence property suitable for the
// template engine's iteration support.
func ColumnProps(descriptors []Descriptor) []props.Map {
	mappings := make([]props.Map, len(descriptors))
	for i, d := range descriptors {
		mappings[i] = d.Props()
	}
	return mappings
}
