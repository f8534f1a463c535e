package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildColumns(t *testing.T) {
	t.Run("Should drop audited and auto-increment columns preserving order", func(t *testing.T) {
		info := &ModelInfo{
			Name: "posts",
			Columns: []ColumnInfo{
				{Name: "Id", AutoIncrement: true},
				{Name: "Title", Length: 100},
				{Name: "Description", Length: 255},
				{Name: "Created_At", Audited: true},
				{Name: "Updated_At", Audited: true, AutoIncrement: true},
			},
		}

		descriptors := BuildColumns(info, 255)

		require.Len(t, descriptors, 2)
		assert.Equal(t, "Title", descriptors[0].Name)
		assert.Equal(t, "Description", descriptors[1].Name)
	})

	t.Run("Should compute lowercase name and long-text flag at threshold", func(t *testing.T) {
		info := &ModelInfo{
			Columns: []ColumnInfo{
				{Name: "Description", Length: 255},
				{Name: "Title", Length: 254},
			},
		}

		descriptors := BuildColumns(info, 255)

		require.Len(t, descriptors, 2)
		assert.Equal(t, "description", descriptors[0].NameLower)
		assert.True(t, descriptors[0].IsLongText)
		assert.Equal(t, "title", descriptors[1].NameLower)
		assert.False(t, descriptors[1].IsLongText)
	})

	t.Run("Should return empty result when every column is filtered", func(t *testing.T) {
		info := &ModelInfo{
			Columns: []ColumnInfo{
				{Name: "id", AutoIncrement: true},
				{Name: "created_at", Audited: true},
			},
		}

		assert.Empty(t, BuildColumns(info, 255))
	})

	t.Run("Should handle nil model info", func(t *testing.T) {
		assert.Nil(t, BuildColumns(nil, 255))
	})
}

func TestColumnProps(t *testing.T) {
	t.Run("Should emit one mapping per descriptor", func(t *testing.T) {
		descriptors := []Descriptor{
			{Name: "Title", NameLower: "title", IsLongText: false},
			{Name: "Body", NameLower: "body", IsLongText: true},
		}

		mappings := ColumnProps(descriptors)

		require.Len(t, mappings, 2)
		assert.Equal(t, "title", mappings[0]["nameLower"])
		assert.Equal(t, true, mappings[1]["isLongText"])
		assert.Equal(t, "Body", mappings[1]["name"])
	})
}
