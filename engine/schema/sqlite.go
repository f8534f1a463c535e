package schema

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// unboundedTextLength stands in for TEXT/CLOB columns that declare no size;
// it is large enough to clear any sane long-text threshold.
const unboundedTextLength = 65535

var declaredLengthRe = regexp.MustCompile(`\(\s*(\d+)`)

// SQLiteProvider reads model metadata from a SQLite database using
// PRAGMA table_info. Audited columns are matched by name against the
// configured set, case-insensitively.
type SQLiteProvider struct {
	db      *sql.DB
	audited map[string]struct{}
}

// NewSQLiteProvider creates a provider over an open database handle.
func NewSQLiteProvider(db *sql.DB, auditedColumns []string) *SQLiteProvider {
	audited := make(map[string]struct{}, len(auditedColumns))
	for _, name := range auditedColumns {
		audited[strings.ToLower(name)] = struct{}{}
	}
	return &SQLiteProvider{db: db, audited: audited}
}

// ModelInfo implements Provider.
func (p *SQLiteProvider) ModelInfo(ctx context.Context, model string) (*ModelInfo, error) {
	rows, err := p.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", model))
	if err != nil {
		return nil, fmt.Errorf("failed to read table info for %q: %w", model, err)
	}
	defer rows.Close()

	info := &ModelInfo{Name: model}
	for rows.Next() {
		var (
			cid          int
			name         string
			declaredType string
			notNull      int
			defaultValue sql.NullString
			primaryKey   int
		)
		if err := rows.Scan(&cid, &name, &declaredType, &notNull, &defaultValue, &primaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan table info for %q: %w", model, err)
		}
		_, audited := p.audited[strings.ToLower(name)]
		info.Columns = append(info.Columns, ColumnInfo{
			Name:          name,
			AutoIncrement: isAutoIncrement(declaredType, primaryKey),
			Audited:       audited,
			Length:        declaredLength(declaredType),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table info for %q: %w", model, err)
	}
	if len(info.Columns) == 0 {
		return nil, &ErrModelNotFound{Model: model}
	}
	return info, nil
}

// isAutoIncrement applies SQLite's rule: an INTEGER primary key is a rowid
// alias and auto-populates.
func isAutoIncrement(declaredType string, primaryKey int) bool {
	return primaryKey > 0 && strings.EqualFold(strings.TrimSpace(declaredType), "INTEGER")
}

// declaredLength extracts the size from declarations like VARCHAR(255).
// Unbounded textual types count as long.
func declaredLength(declaredType string) int {
	if m := declaredLengthRe.FindStringSubmatch(declaredType); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	switch strings.ToUpper(strings.TrimSpace(declaredType)) {
	case "TEXT", "CLOB":
		return unboundedTextLength
	}
	return 0
}
