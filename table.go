package sqll

import (
	"context"
	"strings"

	"github.com/roach88/sqll/internal/ident"
	"github.com/roach88/sqll/sqlerr"
)

// ColumnInfo describes one column of a table, as reported by
// PRAGMA table_info.
type ColumnInfo struct {
	CID        int
	Name       string
	Type       string
	NotNull    bool
	Default    any
	PrimaryKey bool
}

// TableExists reports whether a table with the given name exists.
func (c *Client) TableExists(ctx context.Context, table string) (bool, error) {
	row, err := c.FetchOne(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// Tables returns the names of all tables, sorted.
func (c *Client) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.FetchAll(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// TableInfo returns the schema of a table. PRAGMA arguments cannot be
// parameterized, so the table name is validated and quoted before
// splicing.
func (c *Client) TableInfo(ctx context.Context, table string) ([]ColumnInfo, error) {
	if !ident.Valid(table) {
		return nil, sqlerr.NewValidation("table", table, "table name cannot be empty")
	}
	quoted := `"` + strings.ReplaceAll(ident.Normalize(table), `"`, `""`) + `"`

	rows, err := c.FetchAll(ctx, "PRAGMA table_info("+quoted+")")
	if err != nil {
		return nil, err
	}

	info := make([]ColumnInfo, 0, len(rows))
	for _, row := range rows {
		col := ColumnInfo{Default: row["dflt_value"]}
		if v, ok := row["cid"].(int64); ok {
			col.CID = int(v)
		}
		if v, ok := row["name"].(string); ok {
			col.Name = v
		}
		if v, ok := row["type"].(string); ok {
			col.Type = v
		}
		if v, ok := row["notnull"].(int64); ok {
			col.NotNull = v != 0
		}
		if v, ok := row["pk"].(int64); ok {
			col.PrimaryKey = v != 0
		}
		info = append(info, col)
	}
	return info, nil
}
