package sqll

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/sqll/internal/ident"
	"github.com/roach88/sqll/query"
	"github.com/roach88/sqll/sqlerr"
)

// SelectOptions narrows a table Select. The zero value selects every
// column of every row.
type SelectOptions struct {
	// Columns limits the selected columns; empty means all columns.
	Columns []string

	// Where filters rows; see the Where map contract on Select.
	Where Row

	// OrderBy lists order columns, each ascending.
	OrderBy []string

	// Limit and Offset paginate; zero means unset.
	Limit  int
	Offset int
}

// Insert inserts one row and returns its rowid. Column order in the
// generated statement is the sorted key order of data, so identical maps
// always produce identical SQL.
func (s *session) Insert(ctx context.Context, table string, data Row) (int64, error) {
	if err := validTable(table); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, sqlerr.NewValidation("data", data, "data map cannot be empty")
	}

	cols, values, err := sortedColumns(data)
	if err != nil {
		return 0, err
	}
	sqlText := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident.Normalize(table),
		strings.Join(cols, ", "),
		placeholderList(len(cols)))

	res, err := s.Exec(ctx, sqlText, values...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, sqlerr.NewQuery(sqlText, values, err)
	}
	s.log.Debug("row inserted", "table", table, "id", id)
	return id, nil
}

// InsertMany inserts several rows with one generated statement and
// returns the number of rows inserted. Every row must have exactly the
// same columns. Wrap in WithTx for atomicity.
func (s *session) InsertMany(ctx context.Context, table string, data []Row) (int64, error) {
	if err := validTable(table); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, sqlerr.NewValidation("data", data, "data list cannot be empty")
	}

	cols, _, err := sortedColumns(data[0])
	if err != nil {
		return 0, err
	}

	paramSets := make([][]any, 0, len(data))
	for _, row := range data {
		if len(row) != len(cols) {
			return 0, sqlerr.NewValidation("data", row, "all rows must have the same columns")
		}
		values := make([]any, len(cols))
		for i, col := range cols {
			v, ok := row[col]
			if !ok {
				return 0, sqlerr.NewValidation("data", row, "all rows must have the same columns")
			}
			values[i] = v
		}
		paramSets = append(paramSets, values)
	}

	sqlText := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident.Normalize(table),
		strings.Join(cols, ", "),
		placeholderList(len(cols)))

	n, err := s.ExecMany(ctx, sqlText, paramSets)
	if err != nil {
		return n, err
	}
	s.log.Debug("rows inserted", "table", table, "rows", n)
	return n, nil
}

// Update updates rows matching the where map and returns the number of
// rows changed. Both maps are compiled in sorted key order. An empty
// where map is rejected: unconditional updates must be written as raw SQL
// so they are always deliberate.
func (s *session) Update(ctx context.Context, table string, data, where Row) (int64, error) {
	if err := validTable(table); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, sqlerr.NewValidation("data", data, "data map cannot be empty")
	}
	if len(where) == 0 {
		return 0, sqlerr.NewValidation("where", where, "where map cannot be empty")
	}

	cols, values, err := sortedColumns(data)
	if err != nil {
		return 0, err
	}
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = ?"
	}

	cond, condParams, err := compileWhere(where)
	if err != nil {
		return 0, err
	}

	sqlText := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		ident.Normalize(table), strings.Join(sets, ", "), cond)
	params := append(values, condParams...)

	res, err := s.Exec(ctx, sqlText, params...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, sqlerr.NewQuery(sqlText, params, err)
	}
	s.log.Debug("rows updated", "table", table, "rows", n)
	return n, nil
}

// Delete deletes rows matching the where map and returns the number of
// rows removed. As with Update, an empty where map is rejected.
func (s *session) Delete(ctx context.Context, table string, where Row) (int64, error) {
	if err := validTable(table); err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, sqlerr.NewValidation("where", where, "where map cannot be empty")
	}

	cond, condParams, err := compileWhere(where)
	if err != nil {
		return 0, err
	}

	sqlText := fmt.Sprintf("DELETE FROM %s WHERE %s", ident.Normalize(table), cond)
	res, err := s.Exec(ctx, sqlText, condParams...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, sqlerr.NewQuery(sqlText, condParams, err)
	}
	s.log.Debug("rows deleted", "table", table, "rows", n)
	return n, nil
}

// Select reads rows from a table through the query builder.
//
// Where map contract (shared with Update and Delete): a []any value
// compiles to IN, a nil value to IS NULL, anything else to equality. Keys
// are compiled in sorted order so the generated SQL is deterministic.
func (s *session) Select(ctx context.Context, table string, opts SelectOptions) ([]Row, error) {
	b := query.New().Select(opts.Columns...).From(table)
	applyWhere(b, opts.Where)
	for _, col := range opts.OrderBy {
		b.OrderBy(col)
	}
	if opts.Limit > 0 {
		b.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		b.Offset(opts.Offset)
	}
	return s.Run(ctx, b)
}

// Count counts rows in a table, optionally filtered by a where map.
func (s *session) Count(ctx context.Context, table string, where Row) (int64, error) {
	b := query.Count(table)
	applyWhere(b, where)

	rows, err := s.Run(ctx, b)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for _, v := range rows[0] {
		if n, ok := v.(int64); ok {
			return n, nil
		}
	}
	return 0, nil
}

// applyWhere translates a where map into builder predicates in sorted key
// order.
func applyWhere(b *query.Builder, where Row) {
	for _, col := range sortedKeys(where) {
		switch v := where[col].(type) {
		case nil:
			b.WhereNull(col)
		case []any:
			b.WhereIn(col, v...)
		default:
			b.Where(col+" = ?", v)
		}
	}
}

// compileWhere renders a where map to a conjoined condition string plus
// its parameters, for the statements built outside the query builder.
func compileWhere(where Row) (string, []any, error) {
	var conds []string
	var params []any
	for _, col := range sortedKeys(where) {
		if !ident.Valid(col) {
			return "", nil, sqlerr.NewValidation("column", col, "column name cannot be empty")
		}
		name := ident.Normalize(col)
		switch v := where[col].(type) {
		case nil:
			conds = append(conds, name+" IS NULL")
		case []any:
			if len(v) == 0 {
				conds = append(conds, "1 = 0")
				continue
			}
			conds = append(conds, fmt.Sprintf("%s IN (%s)", name, placeholderList(len(v))))
			params = append(params, v...)
		default:
			conds = append(conds, name+" = ?")
			params = append(params, v)
		}
	}
	return strings.Join(conds, " AND "), params, nil
}

// sortedColumns validates and returns a data map's columns in sorted
// order with their values aligned.
func sortedColumns(data Row) ([]string, []any, error) {
	cols := sortedKeys(data)
	values := make([]any, len(cols))
	for i, col := range cols {
		if !ident.Valid(col) {
			return nil, nil, sqlerr.NewValidation("column", col, "column name cannot be empty")
		}
		cols[i] = ident.Normalize(col)
		values[i] = data[col]
	}
	return cols, values, nil
}

func sortedKeys(m Row) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func placeholderList(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return strings.Join(marks, ", ")
}

func validTable(table string) error {
	if !ident.Valid(table) {
		return sqlerr.NewValidation("table", table, "table name cannot be empty")
	}
	return nil
}
