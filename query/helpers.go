package query

// SelectFrom creates a builder with SELECT and FROM already set.
func SelectFrom(table string, columns ...string) *Builder {
	return New().Select(columns...).From(table)
}

// CountFrom creates a COUNT query over the given column. Pass "*" (or use
// Count) to count rows.
func CountFrom(table, column string) *Builder {
	if column == "" {
		column = "*"
	}
	return New().Select("COUNT(" + column + ")").From(table)
}

// Count creates a COUNT(*) query over a table.
func Count(table string) *Builder {
	return CountFrom(table, "*")
}

// ExistsIn creates a "SELECT 1 FROM table WHERE ..." query, suitable as an
// existence probe.
func ExistsIn(table, fragment string, params ...any) *Builder {
	return New().Select("1").From(table).Where(fragment, params...)
}
