package query

import (
	"fmt"
	"strings"

	"github.com/roach88/sqll/internal/ident"
	"github.com/roach88/sqll/sqlerr"
)

// Builder accumulates clause descriptors for a single SELECT statement and
// serializes them with Build into a parameterized SQL string plus the
// ordered values for its ?-placeholders.
//
// Builders are pure data: no operation touches an engine or performs I/O.
// Mutators return the receiver for chaining and validate their arguments
// eagerly; because a chained call cannot return an error, the first
// validation failure is recorded on the builder and reported by Build.
// Later mutations on a failed builder are no-ops, so the reported error
// always names the original offending call.
//
// A Builder is exclusively owned by its holder and is not safe for
// concurrent mutation. Clone produces a deep, independent copy to hand to
// another caller.
type Builder struct {
	columns  []string
	distinct bool
	table    string
	alias    string
	joins    []joinClause
	wheres   []predicate
	groups   []string
	havings  []predicate
	orders   []orderTerm
	limit    *int
	offset   *int
	unions   []unionClause

	err error
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// fail records the first validation error. Subsequent failures are
// ignored so Build reports the earliest offending mutator.
func (b *Builder) fail(err *sqlerr.Error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Err returns the accumulated validation error, if any. Build returns the
// same error; Err exists so callers can check a builder before handing it
// to an executor.
func (b *Builder) Err() error {
	return b.err
}

// Select appends column expressions to the SELECT list. Calling Select
// with no arguments is a no-op; a builder with an empty SELECT list emits
// "*" at build time.
func (b *Builder) Select(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, c := range columns {
		if !ident.Valid(c) {
			return b.fail(sqlerr.NewValidation("column", c, "column expression cannot be empty"))
		}
		b.columns = append(b.columns, ident.Normalize(c))
	}
	return b
}

// SelectDistinct marks the query DISTINCT and appends columns.
func (b *Builder) SelectDistinct(columns ...string) *Builder {
	return b.Distinct().Select(columns...)
}

// Distinct marks the query as SELECT DISTINCT.
func (b *Builder) Distinct() *Builder {
	if b.err != nil {
		return b
	}
	b.distinct = true
	return b
}

// From sets the source table. Required before Build. The name may carry an
// inline alias ("users u").
func (b *Builder) From(table string) *Builder {
	return b.FromAs(table, "")
}

// FromAs sets the source table with an explicit alias, serialized as
// "FROM table AS alias".
func (b *Builder) FromAs(table, alias string) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(table) {
		return b.fail(sqlerr.NewValidation("table", table, "table name cannot be empty"))
	}
	if alias != "" && !ident.Valid(alias) {
		return b.fail(sqlerr.NewValidation("alias", alias, "table alias cannot be empty"))
	}
	b.table = ident.Normalize(table)
	b.alias = ident.Normalize(alias)
	return b
}

// JoinOn appends a join clause of the given kind. The kind is normalized
// through ParseJoinKind, so raw strings like "left" are accepted. CROSS
// joins ignore the condition; every other kind requires one.
func (b *Builder) JoinOn(kind JoinKind, table, alias, condition string) *Builder {
	if b.err != nil {
		return b
	}
	k, err := ParseJoinKind(string(kind))
	if err != nil {
		return b.fail(sqlerr.NewValidation("join_kind", string(kind), err.Error()))
	}
	if !ident.Valid(table) {
		return b.fail(sqlerr.NewValidation("join_table", table, "join table cannot be empty"))
	}
	if alias != "" && !ident.Valid(alias) {
		return b.fail(sqlerr.NewValidation("join_alias", alias, "join alias cannot be empty"))
	}
	if k == Cross {
		condition = ""
	} else if strings.TrimSpace(condition) == "" {
		return b.fail(sqlerr.NewValidation("join_condition", condition, "join condition cannot be empty"))
	}
	b.joins = append(b.joins, joinClause{
		kind:      k,
		table:     ident.Normalize(table),
		alias:     ident.Normalize(alias),
		condition: strings.TrimSpace(condition),
	})
	return b
}

// Join appends an INNER JOIN.
func (b *Builder) Join(table, condition string) *Builder {
	return b.JoinOn(Inner, table, "", condition)
}

// LeftJoin appends a LEFT JOIN.
func (b *Builder) LeftJoin(table, condition string) *Builder {
	return b.JoinOn(Left, table, "", condition)
}

// RightJoin appends a RIGHT JOIN.
func (b *Builder) RightJoin(table, condition string) *Builder {
	return b.JoinOn(Right, table, "", condition)
}

// FullJoin appends a FULL OUTER JOIN.
func (b *Builder) FullJoin(table, condition string) *Builder {
	return b.JoinOn(Full, table, "", condition)
}

// CrossJoin appends a CROSS JOIN. Cross joins have no ON clause.
func (b *Builder) CrossJoin(table string) *Builder {
	return b.JoinOn(Cross, table, "", "")
}

// Where appends a predicate. Multiple calls are conjoined with AND in call
// order. The fragment is a raw boolean expression with ?-placeholders;
// params are the values bound to those placeholders, left to right.
func (b *Builder) Where(fragment string, params ...any) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(fragment) == "" {
		return b.fail(sqlerr.NewValidation("where", fragment, "predicate fragment cannot be empty"))
	}
	b.wheres = append(b.wheres, predicate{
		fragment: strings.TrimSpace(fragment),
		params:   append([]any(nil), params...),
	})
	return b
}

// WhereIn appends "column IN (?, ...)" with one placeholder per value.
// An empty value list can never match, so it collapses to the constant
// false predicate.
func (b *Builder) WhereIn(column string, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("column", column, "column name cannot be empty"))
	}
	if len(values) == 0 {
		return b.Where("1 = 0")
	}
	fragment := fmt.Sprintf("%s IN (%s)", ident.Normalize(column), placeholders(len(values)))
	return b.Where(fragment, values...)
}

// WhereNotIn appends "column NOT IN (?, ...)". An empty value list is
// vacuously true and appends nothing.
func (b *Builder) WhereNotIn(column string, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("column", column, "column name cannot be empty"))
	}
	if len(values) == 0 {
		return b
	}
	fragment := fmt.Sprintf("%s NOT IN (%s)", ident.Normalize(column), placeholders(len(values)))
	return b.Where(fragment, values...)
}

// WhereBetween appends "column BETWEEN ? AND ?".
func (b *Builder) WhereBetween(column string, low, high any) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("column", column, "column name cannot be empty"))
	}
	return b.Where(ident.Normalize(column)+" BETWEEN ? AND ?", low, high)
}

// WhereLike appends "column LIKE ?".
func (b *Builder) WhereLike(column, pattern string) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("column", column, "column name cannot be empty"))
	}
	return b.Where(ident.Normalize(column)+" LIKE ?", pattern)
}

// WhereNull appends "column IS NULL".
func (b *Builder) WhereNull(column string) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("column", column, "column name cannot be empty"))
	}
	return b.Where(ident.Normalize(column) + " IS NULL")
}

// WhereNotNull appends "column IS NOT NULL".
func (b *Builder) WhereNotNull(column string) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("column", column, "column name cannot be empty"))
	}
	return b.Where(ident.Normalize(column) + " IS NOT NULL")
}

// GroupBy appends grouping columns in call order.
func (b *Builder) GroupBy(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, c := range columns {
		if !ident.Valid(c) {
			return b.fail(sqlerr.NewValidation("group_by", c, "grouping column cannot be empty"))
		}
		b.groups = append(b.groups, ident.Normalize(c))
	}
	return b
}

// Having appends a HAVING predicate with the same accumulation contract as
// Where. HAVING without GROUP BY is permitted here and left to the engine
// to accept or reject.
func (b *Builder) Having(fragment string, params ...any) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(fragment) == "" {
		return b.fail(sqlerr.NewValidation("having", fragment, "predicate fragment cannot be empty"))
	}
	b.havings = append(b.havings, predicate{
		fragment: strings.TrimSpace(fragment),
		params:   append([]any(nil), params...),
	})
	return b
}

// OrderBy appends an ascending order term.
func (b *Builder) OrderBy(column string) *Builder {
	return b.OrderByDir(column, Asc)
}

// OrderByDesc appends a descending order term.
func (b *Builder) OrderByDesc(column string) *Builder {
	return b.OrderByDir(column, Desc)
}

// OrderByDir appends an order term with an explicit direction. The
// direction is normalized through ParseDirection, so raw strings like
// "desc" are accepted.
func (b *Builder) OrderByDir(column string, dir Direction) *Builder {
	if b.err != nil {
		return b
	}
	if !ident.Valid(column) {
		return b.fail(sqlerr.NewValidation("order_by", column, "order column cannot be empty"))
	}
	d, err := ParseDirection(string(dir))
	if err != nil {
		return b.fail(sqlerr.NewValidation("direction", string(dir), err.Error()))
	}
	b.orders = append(b.orders, orderTerm{column: ident.Normalize(column), dir: d})
	return b
}

// Limit sets the row limit. Zero is valid and emits "LIMIT 0".
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(sqlerr.NewValidation("limit", n, "limit must be non-negative"))
	}
	b.limit = &n
	return b
}

// Offset sets the row offset. Offset without limit is permitted; its
// meaning is engine-defined.
func (b *Builder) Offset(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(sqlerr.NewValidation("offset", n, "offset must be non-negative"))
	}
	b.offset = &n
	return b
}

// Union records other as a UNION partner. The partner's state is
// snapshotted at call time, so later mutation of other does not affect
// this builder. Multiple calls append partners in call order.
func (b *Builder) Union(other *Builder) *Builder {
	return b.union(other, false)
}

// UnionAll records other as a UNION ALL partner.
func (b *Builder) UnionAll(other *Builder) *Builder {
	return b.union(other, true)
}

func (b *Builder) union(other *Builder, all bool) *Builder {
	if b.err != nil {
		return b
	}
	if other == nil {
		return b.fail(sqlerr.NewValidation("union", nil, "union partner cannot be nil"))
	}
	b.unions = append(b.unions, unionClause{partner: other.Clone(), all: all})
	return b
}

// Clone returns a deep, independent copy of the builder. Mutating the
// clone never changes the original's Build output, and vice versa.
func (b *Builder) Clone() *Builder {
	c := &Builder{
		columns:  append([]string(nil), b.columns...),
		distinct: b.distinct,
		table:    b.table,
		alias:    b.alias,
		joins:    append([]joinClause(nil), b.joins...),
		groups:   append([]string(nil), b.groups...),
		orders:   append([]orderTerm(nil), b.orders...),
		err:      b.err,
	}
	c.wheres = clonePredicates(b.wheres)
	c.havings = clonePredicates(b.havings)
	if b.limit != nil {
		n := *b.limit
		c.limit = &n
	}
	if b.offset != nil {
		n := *b.offset
		c.offset = &n
	}
	for _, u := range b.unions {
		c.unions = append(c.unions, unionClause{partner: u.partner.Clone(), all: u.all})
	}
	return c
}

func clonePredicates(ps []predicate) []predicate {
	if ps == nil {
		return nil
	}
	out := make([]predicate, len(ps))
	for i, p := range ps {
		out[i] = predicate{fragment: p.fragment, params: append([]any(nil), p.params...)}
	}
	return out
}

// Build serializes the accumulated clauses into a SQL string and the ordered
// parameter list matching its placeholders left to right.
//
// Clause order is fixed: SELECT, FROM, joins, WHERE, GROUP BY, HAVING,
// ORDER BY, LIMIT, OFFSET, then UNION partners. Parameter order is WHERE
// values, then HAVING values, then each partner's values, which is exactly
// the placeholder order in the assembled string.
//
// Build is pure and idempotent: it never mutates the builder, and calling
// it twice on an unmutated builder yields identical output.
func (b *Builder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, sqlerr.NewValidation("table", "", "no source table: From is required before Build")
	}

	var parts []string
	var params []any

	cols := "*"
	if len(b.columns) > 0 {
		cols = strings.Join(b.columns, ", ")
	}
	if b.distinct {
		parts = append(parts, "SELECT DISTINCT "+cols)
	} else {
		parts = append(parts, "SELECT "+cols)
	}

	from := "FROM " + b.table
	if b.alias != "" {
		from += " AS " + b.alias
	}
	parts = append(parts, from)

	for _, j := range b.joins {
		clause := j.kind.sql() + " " + j.table
		if j.alias != "" {
			clause += " AS " + j.alias
		}
		if j.kind != Cross {
			clause += " ON " + j.condition
		}
		parts = append(parts, clause)
	}

	if len(b.wheres) > 0 {
		fragments := make([]string, len(b.wheres))
		for i, p := range b.wheres {
			fragments[i] = p.fragment
			params = append(params, p.params...)
		}
		parts = append(parts, "WHERE "+strings.Join(fragments, " AND "))
	}

	if len(b.groups) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(b.groups, ", "))
	}

	if len(b.havings) > 0 {
		fragments := make([]string, len(b.havings))
		for i, p := range b.havings {
			fragments[i] = p.fragment
			params = append(params, p.params...)
		}
		parts = append(parts, "HAVING "+strings.Join(fragments, " AND "))
	}

	if len(b.orders) > 0 {
		terms := make([]string, len(b.orders))
		for i, o := range b.orders {
			terms[i] = o.column + " " + string(o.dir)
		}
		parts = append(parts, "ORDER BY "+strings.Join(terms, ", "))
	}

	if b.limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *b.limit))
	}
	if b.offset != nil {
		parts = append(parts, fmt.Sprintf("OFFSET %d", *b.offset))
	}

	sql := strings.Join(parts, " ")

	for _, u := range b.unions {
		partnerSQL, partnerParams, err := u.partner.Build()
		if err != nil {
			return "", nil, err
		}
		if u.all {
			sql += " UNION ALL " + partnerSQL
		} else {
			sql += " UNION " + partnerSQL
		}
		params = append(params, partnerParams...)
	}

	return sql, params, nil
}

// String renders the query for diagnostics. Invalid builders render their
// error instead of SQL.
func (b *Builder) String() string {
	sql, params, err := b.Build()
	if err != nil {
		return fmt.Sprintf("<invalid query: %v>", err)
	}
	if len(params) > 0 {
		return fmt.Sprintf("%s -- params: %v", sql, params)
	}
	return sql
}
