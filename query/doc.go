// Package query provides a fluent builder for parameterized SELECT
// statements.
//
// A Builder accumulates typed clause descriptors (columns, source table,
// joins, predicates, grouping, ordering, pagination, set operations) and
// serializes them with Build into a single SQL string using ?-style
// positional placeholders plus the ordered parameter list for those
// placeholders. Build never touches a database: the builder is pure data,
// and the (sql, params) pair is handed to an executor such as sqll.Client.
//
// Usage:
//
//	sql, params, err := query.New().
//		Select("u.name", "p.title").
//		From("users u").
//		Join("posts p", "u.id = p.user_id").
//		Where("u.active = ?", true).
//		OrderBy("u.name").
//		Limit(10).
//		Build()
//
// produces
//
//	SELECT u.name, p.title FROM users u
//	INNER JOIN posts p ON u.id = p.user_id
//	WHERE u.active = ? ORDER BY u.name ASC LIMIT 10
//
// with params [true].
//
// PARAMETER ORDERING:
//
// The critical invariant is that the parameter list matches the
// placeholders' left-to-right appearance in the SQL string: WHERE values in
// call order, then HAVING values, then each UNION partner's values.
// Executors must pass the pair through unmodified; values are never
// interpolated into the string, only identifiers that the builder already
// validated.
//
// ERROR HANDLING:
//
// Mutators validate eagerly. Since a chained call cannot return an error,
// the first validation failure is recorded and surfaced by Build (or Err),
// and the builder ignores all further mutation. There is no partial build.
//
// Builders are not safe for concurrent mutation; use Clone to give an
// independent copy to another goroutine.
package query
