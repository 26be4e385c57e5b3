// Package sqll is a thin convenience layer over SQLite: connection setup
// with tuned PRAGMAs, a dictionary-based CRUD surface, transactions, and
// execution of queries assembled by the query subpackage's fluent builder.
//
// Every operation delegates to the embedded engine through database/sql
// and the mattn/go-sqlite3 driver; sqll adds no storage or coordination of
// its own. Values are always passed as bound parameters, never
// interpolated; only validated identifiers are spliced into SQL text.
//
// Opening a database and working with rows:
//
//	client, err := sqll.Open("app.db")
//	if err != nil { ... }
//	defer client.Close()
//
//	id, err := client.Insert(ctx, "users", sqll.Row{
//		"name":   "ada",
//		"active": 1,
//	})
//
//	rows, err := client.Run(ctx, query.New().
//		Select("name").
//		From("users").
//		Where("active = ?", 1).
//		OrderBy("name"))
//
// Transactions roll back on error or panic:
//
//	err = client.WithTx(ctx, func(tx *sqll.Tx) error {
//		if _, err := tx.Insert(ctx, "users", sqll.Row{"name": "grace"}); err != nil {
//			return err
//		}
//		_, err := tx.Update(ctx, "stats", sqll.Row{"users": 2}, sqll.Row{"id": 1})
//		return err
//	})
//
// All errors are *sqlerr.Error values; use the sqlerr predicates
// (IsValidation, IsQuery, ...) or errors.As to classify them.
package sqll
