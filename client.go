package sqll

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/sqll/query"
	"github.com/roach88/sqll/sqlerr"
)

// Row is a single result row keyed by column name. BLOB columns are
// returned as strings for convenience.
type Row map[string]any

// execer is the statement surface shared by *sql.DB and *sql.Tx, so raw
// and CRUD operations run identically inside and outside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// session hosts the raw and CRUD operations. Client and Tx both embed one,
// pointed at *sql.DB and *sql.Tx respectively.
type session struct {
	ex  execer
	log *slog.Logger
}

// Client is the primary handle to a SQLite database.
//
// A Client wraps a database/sql pool configured for SQLite's single-writer
// model and provides raw statement execution, dictionary-based CRUD, query
// builder execution, transactions, and table utilities. All failures are
// returned as *sqlerr.Error values wrapping the driver error.
type Client struct {
	session
	db  *sql.DB
	cfg Config
}

// Open opens (creating if necessary) the database at path with
// DefaultConfig settings. Idempotent: safe to call on an existing
// database.
func Open(path string) (*Client, error) {
	return OpenConfig(DefaultConfig(path))
}

// OpenConfig opens a database with explicit configuration. The
// configuration is validated, the connection is verified with a ping, and
// the PRAGMAs derived from cfg are applied before the client is returned.
func OpenConfig(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, sqlerr.NewConnection(cfg.Path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, sqlerr.NewConnection(cfg.Path, err)
	}

	// SQLite supports one writer at a time; keep the pool small to avoid
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	for _, pragma := range cfg.pragmas() {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, sqlerr.NewConnection(cfg.Path, fmt.Errorf("apply %q: %w", pragma, err))
		}
	}

	log := cfg.logger()
	log.Debug("client opened", "path", cfg.Path, "journal_mode", cfg.JournalMode)

	return &Client{
		session: session{ex: db, log: log},
		db:      db,
		cfg:     cfg,
	}, nil
}

// Close closes the underlying pool. The client is unusable afterwards.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	c.log.Debug("client closed", "path", c.cfg.Path)
	return c.db.Close()
}

// Ping verifies the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return sqlerr.NewConnection(c.cfg.Path, err)
	}
	return nil
}

// Stats reports pool statistics from database/sql.
func (c *Client) Stats() sql.DBStats {
	return c.db.Stats()
}

// ExecScript executes a multi-statement SQL script. Useful for schema
// setup. The script is passed to the engine verbatim and cannot be
// parameterized.
func (c *Client) ExecScript(ctx context.Context, script string) error {
	c.log.Debug("executing script", "bytes", len(script))
	if _, err := c.db.ExecContext(ctx, script); err != nil {
		return sqlerr.NewQuery(script, nil, err)
	}
	return nil
}

// Exec executes a single statement and returns the driver result.
func (s *session) Exec(ctx context.Context, sqlText string, params ...any) (sql.Result, error) {
	s.log.Debug("executing statement", "sql", sqlText, "param_count", len(params))
	res, err := s.ex.ExecContext(ctx, sqlText, params...)
	if err != nil {
		return nil, sqlerr.NewQuery(sqlText, params, err)
	}
	return res, nil
}

// ExecMany executes one statement repeatedly with different parameter
// sets, returning the total number of affected rows. Wrap in WithTx for
// atomicity across sets.
func (s *session) ExecMany(ctx context.Context, sqlText string, paramSets [][]any) (int64, error) {
	s.log.Debug("executing batch", "sql", sqlText, "sets", len(paramSets))
	var total int64
	for _, params := range paramSets {
		res, err := s.ex.ExecContext(ctx, sqlText, params...)
		if err != nil {
			return total, sqlerr.NewQuery(sqlText, params, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, sqlerr.NewQuery(sqlText, params, err)
		}
		total += n
	}
	return total, nil
}

// FetchAll executes a query and returns every row.
func (s *session) FetchAll(ctx context.Context, sqlText string, params ...any) ([]Row, error) {
	rows, err := s.ex.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, sqlerr.NewQuery(sqlText, params, err)
	}
	defer rows.Close()

	out, err := scanRows(rows, -1)
	if err != nil {
		return nil, sqlerr.NewQuery(sqlText, params, err)
	}
	s.log.Debug("fetched rows", "sql", sqlText, "rows", len(out))
	return out, nil
}

// FetchMany executes a query and returns at most size rows.
func (s *session) FetchMany(ctx context.Context, sqlText string, size int, params ...any) ([]Row, error) {
	if size < 0 {
		return nil, sqlerr.NewValidation("size", size, "fetch size must be non-negative")
	}
	rows, err := s.ex.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, sqlerr.NewQuery(sqlText, params, err)
	}
	defer rows.Close()

	out, err := scanRows(rows, size)
	if err != nil {
		return nil, sqlerr.NewQuery(sqlText, params, err)
	}
	return out, nil
}

// FetchOne executes a query and returns the first row, or nil when the
// result set is empty.
func (s *session) FetchOne(ctx context.Context, sqlText string, params ...any) (Row, error) {
	rows, err := s.FetchMany(ctx, sqlText, 1, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Run builds b and fetches all resulting rows. The (sql, params) pair from
// Build is passed to the engine unmodified.
func (s *session) Run(ctx context.Context, b *query.Builder) ([]Row, error) {
	sqlText, params, err := b.Build()
	if err != nil {
		return nil, err
	}
	return s.FetchAll(ctx, sqlText, params...)
}

// scanRows reads up to limit rows (all rows when limit is negative) into
// Row maps. []byte values are converted to string.
func scanRows(rows *sql.Rows, limit int) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []Row{}
	for rows.Next() {
		if limit >= 0 && len(out) >= limit {
			break
		}
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
