package sqll

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/sqll/sqlerr"
)

// Tx is a transaction-scoped handle exposing the same raw and CRUD
// surface as Client. A Tx is only valid inside the WithTx callback that
// produced it.
type Tx struct {
	session
	token string
}

// Token returns the transaction's identifier, which also tags its log
// output.
func (t *Tx) Token() string {
	return t.token
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics; panics
// are re-raised after rollback. Each transaction is tagged with a unique
// token in log output for correlation.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return sqlerr.NewTransaction("begin", err)
	}

	token := uuid.NewString()
	log := c.log.With("tx", token)
	log.Debug("transaction started")

	tx := &Tx{
		session: session{ex: sqlTx, log: log},
		token:   token,
	}

	done := false
	defer func() {
		if !done {
			// fn panicked; roll back before the panic propagates.
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				log.Error("rollback after panic failed", "error", rbErr)
			} else {
				log.Debug("transaction rolled back after panic")
			}
		}
	}()

	if err := fn(tx); err != nil {
		done = true
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			log.Error("rollback failed", "error", rbErr)
			return sqlerr.NewTransaction("rollback", rbErr)
		}
		log.Debug("transaction rolled back")
		return err
	}

	done = true
	if err := sqlTx.Commit(); err != nil {
		return sqlerr.NewTransaction("commit", err)
	}
	log.Debug("transaction committed")
	return nil
}
