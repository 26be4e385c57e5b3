package sqll

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx_CommitsOnNil(t *testing.T) {
	c := openTestClient(t)
	seedUsers(t, c)
	ctx := context.Background()

	err := c.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.Insert(ctx, "users", Row{"name": "dora"}); err != nil {
			return err
		}
		_, err := tx.Update(ctx, "users", Row{"active": 0}, Row{"name": "ada"})
		return err
	})
	require.NoError(t, err)

	count, err := c.Count(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	c := openTestClient(t)
	seedUsers(t, c)
	ctx := context.Background()

	boom := errors.New("boom")
	err := c.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.Insert(ctx, "users", Row{"name": "dora"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := c.Count(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "insert must have been rolled back")
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	c := openTestClient(t)
	seedUsers(t, c)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = c.WithTx(ctx, func(tx *Tx) error {
			if _, err := tx.Insert(ctx, "users", Row{"name": "dora"}); err != nil {
				return err
			}
			panic("boom")
		})
	})

	count, err := c.Count(ctx, "users", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "insert must have been rolled back")
}

func TestWithTx_TokenIsUnique(t *testing.T) {
	c := openTestClient(t)
	ctx := context.Background()

	tokens := map[string]bool{}
	for i := 0; i < 3; i++ {
		err := c.WithTx(ctx, func(tx *Tx) error {
			assert.NotEmpty(t, tx.Token())
			tokens[tx.Token()] = true
			return nil
		})
		require.NoError(t, err)
	}
	assert.Len(t, tokens, 3)
}
