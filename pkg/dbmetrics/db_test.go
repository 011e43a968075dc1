package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationOf(t *testing.T) {
	cases := map[string]string{
		"SELECT id FROM bookings":          "select",
		"  insert into bookings (a) VALUES": "insert",
		"UPDATE bookings SET status = $1":  "update",
		"DELETE FROM bookings":             "delete",
		"BEGIN":                            "begin",
		"WITH x AS (SELECT 1) SELECT 1":    "other",
		"":                                 "other",
	}
	for query, want := range cases {
		assert.Equal(t, want, operationOf(query), query)
	}
}

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor_PrefersContextTransaction(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))

	db := Wrap(nil, nil, "test")
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}
