package pg_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/integration/database/pg"
)

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, pg.IsDuplicateKeyError(dup))
	assert.False(t, pg.IsDuplicateKeyError(fk))
	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.False(t, pg.IsForeignKeyViolationError(errors.New("other")))

	assert.True(t, pg.IsNotFoundError(sql.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(dup))

	assert.True(t, pg.IsTxClosedError(sql.ErrTxDone))
	assert.True(t, pg.IsTxClosedError(pgx.ErrTxClosed))
}

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestInTx(t *testing.T) {
	t.Parallel()

	t.Run("commit", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM sessions").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err = pg.InTx(context.Background(), db, func(ctx context.Context) error {
			_, ok := pg.TxFromContext(ctx)
			assert.True(t, ok)
			_, err := pg.Conn(ctx, db).ExecContext(ctx, "DELETE FROM sessions")
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = pg.InTx(context.Background(), db, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested reuses outer", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		err = pg.InTx(context.Background(), db, func(ctx context.Context) error {
			outer, _ := pg.TxFromContext(ctx)
			return pg.InTx(ctx, db, func(ctx context.Context) error {
				inner, _ := pg.TxFromContext(ctx)
				assert.Same(t, outer, inner)
				return nil
			})
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWithTxNil(t *testing.T) {
	t.Parallel()

	ctx := pg.WithTx(context.Background(), nil)
	_, ok := pg.TxFromContext(ctx)
	assert.False(t, ok)
}
