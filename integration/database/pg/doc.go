// Package pg manages PostgreSQL connectivity: a pgx connection pool with
// retrying startup, goose migrations, health checks, error classification
// and transaction propagation through context.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, migrations, cfg, log); err != nil {
//		return err
//	}
//
// Stores take the *sql.DB and resolve their connection with Conn, so work
// wrapped in InTx runs on one transaction:
//
//	err := pg.InTx(ctx, db, func(ctx context.Context) error {
//		if err := sessions.DeleteAllForUser(ctx, id); err != nil {
//			return err
//		}
//		return users.Delete(ctx, id)
//	})
//
// Error classifiers:
//
//	pg.IsNotFoundError(err)            // pgx.ErrNoRows or sql.ErrNoRows
//	pg.IsDuplicateKeyError(err)        // 23505 unique_violation
//	pg.IsForeignKeyViolationError(err) // 23503 foreign_key_violation
//	pg.IsTxClosedError(err)
package pg
