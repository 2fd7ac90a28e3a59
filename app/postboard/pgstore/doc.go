// Package pgstore persists users, sessions, posts and comments in PostgreSQL.
//
// Store works on a *sql.DB obtained from pg.OpenDB and joins any transaction
// started with Store.Tx, so account deletion can remove sessions and the user
// atomically. The schema ships as embedded goose migrations:
//
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, pgstore.Migrations(), cfg, log); err != nil {
//		return err
//	}
//	store := pgstore.New(db)
package pgstore
