package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/dmitrymomot/postboard/integration/database/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the schema migrations rooted at the migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Store implements account.UserStore, content.PostStore, content.CommentStore
// and session.Store on one database.
type Store struct {
	db *sql.DB
}

// New wraps db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Tx runs fn in a transaction. Store calls made with the context fn
// receives take part in it.
func (s *Store) Tx(ctx context.Context, fn func(ctx context.Context) error) error {
	return pg.InTx(ctx, s.db, fn)
}

func (s *Store) conn(ctx context.Context) pg.Querier {
	return pg.Conn(ctx, s.db)
}
