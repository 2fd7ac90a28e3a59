// Package session implements login sessions keyed by hashed tokens.
//
// A client holds a random token; the store holds only HashToken(token). A
// leaked store row therefore cannot be replayed as a cookie.
//
// # Lifecycle
//
// Manager.Create issues a token and persists a session valid for the TTL
// (30 days by default). Manager.Validate resolves a token:
//
//   - unknown token: ErrInvalid
//   - expired session: row deleted, ErrInvalid
//   - owner deleted: row deleted, ErrInvalid
//   - less than the renewal window left (15 days by default): expiry moved to
//     now+TTL, Identity.Renewed set
//
// Expired rows are cleaned up lazily on access; there is no sweeper.
// Manager.Invalidate is idempotent.
//
// # Stores
//
// Store is the persistence boundary. MemoryStore is the in-process adapter,
// used in tests and single-node development:
//
//	users := session.UserResolverFunc(func(ctx context.Context, id string) (session.User, error) {
//		return repo.UserByID(ctx, id)
//	})
//	mgr, err := session.NewManager(session.NewMemoryStore(users))
//	if err != nil {
//		return err
//	}
//
//	token, sess, err := mgr.Create(ctx, user.ID)
//	ident, err := mgr.Validate(ctx, token)
//	if errors.Is(err, session.ErrInvalid) {
//		// treat as anonymous
//	}
//
// Any other error from Validate is a storage failure.
package session
