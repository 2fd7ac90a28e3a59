// Package account implements registration, login, logout and account
// deletion on top of pkg/password and core/session.
//
//	svc := account.NewService(users, sessions, password.NewHasher(),
//		account.WithLogger(log),
//		account.WithTransactor(func(ctx context.Context, fn func(context.Context) error) error {
//			return pg.InTx(ctx, db, fn)
//		}),
//	)
//
//	res, err := svc.Login(ctx, "alice", "secret1")
//	switch {
//	case errors.Is(err, account.ErrValidation):
//		// 400
//	case errors.Is(err, account.ErrInvalidCredentials):
//		// 401, same response for unknown users
//	}
package account
