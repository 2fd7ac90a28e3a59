package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/postboard/app/postboard"
	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/memstore"
	"github.com/dmitrymomot/postboard/app/postboard/pgstore"
	"github.com/dmitrymomot/postboard/app/postboard/redisstore"
	"github.com/dmitrymomot/postboard/core/config"
	"github.com/dmitrymomot/postboard/core/health"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/integration/database/pg"
	redisdb "github.com/dmitrymomot/postboard/integration/database/redis"
)

// openStores connects the configured backends. The returned func releases
// every connection it opened.
func openStores(ctx context.Context, cfg postboard.Config, log *slog.Logger) (postboard.Stores, []health.Check, func(), error) {
	var (
		stores  postboard.Stores
		checks  []health.Check
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (postboard.Stores, []health.Check, func(), error) {
		closeAll()
		return postboard.Stores{}, nil, func() {}, err
	}

	var pgs *pgstore.Store
	switch cfg.StorageBackend {
	case postboard.BackendPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return fail(err)
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return fail(err)
		}
		db := pg.OpenDB(pool)
		closers = append(closers, func() { _ = db.Close(); pool.Close() })

		if err := pg.Migrate(ctx, db, pgstore.Migrations(), pgCfg, log); err != nil {
			return fail(err)
		}
		pgs = pgstore.New(db)
		stores = postboard.Stores{Users: pgs, Posts: pgs, Comments: pgs, Tx: pgs.Tx}
		checks = append(checks, health.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
	case postboard.BackendMemory:
		mem := memstore.New()
		stores = postboard.Stores{Users: mem, Posts: mem, Comments: mem}
	default:
		return fail(fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend))
	}

	switch cfg.SessionBackend {
	case postboard.BackendPostgres:
		if pgs == nil {
			return fail(errors.New("SESSION_BACKEND=postgres requires STORAGE_BACKEND=postgres"))
		}
		stores.Sessions = pgs.Sessions()
	case postboard.BackendRedis:
		var redisCfg redisdb.Config
		if err := config.Load(&redisCfg); err != nil {
			return fail(err)
		}
		client, err := redisdb.Connect(ctx, redisCfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = client.Close() })

		stores.Sessions = redisstore.New(client, account.Resolver(stores.Users))
		// Sessions and users live apart, so account deletion cannot share a transaction.
		stores.Tx = nil
		checks = append(checks, health.Check{Name: "redis", Probe: redisdb.Healthcheck(client)})
	case postboard.BackendMemory:
		stores.Sessions = session.NewMemoryStore(account.Resolver(stores.Users))
		stores.Tx = nil
	default:
		return fail(fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend))
	}

	log.InfoContext(ctx, "stores ready",
		logger.Component("app"),
		logger.Event("storage"),
		slog.String("storage", cfg.StorageBackend),
		slog.String("sessions", cfg.SessionBackend),
	)
	return stores, checks, closeAll, nil
}
