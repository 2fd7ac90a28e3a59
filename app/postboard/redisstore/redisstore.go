// Package redisstore keeps sessions in Redis.
//
// Each session is a hash under "<prefix>session:<id>" that expires with the
// session itself, so Redis sweeps stale sessions. A set per user indexes
// session IDs for DeleteAllForUser. Owners are resolved through a
// session.UserResolver because users live in the primary database.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/postboard/core/session"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "postboard:"

const (
	fieldUserID    = "user_id"
	fieldExpiresAt = "expires_at"
)

// putScript inserts a session only when its key is free.
var putScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "user_id", ARGV[1], "expires_at", ARGV[2])
redis.call("PEXPIREAT", KEYS[1], ARGV[2])
redis.call("SADD", KEYS[2], ARGV[3])
return 1
`)

// updateScript moves the expiry of an existing session.
var updateScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "expires_at", ARGV[1])
redis.call("PEXPIREAT", KEYS[1], ARGV[1])
return 1
`)

// Store implements session.Store.
type Store struct {
	client redis.UniversalClient
	users  session.UserResolver
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a store on client resolving owners with users.
func New(client redis.UniversalClient, users session.UserResolver, opts ...Option) *Store {
	if client == nil {
		panic("redisstore: client cannot be nil")
	}
	if users == nil {
		panic("redisstore: user resolver cannot be nil")
	}
	s := &Store{client: client, users: users, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(ctx context.Context, sess session.Session) error {
	expires := sess.ExpiresAt.UnixMilli()
	keys := []string{s.sessionKey(sess.ID), s.userKey(sess.UserID)}
	n, err := putScript.Run(ctx, s.client, keys, sess.UserID, expires, sess.ID).Int()
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	if n == 0 {
		return session.ErrDuplicateID
	}
	return nil
}

func (s *Store) GetByHashedToken(ctx context.Context, id string) (session.Session, session.User, error) {
	values, err := s.client.HGetAll(ctx, s.sessionKey(id)).Result()
	if err != nil {
		return session.Session{}, session.User{}, fmt.Errorf("get session: %w", err)
	}
	if len(values) == 0 {
		return session.Session{}, session.User{}, session.ErrNotFound
	}

	ms, err := strconv.ParseInt(values[fieldExpiresAt], 10, 64)
	if err != nil {
		return session.Session{}, session.User{}, fmt.Errorf("decode session expiry: %w", err)
	}
	sess := session.Session{
		ID:        id,
		UserID:    values[fieldUserID],
		ExpiresAt: time.UnixMilli(ms).UTC(),
	}

	user, err := s.users.UserByID(ctx, sess.UserID)
	if err != nil {
		return session.Session{}, session.User{}, err
	}
	return sess, user, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	key := s.sessionKey(id)
	userID, err := s.client.HGet(ctx, key, fieldUserID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		if userID != "" {
			p.SRem(ctx, s.userKey(userID), id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	n, err := updateScript.Run(ctx, s.client, []string{s.sessionKey(id)}, expiresAt.UnixMilli()).Int()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllForUser(ctx context.Context, userID string) error {
	userKey := s.userKey(userID)
	ids, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.sessionKey(id))
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (s *Store) sessionKey(id string) string {
	return s.prefix + "session:" + id
}

func (s *Store) userKey(userID string) string {
	return s.prefix + "user:" + userID + ":sessions"
}
