package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxUpdateRetries = 3

// RedisStore keeps sessions in Redis under "<prefix>:<id>" with a sliding
// TTL.  Update uses WATCH so two requests on the same session cannot
// overwrite each other's edits.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore returns a store backed by rdb.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = NewID()
	}
	b, err := encode(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sess.ID), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.GetEx(ctx, s.key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(b)
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) error {
	key := s.key(id)
	var fnErr error
	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		sess, err := decode(b)
		if err != nil {
			return err
		}
		fnErr = fn(sess)
		out, err := encode(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, out, s.ttl)
			return nil
		})
		return err
	}
	for i := 0; i < maxUpdateRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return err
		}
		return fnErr
	}
	return redis.TxFailedErr
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, s.key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
