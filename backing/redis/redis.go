// Package redis adapts a github.com/redis/go-redis/v9 client to the
// backing.Store contract, grounded on unkn0wn-root-cascache's
// provider/redis and getstore/redis.go adapters.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rediscache/rcache/backing"
)

// ErrNilClient is returned by New when no client is supplied.
var ErrNilClient = errors.New("backing/redis: nil client")

// Store is a backing.Store backed by a real Redis-compatible server.
type Store struct {
	rdb goredis.UniversalClient
}

var _ backing.Store = (*Store)(nil)

// New wraps an existing go-redis client. The caller owns the client's lifecycle.
func New(client goredis.UniversalClient) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Store{rdb: client}, nil
}

func (s *Store) TTL(ctx context.Context, key string) (int64, bool, error) {
	d, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}
	switch {
	case d == -2:
		// go-redis surfaces Redis's -2 (key doesn't exist) as this sentinel duration.
		return 0, false, nil
	case d == -1:
		return 0, true, nil
	default:
		return int64(d.Seconds()), true, nil
	}
}

func (s *Store) GetString(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) GetHash(ctx context.Context, key string) (map[string]string, bool, error) {
	m, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	if len(m) == 0 {
		return nil, false, nil
	}
	return m, true, nil
}

func (s *Store) GetList(ctx context.Context, key string) ([]string, bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, nil
	}
	vs, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	return vs, true, nil
}

func (s *Store) GetSet(ctx context.Context, key string) ([]string, bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, nil
	}
	vs, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	return vs, true, nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	card, err := s.rdb.ZCard(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}
	return card, true, nil
}

func (s *Store) ZRangeFromBegin(ctx context.Context, key string, limit int) ([]backing.ZMember, error) {
	zs, err := s.rdb.ZRangeWithScores(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	return toZMembers(zs), nil
}

func (s *Store) ZRangeFromEnd(ctx context.Context, key string, limit int) ([]backing.ZMember, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	out := toZMembers(zs)
	// Reverse back to ascending order, matching the shard's sorted storage.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func toZMembers(zs []goredis.Z) []backing.ZMember {
	out := make([]backing.ZMember, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		out[i] = backing.ZMember{Member: member, Score: z.Score}
	}
	return out
}
