package tokenstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "recyclepay:tokens"

// Redis keeps one key per token with the token's lifetime as TTL, plus a set
// per account indexing its token keys for RevokeAll.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

// Connect opens a client for addr and checks it answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (r *Redis) tokenKey(accountID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, accountID, tokenID)
}

func (r *Redis) indexKey(accountID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, accountID)
}

func (r *Redis) Add(ctx context.Context, accountID, tokenID string, ttl time.Duration) error {
	key := r.tokenKey(accountID, tokenID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, 1, ttl)
		pipe.SAdd(ctx, r.indexKey(accountID), key)
		pipe.Expire(ctx, r.indexKey(accountID), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (r *Redis) IsActive(ctx context.Context, accountID, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.tokenKey(accountID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n == 1, nil
}

func (r *Redis) Revoke(ctx context.Context, accountID, tokenID string) error {
	key := r.tokenKey(accountID, tokenID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, r.indexKey(accountID), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Redis) RevokeAll(ctx context.Context, accountID string) error {
	index := r.indexKey(accountID)
	keys, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("list tokens: %w", err)
	}
	if err := r.client.Del(ctx, append(keys, index)...).Err(); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}
