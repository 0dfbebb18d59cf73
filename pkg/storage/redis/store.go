// Package redis keeps a copy of the account state in Redis, encoded like the state file.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/account-ledger/pkg/storage"
	"github.com/chris/account-ledger/pkg/storage/file"
	"github.com/redis/go-redis/v9"
)

//go:generate mockery --name RedisAPI --output ./mocks

const (
	// Namespace prefixes every key written by Store.
	Namespace = "ledger"
	// DefaultAccountKey is used when no account key is configured.
	DefaultAccountKey = "cuenta"
)

// RedisAPI is the subset of the Redis client used by Store.
type RedisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Store implements storage.Store with one Redis string per account.
type Store struct {
	Client RedisAPI
	Key    string
}

// NewClient creates a single-node Redis client.
func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

// New creates a new Store. An empty accountKey falls back to DefaultAccountKey.
func New(client RedisAPI, accountKey string) *Store {
	if accountKey == "" {
		accountKey = DefaultAccountKey
	}
	return &Store{Client: client, Key: Namespace + ":" + accountKey}
}

// Make sure we conform to the interface
var _ storage.Store = (*Store)(nil)

// Save stores snap without expiration, replacing any previous value.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	if err := s.Client.Set(ctx, s.Key, file.Encode(snap), 0).Err(); err != nil {
		return fmt.Errorf("failed to set account state in Redis: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. A missing key is storage.ErrNotFound.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return storage.Snapshot{}, fmt.Errorf("%w: redis key %s", storage.ErrNotFound, s.Key)
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to get account state from Redis: %w", err)
	}
	return file.Decode(data)
}
