// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unified

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a namespaced, time-bounded cache of serialized result sets. A Get
// miss and an expired entry are indistinguishable to callers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// # In-Memory Store

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryStore is the default cache: a mutex-guarded map with a background
// sweep so entries nobody re-reads still get evicted.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore builds an in-memory store whose entries expire after ttl.
// The sweep goroutine runs until ctx is cancelled.
func NewMemoryStore(ctx context.Context, ttl, sweepInterval time.Duration) Store {
	store := &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}

	go store.sweep(ctx, sweepInterval)

	return store
}

func (store *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	store.mu.RLock()
	entry, ok := store.entries[key]
	store.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.value, true
}

func (store *memoryStore) Set(_ context.Context, key string, value []byte) {
	store.mu.Lock()
	store.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(store.ttl),
	}
	store.mu.Unlock()
}

func (store *memoryStore) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			store.mu.Lock()
			for key, entry := range store.entries {
				if now.After(entry.expiresAt) {
					delete(store.entries, key)
				}
			}
			store.mu.Unlock()
		}
	}
}

// # Redis Store

// redisStore backs the cache with Redis so replicas share search results.
// Expiry is native; cache failures degrade to misses.
type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewRedisStore builds a Redis-backed store under the given key prefix.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, log *slog.Logger) Store {
	return &redisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log.With(slog.String("cache_prefix", prefix)),
	}
}

func (store *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			store.log.Warn("cache_get_failed", slog.Any("error", err))
		}
		return nil, false
	}

	return value, true
}

func (store *redisStore) Set(ctx context.Context, key string, value []byte) {
	if err := store.client.Set(ctx, store.prefix+key, value, store.ttl).Err(); err != nil {
		store.log.Warn("cache_set_failed", slog.Any("error", err))
	}
}
