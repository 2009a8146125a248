// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unified

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, time.Minute, time.Minute)

	store.Set(ctx, "search:luffy", []byte(`["a"]`))

	value, ok := store.Get(ctx, "search:luffy")
	require.True(t, ok)
	assert.Equal(t, []byte(`["a"]`), value)

	_, ok = store.Get(ctx, "search:zoro")
	assert.False(t, ok)
}

func TestMemoryStore_EntryExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, 20*time.Millisecond, time.Minute)

	store.Set(ctx, "search:luffy", []byte(`["a"]`))
	time.Sleep(40 * time.Millisecond)

	_, ok := store.Get(ctx, "search:luffy")
	assert.False(t, ok)
}

func TestMemoryStore_SweepEvictsStaleEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewMemoryStore(ctx, 10*time.Millisecond, 20*time.Millisecond)
	store.Set(ctx, "search:luffy", []byte(`["a"]`))

	assert.Eventually(t, func() bool {
		memory := store.(*memoryStore)
		memory.mu.RLock()
		defer memory.mu.RUnlock()
		return len(memory.entries) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_OverwriteRefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, 60*time.Millisecond, time.Minute)

	store.Set(ctx, "search:luffy", []byte(`["old"]`))
	time.Sleep(40 * time.Millisecond)
	store.Set(ctx, "search:luffy", []byte(`["new"]`))
	time.Sleep(40 * time.Millisecond)

	value, ok := store.Get(ctx, "search:luffy")
	require.True(t, ok)
	assert.Equal(t, []byte(`["new"]`), value)
}
