// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kessen/internal/platform/apperr"
)

// fastQueue returns a queue paced fast enough that pacing never dominates
// test runtime.
func fastQueue(t *testing.T) *Queue {
	t.Helper()
	return NewQueue("test", 600000, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// response builds a synthetic *http.Response with the given status and body.
func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// pendingLen reads the queue depth under the lock.
func pendingLen(queue *Queue) int {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return len(queue.pending)
}

// waitForDepth spins until the queue holds at least n waiting requests.
func waitForDepth(t *testing.T, queue *Queue, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for pendingLen(queue) < n {
		require.True(t, time.Now().Before(deadline), "queue never reached depth %d", n)
		time.Sleep(time.Millisecond)
	}
}

/*
TestQueue_FIFOOrder verifies that requests resolve in submission order when
no rate limiting occurs.
*/
func TestQueue_FIFOOrder(t *testing.T) {
	queue := fastQueue(t)

	var (
		mu        sync.Mutex
		completed []int
	)

	// Hold the worker on the first request so later submissions stack up in
	// a known order.
	gate := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		body, err := queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
			close(started)
			<-gate
			mu.Lock()
			completed = append(completed, 0)
			mu.Unlock()
			return response(http.StatusOK, "first"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "first", string(body))
	}()

	// Make sure the worker is parked on the gated request before queueing
	// more; without this the later submissions can race ahead of it.
	<-started

	// Queue three more, one at a time, confirming each lands before
	// submitting the next.
	for i := 1; i <= 3; i++ {
		i := i
		depthBefore := pendingLen(queue)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
				mu.Lock()
				completed = append(completed, i)
				mu.Unlock()
				return response(http.StatusOK, "ok"), nil
			})
			require.NoError(t, err)
		}()
		waitForDepth(t, queue, depthBefore+1)
	}

	close(gate)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3}, completed)
}

/*
TestQueue_RetryAfter429 verifies that a rate-limited request is retried at
the front of the queue: it resolves with the retry's response, and no later
request is executed before it.
*/
func TestQueue_RetryAfter429(t *testing.T) {
	queue := fastQueue(t)

	var (
		mu       sync.Mutex
		attempts int
		order    []string
	)

	gate := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		body, err := queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
			<-gate
			mu.Lock()
			attempts++
			current := attempts
			order = append(order, "limited")
			mu.Unlock()

			if current == 1 {
				return response(http.StatusTooManyRequests, ""), nil
			}
			return response(http.StatusOK, "second-response"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "second-response", string(body))
	}()

	// Let the worker pick up the stalled request before queueing the follower.
	time.Sleep(10 * time.Millisecond)
	wg.Add(1)
	go func() {
		defer wg.Done()
		body, err := queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
			mu.Lock()
			order = append(order, "follower")
			mu.Unlock()
			return response(http.StatusOK, "follower"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "follower", string(body))
	}()

	// Give the follower time to join the queue behind the stalled request.
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	// The limited request executed twice before the follower ran at all.
	assert.Equal(t, []string{"limited", "limited", "follower"}, order)
	assert.Equal(t, 2, attempts)
}

/*
TestQueue_RejectsOnUpstreamStatus verifies that a non-OK, non-429 response
rejects the caller with the upstream status attached.
*/
func TestQueue_RejectsOnUpstreamStatus(t *testing.T) {
	queue := fastQueue(t)

	_, err := queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
		return response(http.StatusInternalServerError, ""), nil
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.UpstreamStatusOf(err))
}

/*
TestQueue_RejectsOnTransportError verifies that a failed exchange rejects
the caller with an upstream-unavailable error.
*/
func TestQueue_RejectsOnTransportError(t *testing.T) {
	queue := fastQueue(t)

	_, err := queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", appError.Code)
}

/*
TestQueue_AbandonedWhileQueued verifies that a request whose caller context
ends before the worker reaches it fails with the context's error.
*/
func TestQueue_AbandonedWhileQueued(t *testing.T) {
	queue := fastQueue(t)

	gate := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = queue.Enqueue(context.Background(), func(ctx context.Context) (*http.Response, error) {
			<-gate
			return response(http.StatusOK, "ok"), nil
		})
	}()

	cancelledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := queue.Enqueue(cancelledCtx, func(ctx context.Context) (*http.Response, error) {
		t.Error("abandoned request must not execute")
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(gate)
	wg.Wait()
}
