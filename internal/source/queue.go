// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/kessen/internal/platform/apperr"
)

// RequestFunc executes one HTTP exchange against a provider. The queue owns
// when it runs; the adapter owns how the request is built.
type RequestFunc func(ctx context.Context) (*http.Response, error)

// Queue serializes outbound requests to a single rate-limited provider.
//
// # Ordering
//
// Requests are processed strictly FIFO by one worker. A request that hits
// HTTP 429 is requeued at the FRONT so it retries before anything submitted
// after it — the stalled request keeps its position rather than starving.
//
// # Pacing
//
// A token bucket (burst 1) spaces executions at 60s/ratePerMinute, so the
// provider's per-minute budget is never exceeded no matter how fast callers
// enqueue.
type Queue struct {
	provider string
	limiter  *rate.Limiter
	cooldown time.Duration
	log      *slog.Logger

	mu         sync.Mutex
	pending    []*pendingRequest
	processing bool
}

type queueResult struct {
	body []byte
	err  error
}

type pendingRequest struct {
	ctx  context.Context
	do   RequestFunc
	done chan queueResult
}

// NewQueue constructs a queue for one provider.
//
// # Parameters
//   - provider: Human-readable provider name, used in errors and logs.
//   - ratePerMinute: The provider's request budget.
//   - cooldown: How long the worker pauses after a 429 before retrying.
//   - log: Structured logger.
func NewQueue(provider string, ratePerMinute int, cooldown time.Duration, log *slog.Logger) *Queue {
	return &Queue{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), 1),
		cooldown: cooldown,
		log:      log.With(slog.String("provider", provider)),
	}
}

/*
Enqueue appends a request to the queue and blocks until the worker has
executed it (or the caller's context ends while it is still waiting).

Description: the single worker is started lazily on the first enqueue and
exits when the queue drains; concurrent enqueues only ever append. A request
is never dropped: every queued item is eventually resolved with a body or
rejected with an error.

Parameters:
  - ctx: context.Context (Caller's lifetime; a request not yet started is
    abandoned when it ends.)
  - do: RequestFunc (The HTTP exchange to perform.)

Returns:
  - []byte: Raw response body on HTTP success
  - error: apperr.UpstreamUnavailable on transport failure,
    apperr.UpstreamError on a non-OK, non-429 status, or ctx.Err()
*/
func (queue *Queue) Enqueue(ctx context.Context, do RequestFunc) ([]byte, error) {
	item := &pendingRequest{
		ctx: ctx,
		do:  do,
		// Buffered so the worker never blocks on an abandoned caller.
		done: make(chan queueResult, 1),
	}

	// 1. Append under the lock; spawn the worker only if none is active.
	queue.mu.Lock()
	queue.pending = append(queue.pending, item)
	shouldStart := !queue.processing
	if shouldStart {
		queue.processing = true
	}
	queue.mu.Unlock()

	if shouldStart {
		go queue.processQueue()
	}

	// 2. Wait for the worker, or give up if the caller's context ends first.
	select {
	case result := <-item.done:
		return result.body, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// processQueue is the single worker loop. It drains the queue in submission
// order and exits once empty.
func (queue *Queue) processQueue() {
	for {
		// 1. Dequeue the head, or shut down when drained.
		queue.mu.Lock()
		if len(queue.pending) == 0 {
			queue.processing = false
			queue.mu.Unlock()
			return
		}
		item := queue.pending[0]
		queue.pending = queue.pending[1:]
		queue.mu.Unlock()

		// 2. Skip requests whose caller already gave up; they consume no
		// rate budget.
		if item.ctx.Err() != nil {
			item.done <- queueResult{err: item.ctx.Err()}
			continue
		}

		// 3. Respect the provider's pacing budget before going out.
		if err := queue.limiter.Wait(item.ctx); err != nil {
			item.done <- queueResult{err: err}
			continue
		}

		response, err := item.do(item.ctx)
		if err != nil {
			queue.log.Warn("upstream_transport_error", slog.Any("error", err))
			item.done <- queueResult{err: apperr.UpstreamUnavailable(queue.provider, err)}
			continue
		}

		// 4. Rate limited: put the request back at the FRONT and cool down,
		// preserving its position ahead of later submissions.
		if response.StatusCode == http.StatusTooManyRequests {
			drainBody(response)
			queue.log.Warn("upstream_rate_limited",
				slog.Duration("cooldown", queue.cooldown),
			)

			queue.mu.Lock()
			queue.pending = append([]*pendingRequest{item}, queue.pending...)
			queue.mu.Unlock()

			time.Sleep(queue.cooldown)
			continue
		}

		// 5. Any other non-OK status rejects the caller with the status code.
		if response.StatusCode < 200 || response.StatusCode > 299 {
			drainBody(response)
			item.done <- queueResult{err: apperr.UpstreamError(queue.provider, response.StatusCode)}
			continue
		}

		body, readErr := io.ReadAll(response.Body)
		_ = response.Body.Close()
		if readErr != nil {
			item.done <- queueResult{err: apperr.UpstreamUnavailable(queue.provider, readErr)}
			continue
		}

		item.done <- queueResult{body: body}
	}
}

// drainBody discards and closes a response body so the connection can be reused.
func drainBody(response *http.Response) {
	_, _ = io.Copy(io.Discard, response.Body)
	_ = response.Body.Close()
}
