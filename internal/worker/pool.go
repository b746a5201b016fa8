package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"posbuddy/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueRecibo = "jobs:recibo"
	QueueEmail  = "jobs:email"

	// MaxAttempts per job before it is moved to the dead letter queue.
	MaxAttempts = 3
)

// Queues consumed by the pool, in BRPOP priority order.
var Queues = []string{QueueRecibo, QueueEmail}

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one job payload. A returned error triggers a retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Handlers maps a queue name to the worker that consumes it.
type Handlers map[string]Handler

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EncolarRecibo pushes a receipt rendering job.
func (d *Dispatcher) EncolarRecibo(ctx context.Context, payload ReciboJobPayload) error {
	return d.enqueue(ctx, QueueRecibo, "recibo", payload)
}

// EncolarEmail pushes an email job.
func (d *Dispatcher) EncolarEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing. The returned
// WaitGroup is done once every worker has observed ctx cancellation.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers Handlers, numWorkers int) *sync.WaitGroup {
	wg := &sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, handlers, id)
		}(i)
	}
	log.Info().Int("workers", numWorkers).Strs("queues", Queues).Msg("worker pool started")
	return wg
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("worker shutting down")
			return
		default:
		}

		// Blocking pop: waits up to 5s then loops to check ctx
		result, err := rdb.BRPop(ctx, 5*time.Second, Queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("BRPOP failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		if dl := processJob(ctx, handlers, result[0], result[1]); dl != nil {
			SendToDLQ(ctx, rdb, *dl)
		}
	}
}

// processJob runs the handler for the queue with retries. It returns the
// dead-letter entry when the job could not be processed.
func processJob(ctx context.Context, handlers Handlers, queue, raw string) *DLQEntry {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return newDLQEntry(queue, "", json.RawMessage(raw), "payload inválido: "+err.Error(), 0)
	}

	h, ok := handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("no handler registered for queue")
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return newDLQEntry(queue, job.Type, job.Payload, "sin handler", 0)
	}

	attempts := 0
	err := withRetry(ctx, MaxAttempts, func(attempt int) error {
		attempts = attempt + 1
		if attempt > 0 {
			metrics.Jobs.WithLabelValues(queue, "retry").Inc()
		}
		return h.Process(ctx, job.Payload)
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", job.Type).Int("attempts", attempts).Msg("job failed")
		metrics.Jobs.WithLabelValues(queue, "dlq").Inc()
		return newDLQEntry(queue, job.Type, job.Payload, err.Error(), attempts)
	}
	metrics.Jobs.WithLabelValues(queue, "ok").Inc()
	return nil
}

// retryBase is the first backoff delay; it doubles on every attempt.
var retryBase = time.Second

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := retryBase * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			if errors.Is(err, ErrPermanente) {
				return err
			}
			continue
		}
		return nil
	}
	return lastErr
}

// ErrPermanente marks failures that retrying cannot fix (bad payload,
// missing sale). Handlers wrap it with fmt.Errorf("...: %w", ErrPermanente).
var ErrPermanente = errors.New("error permanente")
