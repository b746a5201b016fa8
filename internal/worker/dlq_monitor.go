package worker

import (
	"context"
	"time"

	"posbuddy/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqTickInterval = time.Minute

// StartDLQMonitor periodically publishes the size of every dead letter queue
// as a gauge and warns while any of them holds entries.
func StartDLQMonitor(ctx context.Context, rdb *redis.Client) {
	go func() {
		ticker := time.NewTicker(dlqTickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				revisarDLQ(ctx, rdb)
			}
		}
	}()
}

func revisarDLQ(ctx context.Context, rdb *redis.Client) {
	for _, q := range Queues {
		n, err := DLQLength(ctx, rdb, q)
		if err != nil {
			log.Debug().Err(err).Str("queue", q).Msg("dlq monitor: LLEN failed")
			continue
		}
		metrics.DLQPendientes.WithLabelValues(q).Set(float64(n))
		if n > 0 {
			log.Warn().Str("queue", q).Int64("entries", n).Msg("dlq monitor: jobs waiting for inspection")
		}
	}
}
