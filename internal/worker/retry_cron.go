package worker

// retry_cron.go
// Background goroutine that periodically moves dead-lettered email jobs back
// to QueueEmail once the SMTP circuit breaker lets calls through again.

import (
	"context"
	"time"

	"fuelpos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 2 * time.Minute
	retryBatchSize    = 10
	// MaxReplayAttempts caps the total attempts of a job across replays.
	MaxReplayAttempts = 3 * MaxJobAttempts
)

// RetryCronConfig holds all dependencies for the replay goroutine.
type RetryCronConfig struct {
	RDB        *redis.Client
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
	Interval   time.Duration
}

// StartRetryCron launches the replay goroutine. It respects ctx for shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = retryTickInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				replayEmailDLQ(ctx, cfg)
			}
		}
	}()
}

// replayEmailDLQ requeues up to retryBatchSize dead email jobs. Jobs that
// reached MaxReplayAttempts go back to the DLQ and stay there.
func replayEmailDLQ(ctx context.Context, cfg RetryCronConfig) int {
	// Don't hammer a mail server that is still down.
	if cfg.CB != nil && cfg.CB.State() == infra.BreakerOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return 0
	}

	pending, err := DLQLength(ctx, cfg.RDB, QueueEmail)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to read DLQ length")
		return 0
	}
	if pending > retryBatchSize {
		pending = retryBatchSize
	}

	requeued := 0
	for i := int64(0); i < pending; i++ {
		entry, err := PopDLQ(ctx, cfg.RDB, QueueEmail)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to pop DLQ entry")
			return requeued
		}
		if entry == nil {
			break
		}
		if entry.Attempts >= MaxReplayAttempts {
			SendToDLQ(ctx, cfg.RDB, entry.OriginalQueue, entry.JobType, entry.Payload, entry.Reason, entry.Attempts)
			continue
		}
		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		if err := cfg.Dispatcher.push(ctx, entry.OriginalQueue, job); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to requeue job")
			SendToDLQ(ctx, cfg.RDB, entry.OriginalQueue, entry.JobType, entry.Payload, entry.Reason, entry.Attempts)
			continue
		}
		requeued++
	}
	if requeued > 0 {
		log.Info().Int("count", requeued).Msg("retry_cron: email jobs requeued from DLQ")
	}
	return requeued
}
