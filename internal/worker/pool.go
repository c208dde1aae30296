package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"fuelpos/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueShiftReport = "jobs:shift_report"
	QueueEmail       = "jobs:email"

	JobShiftReport = "shift_report"
	JobEmail       = "email"

	// MaxJobAttempts is how many times a job runs before it goes to the DLQ.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts,omitempty"`
}

// Processor handles one job payload. A returned error is retried and then dead-lettered.
type Processor interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueShiftReport pushes the summary of a closed shift.
func (d *Dispatcher) EnqueueShiftReport(ctx context.Context, summary *dto.ShiftSummaryResponse) error {
	return d.enqueue(ctx, QueueShiftReport, JobShiftReport, summary, 0)
}

// EnqueueEmail pushes an email job.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.push(ctx, queue, Job{Type: jobType, Payload: data, Attempts: attempts})
}

func (d *Dispatcher) push(ctx context.Context, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb        *redis.Client
	processors map[string]Processor
	queues     []string
	backoff    func(attempt int) time.Duration
	wg         sync.WaitGroup
}

// NewPool registers one Processor per job type.
func NewPool(rdb *redis.Client, processors map[string]Processor) *Pool {
	return &Pool{
		rdb:        rdb,
		processors: processors,
		queues:     []string{QueueShiftReport, QueueEmail},
		backoff:    func(attempt int) time.Duration { return time.Duration(1<<uint(attempt-1)) * time.Second },
	}
}

// Start launches numWorkers goroutines consuming every queue.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

// Wait blocks until every worker returned after ctx was cancelled.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("queue read failed")
					time.Sleep(time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, p.rdb, queue, "unknown", json.RawMessage(`null`), "malformed job: "+err.Error(), 0)
		return
	}
	proc, ok := p.processors[job.Type]
	if !ok {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, "no processor for job type", job.Attempts)
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Msg("processing job")
	attempts, err := withRetry(ctx, MaxJobAttempts, p.backoff, func(attempt int) error {
		err := proc.Process(ctx, job.Payload)
		if err != nil {
			log.Warn().Err(err).Str("type", job.Type).Int("attempt", attempt+1).Msg("job attempt failed")
		}
		return err
	})
	if err != nil {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts+attempts)
	}
}

// withRetry calls fn up to maxAttempts times, sleeping backoff(i) before attempt i.
// It returns the number of attempts made and the last error.
func withRetry(ctx context.Context, maxAttempts int, backoff func(int) time.Duration, fn func(attempt int) error) (int, error) {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return i, ctx.Err()
			case <-time.After(backoff(i)):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return i + 1, nil
	}
	return maxAttempts, lastErr
}
