package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"fuelpos/internal/dto"
	"fuelpos/internal/infra"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func testSummary() *dto.ShiftSummaryResponse {
	return &dto.ShiftSummaryResponse{
		Shift: dto.ShiftResponse{
			ID: "7d1f0c2a-1111-4222-8333-944455556666", Username: "user123",
			Date: "2024-05-15", Type: "AM", StartTime: "2024-05-15T06:00:00Z",
		},
		Pumps: []dto.PumpTotals{
			{PumpID: 1, Label: "Pump 1", Fuel: "Diesel", Transactions: 1, Volume: decimal.NewFromInt(60), Income: decimal.NewFromInt(3000)},
			{PumpID: 2, Label: "Pump 2", Fuel: "Diesel", Transactions: 1, Volume: decimal.NewFromInt(150), Income: decimal.NewFromInt(6750)},
		},
		Volume: decimal.NewFromInt(210),
		Income: decimal.NewFromInt(9750),
	}
}

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeProcessor struct {
	mu    sync.Mutex
	calls int
	err   error
	done  chan struct{}
}

func (p *fakeProcessor) Process(_ context.Context, _ json.RawMessage) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.done != nil {
		p.done <- struct{}{}
	}
	return p.err
}

type fakeSender struct {
	mu   sync.Mutex
	sent []EmailJobPayload
	err  error
}

func (s *fakeSender) Send(to, subject, body, attachment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, EmailJobPayload{ToEmail: to, Subject: subject, Body: body, PDFPath: attachment})
	return nil
}

type fakeEnqueuer struct{ jobs []EmailJobPayload }

func (e *fakeEnqueuer) EnqueueEmail(_ context.Context, p EmailJobPayload) error {
	e.jobs = append(e.jobs, p)
	return nil
}

func noBackoff(int) time.Duration { return 0 }

// ── Dispatcher / Pool ────────────────────────────────────────────────────────

func TestDispatcher_EnqueueShiftReport(t *testing.T) {
	rdb, mr := newTestRedis(t)
	d := NewDispatcher(rdb)

	require.NoError(t, d.EnqueueShiftReport(context.Background(), testSummary()))

	items, err := mr.List(QueueShiftReport)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(items[0]), &job))
	assert.Equal(t, JobShiftReport, job.Type)

	var summary dto.ShiftSummaryResponse
	require.NoError(t, json.Unmarshal(job.Payload, &summary))
	assert.Equal(t, "9750", summary.Income.String())
}

func TestPool_ProcessJobSuccess(t *testing.T) {
	rdb, _ := newTestRedis(t)
	proc := &fakeProcessor{}
	pool := NewPool(rdb, map[string]Processor{JobEmail: proc})
	pool.backoff = noBackoff

	raw, _ := json.Marshal(Job{Type: JobEmail, Payload: json.RawMessage(`{}`)})
	pool.processJob(context.Background(), QueueEmail, string(raw))

	assert.Equal(t, 1, proc.calls)
	n, err := DLQLength(context.Background(), rdb, QueueEmail)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPool_FailingJobGoesToDLQ(t *testing.T) {
	rdb, _ := newTestRedis(t)
	ctx := context.Background()
	proc := &fakeProcessor{err: errors.New("smtp down")}
	pool := NewPool(rdb, map[string]Processor{JobEmail: proc})
	pool.backoff = noBackoff

	raw, _ := json.Marshal(Job{Type: JobEmail, Payload: json.RawMessage(`{"to_email":"x@y"}`)})
	pool.processJob(ctx, QueueEmail, string(raw))

	assert.Equal(t, MaxJobAttempts, proc.calls)
	entry, err := PopDLQ(ctx, rdb, QueueEmail)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "smtp down", entry.Reason)
	assert.Equal(t, MaxJobAttempts, entry.Attempts)
	assert.JSONEq(t, `{"to_email":"x@y"}`, string(entry.Payload))
}

func TestPool_UnknownAndMalformedJobs(t *testing.T) {
	rdb, _ := newTestRedis(t)
	ctx := context.Background()
	pool := NewPool(rdb, map[string]Processor{})

	pool.processJob(ctx, QueueEmail, "not json")
	raw, _ := json.Marshal(Job{Type: "mystery"})
	pool.processJob(ctx, QueueEmail, string(raw))

	n, err := DLQLength(ctx, rdb, QueueEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPool_StartConsumesQueue(t *testing.T) {
	rdb, _ := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proc := &fakeProcessor{done: make(chan struct{}, 1)}
	pool := NewPool(rdb, map[string]Processor{JobShiftReport: proc})
	pool.Start(ctx, 2)

	require.NoError(t, NewDispatcher(rdb).EnqueueShiftReport(ctx, testSummary()))

	select {
	case <-proc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not consumed")
	}
	cancel()
	pool.Wait()
}

// ── Workers ──────────────────────────────────────────────────────────────────

func TestShiftReportWorker_RendersAndQueuesEmail(t *testing.T) {
	dir := t.TempDir()
	emails := &fakeEnqueuer{}
	w := NewShiftReportWorker("FuelPOS", dir, "owner@example.com", emails)

	raw, _ := json.Marshal(testSummary())
	require.NoError(t, w.Process(context.Background(), raw))

	require.Len(t, emails.jobs, 1)
	job := emails.jobs[0]
	assert.Equal(t, "owner@example.com", job.ToEmail)
	assert.Contains(t, job.Subject, "2024-05-15 AM")
	assert.Contains(t, job.Body, "9750.00")
	_, err := os.Stat(job.PDFPath)
	assert.NoError(t, err)
}

func TestShiftReportWorker_NoEmailConfigured(t *testing.T) {
	w := NewShiftReportWorker("FuelPOS", t.TempDir(), "", nil)
	raw, _ := json.Marshal(testSummary())
	assert.NoError(t, w.Process(context.Background(), raw))
	assert.Error(t, w.Process(context.Background(), json.RawMessage(`"oops"`)))
}

func TestEmailWorker(t *testing.T) {
	sender := &fakeSender{}
	w := NewEmailWorker(sender)
	ctx := context.Background()

	raw, _ := json.Marshal(EmailJobPayload{ToEmail: "a@b.c", Subject: "s", Body: "b"})
	require.NoError(t, w.Process(ctx, raw))
	require.Len(t, sender.sent, 1)

	// Empty recipients are skipped, not failed.
	raw, _ = json.Marshal(EmailJobPayload{})
	assert.NoError(t, w.Process(ctx, raw))

	sender.err = infra.ErrCircuitOpen
	raw, _ = json.Marshal(EmailJobPayload{ToEmail: "a@b.c"})
	assert.ErrorIs(t, w.Process(ctx, raw), infra.ErrCircuitOpen)
}

func TestInlineReporter(t *testing.T) {
	dir := t.TempDir()
	sender := &fakeSender{}
	r := NewInlineReporter("FuelPOS", dir, "owner@example.com", sender)

	require.NoError(t, r.EnqueueShiftReport(context.Background(), testSummary()))
	r.Wait()

	require.Len(t, sender.sent, 1)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// ── Retry cron ───────────────────────────────────────────────────────────────

func TestReplayEmailDLQ(t *testing.T) {
	rdb, mr := newTestRedis(t)
	ctx := context.Background()
	cfg := RetryCronConfig{RDB: rdb, Dispatcher: NewDispatcher(rdb), CB: infra.NewCircuitBreaker(infra.DefaultCBConfig())}

	SendToDLQ(ctx, rdb, QueueEmail, JobEmail, json.RawMessage(`{"to_email":"a@b.c"}`), "smtp down", MaxJobAttempts)
	SendToDLQ(ctx, rdb, QueueEmail, JobEmail, json.RawMessage(`{"to_email":"d@e.f"}`), "smtp down", MaxReplayAttempts)

	assert.Equal(t, 1, replayEmailDLQ(ctx, cfg))

	queued, err := mr.List(QueueEmail)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	var job Job
	require.NoError(t, json.Unmarshal([]byte(queued[0]), &job))
	assert.Equal(t, MaxJobAttempts, job.Attempts)

	n, err := DLQLength(ctx, rdb, QueueEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "exhausted job stays dead")
}

func TestReplayEmailDLQ_SkipsWhileBreakerOpen(t *testing.T) {
	rdb, _ := newTestRedis(t)
	ctx := context.Background()
	cb := infra.NewCircuitBreaker(infra.CBConfig{FailureThreshold: 1, OpenTimeout: time.Hour})
	_ = cb.Execute(func() error { return errors.New("down") })

	SendToDLQ(ctx, rdb, QueueEmail, JobEmail, json.RawMessage(`{}`), "smtp down", MaxJobAttempts)
	assert.Zero(t, replayEmailDLQ(ctx, RetryCronConfig{RDB: rdb, Dispatcher: NewDispatcher(rdb), CB: cb}))
}
