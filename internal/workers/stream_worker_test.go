package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysglance/internal/logger"
	"sysglance/internal/stats"
)

type fakeSource struct {
	calls atomic.Int64
	snap  *stats.Snapshot
	err   error
}

func (f *fakeSource) GetOrRefresh(ctx context.Context) (*stats.Snapshot, error) {
	f.calls.Add(1)
	return f.snap, f.err
}

type fakeHub struct {
	clients  int64
	payloads [][]byte
}

func (f *fakeHub) Broadcast(payload []byte) { f.payloads = append(f.payloads, payload) }
func (f *fakeHub) ClientCount() int64       { return f.clients }

func TestStreamWorkerSkipsWithoutViewers(t *testing.T) {
	src := &fakeSource{snap: &stats.Snapshot{Hostname: "idle"}}
	hub := &fakeHub{clients: 0}
	w := &SnapshotStreamWorker{src: src, hub: hub, log: logger.Noop()}

	require.NoError(t, w.Run(context.Background()))

	// Nobody is looking, so the host must not be sampled.
	assert.Zero(t, src.calls.Load())
	assert.Empty(t, hub.payloads)
}

func TestStreamWorkerBroadcastsSnapshot(t *testing.T) {
	src := &fakeSource{snap: &stats.Snapshot{Hostname: "web-01", CPUUsage: 0.25}}
	hub := &fakeHub{clients: 3}
	w := &SnapshotStreamWorker{src: src, hub: hub, log: logger.Noop()}

	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, int64(1), src.calls.Load())
	require.Len(t, hub.payloads, 1)
	assert.Contains(t, string(hub.payloads[0]), `"hostname":"web-01"`)
}

func TestStreamWorkerPropagatesSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("sampler down")}
	hub := &fakeHub{clients: 1}
	w := &SnapshotStreamWorker{src: src, hub: hub, log: logger.Noop()}

	err := w.Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, hub.payloads)
}

type countingWorker struct {
	runs atomic.Int64
}

func (c *countingWorker) Name() string { return "counting" }
func (c *countingWorker) Run(ctx context.Context) error {
	c.runs.Add(1)
	return nil
}

func TestSchedulerRunsAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(logger.Noop())

	w := &countingWorker{}
	s.RunByDuration(ctx, 10*time.Millisecond, w)

	require.Eventually(t, func() bool {
		return w.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	settled := w.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, w.runs.Load(), settled+1)
}
