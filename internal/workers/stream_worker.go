package workers

import (
	"context"
	"encoding/json"

	"sysglance/internal/logger"
	"sysglance/internal/stats"
)

type SnapshotSource interface {
	GetOrRefresh(ctx context.Context) (*stats.Snapshot, error)
}

type StreamHub interface {
	Broadcast(payload []byte)
	ClientCount() int64
}

// SnapshotStreamWorker pushes the current snapshot to websocket viewers
// once per tick. With no viewers connected it does nothing, so an idle
// host is never sampled.
type SnapshotStreamWorker struct {
	src SnapshotSource
	hub StreamHub
	log logger.Logger
}

func (w *SnapshotStreamWorker) Name() string {
	return "snapshot_stream"
}

func (w *SnapshotStreamWorker) Run(ctx context.Context) error {
	if w.hub.ClientCount() == 0 {
		return nil
	}

	snap, err := w.src.GetOrRefresh(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	w.hub.Broadcast(payload)
	return nil
}
