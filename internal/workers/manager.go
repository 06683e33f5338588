// Package workers runs the background snapshot stream on a schedule.
package workers

import (
	"context"
	"time"

	"sysglance/internal/logger"
)

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

type Manager struct {
	log logger.Logger

	scheduler *Scheduler
	services  *ManagerServices
}

type ManagerServices struct {
	Status SnapshotSource
	Hub    StreamHub
}

func NewManager(log logger.Logger, scheduler *Scheduler, services *ManagerServices) *Manager {
	return &Manager{
		log: log,

		scheduler: scheduler,
		services:  services,
	}
}

// Start launches the background workers. The stream worker ticks on the
// snapshot TTL so connected viewers see at most one refresh per window.
func (m *Manager) Start(ctx context.Context, interval time.Duration) {
	m.log.Info("worker: manager started")

	m.scheduler.RunByDuration(ctx, interval, &SnapshotStreamWorker{
		src: m.services.Status,
		hub: m.services.Hub,
		log: m.log,
	})
}
