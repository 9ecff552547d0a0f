package workers

import (
	"github.com/evermark-app/vaultcore/internal/config"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by the configuration.
func NewWorkers(protocol *recovery.Protocol, requests store.RecoveryRequestRepository, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := new(Workers)

	if cfg.SweepInterval > 0 {
		ws.workers = append(ws.workers, newRecoverySweeper(protocol, requests, cfg.SweepInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Shutdown stops every worker that supports stopping.
func (w *Workers) Shutdown() {
	for _, worker := range w.workers {
		if stoppable, ok := worker.(interface{ Shutdown() }); ok {
			stoppable.Shutdown()
		}
	}
}
