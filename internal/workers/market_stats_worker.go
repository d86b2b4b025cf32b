package workers

import (
	"time"

	"github.com/homescope/homescope/internal/services"
	"github.com/homescope/homescope/pkg/logger"
)

// MarketStatsWorker periodically recomputes the per-city market snapshots
// from the property catalog.
type MarketStatsWorker struct {
	marketStatsService *services.MarketStatsService
	interval           time.Duration
	stopChan           chan struct{}
	running            bool
}

func NewMarketStatsWorker(marketStatsService *services.MarketStatsService, interval time.Duration) *MarketStatsWorker {
	return &MarketStatsWorker{
		marketStatsService: marketStatsService,
		interval:           interval,
		stopChan:           make(chan struct{}),
	}
}

// Start launches the recompute loop. One run happens immediately so
// snapshots exist right after startup.
func (w *MarketStatsWorker) Start() {
	if w.running {
		return
	}
	w.running = true

	go func() {
		logger.Infof("Market stats worker started, interval %s", w.interval)
		w.runOnce()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stopChan:
				logger.Info("Market stats worker stopping")
				return
			case <-ticker.C:
				w.runOnce()
			}
		}
	}()
}

// Stop gracefully stops the worker
func (w *MarketStatsWorker) Stop() {
	if w.running {
		w.running = false
		close(w.stopChan)
	}
}

func (w *MarketStatsWorker) runOnce() {
	if err := w.marketStatsService.ComputeSnapshots(); err != nil {
		logger.WithError(err).Error("Failed to recompute market snapshots")
	}
}
