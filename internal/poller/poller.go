// Package poller runs fixed-interval background refresh loops. Cycles are
// strictly sequential per runner: a slow cycle delays the next tick rather
// than overlapping it. A failed cycle is logged and counted; there is no
// retry or backoff, the next tick simply tries again.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/pkg/logger"
)

var pollCycles = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "poller_cycles_total",
		Help: "Total number of poll cycles by outcome",
	},
	[]string{"poller", "outcome"},
)

// Task is one poll cycle. Returning an error marks the cycle failed.
type Task func(ctx context.Context) error

// Runner ticks a task at a fixed interval
type Runner struct {
	name     string
	interval time.Duration
	task     Task

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewRunner creates a runner; call Start to begin ticking
func NewRunner(name string, interval time.Duration, task Task) *Runner {
	return &Runner{
		name:     name,
		interval: interval,
		task:     task,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. The loop ends when ctx is cancelled or
// Stop is called.
func (r *Runner) Start(ctx context.Context) {
	go r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Info("poller started",
		zap.String("poller", r.name),
		zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("poller stopped", zap.String("poller", r.name))
			return
		case <-r.stop:
			logger.Info("poller stopped", zap.String("poller", r.name))
			return
		case <-ticker.C:
			r.runCycle(ctx)
		}
	}
}

// runCycle executes one tick. Running in the loop goroutine guarantees
// cycles never overlap; the ticker drops ticks that fire mid-cycle.
func (r *Runner) runCycle(ctx context.Context) {
	if err := r.task(ctx); err != nil {
		pollCycles.WithLabelValues(r.name, "failure").Inc()
		logger.WithContext(ctx).Warn("poll cycle failed",
			zap.String("poller", r.name),
			zap.Error(err))
		return
	}
	pollCycles.WithLabelValues(r.name, "success").Inc()
}

// Stop ends the loop and waits for the current cycle to finish
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
