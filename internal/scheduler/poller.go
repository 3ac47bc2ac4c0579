// Package scheduler runs periodic view refreshes with an explicit stop handle.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cryptoDashboard/internal/metrics"
	"cryptoDashboard/internal/ports"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

// Poller runs a task immediately on Start and then on every interval until Stop.
// A tick that fires while the previous run is still in flight is skipped.
type Poller struct {
	name     string
	interval time.Duration
	task     Task
	logger   ports.Logger

	running atomic.Bool
	runs    sync.WaitGroup

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewPoller creates a poller; it does nothing until Start is called.
func NewPoller(name string, interval time.Duration, task Task, logger ports.Logger) (*Poller, error) {
	if task == nil || logger == nil {
		return nil, fmt.Errorf("poller %q: task and logger are required", name)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("poller %q: interval must be positive, got %s", name, interval)
	}
	return &Poller{name: name, interval: interval, task: task, logger: logger}, nil
}

// Start launches the polling loop. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.stopped = make(chan struct{})

	go p.loop(ctx, p.stopped)
	p.logger.Info(ctx, "Poller started", map[string]interface{}{"task": p.name, "interval": p.interval.String()})
}

func (p *Poller) loop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick runs the task in the background unless a previous run is unresolved.
// It reports whether a run was started.
func (p *Poller) Tick(ctx context.Context) bool {
	if !p.running.CompareAndSwap(false, true) {
		metrics.PollSkippedTotal.WithLabelValues(p.name).Inc()
		p.logger.Debug(ctx, "Skipping poll tick, previous run still in flight", map[string]interface{}{"task": p.name})
		return false
	}

	p.runs.Add(1)
	go func() {
		defer p.runs.Done()
		defer p.running.Store(false)

		if err := p.task(ctx); err != nil {
			p.logger.Debug(ctx, "Poll run finished with error", map[string]interface{}{"task": p.name, "error": err.Error()})
		}
	}()
	return true
}

// Stop cancels the loop and waits for it and any in-flight run to return.
// It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.cancel, p.stopped = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	p.runs.Wait()
	p.logger.Info(context.Background(), "Poller stopped", map[string]interface{}{"task": p.name})
}
