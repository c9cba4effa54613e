// Package loadtest implements the fixed-pool worker model described in
// spec §4.6: concurrency workers with staggered ramp-up, a shared metrics
// collector, a periodic sampler, and cooperative cancellation.
package loadtest

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/studiowebux/restcli-core/internal/executor"
	"github.com/studiowebux/restcli-core/internal/loadtest/metrics"
	"github.com/studiowebux/restcli-core/internal/model"
)

// samplerInterval is how often the sampler task snapshots percentiles and
// pushes a TimeSeriesDataPoint.
const samplerInterval = 5 * time.Second

// rpsRefreshInterval is the faster updater that refreshes CurrentRPS alone.
const rpsRefreshInterval = 500 * time.Millisecond

// Engine is a single load-test run in progress.
type Engine struct {
	collector     *metrics.Collector
	cancel        context.CancelFunc
	done          chan struct{}
	activeWorkers int32
}

// Handle is what callers hold onto: the collector for read-only snapshots,
// plus Stop/Wait for lifecycle control.
type Handle struct {
	engine *Engine
}

// Collector exposes the shared metrics sink for UI polling.
func (h *Handle) Collector() *metrics.Collector { return h.engine.collector }

// ActiveWorkers returns the current count of workers mid-request.
func (h *Handle) ActiveWorkers() int32 { return atomic.LoadInt32(&h.engine.activeWorkers) }

// Stop sets the cancel flag; workers exit at their next iteration boundary.
func (h *Handle) Stop() { h.engine.cancel() }

// AwaitDone blocks until the run completes naturally or is cancelled.
func (h *Handle) AwaitDone() { <-h.engine.done }

// Start launches config.Concurrency workers against endpoint using exec,
// each looping "while elapsed < duration" until the test duration elapses
// or Stop is called. Workers are staggered across config.RampUpSec per
// spec §4.6's formula: worker i begins after i*ramp_up/concurrency.
func Start(ctx context.Context, exec *executor.Executor, endpoint *model.ApiEndpoint, inputs model.RequestInputs, config model.LoadTestConfig) (*Handle, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	start := time.Now()
	collector := metrics.New(start)
	engine := &Engine{
		collector: collector,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	deadline := start.Add(time.Duration(config.DurationSec) * time.Second)

	var wg sync.WaitGroup
	wg.Add(config.Concurrency)
	for i := 0; i < config.Concurrency; i++ {
		startOffset := time.Duration(0)
		if config.RampUpSec > 0 {
			startOffset = time.Duration(i) * (time.Duration(config.RampUpSec) * time.Second) / time.Duration(config.Concurrency)
		}
		go worker(runCtx, &wg, exec, endpoint, inputs, collector, engine, deadline, startOffset)
	}

	samplerCtx, samplerCancel := context.WithCancel(runCtx)
	go sampler(samplerCtx, collector)

	go func() {
		wg.Wait()
		samplerCancel()
		cancel()
		close(engine.done)
	}()

	return &Handle{engine: engine}, nil
}

func worker(ctx context.Context, wg *sync.WaitGroup, exec *executor.Executor, endpoint *model.ApiEndpoint, inputs model.RequestInputs, collector *metrics.Collector, engine *Engine, deadline time.Time, startOffset time.Duration) {
	defer wg.Done()

	if startOffset > 0 {
		select {
		case <-time.After(startOffset):
		case <-ctx.Done():
			return
		}
	}

	for {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return
		}

		atomic.AddInt32(&engine.activeWorkers, 1)
		reqStart := time.Now()
		resp, err := exec.Execute(ctx, endpoint, inputs)
		elapsed := time.Since(reqStart)
		atomic.AddInt32(&engine.activeWorkers, -1)

		if err != nil {
			collector.RecordFailure(failureKind(err), elapsed)
			continue
		}
		_ = resp
		collector.RecordSuccess(resp.Duration)

		if ctx.Err() != nil {
			return
		}
	}
}

// failureKind derives a coarse error-kind tag from an execution error, for
// the collector's errors[kind] breakdown. Spec §4.6 names three kinds —
// timeout / connection / other — plus the template-resolution failures
// this tool can also produce; timeout is checked first since a timed-out
// request is usually also wrapped in a *model.RequestTransportError.
func failureKind(err error) string {
	if isTimeout(err) {
		return "timeout"
	}
	switch err.(type) {
	case *model.RequestTransportError:
		return "connection"
	case *model.MissingVariableError, *model.UnknownFakerKindError, *model.TemplateSyntaxError:
		return "template"
	default:
		return "other"
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func sampler(ctx context.Context, collector *metrics.Collector) {
	rpsTicker := time.NewTicker(rpsRefreshInterval)
	sampleTicker := time.NewTicker(samplerInterval)
	defer rpsTicker.Stop()
	defer sampleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rpsTicker.C:
			collector.UpdateRPS(time.Second)
		case <-sampleTicker.C:
			collector.UpdateRPS(time.Second)
			collector.AddTimeSeriesPoint()
		}
	}
}
