package poll

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"oppintel-engine/internal/events"
	"oppintel-engine/internal/pipeline"
	"oppintel-engine/internal/scheduler"
)

// ErrAlreadyRunning is returned when a trigger fires while a run holds the
// gate. The caller reports it instead of starting a second pass.
var ErrAlreadyRunning = errors.New("a run is already in progress")

type Runner func(ctx context.Context) (pipeline.Summary, error)

type RunStatus struct {
	LastRunAt   string            `json:"last_run_at"`
	LastOkAt    string            `json:"last_ok_at"`
	LastError   string            `json:"last_error"`
	LastSummary *pipeline.Summary `json:"last_summary,omitempty"`
	Running     bool              `json:"running"`
}

// Poller owns the shared run state: the gate that serializes runs and the
// status snapshot the API exposes.
type Poller struct {
	gate   pipeline.Gate
	status atomic.Value // RunStatus
	hub    *events.Hub
	runner Runner
}

func New(hub *events.Hub, runner Runner) *Poller {
	p := &Poller{hub: hub, runner: runner}
	p.status.Store(RunStatus{})
	return p
}

func (p *Poller) Status() RunStatus {
	return p.status.Load().(RunStatus)
}

// Execute performs one gated run. Both the ticker and the manual trigger go
// through here, so at most one run executes at a time.
func (p *Poller) Execute(ctx context.Context) (pipeline.Summary, error) {
	if !p.gate.TryAcquire() {
		return pipeline.Summary{}, ErrAlreadyRunning
	}
	defer p.gate.Release()

	now := time.Now().Format(time.RFC3339)
	st := p.Status()
	st.Running = true
	st.LastRunAt = now
	p.status.Store(st)
	if p.hub != nil {
		p.hub.Publish(events.MakeEvent("", "run_started", nil))
	}

	sum, err := p.runner(ctx)

	st = p.Status()
	st.Running = false
	st.LastSummary = &sum
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
	}
	p.status.Store(st)
	if p.hub != nil {
		p.hub.Publish(events.MakeEvent("", "run_finished", sum))
	}
	return sum, err
}

// Start launches the background timer loop.
func (p *Poller) Start(ctx context.Context, interval time.Duration) {
	go scheduler.Every(ctx, interval, "poll", func(ctx context.Context) error {
		_, err := p.Execute(ctx)
		if errors.Is(err, ErrAlreadyRunning) {
			log.Printf("[poll] tick skipped: %v", err)
			return nil
		}
		return err
	})
}
