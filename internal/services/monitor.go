package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/node-inspector/pkg/bridge"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
	"github.com/kubev2v/node-inspector/pkg/scheduler"
)

// ProbeClient runs a named bridge probe.
type ProbeClient interface {
	Probe(ctx context.Context, name string) (*bridge.Response, error)
}

// Monitor polls bridge probes concurrently. It never touches the database.
type Monitor struct {
	client    ProbeClient
	scheduler *scheduler.Scheduler
}

func NewMonitorService(s *scheduler.Scheduler, client ProbeClient) *Monitor {
	return &Monitor{client: client, scheduler: s}
}

// Poll runs the given probes, or every catalog probe when none is given.
// Successful responses are returned even when other probes fail; failures
// are joined and each keeps its kind.
func (m *Monitor) Poll(ctx context.Context, probes ...string) (map[string]*bridge.Response, error) {
	if len(probes) == 0 {
		for _, p := range bridge.Catalog() {
			probes = append(probes, p.Name)
		}
	}

	futures := make(map[string]*scheduler.Future[scheduler.Result[any]], len(probes))
	for _, name := range probes {
		if _, ok := futures[name]; ok {
			continue
		}
		futures[name] = m.scheduler.AddNamedWork(name, func(workCtx context.Context) (any, error) {
			return m.client.Probe(workCtx, name)
		})
	}

	responses := make(map[string]*bridge.Response, len(futures))
	var failures []error
	for _, name := range probes {
		future, ok := futures[name]
		if !ok {
			continue
		}
		delete(futures, name)

		result, err := future.Wait(ctx)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if result.Err != nil {
			failures = append(failures, fmt.Errorf("probe %s: %w", name, result.Err))
			continue
		}
		if resp, ok := result.Data.(*bridge.Response); ok {
			responses[name] = resp
		}
	}

	zap.S().Named("monitor").Debugw("poll finished", "probes", len(probes), "ok", len(responses), "failed", len(failures))
	return responses, errors.Join(failures...)
}

// Watch polls every interval, starting immediately, and hands each result
// to fn. It returns when ctx ends.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration, fn func(map[string]*bridge.Response, error), probes ...string) error {
	if interval <= 0 {
		return srvErrors.NewConfigurationError("bridge.interval", "watch interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(m.Poll(ctx, probes...))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
