// Package supervisor runs a set of long-lived tasks under one lifecycle:
// each child gets a restart policy, a terminal signal cancels every
// child, and the supervisor waits for all of them to drain before
// returning the aggregated failures.
//
// This replaces the fire-and-forget multi-process shell launch the bot
// used to ship with: child failures are reported instead of silent, and
// shutdown tears down every child deterministically.
package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RestartPolicy controls what happens when a task returns early.
type RestartPolicy int

//go:generate go run github.com/dmarkham/enumer -type RestartPolicy -trimprefix Restart -transform lower -output restartpolicy_enumer.go

const (
	// RestartNever propagates the task's exit: a failure cancels every
	// sibling and ends the supervisor. The foreground task (the admin
	// server) uses this so its exit keeps the container's
	// foreground-process contract.
	RestartNever RestartPolicy = iota

	// RestartOnFailure restarts the task with exponential backoff when
	// it fails before shutdown. A clean return stops the task without
	// affecting siblings.
	RestartOnFailure
)

// Task is one supervised child. Run must honor ctx cancellation.
type Task struct {
	Name   string
	Policy RestartPolicy
	Run    func(ctx context.Context) error
}

// Supervisor owns a set of tasks and runs them to completion.
type Supervisor struct {
	log   *zap.Logger
	tasks []Task

	mu       sync.Mutex
	failures *multierror.Error
}

// New creates an empty supervisor.
func New(log *zap.Logger) *Supervisor {
	return &Supervisor{log: log}
}

// Add registers tasks to supervise.
func (s *Supervisor) Add(tasks ...Task) {
	s.tasks = append(s.tasks, tasks...)
}

// Run launches every task and blocks until all have drained. Returns the
// aggregated terminal errors, or nil when shutdown was clean.
func (s *Supervisor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, t := range s.tasks {
		t := t
		s.log.Info("starting task",
			zap.String("task", t.Name),
			zap.String("policy", t.Policy.String()),
		)
		g.Go(func() error {
			return s.runTask(ctx, t)
		})
	}

	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures.ErrorOrNil()
}

func (s *Supervisor) runTask(ctx context.Context, t Task) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // retry for as long as we're alive

	for {
		err := t.Run(ctx)

		if ctx.Err() != nil {
			// Shutdown in progress. A non-cancellation error here is
			// still worth reporting, but must not block the drain.
			if err != nil && !errors.Is(err, context.Canceled) {
				s.record(t.Name, err)
			}
			s.log.Info("task stopped", zap.String("task", t.Name))
			return nil
		}

		if err == nil {
			s.log.Info("task finished", zap.String("task", t.Name))
			return nil
		}

		if t.Policy == RestartNever {
			s.log.Error("task failed, shutting down",
				zap.String("task", t.Name), zap.Error(err))
			s.record(t.Name, err)
			return err // cancels the group
		}

		wait := bo.NextBackOff()
		s.log.Error("task failed, restarting",
			zap.String("task", t.Name),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			s.log.Info("task stopped", zap.String("task", t.Name))
			return nil
		}
	}
}

func (s *Supervisor) record(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = multierror.Append(s.failures, errors.Wrap(err, name))
}
