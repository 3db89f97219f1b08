package jobs

import (
	"context"
	"log/slog"
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultExpirySchedule = "*/5 * * * * *"
	expiryLockName        = "assignment-expiry"
)

type assignmentExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireAssignmentsCommand) ([]order.ID, error)
}

// SweepLock lets only one replica run a tick. ok is false when another replica
// holds the lock.
type SweepLock interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

// noLock is used for single-replica deployments.
type noLock struct{}

func (noLock) TryLock(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

// AssignmentExpiryJob reverts assignments whose confirmation deadline passed.
type AssignmentExpiryJob struct {
	handler  assignmentExpirer
	lock     SweepLock
	metrics  *metrics.Metrics
	schedule string
	lockTTL  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAssignmentExpiryJob creates the job. An empty schedule selects
// DefaultExpirySchedule (every five seconds); a nil lock disables locking.
func NewAssignmentExpiryJob(
	handler assignmentExpirer,
	lock SweepLock,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *AssignmentExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	if lock == nil {
		lock = noLock{}
	}
	return &AssignmentExpiryJob{
		handler:  handler,
		lock:     lock,
		metrics:  m,
		schedule: schedule,
		lockTTL:  4 * time.Second,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "assignment_expiry_job"),
	}
}

func (j *AssignmentExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *AssignmentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Assignment expiry job stopped")
}

// RunOnce performs one sweep and returns the reverted orders. It returns nil
// without sweeping when another replica holds the lock.
func (j *AssignmentExpiryJob) RunOnce(ctx context.Context) ([]order.ID, error) {
	unlock, ok, err := j.lock.TryLock(ctx, expiryLockName, j.lockTTL)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment expiry lock failed", "error", err)
		return nil, err
	}
	if !ok {
		j.logger.DebugContext(ctx, "Assignment expiry skipped, lock held elsewhere")
		return nil, nil
	}
	defer func() {
		if unlockErr := unlock(ctx); unlockErr != nil {
			j.logger.WarnContext(ctx, "Assignment expiry unlock failed", "error", unlockErr)
		}
	}()

	cmd, err := commands.NewExpireAssignmentsCommand(j.now().UTC())
	if err != nil {
		return nil, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment expiry sweep failed", "error", err)
		return nil, err
	}

	if len(expired) > 0 {
		j.metrics.ExpiredAssignments.Add(float64(len(expired)))
		j.logger.InfoContext(ctx, "Expired assignments reverted", "count", len(expired), "orders", expired)
	}
	return expired, nil
}
