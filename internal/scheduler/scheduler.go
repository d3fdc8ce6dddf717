// Package scheduler triggers auto-post passes at startup and on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/service"
)

const passTimeout = 10 * time.Minute

type runner interface {
	Run(ctx context.Context, referenceDate time.Time, source string) (int, error)
}

type Scheduler struct {
	runner runner
	logger *logrus.Logger
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New parses spec, a six-field cron expression with seconds, in the server's local time.
func New(r runner, spec string, logger *logrus.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		runner: r,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
	)
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.ctx, service.SourceDaily) }); err != nil {
		cancel()
		return nil, fmt.Errorf("autopost cron %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce performs one pass for today. Failures are logged, never returned, so a bad
// pass cannot take the process down.
func (s *Scheduler) RunOnce(ctx context.Context, source string) int {
	ctx, cancel := context.WithTimeout(ctx, passTimeout)
	defer cancel()

	created, err := s.runner.Run(ctx, time.Time{}, source)
	if err != nil {
		s.logger.WithError(err).WithField("source", source).Warn("Scheduler.Pass.Failed")
		return 0
	}
	return created
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("next", s.cron.Entries()[0].Next).Info("Scheduler.Started")
}

// Stop halts the schedule and waits for a running pass to finish or be cancelled.
func (s *Scheduler) Stop() {
	stopped := s.cron.Stop()
	s.cancel()
	<-stopped.Done()
}

// cronLogger adapts logrus to cron.Logger.
type cronLogger struct {
	logger *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Debug("Scheduler.Cron." + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithError(err).WithFields(fields(keysAndValues)).Error("Scheduler.Cron." + msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
