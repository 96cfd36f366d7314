package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cron specs, evaluated in the configured time zone.
const (
	DailyDigestSpec   = "0 6 * * *"
	ReminderSpec      = "*/15 * * * *"
	MonthlyReportSpec = "0 8 1 * *"
)

const jobTimeout = 2 * time.Minute

// Jobs are the background tasks. Each one reports to a single chat.
type Jobs interface {
	SendDailyDigest(ctx context.Context, chatID int64) error
	SendHourReminders(ctx context.Context, chatID int64) error
	SendPreviousMonthReport(ctx context.Context, chatID int64) error
}

// Scheduler runs the background jobs on cron schedules. A run that is still
// going when its next tick fires is skipped.
type Scheduler struct {
	cron    *cron.Cron
	jobs    Jobs
	chatID  int64
	entries map[string]cron.EntryID
	ctx     context.Context
	logger  *zap.Logger
}

func NewScheduler(jobs Jobs, chatID int64, loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		jobs:    jobs,
		chatID:  chatID,
		entries: make(map[string]cron.EntryID),
		ctx:     context.Background(),
		logger:  logger,
	}

	for _, j := range []struct {
		name string
		spec string
		run  func(context.Context, int64) error
	}{
		{"daily_digest", DailyDigestSpec, jobs.SendDailyDigest},
		{"hour_reminders", ReminderSpec, jobs.SendHourReminders},
		{"monthly_report", MonthlyReportSpec, jobs.SendPreviousMonthReport},
	} {
		name, run := j.name, j.run
		id, err := s.cron.AddFunc(j.spec, func() { s.run(name, run) })
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", name, err)
		}
		s.entries[name] = id
	}

	return s, nil
}

// Start launches the cron loop. Job runs derive their context from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("jobs", len(s.entries)))
	s.ctx = ctx
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}

// Next reports when the named job fires next.
func (s *Scheduler) Next(name string, from time.Time) (time.Time, bool) {
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Schedule.Next(from), true
}

func (s *Scheduler) run(name string, job func(context.Context, int64) error) {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx, s.chatID); err != nil {
		s.logger.Error("Background job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.logger.Info("Background job completed",
		zap.String("job", name),
		zap.Duration("took", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
