package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeJobs struct {
	calls  []string
	chats  []int64
	digErr error
}

func (f *fakeJobs) SendDailyDigest(_ context.Context, chatID int64) error {
	f.calls = append(f.calls, "digest")
	f.chats = append(f.chats, chatID)
	return f.digErr
}

func (f *fakeJobs) SendHourReminders(_ context.Context, chatID int64) error {
	f.calls = append(f.calls, "reminders")
	f.chats = append(f.chats, chatID)
	return nil
}

func (f *fakeJobs) SendPreviousMonthReport(_ context.Context, chatID int64) error {
	f.calls = append(f.calls, "report")
	f.chats = append(f.chats, chatID)
	return nil
}

var brt = time.FixedZone("BRT", -3*60*60)

func TestSchedulerSpecsUseLocation(t *testing.T) {
	s, err := NewScheduler(&fakeJobs{}, 900, brt, zap.NewNop())
	require.NoError(t, err)

	from := time.Date(2024, time.March, 12, 9, 0, 0, 0, brt)

	next, ok := s.Next("daily_digest", from)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2024, time.March, 13, 6, 0, 0, 0, brt)), next)

	next, ok = s.Next("hour_reminders", from)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2024, time.March, 12, 9, 15, 0, 0, brt)), next)

	next, ok = s.Next("monthly_report", from)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2024, time.April, 1, 8, 0, 0, 0, brt)), next)

	_, ok = s.Next("unknown", from)
	assert.False(t, ok)
}

func TestSchedulerRunTargetsChat(t *testing.T) {
	jobs := &fakeJobs{digErr: errors.New("telegram down")}
	s, err := NewScheduler(jobs, 900, brt, zap.NewNop())
	require.NoError(t, err)

	s.run("daily_digest", jobs.SendDailyDigest)
	s.run("hour_reminders", jobs.SendHourReminders)

	assert.Equal(t, []string{"digest", "reminders"}, jobs.calls)
	assert.Equal(t, []int64{900, 900}, jobs.chats)
}

func TestSchedulerStartStop(t *testing.T) {
	s, err := NewScheduler(&fakeJobs{}, 900, brt, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Stop()
}
