package memory

import (
	"context"
	"testing"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestResponsibleSearchIsCaseInsensitive(t *testing.T) {
	s := NewStore()
	s.AddResponsible(model.Responsible{ID: "r1", Name: "Maria Souza"})
	repos := s.Repositories()
	ctx := context.Background()

	r, err := repos.Responsibles.SearchByName(ctx, "souza")
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)

	_, err = repos.Responsibles.FindByName(ctx, "maria souza")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestScheduleListingSkipsCancelledAndSorts(t *testing.T) {
	s := NewStore()
	s.AddScheduleEntry(model.ScheduleEntry{ID: "late", Date: day(5), Time: "15:00", Status: model.SchedulePending})
	s.AddScheduleEntry(model.ScheduleEntry{ID: "early", Date: day(5), Time: "09:00", Status: model.ScheduleConfirmed})
	s.AddScheduleEntry(model.ScheduleEntry{ID: "gone", Date: day(5), Time: "10:00", Status: model.ScheduleCancelled})
	s.AddScheduleEntry(model.ScheduleEntry{ID: "next", Date: day(6), Time: "08:00", Status: model.SchedulePending})

	entries, err := s.Repositories().Schedule.ListActiveBetween(context.Background(), day(5), day(6))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "early", entries[0].ID)
	assert.Equal(t, "late", entries[1].ID)
}

func TestScheduleUpdatesCountAsWrites(t *testing.T) {
	s := NewStore()
	s.AddScheduleEntry(model.ScheduleEntry{ID: "a", Date: day(5), Time: "15:00", Status: model.SchedulePending, ReminderSent: true})
	repo := s.Repositories().Schedule
	ctx := context.Background()

	require.NoError(t, repo.Reschedule(ctx, "a", day(7), "10:30"))
	assert.Equal(t, 1, s.Writes())

	e, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, day(7), e.Date)
	assert.Equal(t, "10:30", e.Time)
	assert.False(t, e.ReminderSent)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", model.ScheduleDone), service.ErrNotFound)
	assert.Equal(t, 1, s.Writes())
}

func TestExpenseSumByCategory(t *testing.T) {
	s := NewStore()
	s.AddExpense(model.Expense{ID: "1", Category: model.ExpenseFood, Amount: 30, Date: day(2)})
	s.AddExpense(model.Expense{ID: "2", Category: model.ExpenseRent, Amount: 500, Date: day(3)})
	s.AddExpense(model.Expense{ID: "3", Category: model.ExpenseFood, Amount: 20.5, Date: day(4)})
	s.AddExpense(model.Expense{ID: "4", Category: model.ExpenseFood, Amount: 99, Date: day(31).AddDate(0, 0, 1)})

	totals, err := s.Repositories().Expenses.SumByCategoryBetween(context.Background(), day(1), day(1).AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryTotal{
		{Category: model.ExpenseRent, Total: 500},
		{Category: model.ExpenseFood, Total: 50.5},
	}, totals)
}

func TestQuoteSearchLimitNewestFirst(t *testing.T) {
	s := NewStore()
	base := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		s.AddQuote(model.Quote{
			ID:        string(rune('a' + i)),
			Client:    "Ana Lima",
			Status:    model.QuoteDraft,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	quotes, err := s.Repositories().Quotes.SearchByClient(context.Background(), "ANA", 5)
	require.NoError(t, err)
	require.Len(t, quotes, 5)
	assert.Equal(t, "g", quotes[0].ID)
	assert.Equal(t, "c", quotes[4].ID)
}
