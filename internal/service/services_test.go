package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/repository/memory"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var loc = time.FixedZone("BRT", -3*60*60)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fakeCalendar struct {
	created []string
	updated []string
	deleted []string
	err     error
}

func (f *fakeCalendar) CreateEvent(_ context.Context, e *model.ScheduleEntry) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, e.ID)
	return "evt-" + e.ID, nil
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, id string, _ *model.ScheduleEntry) error {
	f.updated = append(f.updated, id)
	return f.err
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestPaymentServiceFindAndRegister(t *testing.T) {
	store := memory.NewStore()
	store.AddResponsible(model.Responsible{ID: "r1", Name: "Joana Prado"})
	store.AddPackage(model.PaymentPackage{
		ID:            "p1",
		ResponsibleID: "r1",
		Amount:        350,
		DueDate:       time.Date(2024, time.March, 10, 0, 0, 0, 0, loc),
	})
	repos := store.Repositories()
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, loc)
	svc := service.NewPaymentService(repos.Responsibles, repos.Packages, loc, fixedNow(now), zap.NewNop())
	ctx := context.Background()

	found, err := svc.FindPackage(ctx, time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), " Joana Prado ")
	require.NoError(t, err)
	assert.Equal(t, "p1", found.Package.ID)
	assert.Equal(t, "Joana Prado", found.Responsible.Name)

	_, err = svc.FindPackage(ctx, time.Date(2024, time.March, 11, 0, 0, 0, 0, loc), "Joana Prado")
	assert.ErrorIs(t, err, service.ErrPackageNotFound)

	_, err = svc.FindPackage(ctx, time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), "Ninguem")
	assert.ErrorIs(t, err, service.ErrResponsibleNotFound)

	assert.ErrorIs(t, svc.RegisterPayment(ctx, "p1", model.PaymentCredit), service.ErrInvalidInput)
	require.NoError(t, svc.RegisterPayment(ctx, "p1", model.PaymentPix))

	pkg, ok := store.Package("p1")
	require.True(t, ok)
	assert.True(t, pkg.IsPaid)
	require.NotNil(t, pkg.Method)
	assert.Equal(t, model.PaymentPix, *pkg.Method)
	require.NotNil(t, pkg.PaidAt)
	assert.Equal(t, now, *pkg.PaidAt)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestScheduleServiceCreateUsesCalendarID(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	cal := &fakeCalendar{}
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, cal, loc, fixedNow(time.Now()), zap.NewNop())

	entry, err := svc.Create(context.Background(), service.ScheduleInput{
		Type:          model.ScheduleParty,
		Date:          time.Date(2024, time.April, 2, 0, 0, 0, 0, loc),
		Time:          "14:00",
		DurationHours: 3,
		Location:      "Salao",
		Description:   "Aniversario",
	})
	require.NoError(t, err)
	require.NotNil(t, entry.CalendarEventID)
	assert.Equal(t, "evt-"+entry.ID, *entry.CalendarEventID)
	assert.Equal(t, model.SchedulePending, entry.Status)
	assert.Equal(t, 1, store.Writes())
}

func TestScheduleServiceCreateCalendarFailureWritesNothing(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	cal := &fakeCalendar{err: errors.New("calendar down")}
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, cal, loc, fixedNow(time.Now()), zap.NewNop())

	_, err := svc.Create(context.Background(), service.ScheduleInput{
		Type: model.ScheduleEvent,
		Date: time.Date(2024, time.April, 2, 0, 0, 0, 0, loc),
		Time: "14:00",
	})
	require.Error(t, err)
	assert.Zero(t, store.Writes())
	assert.Empty(t, store.ScheduleEntries())
}

func TestScheduleServiceCancelDeletesEvent(t *testing.T) {
	store := memory.NewStore()
	eventID := "evt-1"
	store.AddScheduleEntry(model.ScheduleEntry{
		ID:              "a1",
		Date:            time.Date(2024, time.April, 2, 0, 0, 0, 0, loc),
		Time:            "10:00",
		Status:          model.ScheduleConfirmed,
		CalendarEventID: &eventID,
	})
	repos := store.Repositories()
	cal := &fakeCalendar{}
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, cal, loc, fixedNow(time.Now()), zap.NewNop())
	ctx := context.Background()

	entry, err := svc.FindAt(ctx, time.Date(2024, time.April, 2, 0, 0, 0, 0, loc), "10:00")
	require.NoError(t, err)
	require.NoError(t, svc.ChangeStatus(ctx, entry.ID, model.ScheduleCancelled))

	assert.Equal(t, []string{"evt-1"}, cal.deleted)
	assert.Equal(t, model.ScheduleCancelled, store.ScheduleEntries()[0].Status)

	_, err = svc.FindAt(ctx, time.Date(2024, time.April, 2, 0, 0, 0, 0, loc), "11:00")
	assert.ErrorIs(t, err, service.ErrEntryNotFound)
}

func TestDueRemindersWindowAndIdempotence(t *testing.T) {
	store := memory.NewStore()
	day := time.Date(2024, time.April, 2, 0, 0, 0, 0, loc)
	store.AddScheduleEntry(model.ScheduleEntry{ID: "in", Date: day, Time: "11:00", Status: model.SchedulePending})
	store.AddScheduleEntry(model.ScheduleEntry{ID: "edge", Date: day, Time: "10:46", Status: model.ScheduleConfirmed})
	store.AddScheduleEntry(model.ScheduleEntry{ID: "far", Date: day, Time: "11:01", Status: model.SchedulePending})
	store.AddScheduleEntry(model.ScheduleEntry{ID: "soon", Date: day, Time: "10:45", Status: model.SchedulePending})
	store.AddScheduleEntry(model.ScheduleEntry{ID: "off", Date: day, Time: "11:00", Status: model.ScheduleCancelled})

	repos := store.Repositories()
	now := time.Date(2024, time.April, 2, 10, 0, 0, 0, loc)
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, &fakeCalendar{}, loc, fixedNow(now), zap.NewNop())
	ctx := context.Background()

	due, err := svc.DueReminders(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(due))
	for _, e := range due {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"in", "edge"}, ids)

	for _, id := range ids {
		require.NoError(t, svc.MarkReminderSent(ctx, id))
	}

	due, err = svc.DueReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestEveryStartTimeGetsOneReminder(t *testing.T) {
	store := memory.NewStore()
	day := time.Date(2024, time.April, 2, 0, 0, 0, 0, loc)
	for m := 0; m < 60; m++ {
		store.AddScheduleEntry(model.ScheduleEntry{
			ID:     fmt.Sprintf("m%02d", m),
			Date:   day,
			Time:   fmt.Sprintf("10:%02d", m),
			Status: model.SchedulePending,
		})
	}

	repos := store.Repositories()
	now := time.Date(2024, time.April, 2, 8, 30, 0, 0, loc)
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, &fakeCalendar{}, loc,
		func() time.Time { return now }, zap.NewNop())
	ctx := context.Background()

	sent := make(map[string]int)
	for ; now.Hour() < 11; now = now.Add(15 * time.Minute) {
		due, err := svc.DueReminders(ctx)
		require.NoError(t, err)
		for _, e := range due {
			sent[e.ID]++
			require.NoError(t, svc.MarkReminderSent(ctx, e.ID))
		}
	}

	require.Len(t, sent, 60)
	for id, n := range sent {
		assert.Equal(t, 1, n, id)
	}
}

type failingScheduleRepo struct {
	service.ScheduleRepository
}

func (failingScheduleRepo) Create(context.Context, *model.ScheduleEntry) error {
	return errors.New("insert failed")
}

func TestScheduleServiceCreateRemovesEventWhenInsertFails(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	cal := &fakeCalendar{}
	svc := service.NewScheduleService(failingScheduleRepo{repos.Schedule}, repos.Responsibles, cal, loc,
		fixedNow(time.Now()), zap.NewNop())

	_, err := svc.Create(context.Background(), service.ScheduleInput{
		Type: model.ScheduleEvent,
		Date: time.Date(2024, time.April, 2, 0, 0, 0, 0, loc),
		Time: "14:00",
	})
	require.Error(t, err)
	require.Len(t, cal.created, 1)
	assert.Equal(t, []string{"evt-" + cal.created[0]}, cal.deleted)
}

func TestCancelStandsWhenCalendarDeleteFails(t *testing.T) {
	store := memory.NewStore()
	eventID := "evt-2"
	store.AddScheduleEntry(model.ScheduleEntry{
		ID:              "a2",
		Date:            time.Date(2024, time.April, 2, 0, 0, 0, 0, loc),
		Time:            "10:00",
		Status:          model.SchedulePending,
		CalendarEventID: &eventID,
	})
	repos := store.Repositories()
	cal := &fakeCalendar{err: errors.New("calendar down")}
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, cal, loc, fixedNow(time.Now()), zap.NewNop())

	require.NoError(t, svc.Cancel(context.Background(), "a2"))
	assert.Equal(t, []string{"evt-2"}, cal.deleted)
	assert.Equal(t, model.ScheduleCancelled, store.ScheduleEntries()[0].Status)
}

func TestRescheduleRearmsReminder(t *testing.T) {
	store := memory.NewStore()
	eventID := "evt-9"
	store.AddScheduleEntry(model.ScheduleEntry{
		ID:              "a9",
		Date:            time.Date(2024, time.April, 2, 0, 0, 0, 0, loc),
		Time:            "10:00",
		Status:          model.SchedulePending,
		ReminderSent:    true,
		CalendarEventID: &eventID,
	})
	repos := store.Repositories()
	cal := &fakeCalendar{}
	svc := service.NewScheduleService(repos.Schedule, repos.Responsibles, cal, loc, fixedNow(time.Now()), zap.NewNop())

	entry, err := svc.Reschedule(context.Background(), "a9", time.Date(2024, time.April, 9, 15, 0, 0, 0, loc), "16:00")
	require.NoError(t, err)
	assert.Equal(t, "16:00", entry.Time)
	assert.Equal(t, []string{"evt-9"}, cal.updated)

	stored := store.ScheduleEntries()[0]
	assert.False(t, stored.ReminderSent)
	assert.Equal(t, time.Date(2024, time.April, 9, 0, 0, 0, 0, loc), stored.Date)
}

func TestQuoteServiceCreate(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, loc)
	svc := service.NewQuoteService(store.Repositories().Quotes, "https://office.example/", loc, fixedNow(now), zap.NewNop())

	q, err := svc.Create(context.Background(), service.QuoteInput{
		Client:           "  Carla ",
		Type:             model.QuoteParty,
		EventDate:        time.Date(2024, time.June, 20, 0, 0, 0, 0, loc),
		Time:             "15:00",
		Children:         20,
		Staff:            2,
		DurationHours:    3,
		HolidayOrWeekend: true,
		TravelCost:       50,
		Discount:         20,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla", q.Client)
	assert.InDelta(t, 980, q.FinalValue, 0.001)
	assert.Equal(t, model.QuoteDraft, q.Status)
	assert.Equal(t, "avulso", q.PackageKind)
	assert.Equal(t, now.AddDate(0, 0, 30), q.ValidUntil)
	assert.Equal(t, "https://office.example/orcamentos/visualizar/"+q.ID, svc.Link(q.ID))

	_, err = svc.SearchByClient(context.Background(), "zzz")
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), q.ID, "perdido"), service.ErrInvalidInput)
	require.NoError(t, svc.UpdateStatus(context.Background(), q.ID, model.QuoteSent))
	assert.Equal(t, model.QuoteSent, store.Quotes()[0].Status)
}

func TestExpenseDateRangeIsInclusive(t *testing.T) {
	store := memory.NewStore()
	store.AddExpense(model.Expense{ID: "1", Category: model.ExpenseFood, Amount: 10, Date: time.Date(2024, time.May, 1, 0, 0, 0, 0, loc)})
	store.AddExpense(model.Expense{ID: "2", Category: model.ExpenseFood, Amount: 15.5, Date: time.Date(2024, time.May, 3, 0, 0, 0, 0, loc)})
	store.AddExpense(model.Expense{ID: "3", Category: model.ExpenseFood, Amount: 99, Date: time.Date(2024, time.May, 4, 0, 0, 0, 0, loc)})
	svc := service.NewExpenseService(store.Repositories().Expenses, loc, fixedNow(time.Now()), zap.NewNop())
	ctx := context.Background()

	summary, err := svc.DateRange(ctx, time.Date(2024, time.May, 1, 0, 0, 0, 0, loc), time.Date(2024, time.May, 3, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Len(t, summary.Expenses, 2)
	assert.InDelta(t, 25.5, summary.Total, 0.001)

	_, err = svc.DateRange(ctx, time.Date(2024, time.May, 3, 0, 0, 0, 0, loc), time.Date(2024, time.May, 1, 0, 0, 0, 0, loc))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestMonthlyReport(t *testing.T) {
	store := memory.NewStore()
	paidAt := time.Date(2024, time.May, 10, 12, 0, 0, 0, loc)
	store.AddPackage(model.PaymentPackage{ID: "p1", Amount: 400, IsPaid: true, PaidAt: &paidAt})
	store.AddPackage(model.PaymentPackage{ID: "p2", Amount: 400})
	store.AddQuotePayment(model.QuotePayment{ID: "qp", Amount: 600, PaidAt: time.Date(2024, time.May, 2, 0, 0, 0, 0, loc)})
	store.AddQuotePayment(model.QuotePayment{ID: "qp-old", Amount: 999, PaidAt: time.Date(2024, time.April, 30, 0, 0, 0, 0, loc)})
	store.AddExpense(model.Expense{ID: "e1", Category: model.ExpenseFood, Amount: 100, Date: time.Date(2024, time.May, 5, 0, 0, 0, 0, loc)})
	store.AddExpense(model.Expense{ID: "e2", Category: model.ExpenseRent, Amount: 300, Date: time.Date(2024, time.May, 6, 0, 0, 0, 0, loc)})

	repos := store.Repositories()
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, loc)
	svc := service.NewReportService(repos.Packages, repos.Expenses, repos.QuotePayments, loc, fixedNow(now), zap.NewNop())

	report, err := svc.PreviousMonth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.May, report.Month)
	assert.InDelta(t, 1000, report.Revenue(), 0.001)
	assert.InDelta(t, 400, report.TotalExpenses, 0.001)
	assert.InDelta(t, 600, report.Balance(), 0.001)
	assert.InDelta(t, 60, report.Margin(), 0.001)
	require.Len(t, report.Expenses, 2)
	assert.Equal(t, model.ExpenseRent, report.Expenses[0].Category)

	_, err = svc.Monthly(context.Background(), 2024, 13)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestExpenseCategoryTotalsSortedDescending(t *testing.T) {
	store := memory.NewStore()
	day := time.Date(2024, time.May, 14, 0, 0, 0, 0, loc)
	store.AddExpense(model.Expense{ID: "e1", Category: model.ExpenseFood, Amount: 40, Date: day})
	store.AddExpense(model.Expense{ID: "e2", Category: model.ExpenseRent, Amount: 900, Date: day})
	store.AddExpense(model.Expense{ID: "e3", Category: model.ExpenseFood, Amount: 25.5, Date: day})
	store.AddExpense(model.Expense{ID: "e4", Category: model.ExpenseRent, Amount: 100, Date: day.AddDate(0, -1, 0)})

	svc := service.NewExpenseService(store.Repositories().Expenses, loc, fixedNow(day.Add(10*time.Hour)), zap.NewNop())
	totals, sum, err := svc.CategoryTotals(context.Background(), service.PeriodMonth)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, model.ExpenseRent, totals[0].Category)
	assert.InDelta(t, 65.5, totals[1].Total, 0.001)
	assert.InDelta(t, 965.5, sum, 0.001)

	_, _, err = svc.CategoryTotals(context.Background(), service.Period("ano"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
