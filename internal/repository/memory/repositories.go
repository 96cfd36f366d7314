package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

type ResponsibleRepository struct{ s *Store }

func (r *ResponsibleRepository) FindByName(_ context.Context, name string) (*model.Responsible, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *model.Responsible
	for _, resp := range r.s.responsibles {
		if resp.Name == name && (found == nil || resp.CreatedAt.Before(found.CreatedAt)) {
			found = &resp
		}
	}
	if found == nil {
		return nil, service.ErrNotFound
	}
	return found, nil
}

func (r *ResponsibleRepository) SearchByName(_ context.Context, fragment string) (*model.Responsible, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(fragment)
	var found *model.Responsible
	for _, resp := range r.s.responsibles {
		if !strings.Contains(strings.ToLower(resp.Name), needle) {
			continue
		}
		if found == nil || resp.CreatedAt.Before(found.CreatedAt) {
			found = &resp
		}
	}
	if found == nil {
		return nil, service.ErrNotFound
	}
	return found, nil
}

func (r *ResponsibleRepository) GetByID(_ context.Context, id string) (*model.Responsible, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	resp, ok := r.s.responsibles[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &resp, nil
}

type PackageRepository struct{ s *Store }

func (r *PackageRepository) FindByResponsibleDueBetween(_ context.Context, responsibleID string, from, to time.Time) (*model.PaymentPackage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.packages {
		if p.ResponsibleID == responsibleID && inRange(p.DueDate, from, to) {
			return &p, nil
		}
	}
	return nil, service.ErrNotFound
}

func (r *PackageRepository) ListUnpaid(_ context.Context) ([]*model.PaymentPackage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.PaymentPackage
	for _, p := range r.s.packages {
		if !p.IsPaid {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *PackageRepository) MarkPaid(_ context.Context, id string, method model.PaymentMethod, paidAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.packages[id]
	if !ok {
		return service.ErrNotFound
	}
	p.IsPaid = true
	p.Method = &method
	p.PaidAt = &paidAt
	p.UpdatedAt = paidAt
	r.s.packages[id] = p
	r.s.writes++
	return nil
}

func (r *PackageRepository) SumPaidBetween(_ context.Context, from, to time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total float64
	for _, p := range r.s.packages {
		if p.IsPaid && p.PaidAt != nil && inRange(*p.PaidAt, from, to) {
			total += p.Amount
		}
	}
	return total, nil
}

type ScheduleRepository struct{ s *Store }

func (r *ScheduleRepository) Create(_ context.Context, e *model.ScheduleEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedule[e.ID] = *e
	r.s.writes++
	return nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.schedule[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &e, nil
}

func (r *ScheduleRepository) FindByDayAndTime(_ context.Context, from, to time.Time, clock string) (*model.ScheduleEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *model.ScheduleEntry
	for _, e := range r.s.schedule {
		if e.Time != clock || !inRange(e.Date, from, to) {
			continue
		}
		if found == nil || e.CreatedAt.Before(found.CreatedAt) {
			found = &e
		}
	}
	if found == nil {
		return nil, service.ErrNotFound
	}
	return found, nil
}

func (r *ScheduleRepository) ListActiveBetween(_ context.Context, from, to time.Time) ([]*model.ScheduleEntry, error) {
	return r.filter(func(e *model.ScheduleEntry) bool {
		return e.Status != model.ScheduleCancelled && inRange(e.Date, from, to)
	}), nil
}

func (r *ScheduleRepository) ListPendingReminders(_ context.Context) ([]*model.ScheduleEntry, error) {
	return r.filter(func(e *model.ScheduleEntry) bool {
		return e.Status != model.ScheduleCancelled && !e.ReminderSent
	}), nil
}

func (r *ScheduleRepository) filter(keep func(*model.ScheduleEntry) bool) []*model.ScheduleEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.ScheduleEntry
	for _, e := range r.s.schedule {
		if keep(&e) {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return scheduleLess(out[i], out[j]) })
	return out
}

func (r *ScheduleRepository) update(id string, apply func(*model.ScheduleEntry)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.schedule[id]
	if !ok {
		return service.ErrNotFound
	}
	apply(&e)
	r.s.schedule[id] = e
	r.s.writes++
	return nil
}

func (r *ScheduleRepository) UpdateStatus(_ context.Context, id string, status model.ScheduleStatus) error {
	return r.update(id, func(e *model.ScheduleEntry) { e.Status = status })
}

func (r *ScheduleRepository) MarkReminderSent(_ context.Context, id string) error {
	return r.update(id, func(e *model.ScheduleEntry) { e.ReminderSent = true })
}

func (r *ScheduleRepository) Reschedule(_ context.Context, id string, date time.Time, clock string) error {
	return r.update(id, func(e *model.ScheduleEntry) {
		e.Date = date
		e.Time = clock
		e.ReminderSent = false
	})
}

type ExpenseRepository struct{ s *Store }

func (r *ExpenseRepository) Create(_ context.Context, e *model.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.expenses[e.ID] = *e
	r.s.writes++
	return nil
}

func (r *ExpenseRepository) ListBetween(_ context.Context, from, to time.Time) ([]*model.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Expense
	for _, e := range r.s.expenses {
		if inRange(e.Date, from, to) {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return expenseLess(out[i], out[j]) })
	return out, nil
}

func (r *ExpenseRepository) SumByCategoryBetween(_ context.Context, from, to time.Time) ([]model.CategoryTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := make(map[model.ExpenseCategory]float64)
	for _, e := range r.s.expenses {
		if inRange(e.Date, from, to) {
			sums[e.Category] += e.Amount
		}
	}
	out := make([]model.CategoryTotal, 0, len(sums))
	for c, t := range sums {
		out = append(out, model.CategoryTotal{Category: c, Total: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

type QuoteRepository struct{ s *Store }

func (r *QuoteRepository) Create(_ context.Context, q *model.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quotes[q.ID] = *q
	r.s.writes++
	return nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (*model.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.quotes[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &q, nil
}

func (r *QuoteRepository) SearchByClient(_ context.Context, fragment string, limit int) ([]*model.Quote, error) {
	needle := strings.ToLower(fragment)
	out := r.newest(func(q *model.Quote) bool {
		return strings.Contains(strings.ToLower(q.Client), needle)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *QuoteRepository) ListByStatus(_ context.Context, status *model.QuoteStatus) ([]*model.Quote, error) {
	return r.newest(func(q *model.Quote) bool {
		return status == nil || q.Status == *status
	}), nil
}

func (r *QuoteRepository) newest(keep func(*model.Quote) bool) []*model.Quote {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Quote
	for _, q := range r.s.quotes {
		if keep(&q) {
			out = append(out, &q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *QuoteRepository) UpdateStatus(_ context.Context, id string, status model.QuoteStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok {
		return service.ErrNotFound
	}
	q.Status = status
	r.s.quotes[id] = q
	r.s.writes++
	return nil
}

type QuotePaymentRepository struct{ s *Store }

func (r *QuotePaymentRepository) SumBetween(_ context.Context, from, to time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total float64
	for _, p := range r.s.quotePayments {
		if inRange(p.PaidAt, from, to) {
			total += p.Amount
		}
	}
	return total, nil
}
