// Package memory keeps every persistence port in process memory. It backs
// STORAGE=memory runs and the handler tests.
package memory

import (
	"sort"
	"sync"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

type Store struct {
	mu            sync.RWMutex
	responsibles  map[string]model.Responsible
	packages      map[string]model.PaymentPackage
	schedule      map[string]model.ScheduleEntry
	expenses      map[string]model.Expense
	quotes        map[string]model.Quote
	quotePayments map[string]model.QuotePayment
	writes        int
}

func NewStore() *Store {
	return &Store{
		responsibles:  make(map[string]model.Responsible),
		packages:      make(map[string]model.PaymentPackage),
		schedule:      make(map[string]model.ScheduleEntry),
		expenses:      make(map[string]model.Expense),
		quotes:        make(map[string]model.Quote),
		quotePayments: make(map[string]model.QuotePayment),
	}
}

// Repositories exposes the store through the service ports.
func (s *Store) Repositories() *service.Repositories {
	return &service.Repositories{
		Responsibles:  &ResponsibleRepository{s},
		Packages:      &PackageRepository{s},
		Schedule:      &ScheduleRepository{s},
		Expenses:      &ExpenseRepository{s},
		Quotes:        &QuoteRepository{s},
		QuotePayments: &QuotePaymentRepository{s},
	}
}

// Writes counts inserts and updates made through the ports. Seeding does
// not count.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *Store) AddResponsible(r model.Responsible) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responsibles[r.ID] = r
}

func (s *Store) AddPackage(p model.PaymentPackage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[p.ID] = p
}

func (s *Store) AddScheduleEntry(e model.ScheduleEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule[e.ID] = e
}

func (s *Store) AddExpense(e model.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
}

func (s *Store) AddQuote(q model.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.ID] = q
}

func (s *Store) AddQuotePayment(p model.QuotePayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotePayments[p.ID] = p
}

func (s *Store) Package(id string) (model.PaymentPackage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packages[id]
	return p, ok
}

// ScheduleEntries returns a snapshot sorted by date then time.
func (s *Store) ScheduleEntries() []model.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ScheduleEntry, 0, len(s.schedule))
	for _, e := range s.schedule {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return scheduleLess(&out[i], &out[j]) })
	return out
}

// Expenses returns a snapshot, newest first.
func (s *Store) Expenses() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return expenseLess(&out[i], &out[j]) })
	return out
}

// Quotes returns a snapshot, newest first.
func (s *Store) Quotes() []model.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func scheduleLess(a, b *model.ScheduleEntry) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.Time < b.Time
}

func expenseLess(a, b *model.Expense) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
