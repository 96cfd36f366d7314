package service

import (
	"context"
	"errors"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
)

var (
	// ErrNotFound is returned by repositories when no record matches.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks values rejected before reaching storage.
	ErrInvalidInput = errors.New("invalid input")
)

type ResponsibleRepository interface {
	// FindByName matches the full name exactly.
	FindByName(ctx context.Context, name string) (*model.Responsible, error)
	// SearchByName returns the first case-insensitive substring match.
	SearchByName(ctx context.Context, fragment string) (*model.Responsible, error)
	GetByID(ctx context.Context, id string) (*model.Responsible, error)
}

type PackageRepository interface {
	FindByResponsibleDueBetween(ctx context.Context, responsibleID string, from, to time.Time) (*model.PaymentPackage, error)
	ListUnpaid(ctx context.Context) ([]*model.PaymentPackage, error)
	MarkPaid(ctx context.Context, id string, method model.PaymentMethod, paidAt time.Time) error
	SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	FindByDayAndTime(ctx context.Context, from, to time.Time, clock string) (*model.ScheduleEntry, error)
	// ListActiveBetween skips cancelled entries and sorts by date, then time.
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*model.ScheduleEntry, error)
	// ListPendingReminders returns non-cancelled entries whose reminder flag is unset.
	ListPendingReminders(ctx context.Context) ([]*model.ScheduleEntry, error)
	UpdateStatus(ctx context.Context, id string, status model.ScheduleStatus) error
	MarkReminderSent(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, date time.Time, clock string) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	// ListBetween returns expenses in [from, to), newest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Expense, error)
	SumByCategoryBetween(ctx context.Context, from, to time.Time) ([]model.CategoryTotal, error)
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
	SearchByClient(ctx context.Context, fragment string, limit int) ([]*model.Quote, error)
	// ListByStatus lists every quote when status is nil. Newest first.
	ListByStatus(ctx context.Context, status *model.QuoteStatus) ([]*model.Quote, error)
	UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) error
}

type QuotePaymentRepository interface {
	SumBetween(ctx context.Context, from, to time.Time) (float64, error)
}

// Calendar mirrors schedule entries to the external calendar.
type Calendar interface {
	CreateEvent(ctx context.Context, entry *model.ScheduleEntry) (string, error)
	UpdateEvent(ctx context.Context, eventID string, entry *model.ScheduleEntry) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// Repositories groups the persistence ports so storage backends can be swapped.
type Repositories struct {
	Responsibles  ResponsibleRepository
	Packages      PackageRepository
	Schedule      ScheduleRepository
	Expenses      ExpenseRepository
	Quotes        QuoteRepository
	QuotePayments QuotePaymentRepository
}
