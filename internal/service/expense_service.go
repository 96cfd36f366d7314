package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"go.uber.org/zap"
)

type ExpenseInput struct {
	Category    model.ExpenseCategory
	Amount      float64
	Date        time.Time
	Description string
	Method      *model.PaymentMethod
}

// ExpenseSummary is a listing plus its total.
type ExpenseSummary struct {
	From     time.Time
	To       time.Time
	Expenses []*model.Expense
	Total    float64
}

type ExpenseService struct {
	repo   ExpenseRepository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewExpenseService(repo ExpenseRepository, loc *time.Location, now func() time.Time, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, loc: loc, now: now, logger: logger}
}

func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*model.Expense, error) {
	if !model.IsExpenseCategory(in.Category) {
		return nil, fmt.Errorf("%w: expense category %q", ErrInvalidInput, in.Category)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: expense amount must be positive", ErrInvalidInput)
	}
	if in.Method != nil && !model.IsExpenseMethod(*in.Method) {
		return nil, fmt.Errorf("%w: payment method %q", ErrInvalidInput, *in.Method)
	}

	now := s.now()
	expense := &model.Expense{
		ID:          uuid.NewString(),
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        StartOfDay(in.Date, s.loc),
		Description: in.Description,
		Method:      in.Method,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.logger.Info("Expense created",
		zap.String("expense_id", expense.ID),
		zap.String("category", string(expense.Category)),
		zap.Float64("amount", expense.Amount))
	return expense, nil
}

// Between lists expenses in [from, to) with their total.
func (s *ExpenseService) Between(ctx context.Context, from, to time.Time) (*ExpenseSummary, error) {
	expenses, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	summary := &ExpenseSummary{From: from, To: to, Expenses: expenses}
	for _, e := range expenses {
		summary.Total += e.Amount
	}
	return summary, nil
}

func (s *ExpenseService) Period(ctx context.Context, p Period) (*ExpenseSummary, error) {
	from, to, err := p.Range(s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	return s.Between(ctx, from, to)
}

// DateRange lists expenses between two calendar days, both inclusive.
func (s *ExpenseService) DateRange(ctx context.Context, first, last time.Time) (*ExpenseSummary, error) {
	from := StartOfDay(first, s.loc)
	to := StartOfDay(last, s.loc).AddDate(0, 0, 1)
	if !to.After(from) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	return s.Between(ctx, from, to)
}

// CategoryTotals sums the period's expenses per category, largest first,
// and returns the overall total.
func (s *ExpenseService) CategoryTotals(ctx context.Context, p Period) ([]model.CategoryTotal, float64, error) {
	from, to, err := p.Range(s.now(), s.loc)
	if err != nil {
		return nil, 0, err
	}
	totals, err := s.repo.SumByCategoryBetween(ctx, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("sum expenses by category: %w", err)
	}
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Total > totals[j].Total })

	var sum float64
	for _, t := range totals {
		sum += t.Total
	}
	return totals, sum, nil
}
