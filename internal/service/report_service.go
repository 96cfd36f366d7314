package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"go.uber.org/zap"
)

// MonthlyReport aggregates revenue and expenses for one calendar month.
type MonthlyReport struct {
	Year          int
	Month         time.Month
	QuoteRevenue  float64
	PackageIncome float64
	Expenses      []model.CategoryTotal
	TotalExpenses float64
}

func (r *MonthlyReport) Revenue() float64 {
	return r.QuoteRevenue + r.PackageIncome
}

func (r *MonthlyReport) Balance() float64 {
	return r.Revenue() - r.TotalExpenses
}

// Margin is the balance as a percentage of revenue, zero without revenue.
func (r *MonthlyReport) Margin() float64 {
	revenue := r.Revenue()
	if revenue == 0 {
		return 0
	}
	return r.Balance() / revenue * 100
}

type ReportService struct {
	packages      PackageRepository
	expenses      ExpenseRepository
	quotePayments QuotePaymentRepository
	loc           *time.Location
	now           func() time.Time
	logger        *zap.Logger
}

func NewReportService(
	packages PackageRepository,
	expenses ExpenseRepository,
	quotePayments QuotePaymentRepository,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		packages:      packages,
		expenses:      expenses,
		quotePayments: quotePayments,
		loc:           loc,
		now:           now,
		logger:        logger,
	}
}

func (s *ReportService) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	from, to := MonthRange(year, month, s.loc)

	quoteRevenue, err := s.quotePayments.SumBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum quote payments: %w", err)
	}
	packageIncome, err := s.packages.SumPaidBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum paid packages: %w", err)
	}
	totals, err := s.expenses.SumByCategoryBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Total > totals[j].Total })

	report := &MonthlyReport{
		Year:          year,
		Month:         month,
		QuoteRevenue:  quoteRevenue,
		PackageIncome: packageIncome,
		Expenses:      totals,
	}
	for _, t := range totals {
		report.TotalExpenses += t.Total
	}

	s.logger.Debug("Monthly report built",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Float64("balance", report.Balance()))
	return report, nil
}

// PreviousMonth builds the report for the month before now.
func (s *ReportService) PreviousMonth(ctx context.Context) (*MonthlyReport, error) {
	now := s.now().In(s.loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc).AddDate(0, -1, 0)
	return s.Monthly(ctx, first.Year(), first.Month())
}
