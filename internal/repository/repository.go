package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recrearnolar/recrear_bot/internal/repository/base"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

// New builds the Postgres implementations of every persistence port.
func New(pool *pgxpool.Pool) *service.Repositories {
	b := base.NewRepository(pool)
	return &service.Repositories{
		Responsibles:  NewResponsibleRepository(b),
		Packages:      NewPackageRepository(b),
		Schedule:      NewScheduleRepository(b),
		Expenses:      NewExpenseRepository(b),
		Quotes:        NewQuoteRepository(b),
		QuotePayments: NewQuotePaymentRepository(b),
	}
}
