package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/repository/base"
)

type ExpenseRepository struct {
	*base.Repository
}

func NewExpenseRepository(b *base.Repository) *ExpenseRepository {
	return &ExpenseRepository{Repository: b}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *model.Expense) error {
	query := `
		INSERT INTO despesas (id, tipo, valor, data, descricao, forma_pagamento, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.Pool().Exec(ctx, query,
		e.ID,
		e.Category,
		e.Amount,
		e.Date,
		e.Description,
		e.Method,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// ListBetween returns expenses dated in [from, to), newest first.
func (r *ExpenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Expense, error) {
	query := `
		SELECT id, tipo, valor::float8, data, descricao, forma_pagamento, created_at, updated_at
		FROM despesas
		WHERE data >= $1 AND data < $2
		ORDER BY data DESC, created_at DESC
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(
			&e.ID,
			&e.Category,
			&e.Amount,
			&e.Date,
			&e.Description,
			&e.Method,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

// SumByCategoryBetween totals expenses per category, largest first.
func (r *ExpenseRepository) SumByCategoryBetween(ctx context.Context, from, to time.Time) ([]model.CategoryTotal, error) {
	query := `
		SELECT tipo, SUM(valor)::float8 AS total
		FROM despesas
		WHERE data >= $1 AND data < $2
		GROUP BY tipo
		ORDER BY total DESC
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	var totals []model.CategoryTotal
	for rows.Next() {
		var t model.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
